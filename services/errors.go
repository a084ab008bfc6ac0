package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// parseID treats an unparsable id like a missing record
func parseID(id, notFound string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, utils.NewNotFoundError(notFound)
	}
	return parsed, nil
}

// storeError maps store failures onto API errors
func storeError(err error, notFound string) error {
	if errors.Is(err, stores.ErrNotFound) {
		return utils.NewNotFoundError(notFound)
	}
	return utils.NewInternalError(err)
}
