package stores

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate record")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKeyError(err):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}

// isDuplicateKeyError checks if the error is a unique constraint violation.
// Drivers without TranslateError support are matched on their message.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
