package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/tests/testutil"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

const testAdminInbox = "admin@lasumba.test"

// workflowEnv wires the workflow services to an in-memory database and a
// recording mailer
type workflowEnv struct {
	db       *gorm.DB
	mail     *MockMailService
	notifier *Notifier
	users    *stores.UserStore
	notify   *NotificationService
}

func newWorkflowEnv(t *testing.T, adminEmail string) *workflowEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	mail := NewMockMailService()
	notifier := NewNotifier(logger.Nop(), nil, 100)
	notifier.Start()
	t.Cleanup(func() {
		notifier.Stop(context.Background())
	})

	users := stores.NewUserStore(db)
	return &workflowEnv{
		db:       db,
		mail:     mail,
		notifier: notifier,
		users:    users,
		notify:   NewNotificationService(mail, users, notifier, adminEmail, 0, logger.Nop()),
	}
}

func (e *workflowEnv) quoteService() *QuoteService {
	return NewQuoteService(stores.NewQuoteStore(e.db), e.users, e.notify, logger.Nop())
}

func (e *workflowEnv) volunteerService() *VolunteerService {
	return NewVolunteerService(stores.NewVolunteerStore(e.db), e.users, e.notify, logger.Nop())
}

// assertAppError checks err is an *utils.AppError with the given code and status
func assertAppError(t *testing.T, err error, code utils.ErrorCode, status int) *utils.AppError {
	t.Helper()

	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.Status())
	return appErr
}
