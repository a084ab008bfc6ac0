package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// slowMail takes a fixed time per recipient and gives up when ctx ends
type slowMail struct {
	mu    sync.Mutex
	delay map[string]time.Duration
	sent  []string
}

func (m *slowMail) Send(ctx context.Context, email Email) (SendResult, error) {
	to := email.To[0]
	select {
	case <-time.After(m.delay[to]):
	case <-ctx.Done():
		return SendResult{Attempts: 1, Err: ctx.Err()}, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return SendResult{Success: true, Attempts: 1}, nil
}

func (m *slowMail) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type staticRecipients []models.User

func (r staticRecipients) ListNotificationRecipients(ctx context.Context) ([]models.User, error) {
	return r, nil
}

func TestNotificationService_StaffFanOutBoundsEachSend(t *testing.T) {
	staff := staticRecipients{
		{Email: "one@lasumba.test"},
		{Email: "stuck@lasumba.test"},
		{Email: "two@lasumba.test"},
		{Email: "three@lasumba.test"},
		{Email: "four@lasumba.test"},
	}
	mail := &slowMail{delay: map[string]time.Duration{
		"one@lasumba.test":   30 * time.Millisecond,
		"stuck@lasumba.test": time.Hour,
		"two@lasumba.test":   30 * time.Millisecond,
		"three@lasumba.test": 30 * time.Millisecond,
		"four@lasumba.test":  30 * time.Millisecond,
	}}

	notifier := NewNotifier(logger.Nop(), nil, 10)
	notifier.Start()
	defer notifier.Stop(context.Background())

	svc := NewNotificationService(mail, staff, notifier, "", 0, logger.Nop())
	svc.sendTimeout = 100 * time.Millisecond

	svc.VolunteerStatusChanged(context.Background(), models.Volunteer{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Status:    models.VolunteerStatusApproved,
	})
	notifier.Wait()

	// The whole fan-out outlasts one send timeout; only the stuck recipient is cut off.
	assert.ElementsMatch(t, []string{
		"ada@example.com",
		"one@lasumba.test",
		"two@lasumba.test",
		"three@lasumba.test",
		"four@lasumba.test",
	}, mail.recipients())
}
