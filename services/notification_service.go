package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/templates"
)

// RecipientLister finds the staff accounts that receive alert emails
type RecipientLister interface {
	ListNotificationRecipients(ctx context.Context) ([]models.User, error)
}

// NotificationService turns workflow events into queued emails.
// Quote alerts go to the single admin inbox, volunteer alerts fan out to staff.
// sendTimeout bounds one email to one recipient, retries included
const sendTimeout = 2 * time.Minute

type NotificationService struct {
	mail        MailService
	users       RecipientLister
	notifier    *Notifier
	adminEmail  string
	fanoutDelay time.Duration
	sendTimeout time.Duration
	log         *logger.Logger
}

func NewNotificationService(mail MailService, users RecipientLister, notifier *Notifier, adminEmail string, fanoutDelay time.Duration, log *logger.Logger) *NotificationService {
	return &NotificationService{
		mail:        mail,
		users:       users,
		notifier:    notifier,
		adminEmail:  strings.TrimSpace(adminEmail),
		fanoutDelay: fanoutDelay,
		sendTimeout: sendTimeout,
		log:         log,
	}
}

type renderFunc func() (templates.Message, error)

func (s *NotificationService) deliver(ctx context.Context, to string, msg templates.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	res, err := s.mail.Send(ctx, Email{To: []string{to}, Subject: msg.Subject, HTML: msg.HTML, Text: msg.Text})
	if err != nil {
		return err
	}
	if !res.Success {
		return res.Err
	}
	return nil
}

// toApplicant queues one email to an applicant address
func (s *NotificationService) toApplicant(ctx context.Context, name, to string, render renderFunc) {
	s.notifier.Dispatch(ctx, name, func(ctx context.Context) error {
		msg, err := render()
		if err != nil {
			return err
		}
		return s.deliver(ctx, to, msg)
	})
}

// toAdminInbox queues one email to ADMIN_EMAIL, skipping when it is unset
func (s *NotificationService) toAdminInbox(ctx context.Context, name string, render renderFunc) {
	if s.adminEmail == "" {
		s.log.From(ctx).Warn().Str("notification", name).Msg("ADMIN_EMAIL not configured, skipping admin notification")
		return
	}
	s.toApplicant(ctx, name, s.adminEmail, render)
}

// toStaff queues a sequential fan-out to every active admin and staff member.
// One failed recipient does not stop the rest.
func (s *NotificationService) toStaff(ctx context.Context, name string, render renderFunc) {
	s.notifier.Dispatch(ctx, name, func(ctx context.Context) error {
		recipients, err := s.users.ListNotificationRecipients(ctx)
		if err != nil {
			return fmt.Errorf("loading staff recipients: %w", err)
		}
		if len(recipients) == 0 {
			s.log.Warn(ctx, "no staff recipients for notification")
			return nil
		}

		msg, err := render()
		if err != nil {
			return err
		}

		var errs []error
		for i, u := range recipients {
			if i > 0 && s.fanoutDelay > 0 {
				select {
				case <-time.After(s.fanoutDelay):
				case <-ctx.Done():
					return errors.Join(append(errs, ctx.Err())...)
				}
			}
			if err := s.deliver(ctx, u.Email, msg); err != nil {
				s.log.From(ctx).Warn().Err(err).Str("recipient", u.Email).Msg("staff notification not delivered")
				errs = append(errs, fmt.Errorf("%s: %w", u.Email, err))
			}
		}
		return errors.Join(errs...)
	})
}

// QuoteCreated confirms the request to the applicant and alerts the admin inbox
func (s *NotificationService) QuoteCreated(ctx context.Context, q models.Quote) {
	if q.Email != "" && q.Name != "" {
		s.toApplicant(ctx, "quote.created.applicant", q.Email, func() (templates.Message, error) {
			return templates.QuoteConfirmation(&q)
		})
	}
	s.toAdminInbox(ctx, "quote.created.admin", func() (templates.Message, error) {
		return templates.AdminQuoteCreated(&q)
	})
}

func (s *NotificationService) QuoteStatusChanged(ctx context.Context, q models.Quote, oldStatus string) {
	if q.Email != "" && q.Name != "" {
		s.toApplicant(ctx, "quote.status.applicant", q.Email, func() (templates.Message, error) {
			return templates.QuoteStatusUpdate(&q)
		})
	}
	s.toAdminInbox(ctx, "quote.status.admin", func() (templates.Message, error) {
		return templates.AdminQuoteStatusChanged(&q, oldStatus)
	})
}

func (s *NotificationService) QuoteReplied(ctx context.Context, q models.Quote, senderName, message string) {
	if q.Email != "" && q.Name != "" {
		s.toApplicant(ctx, "quote.reply.applicant", q.Email, func() (templates.Message, error) {
			return templates.QuoteReply(&q)
		})
	}
	s.toAdminInbox(ctx, "quote.reply.admin", func() (templates.Message, error) {
		return templates.AdminQuoteReply(&q, senderName, message)
	})
}

func (s *NotificationService) QuoteAssigned(ctx context.Context, q models.Quote, assignee models.User) {
	if q.Email != "" && q.Name != "" {
		s.toApplicant(ctx, "quote.assigned.applicant", q.Email, func() (templates.Message, error) {
			return templates.QuoteAssigned(&q, &assignee)
		})
	}
	s.toAdminInbox(ctx, "quote.assigned.admin", func() (templates.Message, error) {
		return templates.AdminQuoteAssigned(&q, &assignee)
	})
}

// VolunteerCreated confirms the application and alerts every staff member
func (s *NotificationService) VolunteerCreated(ctx context.Context, v models.Volunteer) {
	s.toApplicant(ctx, "volunteer.created.applicant", v.Email, func() (templates.Message, error) {
		return templates.VolunteerApplicationReceived(&v)
	})
	s.toStaff(ctx, "volunteer.created.staff", func() (templates.Message, error) {
		return templates.AdminVolunteerApplication(&v)
	})
}

func (s *NotificationService) VolunteerStatusChanged(ctx context.Context, v models.Volunteer) {
	s.toApplicant(ctx, "volunteer.status.applicant", v.Email, func() (templates.Message, error) {
		return templates.VolunteerStatusChanged(&v)
	})
	s.toStaff(ctx, "volunteer.status.staff", func() (templates.Message, error) {
		return templates.AdminVolunteerStatusChanged(&v)
	})
}

func (s *NotificationService) VolunteerNoteAdded(ctx context.Context, v models.Volunteer, note string) {
	s.toApplicant(ctx, "volunteer.note.applicant", v.Email, func() (templates.Message, error) {
		return templates.VolunteerNoteAdded(&v, note)
	})
	s.toStaff(ctx, "volunteer.note.staff", func() (templates.Message, error) {
		return templates.AdminVolunteerNoteAdded(&v, note)
	})
}
