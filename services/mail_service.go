package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/wneessen/go-mail"

	appConfig "github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/metrics"
)

// ErrMailNotConfigured is returned when the relay credentials are missing
var ErrMailNotConfigured = errors.New("mail relay credentials not configured")

// Email is one outgoing message
type Email struct {
	To      []string
	Cc      []string
	Bcc     []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// SendResult reports the outcome of a send; a terminal failure is carried in Err
type SendResult struct {
	Success   bool
	MessageID string
	Attempts  int
	Err       error
}

// MailService delivers emails through the configured relay
type MailService interface {
	Send(ctx context.Context, email Email) (SendResult, error)
}

// smtpSender is the part of *mail.Client used for delivery
type smtpSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailService sends through an authenticated SMTP relay with bounded retries
type SMTPMailService struct {
	cfg     appConfig.MailConfig
	sender  smtpSender
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewSMTPMailService builds the relay client. Missing credentials are not an
// error here; Send reports ErrMailNotConfigured instead so the API still boots.
func NewSMTPMailService(cfg appConfig.MailConfig, log *logger.Logger, m *metrics.Metrics) (*SMTPMailService, error) {
	svc := &SMTPMailService{cfg: cfg, log: log, metrics: m}
	if !cfg.Configured() {
		return svc, nil
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SenderEmail),
		mail.WithPassword(cfg.AppPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	svc.sender = client
	return svc, nil
}

func (s *SMTPMailService) backoff() retry.Backoff {
	base := s.cfg.RetryBaseDelay
	if base <= 0 {
		base = time.Second
	}
	b := retry.NewExponential(base)
	if s.cfg.RetryMaxDelay > 0 {
		b = retry.WithCappedDuration(s.cfg.RetryMaxDelay, b)
	}
	return retry.WithMaxRetries(uint64(max(s.cfg.MaxRetries, 0)), b)
}

// Send delivers email, retrying transient failures with exponential backoff
func (s *SMTPMailService) Send(ctx context.Context, email Email) (SendResult, error) {
	if !s.cfg.Configured() || s.sender == nil {
		return SendResult{}, ErrMailNotConfigured
	}
	if len(email.To) == 0 {
		return SendResult{Err: errors.New("email has no recipients")}, nil
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.SMTPHost)
	msg, err := s.buildMessage(email, messageID)
	if err != nil {
		return SendResult{Err: err}, nil
	}

	attempts := 0
	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempts++
		if sendErr := s.sender.DialAndSendWithContext(ctx, msg); sendErr != nil {
			s.metrics.IncMailAttempt(false)
			s.log.From(ctx).Warn().
				Err(sendErr).
				Int("attempt", attempts).
				Strs("to", email.To).
				Msg("email send attempt failed")
			if ctx.Err() != nil {
				return sendErr
			}
			return retry.RetryableError(sendErr)
		}
		s.metrics.IncMailAttempt(true)
		return nil
	})
	if err != nil {
		return SendResult{Attempts: attempts, Err: fmt.Errorf("email not sent after %d attempt(s): %w", attempts, err)}, nil
	}

	s.log.From(ctx).Info().
		Str("message_id", messageID).
		Strs("to", email.To).
		Msg("email sent")
	return SendResult{Success: true, MessageID: messageID, Attempts: attempts}, nil
}

func (s *SMTPMailService) buildMessage(email Email, messageID string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.SenderName, s.cfg.SenderEmail); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if len(email.Cc) > 0 {
		if err := msg.Cc(email.Cc...); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	if len(email.Bcc) > 0 {
		if err := msg.Bcc(email.Bcc...); err != nil {
			return nil, fmt.Errorf("invalid bcc address: %w", err)
		}
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	msg.Subject(email.Subject)
	msg.SetGenHeader(mail.HeaderMessageID, messageID)

	switch {
	case email.HTML != "" && email.Text != "":
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	}
	return msg, nil
}
