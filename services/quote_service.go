package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

const (
	quoteNotFound  = "Quote not found"
	senderNotFound = "Sender not found"
)

// CreateQuoteInput is a public design request
type CreateQuoteInput struct {
	Name       string `json:"name" validate:"required,notblank"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Service    string `json:"service"`
	DesignType string `json:"designType"`
	Message    string `json:"message"`
}

// QuotePatch merges fields into a quote without workflow checks
type QuotePatch struct {
	Name       *string `json:"name" validate:"omitempty,notblank"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	Company    *string `json:"company"`
	Service    *string `json:"service"`
	DesignType *string `json:"designType"`
	Message    *string `json:"message"`
	Details    *string `json:"details"`
	Status     *string `json:"status" validate:"omitempty,quote_status"`
}

// QuoteService runs the quote request workflow
type QuoteService struct {
	quotes *stores.QuoteStore
	users  *stores.UserStore
	notify *NotificationService
	log    *logger.Logger
}

func NewQuoteService(quotes *stores.QuoteStore, users *stores.UserStore, notify *NotificationService, log *logger.Logger) *QuoteService {
	return &QuoteService{quotes: quotes, users: users, notify: notify, log: log}
}

func (s *QuoteService) Create(ctx context.Context, input CreateQuoteInput) (*models.Quote, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	quote := &models.Quote{
		Name:       strings.TrimSpace(input.Name),
		Email:      models.NormalizeEmail(input.Email),
		Phone:      input.Phone,
		Company:    input.Company,
		Service:    input.Service,
		DesignType: input.DesignType,
		Message:    input.Message,
		Replies:    []models.QuoteReply{},
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.log.From(ctx).Info().Str("quote_id", quote.ID.String()).Msg("quote request created")
	s.notify.QuoteCreated(ctx, *quote)
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context) ([]models.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return quotes, nil
}

func (s *QuoteService) Get(ctx context.Context, id string) (*models.Quote, error) {
	quoteID, err := parseID(id, quoteNotFound)
	if err != nil {
		return nil, err
	}
	quote, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, storeError(err, quoteNotFound)
	}
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, id string, patch QuotePatch) (*models.Quote, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merge := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	merge(&quote.Name, patch.Name)
	merge(&quote.Phone, patch.Phone)
	merge(&quote.Company, patch.Company)
	merge(&quote.Service, patch.Service)
	merge(&quote.DesignType, patch.DesignType)
	merge(&quote.Message, patch.Message)
	merge(&quote.Details, patch.Details)
	merge(&quote.Status, patch.Status)
	if patch.Email != nil {
		quote.Email = models.NormalizeEmail(*patch.Email)
	}

	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, utils.NewInternalError(err)
	}
	return quote, nil
}

// ChangeStatus moves a quote to status and tells the applicant and the admin inbox
func (s *QuoteService) ChangeStatus(ctx context.Context, id, status, details string) (*models.Quote, error) {
	if !slices.Contains(models.QuoteStatuses, status) {
		return nil, utils.NewValidationError("Invalid status. Must be one of: " + strings.Join(models.QuoteStatuses, ", "))
	}
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := quote.Status
	quote.Status = status
	if details != "" {
		quote.Details = details
	}
	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.notify.QuoteStatusChanged(ctx, *quote, oldStatus)
	return quote, nil
}

// Reply appends a staff message to the quote thread and marks it replied
func (s *QuoteService) Reply(ctx context.Context, id, senderID, message string) (*models.Quote, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.NewValidationError("Reply message is required")
	}

	sender, err := s.findSender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.IsStaff() {
		return nil, utils.NewForbiddenError("Only admins and staff members can reply to quotes")
	}

	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reply := &models.QuoteReply{
		SenderID:   sender.ID,
		SenderName: sender.DisplayName(),
		Message:    message,
	}
	if err := s.quotes.AppendReply(ctx, quote, reply); err != nil {
		return nil, utils.NewInternalError(err)
	}
	quote.Replies = append(quote.Replies, *reply)

	s.notify.QuoteReplied(ctx, *quote, reply.SenderName, message)
	return quote, nil
}

func (s *QuoteService) findSender(ctx context.Context, senderID string) (*models.User, error) {
	id, err := uuid.Parse(senderID)
	if err != nil {
		return nil, utils.NewValidationError(senderNotFound)
	}
	sender, err := s.users.FindByID(ctx, id)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, utils.NewValidationError(senderNotFound)
	}
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return sender, nil
}

// Assign hands the quote to a staff user
func (s *QuoteService) Assign(ctx context.Context, id, userID string) (*models.Quote, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	const assigneeNotFound = "Assigned user not found"
	assigneeID, err := parseID(userID, assigneeNotFound)
	if err != nil {
		return nil, err
	}
	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, storeError(err, assigneeNotFound)
	}

	quote.AssignedToID = &assignee.ID
	quote.AssignedTo = assignee
	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.notify.QuoteAssigned(ctx, *quote, *assignee)
	return quote, nil
}

func (s *QuoteService) Delete(ctx context.Context, id string) error {
	quoteID, err := parseID(id, quoteNotFound)
	if err != nil {
		return err
	}
	if err := s.quotes.Delete(ctx, quoteID); err != nil {
		return storeError(err, quoteNotFound)
	}
	s.log.From(ctx).Info().Str("quote_id", quoteID.String()).Msg("quote deleted")
	return nil
}
