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
	volunteerNotFound  = "Volunteer application not found"
	duplicateVolunteer = "This email has already submitted a volunteer application"

	// placeholderAdminID is what older admin clients send when no session exists
	placeholderAdminID = "admin_id_here"
)

// CreateVolunteerInput is a public volunteer application
type CreateVolunteerInput struct {
	FirstName            string   `json:"firstName" validate:"required,notblank"`
	LastName             string   `json:"lastName" validate:"required,notblank"`
	Email                string   `json:"email" validate:"required,email"`
	Phone                string   `json:"phone" validate:"required,notblank"`
	Program              string   `json:"program" validate:"required,volunteer_program"`
	InterestedActivities []string `json:"interestedActivities" validate:"required,min=1,dive,volunteer_activity"`
	Experience           string   `json:"experience" validate:"required,volunteer_experience"`
	AdditionalInfo       string   `json:"additionalInfo"`
}

// VolunteerStats counts applications per status
type VolunteerStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

// VolunteerService runs the volunteer application workflow
type VolunteerService struct {
	volunteers *stores.VolunteerStore
	users      *stores.UserStore
	notify     *NotificationService
	log        *logger.Logger
}

func NewVolunteerService(volunteers *stores.VolunteerStore, users *stores.UserStore, notify *NotificationService, log *logger.Logger) *VolunteerService {
	return &VolunteerService{volunteers: volunteers, users: users, notify: notify, log: log}
}

// Create stores a pending application; one per email address
func (s *VolunteerService) Create(ctx context.Context, input CreateVolunteerInput) (*models.Volunteer, error) {
	input.Email = models.NormalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	v := &models.Volunteer{
		FirstName:            strings.TrimSpace(input.FirstName),
		LastName:             strings.TrimSpace(input.LastName),
		Email:                input.Email,
		Phone:                input.Phone,
		Program:              input.Program,
		InterestedActivities: input.InterestedActivities,
		Experience:           input.Experience,
		AdditionalInfo:       input.AdditionalInfo,
	}
	if err := s.volunteers.Create(ctx, v); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, utils.NewConflictError(duplicateVolunteer)
		}
		return nil, utils.NewInternalError(err)
	}
	v.AdminNotes = []models.VolunteerNote{}

	s.log.From(ctx).Info().Str("volunteer_id", v.ID.String()).Msg("volunteer application received")
	s.notify.VolunteerCreated(ctx, *v)
	return v, nil
}

// List returns applications newest first; "" or "all" means every status
func (s *VolunteerService) List(ctx context.Context, status string) ([]models.Volunteer, error) {
	if status == "all" {
		status = ""
	}
	if status != "" && !slices.Contains(models.VolunteerStatuses, status) {
		return nil, utils.NewValidationError("Invalid status filter. Must be one of: all, " + strings.Join(models.VolunteerStatuses, ", "))
	}
	volunteers, err := s.volunteers.List(ctx, status)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return volunteers, nil
}

func (s *VolunteerService) Get(ctx context.Context, id string) (*models.Volunteer, error) {
	volunteerID, err := parseID(id, volunteerNotFound)
	if err != nil {
		return nil, err
	}
	v, err := s.volunteers.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, storeError(err, volunteerNotFound)
	}
	return v, nil
}

// ChangeStatus approves, rejects or resets an application and notifies everyone
func (s *VolunteerService) ChangeStatus(ctx context.Context, id, status string) (*models.Volunteer, error) {
	if !slices.Contains(models.VolunteerStatuses, status) {
		return nil, utils.NewValidationError("Invalid status. Must be one of: " + strings.Join(models.VolunteerStatuses, ", "))
	}
	volunteerID, err := parseID(id, volunteerNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.volunteers.UpdateStatus(ctx, volunteerID, status); err != nil {
		return nil, storeError(err, volunteerNotFound)
	}

	v, err := s.volunteers.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, storeError(err, volunteerNotFound)
	}
	s.log.From(ctx).Info().
		Str("volunteer_id", v.ID.String()).
		Str("status", status).
		Msg("volunteer status changed")
	s.notify.VolunteerStatusChanged(ctx, *v)
	return v, nil
}

// AddNote appends an admin note. creatorID is attached only when it names a
// real user; the placeholder id and unparsable ids are ignored.
func (s *VolunteerService) AddNote(ctx context.Context, id, message, creatorID string) (*models.Volunteer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.NewValidationError("Note message is required")
	}
	volunteerID, err := parseID(id, volunteerNotFound)
	if err != nil {
		return nil, err
	}

	note := &models.VolunteerNote{VolunteerID: volunteerID, Message: message}
	note.CreatedByID = s.resolveCreator(ctx, creatorID)

	if err := s.volunteers.AddNote(ctx, note); err != nil {
		return nil, storeError(err, volunteerNotFound)
	}

	v, err := s.volunteers.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, storeError(err, volunteerNotFound)
	}
	s.notify.VolunteerNoteAdded(ctx, *v, message)
	return v, nil
}

func (s *VolunteerService) resolveCreator(ctx context.Context, creatorID string) *uuid.UUID {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" || creatorID == placeholderAdminID {
		return nil
	}
	id, err := uuid.Parse(creatorID)
	if err != nil {
		return nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.log.From(ctx).Debug().Str("creator_id", creatorID).Msg("note creator not found, leaving note anonymous")
		return nil
	}
	return &user.ID
}

func (s *VolunteerService) Delete(ctx context.Context, id string) error {
	volunteerID, err := parseID(id, volunteerNotFound)
	if err != nil {
		return err
	}
	if err := s.volunteers.Delete(ctx, volunteerID); err != nil {
		return storeError(err, volunteerNotFound)
	}
	s.log.From(ctx).Info().Str("volunteer_id", volunteerID.String()).Msg("volunteer application deleted")
	return nil
}

func (s *VolunteerService) Stats(ctx context.Context) (*VolunteerStats, error) {
	var stats VolunteerStats
	counts := []struct {
		status string
		dst    *int64
	}{
		{"", &stats.Total},
		{models.VolunteerStatusApproved, &stats.Approved},
		{models.VolunteerStatusPending, &stats.Pending},
		{models.VolunteerStatusRejected, &stats.Rejected},
	}
	for _, c := range counts {
		n, err := s.volunteers.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, utils.NewInternalError(err)
		}
		*c.dst = n
	}
	return &stats, nil
}
