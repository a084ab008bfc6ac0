package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// UserStore reads the site's admin and staff accounts
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByAuth0ID resolves the account linked to an identity provider subject
func (s *UserStore) FindByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindUnlinkedByEmail finds an account with the given email that has no
// identity provider subject yet
func (s *UserStore) FindUnlinkedByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND auth0_id IS NULL", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// LinkAuth0ID records the identity provider subject on an unlinked account
func (s *UserStore) LinkAuth0ID(ctx context.Context, user *models.User, auth0ID string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND auth0_id IS NULL", user.ID).
		Update("auth0_id", auth0ID)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	user.Auth0ID = &auth0ID
	return nil
}

// ListNotificationRecipients returns active, non-deleted admins and staff members
func (s *UserStore) ListNotificationRecipients(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role IN ?", []string{models.RoleAdmin, models.RoleStaffMember}).
		Where("account_status <> ?", models.AccountStatusDeleted).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
