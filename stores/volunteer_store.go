package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// VolunteerStore persists volunteer applications and their admin notes
type VolunteerStore struct {
	db *gorm.DB
}

func NewVolunteerStore(db *gorm.DB) *VolunteerStore {
	return &VolunteerStore{db: db}
}

func (s *VolunteerStore) Create(ctx context.Context, v *models.Volunteer) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (s *VolunteerStore) withNotes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("AdminNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("AdminNotes.CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		})
}

func (s *VolunteerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.withNotes(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// List returns applications newest first, optionally narrowed to one status
func (s *VolunteerStore) List(ctx context.Context, status string) ([]models.Volunteer, error) {
	query := s.withNotes(ctx).Order("submitted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var volunteers []models.Volunteer
	if err := query.Find(&volunteers).Error; err != nil {
		return nil, translate(err)
	}
	return volunteers, nil
}

func (s *VolunteerStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Volunteer{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddNote appends a note; the volunteer must exist
func (s *VolunteerStore) AddNote(ctx context.Context, note *models.VolunteerNote) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Volunteer{}).Where("id = ?", note.VolunteerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Omit(clause.Associations).Create(note).Error; err != nil {
			return err
		}
		return tx.Model(&models.Volunteer{}).Where("id = ?", note.VolunteerID).Update("updated_at", tx.NowFunc()).Error
	}))
}

// Delete removes the application and its notes
func (s *VolunteerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("volunteer_id = ?", id).Delete(&models.VolunteerNote{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Volunteer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// CountByStatus counts applications; an empty status counts all of them
func (s *VolunteerStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Volunteer{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
