package stores

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// clothSortColumns whitelists the sortBy values clients may use
var clothSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
	"views":     "views",
	"rating":    "rating",
}

// ClothFilter narrows a catalog listing
type ClothFilter struct {
	Status   string
	Featured *bool
	Search   string
	SortBy   string // field name, "-" prefix for descending
	Offset   int
	Limit    int
}

// ClothStore persists catalog products
type ClothStore struct {
	db *gorm.DB
}

func NewClothStore(db *gorm.DB) *ClothStore {
	return &ClothStore{db: db}
}

func (s *ClothStore) Create(ctx context.Context, cloth *models.Cloth) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(cloth).Error)
}

// Save writes every column of an existing cloth
func (s *ClothStore) Save(ctx context.Context, cloth *models.Cloth) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(cloth).Error)
}

func (s *ClothStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Cloth, error) {
	var cloth models.Cloth
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		First(&cloth, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cloth, nil
}

// FindByName matches the name case-insensitively
func (s *ClothStore) FindByName(ctx context.Context, name string) (*models.Cloth, error) {
	var cloth models.Cloth
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("name_key = ?", models.NormalizeClothName(name)).
		First(&cloth).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cloth, nil
}

// List returns one page of cloths matching filter and the total match count
func (s *ClothStore) List(ctx context.Context, filter ClothFilter) ([]models.Cloth, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Cloth{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(name) LIKE @p ESCAPE '\' OR LOWER(description) LIKE @p ESCAPE '\' OR LOWER(color) LIKE @p ESCAPE '\' OR LOWER(material) LIKE @p ESCAPE '\')`,
			sql.Named("p", pattern),
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var cloths []models.Cloth
	query = query.Preload("CreatedBy").Order(clothOrder(filter.SortBy)).Order("id")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&cloths).Error; err != nil {
		return nil, 0, translate(err)
	}
	return cloths, total, nil
}

// ListFeatured returns featured, active cloths newest first
func (s *ClothStore) ListFeatured(ctx context.Context, limit int) ([]models.Cloth, error) {
	var cloths []models.Cloth
	err := s.db.WithContext(ctx).
		Where("featured = ? AND status = ?", true, models.ClothStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&cloths).Error
	if err != nil {
		return nil, translate(err)
	}
	return cloths, nil
}

// IncrementViews bumps the view counter in place without touching other columns
func (s *ClothStore) IncrementViews(ctx context.Context, cloth *models.Cloth) error {
	err := s.db.WithContext(ctx).
		Model(&models.Cloth{}).
		Where("id = ?", cloth.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return translate(err)
	}
	cloth.Views++
	return nil
}

func (s *ClothStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Cloth{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func clothOrder(sortBy string) string {
	if sortBy == "" {
		sortBy = "-createdAt"
	}
	direction := "ASC"
	if strings.HasPrefix(sortBy, "-") {
		direction = "DESC"
		sortBy = strings.TrimPrefix(sortBy, "-")
	}
	column, ok := clothSortColumns[sortBy]
	if !ok {
		column, direction = "created_at", "DESC"
	}
	return column + " " + direction
}
