package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

const (
	clothNotFound       = "Cloth not found"
	clothNameTaken      = "A cloth with this name already exists"
	defaultFeaturedSize = 6
)

type ClothSizeInput struct {
	Size     string `json:"size" validate:"required,cloth_size"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type ClothImageInput struct {
	URL      string `json:"url" validate:"required,notblank"`
	PublicID string `json:"publicId"`
	Alt      string `json:"alt"`
}

type ClothSpecInput struct {
	Label string `json:"label" validate:"required,notblank"`
	Value string `json:"value" validate:"required,notblank"`
}

// CreateClothInput is the body of a new catalog product
type CreateClothInput struct {
	Name        string            `json:"name" validate:"required,notblank"`
	Description string            `json:"description" validate:"required,notblank"`
	Price       *float64          `json:"price" validate:"required,gte=0"`
	Color       string            `json:"color" validate:"required,notblank"`
	Material    string            `json:"material" validate:"required,notblank"`
	Sizes       []ClothSizeInput  `json:"sizes" validate:"dive"`
	Images      []ClothImageInput `json:"images" validate:"required,min=1,dive"`
	Specs       []ClothSpecInput  `json:"specs" validate:"dive"`
	Featured    bool              `json:"featured"`
	Status      string            `json:"status" validate:"omitempty,cloth_status"`
}

// ClothPatch is a partial update; nil fields are left alone
type ClothPatch struct {
	Name        *string           `json:"name" validate:"omitempty,notblank"`
	Description *string           `json:"description" validate:"omitempty,notblank"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
	Color       *string           `json:"color" validate:"omitempty,notblank"`
	Material    *string           `json:"material" validate:"omitempty,notblank"`
	Sizes       []ClothSizeInput  `json:"sizes" validate:"omitempty,dive"`
	Images      []ClothImageInput `json:"images" validate:"omitempty,dive"`
	Specs       []ClothSpecInput  `json:"specs" validate:"omitempty,dive"`
	Featured    *bool             `json:"featured"`
	Status      *string           `json:"status" validate:"omitempty,cloth_status"`
	Rating      *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// SizeUpdate sets the stock of one existing size
type SizeUpdate struct {
	Size     string `json:"size" validate:"required,cloth_size"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type stockInput struct {
	Sizes []SizeUpdate `json:"sizes" validate:"dive"`
}

// ClothQuery narrows a catalog listing
type ClothQuery struct {
	Status   string
	Featured *bool
	Search   string
	SortBy   string
	Page     utils.Pagination
}

// ClothPage is one page of catalog results
type ClothPage struct {
	Cloths     []models.Cloth `json:"cloths"`
	Pagination utils.PageInfo `json:"pagination"`
}

// ClothService manages the cloth catalog
type ClothService struct {
	store  *stores.ClothStore
	images ImageService
	log    *logger.Logger
}

func NewClothService(store *stores.ClothStore, images ImageService, log *logger.Logger) *ClothService {
	return &ClothService{store: store, images: images, log: log}
}

func (s *ClothService) Create(ctx context.Context, input CreateClothInput, actorID *uuid.UUID) (*models.Cloth, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByName(ctx, input.Name); err == nil {
		return nil, utils.NewConflictError(clothNameTaken)
	} else if !errors.Is(err, stores.ErrNotFound) {
		return nil, utils.NewInternalError(err)
	}

	cloth := &models.Cloth{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       *input.Price,
		Color:       input.Color,
		Material:    input.Material,
		Sizes:       toSizes(input.Sizes),
		Images:      toImages(input.Images),
		Specs:       toSpecs(input.Specs),
		Featured:    input.Featured,
		Status:      input.Status,
		CreatedByID: actorID,
		UpdatedByID: actorID,
	}
	if err := s.store.Create(ctx, cloth); err != nil {
		return nil, s.writeError(err)
	}

	s.log.From(ctx).Info().Str("cloth_id", cloth.ID.String()).Msg("cloth created")
	return cloth, nil
}

// GetByID loads one cloth and counts the view
func (s *ClothService) GetByID(ctx context.Context, id string) (*models.Cloth, error) {
	clothID, err := parseID(id, clothNotFound)
	if err != nil {
		return nil, err
	}
	cloth, err := s.store.FindByID(ctx, clothID)
	if err != nil {
		return nil, storeError(err, clothNotFound)
	}
	return s.viewed(ctx, cloth)
}

// GetByName matches the name case-insensitively and counts the view
func (s *ClothService) GetByName(ctx context.Context, name string) (*models.Cloth, error) {
	cloth, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, storeError(err, clothNotFound)
	}
	return s.viewed(ctx, cloth)
}

func (s *ClothService) viewed(ctx context.Context, cloth *models.Cloth) (*models.Cloth, error) {
	if err := s.store.IncrementViews(ctx, cloth); err != nil {
		return nil, utils.NewInternalError(err)
	}
	return cloth, nil
}

func (s *ClothService) List(ctx context.Context, q ClothQuery) (*ClothPage, error) {
	cloths, total, err := s.store.List(ctx, stores.ClothFilter{
		Status:   q.Status,
		Featured: q.Featured,
		Search:   q.Search,
		SortBy:   q.SortBy,
		Offset:   q.Page.Offset(),
		Limit:    q.Page.Limit,
	})
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return &ClothPage{Cloths: cloths, Pagination: q.Page.Info(total)}, nil
}

// Featured returns up to limit featured, active cloths
func (s *ClothService) Featured(ctx context.Context, limit int) ([]models.Cloth, error) {
	if limit <= 0 {
		limit = defaultFeaturedSize
	}
	cloths, err := s.store.ListFeatured(ctx, min(limit, utils.MaxLimit))
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return cloths, nil
}

func (s *ClothService) Update(ctx context.Context, id string, patch ClothPatch, actorID *uuid.UUID) (*models.Cloth, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	clothID, err := parseID(id, clothNotFound)
	if err != nil {
		return nil, err
	}
	cloth, err := s.store.FindByID(ctx, clothID)
	if err != nil {
		return nil, storeError(err, clothNotFound)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if models.NormalizeClothName(name) != cloth.NameKey {
			existing, err := s.store.FindByName(ctx, name)
			switch {
			case err == nil && existing.ID != cloth.ID:
				return nil, utils.NewConflictError(clothNameTaken)
			case err != nil && !errors.Is(err, stores.ErrNotFound):
				return nil, utils.NewInternalError(err)
			}
		}
		cloth.Name = name
	}
	if patch.Description != nil {
		cloth.Description = *patch.Description
	}
	if patch.Price != nil {
		cloth.Price = *patch.Price
	}
	if patch.Color != nil {
		cloth.Color = *patch.Color
	}
	if patch.Material != nil {
		cloth.Material = *patch.Material
	}
	if patch.Sizes != nil {
		cloth.Sizes = toSizes(patch.Sizes)
	}
	if patch.Images != nil {
		cloth.Images = toImages(patch.Images)
	}
	if patch.Specs != nil {
		cloth.Specs = toSpecs(patch.Specs)
	}
	if patch.Featured != nil {
		cloth.Featured = *patch.Featured
	}
	if patch.Status != nil {
		cloth.Status = *patch.Status
	}
	if patch.Rating != nil {
		cloth.Rating = *patch.Rating
	}
	if actorID != nil {
		cloth.UpdatedByID = actorID
	}

	if err := s.store.Save(ctx, cloth); err != nil {
		return nil, s.writeError(err)
	}
	return cloth, nil
}

// UpdateStock overwrites the quantity of sizes the cloth already has.
// Unknown sizes are ignored.
func (s *ClothService) UpdateStock(ctx context.Context, id string, updates []SizeUpdate) (*models.Cloth, error) {
	if len(updates) == 0 {
		return nil, utils.NewValidationError("Sizes array is required")
	}
	if err := validateInput(stockInput{Sizes: updates}); err != nil {
		return nil, err
	}
	clothID, err := parseID(id, clothNotFound)
	if err != nil {
		return nil, err
	}
	cloth, err := s.store.FindByID(ctx, clothID)
	if err != nil {
		return nil, storeError(err, clothNotFound)
	}

	for _, u := range updates {
		cloth.SetSizeQuantity(u.Size, u.Quantity)
	}
	if err := s.store.Save(ctx, cloth); err != nil {
		return nil, s.writeError(err)
	}
	return cloth, nil
}

// Delete removes the cloth after a best-effort cleanup of its hosted images
func (s *ClothService) Delete(ctx context.Context, id string) error {
	clothID, err := parseID(id, clothNotFound)
	if err != nil {
		return err
	}
	cloth, err := s.store.FindByID(ctx, clothID)
	if err != nil {
		return storeError(err, clothNotFound)
	}

	if ids := cloth.ImagePublicIDs(); len(ids) > 0 && s.images != nil {
		if err := s.images.DeleteImages(ctx, ids); err != nil {
			s.log.From(ctx).Warn().
				Err(err).
				Str("cloth_id", cloth.ID.String()).
				Strs("public_ids", ids).
				Msg("failed to delete cloth images")
		}
	}

	if err := s.store.Delete(ctx, cloth.ID); err != nil {
		return storeError(err, clothNotFound)
	}
	s.log.From(ctx).Info().Str("cloth_id", cloth.ID.String()).Msg("cloth deleted")
	return nil
}

func (s *ClothService) writeError(err error) error {
	if errors.Is(err, stores.ErrDuplicate) {
		return utils.NewConflictError(clothNameTaken)
	}
	return utils.NewInternalError(err)
}

func toSizes(in []ClothSizeInput) []models.ClothSize {
	out := make([]models.ClothSize, 0, len(in))
	for _, s := range in {
		out = append(out, models.ClothSize{Size: s.Size, Quantity: s.Quantity})
	}
	return out
}

// toImages numbers images by their position in the request
func toImages(in []ClothImageInput) []models.ClothImage {
	out := make([]models.ClothImage, 0, len(in))
	for i, img := range in {
		out = append(out, models.ClothImage{URL: img.URL, PublicID: img.PublicID, Alt: img.Alt, DisplayOrder: i})
	}
	return out
}

func toSpecs(in []ClothSpecInput) []models.ClothSpec {
	out := make([]models.ClothSpec, 0, len(in))
	for _, s := range in {
		out = append(out, models.ClothSpec{Label: s.Label, Value: s.Value})
	}
	return out
}
