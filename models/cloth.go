package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ClothStatusActive       = "active"
	ClothStatusInactive     = "inactive"
	ClothStatusDiscontinued = "discontinued"
)

var (
	ClothStatuses = []string{ClothStatusActive, ClothStatusInactive, ClothStatusDiscontinued}
	ClothSizes    = []string{"XS", "S", "M", "L", "XL", "XXL", "One Size"}
)

// ClothSize is one stock line of a cloth
type ClothSize struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ClothImage is a hosted picture of a cloth; PublicID is the media host key
type ClothImage struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	Alt          string `json:"alt"`
	DisplayOrder int    `json:"displayOrder"`
}

type ClothSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cloth is a catalog product.
// NameKey holds the normalized name so uniqueness is case-insensitive.
type Cloth struct {
	ID           uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string                          `gorm:"not null" json:"name"`
	NameKey      string                          `gorm:"uniqueIndex;not null" json:"-"`
	Description  string                          `gorm:"type:text;not null" json:"description"`
	Price        float64                         `gorm:"not null;check:price >= 0" json:"price"`
	Color        string                          `gorm:"not null" json:"color"`
	Material     string                          `gorm:"not null" json:"material"`
	Sizes        datatypes.JSONSlice[ClothSize]  `json:"sizes"`
	Images       datatypes.JSONSlice[ClothImage] `json:"images"`
	Specs        datatypes.JSONSlice[ClothSpec]  `json:"specs"`
	InStock      bool                            `gorm:"not null" json:"inStock"`
	Featured     bool                            `gorm:"not null;index" json:"featured"`
	Status       string                          `gorm:"not null;default:'active';index" json:"status"`
	Views        int                             `gorm:"not null;default:0" json:"views"`
	Rating       float64                         `gorm:"not null;default:0" json:"rating"`
	TotalReviews int                             `gorm:"not null;default:0" json:"totalReviews"`
	CreatedByID  *uuid.UUID                      `gorm:"type:uuid;index" json:"createdById,omitempty"`
	CreatedBy    *User                           `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	UpdatedByID  *uuid.UUID                      `gorm:"type:uuid" json:"updatedById,omitempty"`
	CreatedAt    time.Time                       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

// TableName specifies the table name for the Cloth model
func (Cloth) TableName() string {
	return "cloths"
}

func (c *Cloth) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ClothStatusActive
	}
	return nil
}

// BeforeSave keeps the derived columns in step with the editable ones
func (c *Cloth) BeforeSave(tx *gorm.DB) error {
	c.NameKey = NormalizeClothName(c.Name)
	c.InStock = c.HasStock()
	return nil
}

// HasStock reports whether any size has a positive quantity
func (c *Cloth) HasStock() bool {
	for _, s := range c.Sizes {
		if s.Quantity > 0 {
			return true
		}
	}
	return false
}

// SetSizeQuantity overwrites the quantity of an existing size.
// It returns false when the cloth has no such size.
func (c *Cloth) SetSizeQuantity(size string, quantity int) bool {
	for i := range c.Sizes {
		if c.Sizes[i].Size == size {
			c.Sizes[i].Quantity = quantity
			c.InStock = c.HasStock()
			return true
		}
	}
	return false
}

// ImagePublicIDs returns the media keys of every image with one
func (c *Cloth) ImagePublicIDs() []string {
	ids := make([]string, 0, len(c.Images))
	for _, img := range c.Images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	return ids
}

// NormalizeClothName is the case-insensitive identity of a cloth name
func NormalizeClothName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
