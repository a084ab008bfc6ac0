package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	VolunteerStatusPending  = "pending"
	VolunteerStatusApproved = "approved"
	VolunteerStatusRejected = "rejected"
)

var (
	VolunteerStatuses    = []string{VolunteerStatusPending, VolunteerStatusApproved, VolunteerStatusRejected}
	VolunteerPrograms    = []string{"MBA 1", "MBA 2", "Other"}
	VolunteerExperiences = []string{"No Experience", "Some Experience", "Extensive Experience"}
	VolunteerActivities  = []string{
		"Football Competition (MBA 1 vs MBA 2)",
		"Track & Field Events (100m)",
		"Track & Field Events (200m)",
		"Track & Field Events (Sack Race)",
		"Chess & Draught Games",
		"Table Tennis",
		"Table Soccer",
		"Lawn Tennis",
		"Organizing/Setup",
		"Registration",
		"Medical Support",
		"Photography",
	}
)

// Volunteer is an application to help at the games; one per email address
type Volunteer struct {
	ID                   uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName            string                      `gorm:"not null" json:"firstName"`
	LastName             string                      `gorm:"not null" json:"lastName"`
	Email                string                      `gorm:"uniqueIndex;not null" json:"email"`
	Phone                string                      `gorm:"not null" json:"phone"`
	Program              string                      `gorm:"not null" json:"program"`
	InterestedActivities datatypes.JSONSlice[string] `json:"interestedActivities"`
	Experience           string                      `gorm:"not null" json:"experience"`
	AdditionalInfo       string                      `gorm:"type:text" json:"additionalInfo"`
	Status               string                      `gorm:"not null;default:'pending';index" json:"status"`
	AdminNotes           []VolunteerNote             `gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE" json:"adminNotes"`
	SubmittedAt          time.Time                   `gorm:"not null;index" json:"submittedAt"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for the Volunteer model
func (Volunteer) TableName() string {
	return "volunteers"
}

func (v *Volunteer) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.SubmittedAt.IsZero() {
		v.SubmittedAt = time.Now()
	}
	if v.Status == "" {
		v.Status = VolunteerStatusPending
	}
	v.Email = NormalizeEmail(v.Email)
	return nil
}

// FullName is "First Last"
func (v Volunteer) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// VolunteerNote is an admin remark on an application; CreatedBy is nil for anonymous notes
type VolunteerNote struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VolunteerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"volunteerId"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"createdById,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TableName specifies the table name for the VolunteerNote model
func (VolunteerNote) TableName() string {
	return "volunteer_notes"
}

func (n *VolunteerNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NormalizeEmail lowercases and trims an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
