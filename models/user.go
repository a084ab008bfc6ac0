package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin       = "admin"
	RoleStaffMember = "staff-member"
	RoleUser        = "user"

	AccountStatusActive  = "active"
	AccountStatusDeleted = "deleted"
)

// User represents an admin or staff account (the site's own user records)
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Auth0ID       *string   `gorm:"uniqueIndex" json:"auth0Id,omitempty"` // identity provider subject, when linked
	FirstName     string    `gorm:"not null" json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Role          string    `gorm:"not null;default:'user';index" json:"role"` // admin, staff-member or user
	IsActive      bool      `gorm:"not null" json:"isActive"`
	AccountStatus string    `gorm:"not null;default:'active'" json:"accountStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// IsStaff reports whether the user may act on quotes and volunteers
func (u User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaffMember
}

// ReceivesNotifications reports whether staff alert emails should reach this user
func (u User) ReceivesNotifications() bool {
	return u.IsStaff() && u.IsActive && u.AccountStatus != AccountStatusDeleted
}

// DisplayName is "First Last", trimmed when either part is missing
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
