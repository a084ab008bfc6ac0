package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuoteStatusPending  = "pending"
	QuoteStatusReplied  = "replied"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

var QuoteStatuses = []string{QuoteStatusPending, QuoteStatusReplied, QuoteStatusApproved, QuoteStatusRejected, QuoteStatusExpired}

// Quote is a public t-shirt/design request handled by staff
type Quote struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"not null;index" json:"email"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company"`
	Service      string       `json:"service"`
	DesignType   string       `json:"designType"`
	Message      string       `gorm:"type:text" json:"message"`
	Details      string       `gorm:"type:text" json:"details"`
	Status       string       `gorm:"not null;default:'pending';index" json:"status"`
	ReplyMessage string       `gorm:"type:text" json:"replyMessage,omitempty"`
	Replies      []QuoteReply `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"replies"`
	AssignedToID *uuid.UUID   `gorm:"type:uuid;index" json:"assignedToId,omitempty"`
	AssignedTo   *User        `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuoteStatusPending
	}
	return nil
}

// QuoteReply is one staff message in a quote conversation
type QuoteReply struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"quoteId"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender"`
	SenderName string    `gorm:"not null" json:"senderName"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for the QuoteReply model
func (QuoteReply) TableName() string {
	return "quote_replies"
}

func (r *QuoteReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
