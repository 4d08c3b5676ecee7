package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanionRequestStatus string

const (
	CompanionRequestPending  CompanionRequestStatus = "PENDING"
	CompanionRequestAccepted CompanionRequestStatus = "ACCEPTED"
	CompanionRequestRejected CompanionRequestStatus = "REJECTED"
)

// CompanionRequest is a pending friend request between two users.
type CompanionRequest struct {
	ID         string                 `gorm:"primaryKey;type:text" json:"id"`
	SenderID   string                 `gorm:"index" json:"senderId"`
	Sender     User                   `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID string                 `gorm:"index" json:"receiverId"`
	Receiver   User                   `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Status     CompanionRequestStatus `gorm:"type:text;default:'PENDING'" json:"status"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

func (cr *CompanionRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if cr.ID == "" {
		cr.ID = uuid.New().String()
	}
	return
}

// Companion is an accepted pair. Stored once per pair with UserAID < UserBID
// so the unordered pair maps to exactly one row.
type Companion struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserAID   string    `gorm:"uniqueIndex:idx_companion_pair" json:"userAId"`
	UserA     User      `gorm:"foreignKey:UserAID" json:"userA,omitempty"`
	UserBID   string    `gorm:"uniqueIndex:idx_companion_pair" json:"userBId"`
	UserB     User      `gorm:"foreignKey:UserBID" json:"userB,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (cp *Companion) BeforeCreate(tx *gorm.DB) (err error) {
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	return
}

// OrderPair normalizes an unordered user-id pair to (low, high).
func OrderPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
