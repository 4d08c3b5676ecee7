package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsletterSubscriber holds a marketing-page newsletter signup.
type NewsletterSubscriber struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ns *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) (err error) {
	if ns.ID == "" {
		ns.ID = uuid.New().String()
	}
	return
}

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (cm *ContactMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if cm.ID == "" {
		cm.ID = uuid.New().String()
	}
	return
}
