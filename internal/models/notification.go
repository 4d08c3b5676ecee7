package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPrefs is a per-user singleton controlling which realtime
// notification events get emitted to that user.
type NotificationPrefs struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"uniqueIndex" json:"userId"`
	Messages  bool      `json:"messages"`
	Requests  bool      `json:"requests"`
	Posts     bool      `json:"posts"`
	Email     bool      `json:"email"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (np *NotificationPrefs) BeforeCreate(tx *gorm.DB) (err error) {
	if np.ID == "" {
		np.ID = uuid.New().String()
	}
	return
}
