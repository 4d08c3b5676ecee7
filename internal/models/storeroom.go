package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Storeroom is the shared file space for a companion pair, one per
// unordered pair like TodoList; UserAID < UserBID.
type Storeroom struct {
	ID        string          `gorm:"primaryKey;type:text" json:"id"`
	UserAID   string          `gorm:"uniqueIndex:idx_storeroom_pair" json:"userAId"`
	UserBID   string          `gorm:"uniqueIndex:idx_storeroom_pair" json:"userBId"`
	Files     []StoreroomFile `gorm:"foreignKey:RoomID" json:"files"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (s *Storeroom) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

type StoreroomFile struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	RoomID     string    `gorm:"index" json:"roomId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (sf *StoreroomFile) BeforeCreate(tx *gorm.DB) (err error) {
	if sf.ID == "" {
		sf.ID = uuid.New().String()
	}
	return
}
