package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoList is the shared list for a companion pair. There is exactly one
// list per unordered pair, created lazily on first access; UserAID < UserBID.
type TodoList struct {
	ID        string     `gorm:"primaryKey;type:text" json:"id"`
	UserAID   string     `gorm:"uniqueIndex:idx_todo_pair" json:"userAId"`
	UserBID   string     `gorm:"uniqueIndex:idx_todo_pair" json:"userBId"`
	Items     []TodoItem `gorm:"foreignKey:ListID" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (tl *TodoList) BeforeCreate(tx *gorm.DB) (err error) {
	if tl.ID == "" {
		tl.ID = uuid.New().String()
	}
	return
}

type TodoItem struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ListID    string    `gorm:"index" json:"listId"`
	Text      string    `gorm:"type:text" json:"text"`
	Done      bool      `gorm:"default:false" json:"done"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ti *TodoItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ti.ID == "" {
		ti.ID = uuid.New().String()
	}
	return
}
