package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is a feed entry: text and/or media uploaded to object storage.
type Post struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	AuthorID  string         `gorm:"index" json:"authorId"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Text      string         `gorm:"type:text" json:"text"`
	Media     string         `json:"media,omitempty"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Filled by queries, not columns
	LikeCount    int64 `gorm:"-" json:"likeCount"`
	CommentCount int64 `gorm:"-" json:"commentCount"`
	LikedByMe    bool  `gorm:"-" json:"likedByMe"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// PostLike records one like per user per post.
type PostLike struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	PostID    string    `gorm:"uniqueIndex:idx_post_like" json:"postId"`
	UserID    string    `gorm:"uniqueIndex:idx_post_like" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (pl *PostLike) BeforeCreate(tx *gorm.DB) (err error) {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	return
}

// PostComment is a comment on a post.
type PostComment struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	PostID    string         `gorm:"index" json:"postId"`
	Post      Post           `gorm:"foreignKey:PostID" json:"-"`
	UserID    string         `json:"userId"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Text      string         `gorm:"type:text" json:"text"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (pc *PostComment) BeforeCreate(tx *gorm.DB) (err error) {
	if pc.ID == "" {
		pc.ID = uuid.New().String()
	}
	return
}
