package seeds

import (
	"time"

	"github.com/lib/pq"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/crypto"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run populates a development database with a pair of companions, a short
// conversation, and some feed content. Idempotent on the seeded usernames.
func Run(db *gorm.DB, messageSecret string) error {
	var existing int64
	db.Model(&models.User{}).Where("username IN ?", []string{"demo_aarav", "demo_mira"}).Count(&existing)
	if existing > 0 {
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	aarav := models.User{
		Name:      "Aarav Demo",
		Email:     "aarav@example.com",
		Username:  "demo_aarav",
		Bio:       "Seeded demo account",
		Interests: pq.StringArray{"music", "travel"},
		Password:  string(password),
	}
	mira := models.User{
		Name:      "Mira Demo",
		Email:     "mira@example.com",
		Username:  "demo_mira",
		Bio:       "Seeded demo account",
		Interests: pq.StringArray{"books"},
		Password:  string(password),
	}
	if err := db.Create(&aarav).Error; err != nil {
		return err
	}
	if err := db.Create(&mira).Error; err != nil {
		return err
	}

	lo, hi := models.OrderPair(aarav.ID, mira.ID)
	if err := db.Create(&models.Companion{UserAID: lo, UserBID: hi}).Error; err != nil {
		return err
	}

	// Messages are stored encrypted, same as the send path
	codec := crypto.NewCodec(messageSecret)
	conversation := []struct {
		from, to, text string
	}{
		{aarav.ID, mira.ID, "hey, did you see the new storeroom feature?"},
		{mira.ID, aarav.ID, "yes! dropped the trip photos in there"},
		{aarav.ID, mira.ID, "nice, adding flights to our todo list"},
	}
	base := time.Now().Add(-1 * time.Hour)
	for i, m := range conversation {
		stored, err := codec.Encrypt(m.text)
		if err != nil {
			return err
		}
		msg := models.Message{
			SenderID:   m.from,
			ReceiverID: m.to,
			Text:       stored,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&msg).Error; err != nil {
			return err
		}
	}

	post := models.Post{
		AuthorID: mira.ID,
		Text:     "First post on Yemmy Chats!",
		Tags:     pq.StringArray{"hello"},
	}
	if err := db.Create(&post).Error; err != nil {
		return err
	}
	if err := db.Create(&models.PostLike{PostID: post.ID, UserID: aarav.ID}).Error; err != nil {
		return err
	}

	list := models.TodoList{UserAID: lo, UserBID: hi}
	if err := db.Create(&list).Error; err != nil {
		return err
	}
	return db.Create(&models.TodoItem{
		ListID:  list.ID,
		Text:    "book flights",
		AddedBy: aarav.ID,
	}).Error
}
