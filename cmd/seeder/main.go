package main

import (
	"log"

	"github.com/shivamgupta951/YemmyChats-sub000/internal/config"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.CompanionRequest{},
		&models.Companion{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.TodoList{},
		&models.TodoItem{},
		&models.Storeroom{},
		&models.StoreroomFile{},
		&models.NotificationPrefs{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := seeds.Run(database.DB, config.AppConfig.MessageSecret); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("Seed data ready (demo_aarav / demo_mira, password: Password1)")
}
