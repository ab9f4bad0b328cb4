package main

import (
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Creates (or resets) the admin account. Email and password come from
// ADMIN_EMAIL and ADMIN_PASSWORD, with dev-friendly defaults.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@medicaremastery.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var admin models.User
	result := database.Database.Db.Where("email = ?", email).First(&admin)
	if result.Error != nil {
		admin = models.User{
			FullName: "Admin",
			Email:    email,
			Password: string(hashed),
			Role:     "ADMIN",
		}
		if err := database.Database.Db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Admin account created: %s", email)
		return
	}

	admin.Password = string(hashed)
	admin.Role = "ADMIN"
	admin.IsBlocked = false
	if err := database.Database.Db.Save(&admin).Error; err != nil {
		log.Fatalf("Failed to update admin: %v", err)
	}
	log.Printf("Admin account updated: %s", email)
}
