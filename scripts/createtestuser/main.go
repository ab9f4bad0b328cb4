package main

import (
	"lms/config"
	adminControllers "lms/controllers/admin"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

// Creates a fully provisioned test student: active entitlement and every
// module pre-unlocked, so reviewers can walk the whole course immediately.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	email := "test@medicaremastery.com"
	hashed, err := bcrypt.GenerateFromPassword([]byte("TestUser123!"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var user models.User
	result := database.Database.Db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		user = models.User{
			FullName: "Test Student",
			Email:    email,
			Password: string(hashed),
			Role:     "STUDENT",
		}
		if err := database.Database.Db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}
		log.Printf("Test user created: %s", email)
	} else {
		user.Password = string(hashed)
		user.IsBlocked = false
		database.Database.Db.Save(&user)
		log.Printf("Test user reset: %s", email)
	}

	entitlement := courseModels.Entitlement{
		UserID:          user.ID,
		HasActiveAccess: true,
		PaymentVerified: true,
	}
	err = database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_active_access", "payment_verified", "updated_at"}),
	}).Create(&entitlement).Error
	if err != nil {
		log.Fatalf("Failed to grant entitlement: %v", err)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("is_deleted = ?", false).Order("order_index asc").Find(&modules)
	for _, module := range modules {
		if err := adminControllers.UnlockModuleForUser(database.Database.Db, user.ID, module.ID); err != nil {
			log.Fatalf("Failed to unlock module %d: %v", module.ID, err)
		}
	}

	log.Printf("Unlocked %d modules for %s", len(modules), email)
}
