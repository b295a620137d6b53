package db

import (
	"errors"

	"cems/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Event{},
		&domain.Registration{},
		&domain.InterestProfile{},
	)
}

// SeedAdmin creates the default admin account if it does not exist,
// matching the bootstrap behavior of the original deployment.
func SeedAdmin(db *gorm.DB) error {
	var admin domain.User
	err := db.Where("email = ?", "admin@cems.com").First(&admin).Error
	if err == nil {
		return nil // Admin already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin = domain.User{
		Name:     "Admin User",
		Email:    "admin@cems.com",
		Password: string(hash),
		Role:     domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("email", admin.Email).Info("Default admin created")
	return nil
}
