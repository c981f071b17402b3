package auth

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUserRoles creates the fixed role rows when missing
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: RoleAttendee, Description: "Regular user who browses and attends events"},
		{RoleName: RoleHost, Description: "Event organizer, publishes events after verification"},
		{RoleName: RoleAdmin, Description: "Platform administrator"},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}

	return nil
}

// SeedAdminUser creates the bootstrap admin account from env credentials
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var adminRole UserRole
	if err := db.Where("role_name = ?", RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		Name:               "Platform Admin",
		Email:              email,
		PasswordHash:       string(hash),
		RoleID:             adminRole.ID,
		Language:           "en",
		VerificationStatus: VerificationApproved,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user: %s", email)
	return nil
}
