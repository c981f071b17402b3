package auth

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	Update(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	EmailExists(email string) (bool, error)
	FindRoleByName(name string) (*UserRole, error)
	UpsertHostProfile(profile *HostProfile) error
	GetUserIDsByRole(roleName string) ([]uint, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Preload("HostProfile").Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").Preload("HostProfile").First(&user, userID).Error
	return user, err
}

func (r *repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpsertHostProfile creates or replaces the user's business details
func (r *repository) UpsertHostProfile(profile *HostProfile) error {
	var existing HostProfile
	err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&HostProfile{}).Where("user_id = ?", profile.UserID).Updates(profile).Error
}

func (r *repository) GetUserIDsByRole(roleName string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&User{}).
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("user_roles.role_name = ?", roleName).
		Pluck("users.id", &ids).Error
	return ids, err
}
