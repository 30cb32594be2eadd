package services

import (
	"errors"
	"fmt"
	"strings"

	"villa-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService wraps *gorm.DB for everything touching the Users table.
// Passwords are bcrypt-hashed on the way in and never leave this layer in
// clear or hashed form (the model hides them from JSON).
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Authenticate checks a username/password pair against the stored hash.
// Unknown user and wrong password are indistinguishable to the caller:
// both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("id").Find(&users).Error
	return users, err
}

func (s *UserService) GetByID(id uint) (models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	}
	return user, err
}

func (s *UserService) Create(username, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update changes profile fields only. The password has its own path.
func (s *UserService) Update(id uint, username, role string) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return user, err
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(username); v != "" {
		updates["username"] = v
	}
	if role != "" {
		updates["role"] = role
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return user, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.DB.Model(&user).Update("password", string(hash)).Error
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Delete(&models.User{}, id).Error
}
