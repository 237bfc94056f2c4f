// Package users manages back-office accounts for the order dashboard.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Seed creates the account if the username is free. An existing account is
// left alone so a changed password survives restarts.
func (s *Service) Seed(ctx context.Context, username, password string, role models.UserRole) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("seed user: username and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate checks credentials. Unknown users and wrong passwords both
// yield apperr.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)
	}
	return user, nil
}
