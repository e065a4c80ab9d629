package service

import (
	"context"
	"mime/multipart"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const (
	userNotFound = "User not found"
	emailTaken   = "Email already exists"
)

// UserService handles user accounts
type UserService struct {
	db    *gorm.DB
	media *MediaService
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB, media *MediaService) *UserService {
	return &UserService{db: db, media: media}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperrors.Validation("Invalid email address")
	}
	return email, nil
}

// CreateUser signs up a new user. image is optional.
func (s *UserService) CreateUser(ctx context.Context, in types.UserInput, image *multipart.FileHeader) (*models.User, error) {
	name, address := in.Name.Trimmed(), in.Address.Trimmed()
	if name == "" || in.Email.Trimmed() == "" || address == "" || in.Password.Text == "" {
		return nil, apperrors.Validation("Name, email, address and password are required")
	}
	email, err := normalizeEmail(in.Email.Text)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password.Text)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Address:      address,
		PasswordHash: hash,
		About:        in.About.Trimmed(),
		Image:        in.Image.Trimmed(),
	}

	if image != nil {
		url, err := s.media.Ingest(ctx, image, s.media.GenericPolicy())
		if err != nil {
			return nil, err
		}
		user.Image = url
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if image != nil {
			s.media.Discard(ctx, user.Image)
		}
		return nil, apperrors.FromDB(err, userNotFound, emailTaken)
	}
	return user, nil
}

// ListUsers returns every user, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !models.IsValidID(id) {
		return nil, apperrors.NotFound(userNotFound)
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, userNotFound, "")
	}
	return &user, nil
}

// UpdateUser merges the set fields of in into the user
func (s *UserService) UpdateUser(ctx context.Context, id string, in types.UserInput, image *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	for column, field := range map[string]types.Scalar{"name": in.Name, "address": in.Address} {
		if !field.Set {
			continue
		}
		if field.Trimmed() == "" {
			return nil, apperrors.Validation(column + " cannot be empty")
		}
		updates[column] = field.Trimmed()
	}
	if in.Email.Set {
		email, err := normalizeEmail(in.Email.Text)
		if err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if in.About.Set {
		updates["about"] = in.About.Trimmed()
	}
	if in.Image.Set {
		updates["image"] = in.Image.Trimmed()
	}
	if in.Password.Set {
		if in.Password.Text == "" {
			return nil, apperrors.Validation("password cannot be empty")
		}
		hash, err := HashPassword(in.Password.Text)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		updates["password_hash"] = hash
	}
	if image != nil {
		url, err := s.media.Ingest(ctx, image, s.media.GenericPolicy())
		if err != nil {
			return nil, err
		}
		updates["image"] = url
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if image != nil {
				s.media.Discard(ctx, updates["image"].(string))
			}
			return nil, apperrors.FromDB(err, userNotFound, emailTaken)
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user. Authored recipes are left in place.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
