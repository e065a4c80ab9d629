package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const invalidCredentials = "Invalid email or password"

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipeshare-dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies the credentials and issues a signed token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, apperrors.Validation("Email and password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, apperrors.Auth(invalidCredentials)
	}
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, apperrors.Auth(invalidCredentials)
	}

	token, err := s.GenerateToken(&types.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}

	return token, &user, nil
}

// GenerateToken signs claims, filling in the registered time claims
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks signature, algorithm and expiry
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.Auth("Invalid or expired token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperrors.Auth("Invalid token claims")
	}

	return claims, nil
}

// VerifyRecipeOwner re-proves ownership of a recipe with the author's name
// and password. It answers yes or no and never issues a token.
func (s *AuthService) VerifyRecipeOwner(ctx context.Context, recipeID, name, password string) (bool, error) {
	if recipeID == "" || name == "" || password == "" {
		return false, apperrors.Validation("recipeId, name and password are required")
	}
	if !models.IsValidID(recipeID) {
		return false, apperrors.NotFound("Recipe not found")
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return false, apperrors.FromDB(err, "Recipe not found", "")
	}

	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", recipe.UserID).Error; err != nil {
		return false, apperrors.FromDB(err, "Recipe owner not found", "")
	}

	if owner.Name != name {
		return false, nil
	}
	return CheckPassword(owner.PasswordHash, password), nil
}
