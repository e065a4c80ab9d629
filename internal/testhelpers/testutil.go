package testhelpers

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// TestPassword is the plain password of every user CreateTestUser makes
const TestPassword = "testpassword123"

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// NewTestAuthService returns an AuthService signing with TestJWTSecret
func NewTestAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(db, TestJWTSecret, time.Hour)
}

// CreateTestUser creates a user named name whose password is TestPassword
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s+%s@example.com", name, models.NewID()),
		Address:      "1 Test Street",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestUserAndToken creates a user and returns it with a valid token
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, auth *service.AuthService, name string) (*models.User, string) {
	t.Helper()
	user := CreateTestUser(t, db, name)
	token, err := auth.GenerateToken(&types.TokenClaims{UserID: user.ID, Email: user.Email, Name: user.Name})
	require.NoError(t, err)
	return user, token
}

// CreateTestCategory creates a category with a placeholder image
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, ImageURL: "/uploads/" + name + ".png"}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateTestRecipe creates a recipe owned by userID in categoryID
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID, categoryID, title string, public bool) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:       userID,
		CategoryID:   categoryID,
		Title:        title,
		Description:  "A test recipe",
		Ingredients:  models.StringArray{"ingredient1", "ingredient2"},
		Instructions: models.StringArray{"step1", "step2"},
		Tags:         models.StringArray{},
		PrepTime:     15,
		IsPublic:     public,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// MultipartBody encodes fields and, when filename is not empty, an image
// part holding data. It returns the body and its Content-Type.
func MultipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
		header.Set("Content-Type", "application/octet-stream")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// ImageFile returns an uploaded image part as the HTTP layer would see it
func ImageFile(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, nil, filename, data)
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(int64(len(data)) + 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}
