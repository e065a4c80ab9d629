package api

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// multipartMemory is how much of a multipart body is held in memory before
// file parts spill to disk.
const multipartMemory = 8 << 20

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// HealthCheck returns the health status of the API
func HealthCheck(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Printf("Health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "message": "Database unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Recipe API is running"})
	}
}

// respondError writes err as {"message": ...}. Internal errors are logged
// and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, middleware.ErrorResponse{Message: apperrors.Message(err)})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func isForm(c *gin.Context) bool {
	contentType := c.ContentType()
	return contentType == gin.MIMEMultipartPOSTForm || contentType == gin.MIMEPOSTForm
}

// readForm parses a multipart or urlencoded body and returns its values and
// the optional "image" file part.
func readForm(c *gin.Context) (map[string][]string, *multipart.FileHeader, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			if tooLarge(err) {
				return nil, nil, apperrors.UnsupportedMedia("Request body too large")
			}
			return nil, nil, apperrors.Validation("Invalid multipart form")
		}
		form := c.Request.MultipartForm
		var image *multipart.FileHeader
		if files := form.File["image"]; len(files) > 0 {
			image = files[0]
		}
		return form.Value, image, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		if tooLarge(err) {
			return nil, nil, apperrors.UnsupportedMedia("Request body too large")
		}
		return nil, nil, apperrors.Validation("Invalid form body")
	}
	return c.Request.PostForm, nil, nil
}

// tooLarge reports whether err came from reading past the BodyLimit cap.
// Some parsers flatten the error to its text.
func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// bindJSON decodes a JSON body into dest
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		log.Printf("Validation error: %v", err)
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// bind fills a flat request struct from JSON or form data
func bind(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBind(dest); err != nil {
		log.Printf("Validation error: %v", err)
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

func bindRecipeInput(c *gin.Context) (types.RecipeInput, *multipart.FileHeader, error) {
	if isForm(c) {
		values, image, err := readForm(c)
		if err != nil {
			return types.RecipeInput{}, nil, err
		}
		return types.RecipeInputFromForm(values), image, nil
	}
	var in types.RecipeInput
	if err := bindJSON(c, &in); err != nil {
		return types.RecipeInput{}, nil, err
	}
	return in, nil, nil
}

func bindUserInput(c *gin.Context) (types.UserInput, *multipart.FileHeader, error) {
	if isForm(c) {
		values, image, err := readForm(c)
		if err != nil {
			return types.UserInput{}, nil, err
		}
		return types.UserInputFromForm(values), image, nil
	}
	var in types.UserInput
	if err := bindJSON(c, &in); err != nil {
		return types.UserInput{}, nil, err
	}
	return in, nil, nil
}

func positiveInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.Validation(key + " must be a positive integer")
	}
	return n, nil
}

// listQuery reads page, limit and sort from the query string
func listQuery(c *gin.Context) (types.ListQuery, error) {
	page, err := positiveInt(c, "page")
	if err != nil {
		return types.ListQuery{}, err
	}
	limit, err := positiveInt(c, "limit")
	if err != nil {
		return types.ListQuery{}, err
	}
	return types.ListQuery{Page: page, Limit: limit, Sort: c.Query("sort")}, nil
}

// requireSelf rejects requests acting on an account other than the caller's
func requireSelf(c *gin.Context, userID string) error {
	if middleware.CallerID(c) != userID {
		return apperrors.Forbidden("You can only modify your own account")
	}
	return nil
}

var errNoIdentity = errors.New("authenticated route reached without identity")

// callerID returns the caller of a RequireAuth route
func callerID(c *gin.Context) (string, error) {
	id := middleware.CallerID(c)
	if id == "" {
		return "", apperrors.Internal(errNoIdentity)
	}
	return id, nil
}
