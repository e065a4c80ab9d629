package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
)

// Scalar captures a scalar request field as text regardless of whether the
// client sent it as a JSON string, number or boolean, or as a form value.
type Scalar struct {
	Text string
	Set  bool
}

// Value returns a set Scalar holding s
func Value(s string) Scalar {
	return Scalar{Text: s, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*s = Value(text)
		return nil
	}
	if len(b) > 0 && (b[0] == '[' || b[0] == '{') {
		return fmt.Errorf("expected a scalar value")
	}
	*s = Value(string(b))
	return nil
}

// Trimmed returns the text without surrounding whitespace
func (s Scalar) Trimmed() string {
	return strings.TrimSpace(s.Text)
}

// Float parses the value as a number
func (s Scalar) Float() (float64, error) {
	return strconv.ParseFloat(s.Trimmed(), 64)
}

// Bool parses the value as a boolean
func (s Scalar) Bool() (bool, error) {
	return strconv.ParseBool(s.Trimmed())
}

// StringList is a list field that arrives either already as a sequence of
// strings or as a string carrying serialized JSON. Decode is the single
// validation step for both forms.
type StringList struct {
	raw        json.RawMessage
	items      []string
	serialized string
	form       listForm
}

type listForm int

const (
	listUnset listForm = iota
	listRaw
	listSerialized
)

// RawList builds a list from already separated items
func RawList(items ...string) StringList {
	return StringList{items: items, form: listRaw}
}

// SerializedList builds a list from a serialized JSON string
func SerializedList(s string) StringList {
	return StringList{serialized: s, form: listSerialized}
}

// IsSet reports whether the client sent the field at all
func (l StringList) IsSet() bool {
	return l.form != listUnset
}

// UnmarshalJSON implements json.Unmarshaler. Validation of array contents is
// deferred to Decode so malformed input surfaces as a field error.
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = StringList{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = SerializedList(s)
	default:
		*l = StringList{raw: append(json.RawMessage(nil), b...), form: listRaw}
	}
	return nil
}

// Decode returns the ordered items, or a validation error naming field
func (l StringList) Decode(field string) ([]string, error) {
	invalid := apperrors.Validation(fmt.Sprintf("Invalid format for %s", field))

	switch l.form {
	case listUnset:
		return nil, nil
	case listRaw:
		if l.raw == nil {
			return l.items, nil
		}
		var items []string
		if err := json.Unmarshal(l.raw, &items); err != nil {
			return nil, invalid
		}
		return items, nil
	default:
		s := strings.TrimSpace(l.serialized)
		if s == "" {
			return []string{}, nil
		}
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, invalid
		}
		return items, nil
	}
}

// listFromForm reads a list field from form values. Repeated keys or the
// key[] convention are raw items, a single value is serialized JSON.
func listFromForm(values map[string][]string, key string) StringList {
	if items, ok := values[key+"[]"]; ok {
		return RawList(items...)
	}
	items, ok := values[key]
	switch {
	case !ok:
		return StringList{}
	case len(items) == 1:
		return SerializedList(items[0])
	default:
		return RawList(items...)
	}
}

func scalarFromForm(values map[string][]string, key string) Scalar {
	if items, ok := values[key]; ok && len(items) > 0 {
		return Value(items[0])
	}
	return Scalar{}
}

// RecipeInput carries the client supplied fields of a recipe create or update
type RecipeInput struct {
	User         Scalar     `json:"user"`
	Category     Scalar     `json:"category"`
	Cuisine      Scalar     `json:"cuisine"`
	Title        Scalar     `json:"title"`
	Description  Scalar     `json:"description"`
	Ingredients  StringList `json:"ingredients"`
	Instructions StringList `json:"instructions"`
	Tags         StringList `json:"tags"`
	PrepTime     Scalar     `json:"prepTime"`
	ImageURL     Scalar     `json:"imageUrl"`
	IsPublic     Scalar     `json:"isPublic"`
}

// RecipeInputFromForm reads a multipart or urlencoded recipe form
func RecipeInputFromForm(values map[string][]string) RecipeInput {
	return RecipeInput{
		User:         scalarFromForm(values, "user"),
		Category:     scalarFromForm(values, "category"),
		Cuisine:      scalarFromForm(values, "cuisine"),
		Title:        scalarFromForm(values, "title"),
		Description:  scalarFromForm(values, "description"),
		Ingredients:  listFromForm(values, "ingredients"),
		Instructions: listFromForm(values, "instructions"),
		Tags:         listFromForm(values, "tags"),
		PrepTime:     scalarFromForm(values, "prepTime"),
		ImageURL:     scalarFromForm(values, "imageUrl"),
		IsPublic:     scalarFromForm(values, "isPublic"),
	}
}

// UserInput carries the client supplied fields of a user create or update
type UserInput struct {
	Name     Scalar `json:"name"`
	Email    Scalar `json:"email"`
	Address  Scalar `json:"address"`
	Password Scalar `json:"password"`
	Image    Scalar `json:"image"`
	About    Scalar `json:"about"`
}

// UserInputFromForm reads a multipart or urlencoded user form
func UserInputFromForm(values map[string][]string) UserInput {
	return UserInput{
		Name:     scalarFromForm(values, "name"),
		Email:    scalarFromForm(values, "email"),
		Address:  scalarFromForm(values, "address"),
		Password: scalarFromForm(values, "password"),
		Image:    scalarFromForm(values, "image"),
		About:    scalarFromForm(values, "about"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type CheckOwnerRequest struct {
	RecipeID string `json:"recipeId" form:"recipeId"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

type CuisineRequest struct {
	Name string `json:"name" form:"name"`
}

// ListQuery holds pagination and ordering for recipe listings
type ListQuery struct {
	Page  int
	Limit int
	Sort  string
}

// RecipePage is one page of a recipe listing
type RecipePage struct {
	Recipes    []models.Recipe `json:"recipes"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}
