package types

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
)

func TestRecipeInputFromJSON(t *testing.T) {
	body := `{
		"title": "Pancakes",
		"ingredients": ["2 eggs", "1 cup flour"],
		"instructions": "[\"mix\",\"fry\"]",
		"prepTime": 12.5,
		"isPublic": false,
		"cuisine": null
	}`
	var in RecipeInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.Equal(t, Value("Pancakes"), in.Title)
	assert.False(t, in.Cuisine.Set)
	assert.False(t, in.Tags.IsSet())

	ingredients, err := in.Ingredients.Decode("ingredients")
	require.NoError(t, err)
	assert.Equal(t, []string{"2 eggs", "1 cup flour"}, ingredients)

	instructions, err := in.Instructions.Decode("instructions")
	require.NoError(t, err)
	assert.Equal(t, []string{"mix", "fry"}, instructions)

	prepTime, err := in.PrepTime.Float()
	require.NoError(t, err)
	assert.Equal(t, 12.5, prepTime)

	isPublic, err := in.IsPublic.Bool()
	require.NoError(t, err)
	assert.False(t, isPublic)
}

func TestStringListDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"malformed serialized": `{"tags": "[\"a\","}`,
		"serialized object":    `{"tags": "{\"a\":1}"}`,
		"non-string items":     `{"tags": [1, 2]}`,
		"object":               `{"tags": {"a": "b"}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			var in RecipeInput
			require.NoError(t, json.Unmarshal([]byte(body), &in))
			_, err := in.Tags.Decode("tags")
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
			assert.Equal(t, "Invalid format for tags", apperrors.Message(err))
		})
	}
}

func TestStringListEmptySerialized(t *testing.T) {
	items, err := SerializedList("  ").Decode("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{}, items)

	items, err = StringList{}.Decode("tags")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestScalarRejectsCompositeJSON(t *testing.T) {
	var in RecipeInput
	assert.Error(t, json.Unmarshal([]byte(`{"title": ["a"]}`), &in))
}

func TestRecipeInputFromForm(t *testing.T) {
	values := url.Values{}
	values.Set("title", "Pancakes")
	values.Set("ingredients", `["eggs","milk"]`)
	values.Add("instructions", "mix")
	values.Add("instructions", "fry")
	values.Add("tags[]", "sweet")

	in := RecipeInputFromForm(values)
	assert.Equal(t, "Pancakes", in.Title.Text)
	assert.False(t, in.Category.Set)

	ingredients, err := in.Ingredients.Decode("ingredients")
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk"}, ingredients)

	instructions, err := in.Instructions.Decode("instructions")
	require.NoError(t, err)
	assert.Equal(t, []string{"mix", "fry"}, instructions)

	tags, err := in.Tags.Decode("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"sweet"}, tags)
}

func TestUserInputFromForm(t *testing.T) {
	values := url.Values{}
	values.Set("name", "Ann")
	values.Set("about", "")

	in := UserInputFromForm(values)
	assert.Equal(t, Value("Ann"), in.Name)
	assert.True(t, in.About.Set)
	assert.False(t, in.Email.Set)
}

func TestTokenClaimsIdentity(t *testing.T) {
	claims := &TokenClaims{UserID: "abc", Email: "a@example.com", Name: "Ann"}
	assert.Equal(t, Identity{UserID: "abc", Email: "a@example.com", Name: "Ann"}, claims.Identity())
}
