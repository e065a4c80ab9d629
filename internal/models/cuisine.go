package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Cuisine is a named tag. NameKey carries the case-folded name so the unique
// index enforces case-insensitive uniqueness on every dialect.
type Cuisine struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameKey   string    `gorm:"size:100;not null;uniqueIndex" json:"-"`
}

// CuisineKey normalizes a cuisine name for lookups
func CuisineKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	c.NameKey = CuisineKey(c.Name)
	return nil
}
