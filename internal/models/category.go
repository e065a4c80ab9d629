package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a curated grouping of recipes. Names are unique.
type Category struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
