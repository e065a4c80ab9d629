package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipe references its author, category and cuisine by id. The pointer
// fields hold the joined view and are only populated by preloading.
type Recipe struct {
	ID           string      `gorm:"type:char(24);primaryKey" json:"id"`
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	UserID       string      `gorm:"type:char(24);not null;index" json:"userId"`
	User         *User       `gorm:"foreignKey:UserID" json:"user"`
	CategoryID   string      `gorm:"type:char(24);not null;index" json:"categoryId"`
	Category     *Category   `gorm:"foreignKey:CategoryID" json:"category"`
	CuisineID    *string     `gorm:"type:char(24);index" json:"cuisineId"`
	Cuisine      *Cuisine    `gorm:"foreignKey:CuisineID" json:"cuisine"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description"`
	Ingredients  StringArray `gorm:"type:text;not null" json:"ingredients"`
	Instructions StringArray `gorm:"type:text;not null" json:"instructions"`
	Tags         StringArray `gorm:"type:text;not null" json:"tags"`
	PrepTime     float64     `gorm:"not null" json:"prepTime"`
	ImageURL     string      `gorm:"size:512" json:"imageUrl"`
	IsPublic     bool        `gorm:"not null;index" json:"isPublic"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

// OwnedBy reports whether userID authored the recipe
func (r *Recipe) OwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// VisibleTo reports whether userID may see the recipe
func (r *Recipe) VisibleTo(userID string) bool {
	return r.IsPublic || r.OwnedBy(userID)
}
