package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"type:char(24);primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Address      string    `gorm:"size:255;not null" json:"address"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Image        string    `gorm:"size:512" json:"image,omitempty"`
	About        string    `gorm:"type:text" json:"about,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
