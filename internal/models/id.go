package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh 24-hex-character identifier
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id has the shape of an identifier issued by NewID
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
