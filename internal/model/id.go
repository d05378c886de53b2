package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// IDLength is the length of a record identifier (hex encoded ObjectID).
const IDLength = 24

// NewID returns a fresh 24-character hex identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether s is a well formed record identifier.
func IsValidID(s string) bool {
	return len(s) == IDLength && primitive.IsValidObjectID(s)
}
