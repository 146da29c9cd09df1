package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles an account can carry. Registration always produces RoleUser;
// admins are promoted directly in the database.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GeoLocation is a point reported by the client device.
type GeoLocation struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// User describes a registered field worker or administrator account.
// PasswordHash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Location     GeoLocation        `bson:"location" json:"location"`
	Institution  string             `bson:"institution" json:"institution"`
	Designation  *string            `bson:"designation,omitempty" json:"designation,omitempty"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	Role         string             `bson:"role" json:"role"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	IsBlocked    bool               `bson:"isBlocked,omitempty" json:"isBlocked"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
