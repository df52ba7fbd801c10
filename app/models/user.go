// Package models holds the marketplace domain records persisted in MongoDB.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserType classifies a marketplace account.
type UserType string

const (
	UserTypeFarmer      UserType = "farmer"
	UserTypeBuyer       UserType = "buyer"
	UserTypeTransporter UserType = "transporter"
	UserTypeStorage     UserType = "storage"
	UserTypeCooperative UserType = "cooperative"
)

// Valid reports whether t is one of the known account types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeFarmer, UserTypeBuyer, UserTypeTransporter, UserTypeStorage, UserTypeCooperative:
		return true
	}
	return false
}

// User is a marketplace account. The password hash is never serialised
// in API responses.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	UserType  UserType           `bson:"userType" json:"userType"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
