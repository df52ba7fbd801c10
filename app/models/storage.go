package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage is a storage facility listed by a provider.
// Invariant: 0 <= Available <= Capacity.
type Storage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Provider    primitive.ObjectID `bson:"provider" json:"provider"`
	Location    string             `bson:"location" json:"location"`
	Capacity    float64            `bson:"capacity" json:"capacity"`
	Available   float64            `bson:"available" json:"available"`
	PricePerTon float64            `bson:"pricePerTon" json:"pricePerTon"`
	Features    []string           `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
