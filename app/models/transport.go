package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransportAvailable is the only availability value a vehicle can be booked
// in. Booking replaces it with a human-readable "Booked until <date>" marker,
// so the field is free text rather than a closed enum.
const TransportAvailable = "Available"

// Transport is a vehicle listed by a transporter.
type Transport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Provider     primitive.ObjectID `bson:"provider" json:"provider"`
	Location     string             `bson:"location" json:"location"`
	VehicleType  string             `bson:"vehicleType" json:"vehicleType"`
	Capacity     float64            `bson:"capacity" json:"capacity"`
	PricePerKm   float64            `bson:"pricePerKm" json:"pricePerKm"`
	Availability string             `bson:"availability" json:"availability"`
	Features     []string           `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
