package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether the transition s -> to is allowed.
// pending may become confirmed or cancelled; confirmed may become
// completed or cancelled; terminal states allow nothing.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

// StorageBooking reserves quantity tons in a storage facility for a
// date range. TotalPrice is fixed at creation time.
type StorageBooking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Storage    primitive.ObjectID `bson:"storage" json:"storage"`
	Farmer     primitive.ObjectID `bson:"farmer" json:"farmer"`
	Crop       primitive.ObjectID `bson:"crop,omitempty" json:"crop,omitempty"`
	Quantity   float64            `bson:"quantity" json:"quantity"`
	StartDate  time.Time          `bson:"startDate" json:"startDate"`
	EndDate    time.Time          `bson:"endDate" json:"endDate"`
	Status     BookingStatus      `bson:"status" json:"status"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TransportBooking reserves a vehicle for a single haul.
type TransportBooking struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Transport        primitive.ObjectID `bson:"transport" json:"transport"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	Crop             primitive.ObjectID `bson:"crop,omitempty" json:"crop,omitempty"`
	PickupLocation   string             `bson:"pickupLocation" json:"pickupLocation"`
	DeliveryLocation string             `bson:"deliveryLocation" json:"deliveryLocation"`
	Distance         float64            `bson:"distance" json:"distance"`
	Quantity         float64            `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Date             time.Time          `bson:"date" json:"date"`
	Status           BookingStatus      `bson:"status" json:"status"`
	TotalPrice       float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
