package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/event"
)

// Booking lifecycle event names fired through pkg/event. The server wires
// listeners that push them to the WebSocket feed and the mail queue.
const (
	EventStorageBookingCreated   = "booking.storage.created"
	EventStorageBookingStatus    = "booking.storage.status"
	EventTransportBookingCreated = "booking.transport.created"
	EventTransportBookingStatus  = "booking.transport.status"
)

// StorageStore is the facility persistence surface the booking service needs.
type StorageStore interface {
	FindByID(ctx context.Context, id string) (models.Storage, error)
	IncAvailable(ctx context.Context, id primitive.ObjectID, delta float64) error
}

// TransportStore is the vehicle persistence surface the booking service needs.
type TransportStore interface {
	FindByID(ctx context.Context, id string) (models.Transport, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, availability string) error
}

// StorageBookingStore persists storage bookings.
type StorageBookingStore interface {
	Create(ctx context.Context, b *models.StorageBooking) error
	Find(ctx context.Context, filter repositories.StorageBookingFilter) ([]models.StorageBooking, error)
	FindByID(ctx context.Context, id string) (models.StorageBooking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
}

// TransportBookingStore persists transport bookings.
type TransportBookingStore interface {
	Create(ctx context.Context, b *models.TransportBooking) error
	Find(ctx context.Context, filter repositories.TransportBookingFilter) ([]models.TransportBooking, error)
	FindByID(ctx context.Context, id string) (models.TransportBooking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
}

// BookingService implements the capacity ledger and the booking lifecycle.
type BookingService struct {
	storage           StorageStore
	transport         TransportStore
	storageBookings   StorageBookingStore
	transportBookings TransportBookingStore
}

func NewBookingService(
	storage StorageStore,
	transport TransportStore,
	storageBookings StorageBookingStore,
	transportBookings TransportBookingStore,
) *BookingService {
	return &BookingService{
		storage:           storage,
		transport:         transport,
		storageBookings:   storageBookings,
		transportBookings: transportBookings,
	}
}

// CreateStorageBookingInput is the validated storage booking request.
type CreateStorageBookingInput struct {
	StorageID string
	FarmerID  primitive.ObjectID
	CropID    primitive.ObjectID
	Quantity  float64
	StartDate time.Time
	EndDate   time.Time
}

// CreateStorageBooking validates capacity, computes the prorated price,
// persists the booking, and consumes capacity from the facility.
//
// The capacity check and the decrement are two separate writes with no
// transaction between them; two concurrent requests can both pass the
// check before either decrement lands.
func (s *BookingService) CreateStorageBooking(ctx context.Context, in CreateStorageBookingInput) (models.StorageBooking, error) {
	facility, err := s.storage.FindByID(ctx, in.StorageID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.StorageBooking{}, ErrNotFound
		}
		return models.StorageBooking{}, err
	}

	if in.Quantity > facility.Available {
		return models.StorageBooking{}, ErrInsufficientCapacity
	}

	booking := models.StorageBooking{
		Storage:    facility.ID,
		Farmer:     in.FarmerID,
		Crop:       in.CropID,
		Quantity:   in.Quantity,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Status:     models.BookingPending,
		TotalPrice: StorageBookingPrice(facility.PricePerTon, in.Quantity, in.StartDate, in.EndDate),
	}
	if err := s.storageBookings.Create(ctx, &booking); err != nil {
		return models.StorageBooking{}, err
	}

	if err := s.storage.IncAvailable(ctx, facility.ID, -in.Quantity); err != nil {
		return models.StorageBooking{}, err
	}

	event.FireAsync(EventStorageBookingCreated, booking)
	return booking, nil
}

// CreateTransportBookingInput is the validated transport booking request.
type CreateTransportBookingInput struct {
	TransportID      string
	UserID           primitive.ObjectID
	CropID           primitive.ObjectID
	PickupLocation   string
	DeliveryLocation string
	Distance         float64
	Quantity         float64
	Date             time.Time
}

// CreateTransportBooking rejects vehicles that are not available, persists
// the booking at a flat per-km price, and marks the vehicle booked with a
// human-readable date marker.
func (s *BookingService) CreateTransportBooking(ctx context.Context, in CreateTransportBookingInput) (models.TransportBooking, error) {
	vehicle, err := s.transport.FindByID(ctx, in.TransportID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.TransportBooking{}, ErrNotFound
		}
		return models.TransportBooking{}, err
	}

	if vehicle.Availability != models.TransportAvailable {
		return models.TransportBooking{}, ErrVehicleUnavailable
	}

	booking := models.TransportBooking{
		Transport:        vehicle.ID,
		User:             in.UserID,
		Crop:             in.CropID,
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
		Distance:         in.Distance,
		Quantity:         in.Quantity,
		Date:             in.Date,
		Status:           models.BookingPending,
		TotalPrice:       TransportBookingPrice(vehicle.PricePerKm, in.Distance),
	}
	if err := s.transportBookings.Create(ctx, &booking); err != nil {
		return models.TransportBooking{}, err
	}

	marker := "Booked until " + in.Date.Format("02 Jan 2006")
	if err := s.transport.SetAvailability(ctx, vehicle.ID, marker); err != nil {
		return models.TransportBooking{}, err
	}

	event.FireAsync(EventTransportBookingCreated, booking)
	return booking, nil
}

// ListStorageBookings returns all storage bookings matching the filter.
func (s *BookingService) ListStorageBookings(ctx context.Context, filter repositories.StorageBookingFilter) ([]models.StorageBooking, error) {
	return s.storageBookings.Find(ctx, filter)
}

// ListTransportBookings returns all transport bookings matching the filter.
func (s *BookingService) ListTransportBookings(ctx context.Context, filter repositories.TransportBookingFilter) ([]models.TransportBooking, error) {
	return s.transportBookings.Find(ctx, filter)
}

// GetStorageBooking returns one storage booking by id.
func (s *BookingService) GetStorageBooking(ctx context.Context, id string) (models.StorageBooking, error) {
	b, err := s.storageBookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.StorageBooking{}, ErrNotFound
		}
		return models.StorageBooking{}, err
	}
	return b, nil
}

// GetTransportBooking returns one transport booking by id.
func (s *BookingService) GetTransportBooking(ctx context.Context, id string) (models.TransportBooking, error) {
	b, err := s.transportBookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.TransportBooking{}, ErrNotFound
		}
		return models.TransportBooking{}, err
	}
	return b, nil
}

// UpdateStorageBookingStatus applies a lifecycle transition to a storage
// booking. Cancellation does not restore the facility's consumed capacity.
func (s *BookingService) UpdateStorageBookingStatus(ctx context.Context, id string, to models.BookingStatus) (models.StorageBooking, error) {
	booking, err := s.GetStorageBooking(ctx, id)
	if err != nil {
		return models.StorageBooking{}, err
	}

	if !booking.Status.CanTransitionTo(to) {
		return models.StorageBooking{}, ErrInvalidTransition
	}

	if err := s.storageBookings.UpdateStatus(ctx, booking.ID, to); err != nil {
		return models.StorageBooking{}, err
	}
	booking.Status = to

	event.FireAsync(EventStorageBookingStatus, booking)
	return booking, nil
}

// UpdateTransportBookingStatus applies a lifecycle transition to a
// transport booking. The vehicle's availability marker is not reset on
// cancellation, mirroring the storage side.
func (s *BookingService) UpdateTransportBookingStatus(ctx context.Context, id string, to models.BookingStatus) (models.TransportBooking, error) {
	booking, err := s.GetTransportBooking(ctx, id)
	if err != nil {
		return models.TransportBooking{}, err
	}

	if !booking.Status.CanTransitionTo(to) {
		return models.TransportBooking{}, ErrInvalidTransition
	}

	if err := s.transportBookings.UpdateStatus(ctx, booking.ID, to); err != nil {
		return models.TransportBooking{}, err
	}
	booking.Status = to

	event.FireAsync(EventTransportBookingStatus, booking)
	return booking, nil
}
