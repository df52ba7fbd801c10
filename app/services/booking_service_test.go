package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
)

type fakeStorageStore struct {
	facility models.Storage
	incCalls []float64
}

func (f *fakeStorageStore) FindByID(_ context.Context, id string) (models.Storage, error) {
	if id != f.facility.ID.Hex() {
		return models.Storage{}, mongo.ErrNoDocuments
	}
	return f.facility, nil
}

func (f *fakeStorageStore) IncAvailable(_ context.Context, _ primitive.ObjectID, delta float64) error {
	f.incCalls = append(f.incCalls, delta)
	f.facility.Available += delta
	return nil
}

type fakeTransportStore struct {
	vehicle     models.Transport
	lastMarker  string
	markerCalls int
}

func (f *fakeTransportStore) FindByID(_ context.Context, id string) (models.Transport, error) {
	if id != f.vehicle.ID.Hex() {
		return models.Transport{}, mongo.ErrNoDocuments
	}
	return f.vehicle, nil
}

func (f *fakeTransportStore) SetAvailability(_ context.Context, _ primitive.ObjectID, availability string) error {
	f.vehicle.Availability = availability
	f.lastMarker = availability
	f.markerCalls++
	return nil
}

type fakeStorageBookingStore struct {
	bookings []models.StorageBooking
}

func (f *fakeStorageBookingStore) Create(_ context.Context, b *models.StorageBooking) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeStorageBookingStore) Find(_ context.Context, _ repositories.StorageBookingFilter) ([]models.StorageBooking, error) {
	return f.bookings, nil
}

func (f *fakeStorageBookingStore) FindByID(_ context.Context, id string) (models.StorageBooking, error) {
	for _, b := range f.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return models.StorageBooking{}, mongo.ErrNoDocuments
}

func (f *fakeStorageBookingStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeTransportBookingStore struct {
	bookings []models.TransportBooking
}

func (f *fakeTransportBookingStore) Create(_ context.Context, b *models.TransportBooking) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeTransportBookingStore) Find(_ context.Context, _ repositories.TransportBookingFilter) ([]models.TransportBooking, error) {
	return f.bookings, nil
}

func (f *fakeTransportBookingStore) FindByID(_ context.Context, id string) (models.TransportBooking, error) {
	for _, b := range f.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return models.TransportBooking{}, mongo.ErrNoDocuments
}

func (f *fakeTransportBookingStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func newBookingFixture() (*BookingService, *fakeStorageStore, *fakeTransportStore, *fakeStorageBookingStore, *fakeTransportBookingStore) {
	storage := &fakeStorageStore{facility: models.Storage{
		ID:          primitive.NewObjectID(),
		Name:        "Nashik Cold Store",
		Capacity:    100,
		Available:   50,
		PricePerTon: 1000,
	}}
	transport := &fakeTransportStore{vehicle: models.Transport{
		ID:           primitive.NewObjectID(),
		Name:         "Tata 407",
		PricePerKm:   500,
		Availability: models.TransportAvailable,
	}}
	sb := &fakeStorageBookingStore{}
	tb := &fakeTransportBookingStore{}
	return NewBookingService(storage, transport, sb, tb), storage, transport, sb, tb
}

func TestCreateStorageBooking(t *testing.T) {
	svc, storage, _, sb, _ := newBookingFixture()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	booking, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: storage.facility.ID.Hex(),
		FarmerID:  primitive.NewObjectID(),
		Quantity:  10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.InDelta(t, 10000.0, booking.TotalPrice, 1e-9)
	assert.False(t, booking.ID.IsZero())
	assert.Len(t, sb.bookings, 1)
	assert.InDelta(t, 40.0, storage.facility.Available, 1e-9)
	assert.Equal(t, []float64{-10}, storage.incCalls)
}

func TestCreateStorageBookingInsufficientCapacity(t *testing.T) {
	svc, storage, _, sb, _ := newBookingFixture()

	_, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: storage.facility.ID.Hex(),
		FarmerID:  primitive.NewObjectID(),
		Quantity:  60,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Empty(t, sb.bookings)
	assert.Empty(t, storage.incCalls)
	assert.InDelta(t, 50.0, storage.facility.Available, 1e-9)
}

func TestCreateStorageBookingZeroAvailability(t *testing.T) {
	// Zero availability is a real state (fully committed facility), not a
	// default to be papered over; every booking against it is rejected.
	svc, storage, _, sb, _ := newBookingFixture()
	storage.facility.Available = 0

	_, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: storage.facility.ID.Hex(),
		FarmerID:  primitive.NewObjectID(),
		Quantity:  1,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Empty(t, sb.bookings)
	assert.Zero(t, storage.facility.Available)
}

func TestCreateStorageBookingUnknownFacility(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()

	_, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: primitive.NewObjectID().Hex(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTransportBooking(t *testing.T) {
	svc, _, transport, _, tb := newBookingFixture()
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	booking, err := svc.CreateTransportBooking(context.Background(), CreateTransportBookingInput{
		TransportID:      transport.vehicle.ID.Hex(),
		UserID:           primitive.NewObjectID(),
		PickupLocation:   "Nashik",
		DeliveryLocation: "Pune",
		Distance:         20,
		Date:             date,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.InDelta(t, 10000.0, booking.TotalPrice, 1e-9)
	assert.Len(t, tb.bookings, 1)
	assert.Equal(t, "Booked until 15 Apr 2026", transport.lastMarker)
}

func TestCreateTransportBookingUnavailable(t *testing.T) {
	svc, _, transport, _, tb := newBookingFixture()
	transport.vehicle.Availability = "Booked until 01 Mar 2026"

	_, err := svc.CreateTransportBooking(context.Background(), CreateTransportBookingInput{
		TransportID: transport.vehicle.ID.Hex(),
		Distance:    20,
		Date:        time.Now(),
	})
	assert.ErrorIs(t, err, ErrVehicleUnavailable)
	assert.Empty(t, tb.bookings)
	assert.Zero(t, transport.markerCalls)
}

func TestUpdateStorageBookingStatus(t *testing.T) {
	svc, storage, _, _, _ := newBookingFixture()
	availableBefore := storage.facility.Available

	booking, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: storage.facility.ID.Hex(),
		FarmerID:  primitive.NewObjectID(),
		Quantity:  5,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStorageBookingStatus(context.Background(), booking.ID.Hex(), models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	// completed is terminal
	updated, err = svc.UpdateStorageBookingStatus(context.Background(), booking.ID.Hex(), models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	_, err = svc.UpdateStorageBookingStatus(context.Background(), booking.ID.Hex(), models.BookingCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// capacity stays consumed after the lifecycle ends
	assert.InDelta(t, availableBefore-5, storage.facility.Available, 1e-9)
}

func TestCancelStorageBookingKeepsCapacityConsumed(t *testing.T) {
	svc, storage, _, _, _ := newBookingFixture()

	booking, err := svc.CreateStorageBooking(context.Background(), CreateStorageBookingInput{
		StorageID: storage.facility.ID.Hex(),
		FarmerID:  primitive.NewObjectID(),
		Quantity:  10,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.InDelta(t, 40.0, storage.facility.Available, 1e-9)

	_, err = svc.UpdateStorageBookingStatus(context.Background(), booking.ID.Hex(), models.BookingCancelled)
	require.NoError(t, err)

	assert.Equal(t, []float64{-10}, storage.incCalls)
	assert.InDelta(t, 40.0, storage.facility.Available, 1e-9)
}

func TestUpdateTransportBookingStatus(t *testing.T) {
	svc, _, transport, _, _ := newBookingFixture()

	booking, err := svc.CreateTransportBooking(context.Background(), CreateTransportBookingInput{
		TransportID: transport.vehicle.ID.Hex(),
		UserID:      primitive.NewObjectID(),
		Distance:    12,
		Date:        time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTransportBookingStatus(context.Background(), booking.ID.Hex(), models.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateTransportBookingStatus(context.Background(), booking.ID.Hex(), models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)

	_, err = svc.UpdateTransportBookingStatus(context.Background(), booking.ID.Hex(), models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateBookingStatusUnknownID(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()

	_, err := svc.UpdateStorageBookingStatus(context.Background(), primitive.NewObjectID().Hex(), models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateTransportBookingStatus(context.Background(), primitive.NewObjectID().Hex(), models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}
