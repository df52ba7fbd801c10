package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/auth"
)

// memUserStore is an in-memory services.UserStore.
type memUserStore struct {
	users map[string]models.User // by hex id
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	m.users[user.ID.Hex()] = *user
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (m *memUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *memUserStore) UpdateFields(_ context.Context, id string, fields bson.M) error {
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		u.Phone = v.(string)
	}
	if v, ok := fields["location"]; ok {
		u.Location = v.(string)
	}
	if v, ok := fields["password"]; ok {
		u.Password = v.(string)
	}
	m.users[id] = u
	return nil
}

// memStorageStore backs the booking endpoints with a single facility.
type memStorageStore struct {
	facility models.Storage
}

func (m *memStorageStore) Create(_ context.Context, s *models.Storage) error {
	s.ID = primitive.NewObjectID()
	m.facility = *s
	return nil
}

func (m *memStorageStore) Find(_ context.Context, _ repositories.StorageFilter) ([]models.Storage, error) {
	return []models.Storage{m.facility}, nil
}

func (m *memStorageStore) FindByID(_ context.Context, id string) (models.Storage, error) {
	if id != m.facility.ID.Hex() {
		return models.Storage{}, mongo.ErrNoDocuments
	}
	return m.facility, nil
}

func (m *memStorageStore) IncAvailable(_ context.Context, _ primitive.ObjectID, delta float64) error {
	m.facility.Available += delta
	return nil
}

// memTransportStore backs the booking endpoints with a single vehicle.
type memTransportStore struct {
	vehicle models.Transport
}

func (m *memTransportStore) Create(_ context.Context, t *models.Transport) error {
	t.ID = primitive.NewObjectID()
	m.vehicle = *t
	return nil
}

func (m *memTransportStore) Find(_ context.Context, _ repositories.TransportFilter) ([]models.Transport, error) {
	return []models.Transport{m.vehicle}, nil
}

func (m *memTransportStore) FindByID(_ context.Context, id string) (models.Transport, error) {
	if id != m.vehicle.ID.Hex() {
		return models.Transport{}, mongo.ErrNoDocuments
	}
	return m.vehicle, nil
}

func (m *memTransportStore) SetAvailability(_ context.Context, _ primitive.ObjectID, availability string) error {
	m.vehicle.Availability = availability
	return nil
}

// memStorageBookingStore is an in-memory services.StorageBookingStore.
type memStorageBookingStore struct {
	bookings []models.StorageBooking
}

func (m *memStorageBookingStore) Create(_ context.Context, b *models.StorageBooking) error {
	b.ID = primitive.NewObjectID()
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memStorageBookingStore) Find(_ context.Context, filter repositories.StorageBookingFilter) ([]models.StorageBooking, error) {
	out := []models.StorageBooking{}
	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memStorageBookingStore) FindByID(_ context.Context, id string) (models.StorageBooking, error) {
	for _, b := range m.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return models.StorageBooking{}, mongo.ErrNoDocuments
}

func (m *memStorageBookingStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// memTransportBookingStore is an in-memory services.TransportBookingStore.
type memTransportBookingStore struct {
	bookings []models.TransportBooking
}

func (m *memTransportBookingStore) Create(_ context.Context, b *models.TransportBooking) error {
	b.ID = primitive.NewObjectID()
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memTransportBookingStore) Find(_ context.Context, filter repositories.TransportBookingFilter) ([]models.TransportBooking, error) {
	out := []models.TransportBooking{}
	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memTransportBookingStore) FindByID(_ context.Context, id string) (models.TransportBooking, error) {
	for _, b := range m.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return models.TransportBooking{}, mongo.ErrNoDocuments
}

func (m *memTransportBookingStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// bearerToken builds a valid token for a synthetic user.
func bearerToken(t *testing.T, userID, userType string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, "test@agrisetu.in", userType)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a JSON request against a handler and decodes the envelope.
func doJSON(t *testing.T, h http.Handler, method, target, authz string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	}
	return rec, envelope
}
