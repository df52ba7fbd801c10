package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/router"
)

type bookingFixture struct {
	handler   http.Handler
	storage   *memStorageStore
	transport *memTransportStore
	farmer    string
}

func newBookingRouter(t *testing.T) *bookingFixture {
	t.Helper()

	storage := &memStorageStore{facility: models.Storage{
		ID:          primitive.NewObjectID(),
		Name:        "Nashik Cold Store",
		Capacity:    100,
		Available:   50,
		PricePerTon: 1000,
	}}
	transport := &memTransportStore{vehicle: models.Transport{
		ID:           primitive.NewObjectID(),
		Name:         "Tata 407",
		PricePerKm:   500,
		Availability: models.TransportAvailable,
	}}

	svc := services.NewBookingService(storage, transport, &memStorageBookingStore{}, &memTransportBookingStore{})
	bc := NewBookingController(svc)

	r := router.New()
	api := r.Group("/api", middleware.Auth)
	api.Get("/bookings/storage", "bookings.storage.index", ctx.Wrap(bc.IndexStorage))
	api.Post("/bookings/storage", "bookings.storage.store", ctx.Wrap(bc.StoreStorage))
	api.Patch("/bookings/storage/{id}/status", "bookings.storage.status", ctx.Wrap(bc.UpdateStorageStatus))
	api.Get("/bookings/transport", "bookings.transport.index", ctx.Wrap(bc.IndexTransport))
	api.Post("/bookings/transport", "bookings.transport.store", ctx.Wrap(bc.StoreTransport))
	api.Patch("/bookings/transport/{id}/status", "bookings.transport.status", ctx.Wrap(bc.UpdateTransportStatus))

	return &bookingFixture{
		handler:   r.Handler(),
		storage:   storage,
		transport: transport,
		farmer:    primitive.NewObjectID().Hex(),
	}
}

func TestStorageBookingRequiresAuth(t *testing.T) {
	fx := newBookingRouter(t)

	rec, _ := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/storage", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStorageBookingFlow(t *testing.T) {
	fx := newBookingRouter(t)
	authz := bearerToken(t, fx.farmer, "farmer")

	rec, env := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/storage", authz, map[string]any{
		"storageId": fx.storage.facility.ID.Hex(),
		"quantity":  10,
		"startDate": "2026-03-01",
		"endDate":   "2026-03-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := env["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.InDelta(t, 10000.0, data["totalPrice"].(float64), 1e-9)
	assert.InDelta(t, 40.0, fx.storage.facility.Available, 1e-9)

	id := data["id"].(string)

	// pending -> confirmed
	rec, env = doJSON(t, fx.handler, http.MethodPatch,
		fmt.Sprintf("/api/bookings/storage/%s/status", id), authz,
		map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", env["data"].(map[string]any)["status"])

	// confirmed -> pending is not a legal transition
	rec, _ = doJSON(t, fx.handler, http.MethodPatch,
		fmt.Sprintf("/api/bookings/storage/%s/status", id), authz,
		map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = doJSON(t, fx.handler, http.MethodGet, "/api/bookings/storage?status=confirmed", authz, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env["data"].([]any), 1)
}

func TestStorageBookingInsufficientCapacity(t *testing.T) {
	fx := newBookingRouter(t)
	authz := bearerToken(t, fx.farmer, "farmer")

	rec, _ := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/storage", authz, map[string]any{
		"storageId": fx.storage.facility.ID.Hex(),
		"quantity":  60,
		"startDate": "2026-03-01",
		"endDate":   "2026-03-31",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.InDelta(t, 50.0, fx.storage.facility.Available, 1e-9)
}

func TestStorageBookingUnknownFacility(t *testing.T) {
	fx := newBookingRouter(t)
	authz := bearerToken(t, fx.farmer, "farmer")

	rec, _ := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/storage", authz, map[string]any{
		"storageId": primitive.NewObjectID().Hex(),
		"quantity":  10,
		"startDate": "2026-03-01",
		"endDate":   "2026-03-31",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorageBookingDateOrder(t *testing.T) {
	fx := newBookingRouter(t)
	authz := bearerToken(t, fx.farmer, "farmer")

	rec, _ := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/storage", authz, map[string]any{
		"storageId": fx.storage.facility.ID.Hex(),
		"quantity":  10,
		"startDate": "2026-03-31",
		"endDate":   "2026-03-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransportBookingFlow(t *testing.T) {
	fx := newBookingRouter(t)
	authz := bearerToken(t, fx.farmer, "farmer")
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	rec, env := doJSON(t, fx.handler, http.MethodPost, "/api/bookings/transport", authz, map[string]any{
		"transportId":      fx.transport.vehicle.ID.Hex(),
		"pickupLocation":   "Nashik",
		"deliveryLocation": "Pune",
		"distance":         20,
		"date":             date.Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := env["data"].(map[string]any)
	assert.InDelta(t, 10000.0, data["totalPrice"].(float64), 1e-9)
	assert.Equal(t, "Booked until 15 Apr 2026", fx.transport.vehicle.Availability)

	// the vehicle is no longer bookable
	rec, _ = doJSON(t, fx.handler, http.MethodPost, "/api/bookings/transport", authz, map[string]any{
		"transportId":      fx.transport.vehicle.ID.Hex(),
		"pickupLocation":   "Nashik",
		"deliveryLocation": "Mumbai",
		"distance":         170,
		"date":             date.Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
