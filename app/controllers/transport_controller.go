package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/cache"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/metrics"
)

// TransportCatalogStore is the persistence surface the vehicle endpoints need.
type TransportCatalogStore interface {
	Create(ctxt context.Context, t *models.Transport) error
	Find(ctxt context.Context, filter repositories.TransportFilter) ([]models.Transport, error)
	FindByID(ctxt context.Context, id string) (models.Transport, error)
}

// TransportController lists and registers transport vehicles.
type TransportController struct {
	transport TransportCatalogStore
}

func NewTransportController(transport TransportCatalogStore) *TransportController {
	return &TransportController{transport: transport}
}

// Index lists vehicles matching the query filters.
func (tc *TransportController) Index(c *ctx.Context) {
	filter := repositories.TransportFilter{
		Provider:     c.Query("provider"),
		Location:     c.Query("location"),
		VehicleType:  c.Query("vehicleType"),
		Feature:      c.Query("feature"),
		MinCapacity:  floatQuery(c, "minCapacity"),
		Availability: c.Query("availability"),
	}

	key := fmt.Sprintf("agrisetu:cache:transport:%d:%s",
		cache.Version("agrisetu:transport"), c.R.URL.RawQuery)

	var vehicles []models.Transport
	if cache.Get(key, &vehicles) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		c.Success(vehicles)
		return
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	vehicles, err := tc.transport.Find(c.Context(), filter)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load transport vehicles")
		return
	}

	cache.Set(key, vehicles, listCacheTTL) //nolint:errcheck
	c.Success(vehicles)
}

// Show returns one vehicle.
func (tc *TransportController) Show(c *ctx.Context) {
	vehicle, err := tc.transport.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Transport vehicle not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load transport vehicle")
		return
	}
	c.Success(vehicle)
}

type transportRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Location    string   `json:"location" validate:"required,max=120"`
	VehicleType string   `json:"vehicleType" validate:"required,max=60"`
	Capacity    float64  `json:"capacity" validate:"required,gt=0"`
	PricePerKm  float64  `json:"pricePerKm" validate:"required,gt=0"`
	Features    []string `json:"features" validate:"nullable"`
}

// Store registers a vehicle owned by the authenticated transporter.
// New vehicles start in the bookable "Available" state.
func (tc *TransportController) Store(c *ctx.Context) {
	var req transportRequest
	if !c.BindJSON(&req) {
		return
	}

	provider, err := primitive.ObjectIDFromHex(c.UserID())
	if err != nil {
		c.Unauthorized()
		return
	}

	vehicle := models.Transport{
		Name:         req.Name,
		Provider:     provider,
		Location:     req.Location,
		VehicleType:  req.VehicleType,
		Capacity:     req.Capacity,
		PricePerKm:   req.PricePerKm,
		Availability: models.TransportAvailable,
		Features:     req.Features,
	}
	if err := tc.transport.Create(c.Context(), &vehicle); err != nil {
		c.Error(http.StatusInternalServerError, "Could not register transport vehicle")
		return
	}

	cache.Bump("agrisetu:transport")
	c.Created(vehicle)
}
