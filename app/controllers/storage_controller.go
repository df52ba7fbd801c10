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

// StorageCatalogStore is the persistence surface the facility endpoints need.
type StorageCatalogStore interface {
	Create(ctxt context.Context, s *models.Storage) error
	Find(ctxt context.Context, filter repositories.StorageFilter) ([]models.Storage, error)
	FindByID(ctxt context.Context, id string) (models.Storage, error)
}

// StorageController lists and registers storage facilities.
type StorageController struct {
	storage StorageCatalogStore
}

func NewStorageController(storage StorageCatalogStore) *StorageController {
	return &StorageController{storage: storage}
}

// Index lists facilities matching the query filters.
func (sc *StorageController) Index(c *ctx.Context) {
	filter := repositories.StorageFilter{
		Provider:     c.Query("provider"),
		Location:     c.Query("location"),
		Feature:      c.Query("feature"),
		MinAvailable: floatQuery(c, "minAvailable"),
	}

	key := fmt.Sprintf("agrisetu:cache:storage:%d:%s",
		cache.Version("agrisetu:storage"), c.R.URL.RawQuery)

	var facilities []models.Storage
	if cache.Get(key, &facilities) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		c.Success(facilities)
		return
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	facilities, err := sc.storage.Find(c.Context(), filter)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load storage facilities")
		return
	}

	cache.Set(key, facilities, listCacheTTL) //nolint:errcheck
	c.Success(facilities)
}

// Show returns one facility.
func (sc *StorageController) Show(c *ctx.Context) {
	facility, err := sc.storage.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Storage facility not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load storage facility")
		return
	}
	c.Success(facility)
}

type storageRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Location    string   `json:"location" validate:"required,max=120"`
	Capacity    float64  `json:"capacity" validate:"required,gt=0"`
	PricePerTon float64  `json:"pricePerTon" validate:"required,gt=0"`
	Features    []string `json:"features" validate:"nullable"`
}

// Store registers a facility owned by the authenticated provider. Available
// capacity starts equal to total capacity.
func (sc *StorageController) Store(c *ctx.Context) {
	var req storageRequest
	if !c.BindJSON(&req) {
		return
	}

	provider, err := primitive.ObjectIDFromHex(c.UserID())
	if err != nil {
		c.Unauthorized()
		return
	}

	facility := models.Storage{
		Name:        req.Name,
		Provider:    provider,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Available:   req.Capacity,
		PricePerTon: req.PricePerTon,
		Features:    req.Features,
	}
	if err := sc.storage.Create(c.Context(), &facility); err != nil {
		c.Error(http.StatusInternalServerError, "Could not register storage facility")
		return
	}

	cache.Bump("agrisetu:storage")
	c.Created(facility)
}
