package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/cache"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/metrics"
)

// listCacheTTL bounds staleness for cached marketplace list reads.
const listCacheTTL = 30 * time.Second

// CropStore is the persistence surface the crop endpoints need.
type CropStore interface {
	Create(ctxt context.Context, crop *models.Crop) error
	Find(ctxt context.Context, filter repositories.CropFilter) ([]models.Crop, error)
	FindByID(ctxt context.Context, id string) (models.Crop, error)
	UpdateFields(ctxt context.Context, id string, fields bson.M) error
	Delete(ctxt context.Context, id string) error
}

// CropController handles crop listing CRUD.
type CropController struct {
	crops CropStore
}

func NewCropController(crops CropStore) *CropController {
	return &CropController{crops: crops}
}

// floatQuery parses an optional float query param into a *float64.
func floatQuery(c *ctx.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Index lists crops matching the query filters. Results are cached for a
// short TTL; any crop write bumps the namespace version.
func (cc *CropController) Index(c *ctx.Context) {
	filter := repositories.CropFilter{
		Farmer:   c.Query("farmer"),
		Name:     c.Query("name"),
		Location: c.Query("location"),
		Quality:  c.Query("quality"),
		MinPrice: floatQuery(c, "minPrice"),
		MaxPrice: floatQuery(c, "maxPrice"),
		Status:   models.CropStatus(c.Query("status")),
	}

	key := fmt.Sprintf("agrisetu:cache:crops:%d:%s",
		cache.Version("agrisetu:crops"), c.R.URL.RawQuery)

	var crops []models.Crop
	if cache.Get(key, &crops) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		c.Success(crops)
		return
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	crops, err := cc.crops.Find(c.Context(), filter)
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load crops")
		return
	}

	cache.Set(key, crops, listCacheTTL) //nolint:errcheck
	c.Success(crops)
}

// Show returns one crop listing.
func (cc *CropController) Show(c *ctx.Context) {
	crop, err := cc.crops.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Crop not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load crop")
		return
	}
	c.Success(crop)
}

type cropRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Location    string  `json:"location" validate:"required,max=120"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required,max=20"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quality     string  `json:"quality" validate:"nullable,max=60"`
	HarvestDate string  `json:"harvestDate" validate:"required,date"`
	ImageURL    string  `json:"imageUrl" validate:"nullable,max=500"`
}

func parseDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Store creates a crop listing owned by the authenticated farmer.
func (cc *CropController) Store(c *ctx.Context) {
	var req cropRequest
	if !c.BindJSON(&req) {
		return
	}

	farmer, err := primitive.ObjectIDFromHex(c.UserID())
	if err != nil {
		c.Unauthorized()
		return
	}

	crop := models.Crop{
		Name:        req.Name,
		Farmer:      farmer,
		Location:    req.Location,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Price:       req.Price,
		Quality:     req.Quality,
		HarvestDate: parseDate(req.HarvestDate),
		ImageURL:    req.ImageURL,
		Status:      models.CropAvailable,
	}
	if err := cc.crops.Create(c.Context(), &crop); err != nil {
		c.Error(http.StatusInternalServerError, "Could not create crop")
		return
	}

	cache.Bump("agrisetu:crops")
	c.Created(crop)
}

type cropUpdateRequest struct {
	Name     string   `json:"name" validate:"nullable,max=120"`
	Location string   `json:"location" validate:"nullable,max=120"`
	Quantity *float64 `json:"quantity" validate:"nullable,gt=0"`
	Price    *float64 `json:"price" validate:"nullable,gt=0"`
	Quality  string   `json:"quality" validate:"nullable,max=60"`
	ImageURL string   `json:"imageUrl" validate:"nullable,max=500"`
	Status   string   `json:"status" validate:"nullable,in=available,reserved,sold"`
}

// Update applies a partial update to a crop the caller owns.
func (cc *CropController) Update(c *ctx.Context) {
	crop, err := cc.crops.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Crop not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load crop")
		return
	}
	if crop.Farmer.Hex() != c.UserID() {
		c.Forbidden("You can only edit your own listings")
		return
	}

	var req cropUpdateRequest
	if !c.BindJSON(&req) {
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Location != "" {
		fields["location"] = req.Location
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Quality != "" {
		fields["quality"] = req.Quality
	}
	if req.ImageURL != "" {
		fields["imageUrl"] = req.ImageURL
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if len(fields) == 0 {
		c.Success(crop)
		return
	}

	if err := cc.crops.UpdateFields(c.Context(), c.Param("id"), fields); err != nil {
		c.Error(http.StatusInternalServerError, "Could not update crop")
		return
	}

	cache.Bump("agrisetu:crops")
	updated, err := cc.crops.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load crop")
		return
	}
	c.Success(updated)
}

// Destroy removes a crop the caller owns.
func (cc *CropController) Destroy(c *ctx.Context) {
	crop, err := cc.crops.FindByID(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("Crop not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load crop")
		return
	}
	if crop.Farmer.Hex() != c.UserID() {
		c.Forbidden("You can only delete your own listings")
		return
	}

	if err := cc.crops.Delete(c.Context(), c.Param("id")); err != nil {
		c.Error(http.StatusInternalServerError, "Could not delete crop")
		return
	}

	cache.Bump("agrisetu:crops")
	c.Message("Crop deleted")
}
