package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/rbac"
	"github.com/agrisetu/agrisetu/pkg/router"
)

// memCropStore is an in-memory CropStore applying the status filter.
type memCropStore struct {
	crops      []models.Crop
	lastFilter repositories.CropFilter
}

func (m *memCropStore) Create(_ context.Context, crop *models.Crop) error {
	crop.ID = primitive.NewObjectID()
	m.crops = append(m.crops, *crop)
	return nil
}

func (m *memCropStore) Find(_ context.Context, filter repositories.CropFilter) ([]models.Crop, error) {
	m.lastFilter = filter
	out := []models.Crop{}
	for _, c := range m.crops {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memCropStore) FindByID(_ context.Context, id string) (models.Crop, error) {
	for _, c := range m.crops {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return models.Crop{}, mongo.ErrNoDocuments
}

func (m *memCropStore) UpdateFields(_ context.Context, id string, fields bson.M) error {
	for i := range m.crops {
		if m.crops[i].ID.Hex() == id {
			if v, ok := fields["status"]; ok {
				m.crops[i].Status = models.CropStatus(v.(string))
			}
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memCropStore) Delete(_ context.Context, id string) error {
	for i := range m.crops {
		if m.crops[i].ID.Hex() == id {
			m.crops = append(m.crops[:i], m.crops[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func newCropRouter(store *memCropStore) http.Handler {
	cc := NewCropController(store)
	r := router.New()
	api := r.Group("/api")
	api.Get("/crops", "crops.index", ctx.Wrap(cc.Index))
	api.Get("/crops/{id}", "crops.show", ctx.Wrap(cc.Show))
	api.Post("/crops", "crops.store", ctx.Wrap(cc.Store),
		middleware.Auth, rbac.HasUserType("farmer", "cooperative"))
	return r.Handler()
}

func TestCropIndexStatusFilter(t *testing.T) {
	store := &memCropStore{crops: []models.Crop{
		{ID: primitive.NewObjectID(), Name: "Onion", Status: models.CropAvailable},
		{ID: primitive.NewObjectID(), Name: "Tomato", Status: models.CropSold},
	}}
	h := newCropRouter(store)

	rec, env := doJSON(t, h, http.MethodGet, "/api/crops?status=available", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	crops := env["data"].([]any)
	require.Len(t, crops, 1)
	assert.Equal(t, "Onion", crops[0].(map[string]any)["name"])
	assert.Equal(t, models.CropAvailable, store.lastFilter.Status)
}

func TestCropStoreRequiresFarmerRole(t *testing.T) {
	h := newCropRouter(&memCropStore{})
	authz := bearerToken(t, primitive.NewObjectID().Hex(), "buyer")

	rec, _ := doJSON(t, h, http.MethodPost, "/api/crops", authz, map[string]any{
		"name":        "Onion",
		"location":    "Nashik",
		"quantity":    5,
		"unit":        "ton",
		"price":       1800,
		"harvestDate": "2026-08-01",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
