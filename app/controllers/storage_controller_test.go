package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/rbac"
	"github.com/agrisetu/agrisetu/pkg/router"
)

func newStorageRouter(store *memStorageStore) http.Handler {
	sc := NewStorageController(store)
	r := router.New()
	api := r.Group("/api")
	api.Get("/storage/{id}", "storage.show", ctx.Wrap(sc.Show))
	api.Post("/storage", "storage.store", ctx.Wrap(sc.Store),
		middleware.Auth, rbac.HasUserType("storage", "cooperative"))
	return r.Handler()
}

func TestStorageCreateStartsFullyAvailable(t *testing.T) {
	store := &memStorageStore{}
	h := newStorageRouter(store)
	authz := bearerToken(t, primitive.NewObjectID().Hex(), "storage")

	rec, env := doJSON(t, h, http.MethodPost, "/api/storage", authz, map[string]any{
		"name":        "Nashik Cold Store",
		"location":    "Nashik",
		"capacity":    500,
		"pricePerTon": 1000,
		"features":    []string{"cold storage"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := env["data"].(map[string]any)
	assert.InDelta(t, 500.0, data["available"].(float64), 1e-9)
	assert.InDelta(t, 500.0, store.facility.Available, 1e-9)
}

func TestStorageCreateRequiresProviderRole(t *testing.T) {
	h := newStorageRouter(&memStorageStore{})
	authz := bearerToken(t, primitive.NewObjectID().Hex(), "buyer")

	rec, _ := doJSON(t, h, http.MethodPost, "/api/storage", authz, map[string]any{
		"name":        "Nashik Cold Store",
		"location":    "Nashik",
		"capacity":    500,
		"pricePerTon": 1000,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
