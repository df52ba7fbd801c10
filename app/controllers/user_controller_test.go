package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/router"
)

func newUserFixture(t *testing.T) (http.Handler, models.User) {
	t.Helper()

	store := newMemUserStore()
	user, _, err := services.NewAuthService(store).Register(context.Background(), services.RegisterInput{
		Name:     "Asha Patil",
		Email:    "asha@example.com",
		Password: "harvest2026",
		UserType: models.UserTypeFarmer,
	})
	require.NoError(t, err)

	uc := NewUserController(services.NewUserService(store))
	r := router.New()
	api := r.Group("/api", middleware.Auth)
	api.Get("/users/{id}", "users.show", ctx.Wrap(uc.Show))
	api.Put("/users/{id}", "users.update", ctx.Wrap(uc.Update))
	api.Put("/users/{id}/password", "users.password", ctx.Wrap(uc.ChangePassword))

	return r.Handler(), user
}

func TestProfileSelfOnly(t *testing.T) {
	h, user := newUserFixture(t)

	// own profile
	authz := bearerToken(t, user.ID.Hex(), "farmer")
	rec, env := doJSON(t, h, http.MethodGet, "/api/users/"+user.ID.Hex(), authz, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asha@example.com", env["data"].(map[string]any)["email"])

	// someone else's profile
	other := bearerToken(t, primitive.NewObjectID().Hex(), "buyer")
	rec, _ = doJSON(t, h, http.MethodGet, "/api/users/"+user.ID.Hex(), other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPut, "/api/users/"+user.ID.Hex(), other,
		map[string]any{"name": "Mallory"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	h, user := newUserFixture(t)
	authz := bearerToken(t, user.ID.Hex(), "farmer")

	rec, env := doJSON(t, h, http.MethodPut, "/api/users/"+user.ID.Hex(), authz,
		map[string]any{"location": "Nashik", "phone": "9876543210"})
	require.Equal(t, http.StatusOK, rec.Code)

	data := env["data"].(map[string]any)
	assert.Equal(t, "Nashik", data["location"])
	assert.Equal(t, "Asha Patil", data["name"]) // untouched
}

func TestChangePassword(t *testing.T) {
	h, user := newUserFixture(t)
	authz := bearerToken(t, user.ID.Hex(), "farmer")

	// wrong current password
	rec, _ := doJSON(t, h, http.MethodPut, "/api/users/"+user.ID.Hex()+"/password", authz,
		map[string]any{"currentPassword": "wrong", "newPassword": "newharvest2026"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// too-short new password
	rec, _ = doJSON(t, h, http.MethodPut, "/api/users/"+user.ID.Hex()+"/password", authz,
		map[string]any{"currentPassword": "harvest2026", "newPassword": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPut, "/api/users/"+user.ID.Hex()+"/password", authz,
		map[string]any{"currentPassword": "harvest2026", "newPassword": "newharvest2026"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
