package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/router"
)

func newAuthRouter(store *memUserStore) http.Handler {
	ac := NewAuthController(services.NewAuthService(store))
	r := router.New()
	r.Post("/api/auth/register", "auth.register", ctx.Wrap(ac.Register))
	r.Post("/api/auth/login", "auth.login", ctx.Wrap(ac.Login))
	return r.Handler()
}

func TestRegister(t *testing.T) {
	h := newAuthRouter(newMemUserStore())

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Patil",
		"email":    "asha@example.com",
		"password": "harvest2026",
		"userType": "farmer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := env["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "asha@example.com", user["email"])
	assert.NotContains(t, user, "password")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth_token", cookies[0].Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemUserStore()
	h := newAuthRouter(store)

	body := map[string]any{
		"name":     "Asha Patil",
		"email":    "asha@example.com",
		"password": "harvest2026",
		"userType": "farmer",
	}
	rec, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newAuthRouter(newMemUserStore())

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Patil",
		"email":    "not-an-email",
		"password": "short",
		"userType": "astronaut",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	errs := env["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "userType")
}

func TestLogin(t *testing.T) {
	store := newMemUserStore()
	h := newAuthRouter(store)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Patil",
		"email":    "asha@example.com",
		"password": "harvest2026",
		"userType": "farmer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "harvest2026",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env["data"].(map[string]any)["token"])
}

func TestLoginBadCredentials(t *testing.T) {
	store := newMemUserStore()
	h := newAuthRouter(store)

	doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Patil",
		"email":    "asha@example.com",
		"password": "harvest2026",
		"userType": "farmer",
	})

	rec, _ := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "harvest2026",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
