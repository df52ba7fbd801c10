package controllers

import (
	"errors"
	"net/http"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/config"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/metrics"
)

// cookieMaxAge matches the JWT lifetime (24h).
const cookieMaxAge = 24 * 60 * 60

// AuthController handles registration, login, and token verification.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"nullable,max=20"`
	Location string `json:"location" validate:"nullable,max=120"`
	UserType string `json:"userType" validate:"required,in=farmer,buyer,transporter,storage,cooperative"`
}

// Register creates an account and signs the caller in.
func (a *AuthController) Register(c *ctx.Context) {
	var req registerRequest
	if !c.BindJSON(&req) {
		return
	}

	user, token, err := a.auth.Register(c.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Location: req.Location,
		UserType: models.UserType(req.UserType),
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.Error(http.StatusConflict, "An account with this email already exists")
			return
		}
		c.Error(http.StatusInternalServerError, "Registration failed")
		return
	}

	metrics.UsersRegistered.WithLabelValues(string(user.UserType)).Inc()
	c.SetCookie(config.TokenCookie(), token, cookieMaxAge, "/", false, true)
	c.Created(map[string]any{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token.
func (a *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	user, token, err := a.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("Invalid email or password")
			return
		}
		c.Error(http.StatusInternalServerError, "Login failed")
		return
	}

	c.SetCookie(config.TokenCookie(), token, cookieMaxAge, "/", false, true)
	c.Success(map[string]any{"user": user, "token": token})
}

// Logout clears the auth cookie. The JWT itself stays valid until expiry.
func (a *AuthController) Logout(c *ctx.Context) {
	c.SetCookie(config.TokenCookie(), "", -1, "/", false, true)
	c.Message("Logged out")
}

// Verify returns the account behind the presented token.
func (a *AuthController) Verify(c *ctx.Context) {
	user, err := a.auth.Verify(c.Context(), c.UserID())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("Account no longer exists")
			return
		}
		c.Error(http.StatusInternalServerError, "Verification failed")
		return
	}
	c.Success(user)
}
