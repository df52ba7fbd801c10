package controllers

import (
	"errors"
	"net/http"

	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/pkg/ctx"
)

// UserController exposes profile reads and updates. Every endpoint is
// self-only: the path id must match the authenticated user.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (u *UserController) requireSelf(c *ctx.Context) bool {
	if c.Param("id") != c.UserID() {
		c.Forbidden("You can only access your own profile")
		return false
	}
	return true
}

// Show returns the caller's own profile.
func (u *UserController) Show(c *ctx.Context) {
	if !u.requireSelf(c) {
		return
	}
	user, err := u.users.Get(c.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("User not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not load profile")
		return
	}
	c.Success(user)
}

type profileUpdateRequest struct {
	Name     string `json:"name" validate:"nullable,max=120"`
	Phone    string `json:"phone" validate:"nullable,max=20"`
	Location string `json:"location" validate:"nullable,max=120"`
}

// Update applies a partial profile update.
func (u *UserController) Update(c *ctx.Context) {
	if !u.requireSelf(c) {
		return
	}
	var req profileUpdateRequest
	if !c.BindJSON(&req) {
		return
	}

	user, err := u.users.UpdateProfile(c.Context(), c.Param("id"), services.ProfileUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("User not found")
			return
		}
		c.Error(http.StatusInternalServerError, "Could not update profile")
		return
	}
	c.Success(user)
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the current password before setting a new one.
func (u *UserController) ChangePassword(c *ctx.Context) {
	if !u.requireSelf(c) {
		return
	}
	var req passwordChangeRequest
	if !c.BindJSON(&req) {
		return
	}

	err := u.users.ChangePassword(c.Context(), c.Param("id"), req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		c.Message("Password updated")
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Current password is incorrect")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound("User not found")
	default:
		c.Error(http.StatusInternalServerError, "Could not change password")
	}
}
