// Package services contains the marketplace business logic: account
// management, pricing, the capacity ledger, and the booking lifecycle.
package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map them to
// HTTP status codes; everything else becomes a 500.
var (
	// ErrNotFound means a referenced resource id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInsufficientCapacity means the requested quantity exceeds the
	// facility's available capacity.
	ErrInsufficientCapacity = errors.New("insufficient storage capacity")

	// ErrVehicleUnavailable means the vehicle is not in the "Available" state.
	ErrVehicleUnavailable = errors.New("vehicle is not available")

	// ErrInvalidTransition means the requested booking status change is not
	// allowed from the booking's current state.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrEmailTaken means an account already exists for the email address.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
