package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/metrics"
)

// BookingController handles storage and transport bookings.
//
// These endpoints do not check that the caller owns the booking or the
// booked resource; any authenticated user may create bookings and move
// their status.
type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

type storageBookingRequest struct {
	StorageID string  `json:"storageId" validate:"required"`
	CropID    string  `json:"cropId" validate:"nullable"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	StartDate string  `json:"startDate" validate:"required,date"`
	EndDate   string  `json:"endDate" validate:"required,date"`
}

// StoreStorage books quantity tons in a facility for a date range.
func (bc *BookingController) StoreStorage(c *ctx.Context) {
	var req storageBookingRequest
	if !c.BindJSON(&req) {
		return
	}

	start := parseDate(req.StartDate)
	end := parseDate(req.EndDate)
	if !end.After(start) {
		c.ValidationError(map[string]string{"endDate": "The endDate must be after startDate."})
		return
	}

	farmer, err := primitive.ObjectIDFromHex(c.UserID())
	if err != nil {
		c.Unauthorized()
		return
	}
	crop, _ := primitive.ObjectIDFromHex(req.CropID)

	booking, err := bc.bookings.CreateStorageBooking(c.Context(), services.CreateStorageBookingInput{
		StorageID: req.StorageID,
		FarmerID:  farmer,
		CropID:    crop,
		Quantity:  req.Quantity,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			metrics.BookingsCreated.WithLabelValues("storage", "not_found").Inc()
			c.NotFound("Storage facility not found")
		case errors.Is(err, services.ErrInsufficientCapacity):
			metrics.BookingsCreated.WithLabelValues("storage", "rejected").Inc()
			c.Error(http.StatusBadRequest, "Not enough available capacity")
		default:
			metrics.BookingsCreated.WithLabelValues("storage", "error").Inc()
			c.Error(http.StatusInternalServerError, "Could not create booking")
		}
		return
	}

	metrics.BookingsCreated.WithLabelValues("storage", "created").Inc()
	c.Created(booking)
}

// IndexStorage lists storage bookings matching the query filters.
func (bc *BookingController) IndexStorage(c *ctx.Context) {
	bookings, err := bc.bookings.ListStorageBookings(c.Context(), repositories.StorageBookingFilter{
		Farmer:  c.Query("farmer"),
		Storage: c.Query("storage"),
		Status:  models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load bookings")
		return
	}
	c.Success(bookings)
}

type transportBookingRequest struct {
	TransportID      string  `json:"transportId" validate:"required"`
	CropID           string  `json:"cropId" validate:"nullable"`
	PickupLocation   string  `json:"pickupLocation" validate:"required,max=120"`
	DeliveryLocation string  `json:"deliveryLocation" validate:"required,max=120"`
	Distance         float64 `json:"distance" validate:"required,gt=0"`
	Quantity         float64 `json:"quantity" validate:"nullable,gt=0"`
	Date             string  `json:"date" validate:"required,date"`
}

// StoreTransport books a vehicle for a single haul.
func (bc *BookingController) StoreTransport(c *ctx.Context) {
	var req transportBookingRequest
	if !c.BindJSON(&req) {
		return
	}

	user, err := primitive.ObjectIDFromHex(c.UserID())
	if err != nil {
		c.Unauthorized()
		return
	}
	crop, _ := primitive.ObjectIDFromHex(req.CropID)

	booking, err := bc.bookings.CreateTransportBooking(c.Context(), services.CreateTransportBookingInput{
		TransportID:      req.TransportID,
		UserID:           user,
		CropID:           crop,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		Distance:         req.Distance,
		Quantity:         req.Quantity,
		Date:             parseDate(req.Date),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			metrics.BookingsCreated.WithLabelValues("transport", "not_found").Inc()
			c.NotFound("Transport vehicle not found")
		case errors.Is(err, services.ErrVehicleUnavailable):
			metrics.BookingsCreated.WithLabelValues("transport", "rejected").Inc()
			c.Error(http.StatusBadRequest, "Vehicle is not available")
		default:
			metrics.BookingsCreated.WithLabelValues("transport", "error").Inc()
			c.Error(http.StatusInternalServerError, "Could not create booking")
		}
		return
	}

	metrics.BookingsCreated.WithLabelValues("transport", "created").Inc()
	c.Created(booking)
}

// IndexTransport lists transport bookings matching the query filters.
func (bc *BookingController) IndexTransport(c *ctx.Context) {
	bookings, err := bc.bookings.ListTransportBookings(c.Context(), repositories.TransportBookingFilter{
		User:      c.Query("user"),
		Transport: c.Query("transport"),
		Status:    models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		c.Error(http.StatusInternalServerError, "Could not load bookings")
		return
	}
	c.Success(bookings)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,in=pending,confirmed,completed,cancelled"`
}

// UpdateStorageStatus moves a storage booking through its lifecycle.
func (bc *BookingController) UpdateStorageStatus(c *ctx.Context) {
	var req statusRequest
	if !c.BindJSON(&req) {
		return
	}

	booking, err := bc.bookings.UpdateStorageBookingStatus(c.Context(), c.Param("id"), models.BookingStatus(req.Status))
	if err != nil {
		bc.writeTransitionError(c, err, "Booking not found")
		return
	}

	metrics.BookingTransitions.WithLabelValues("storage", req.Status).Inc()
	c.Success(booking)
}

// UpdateTransportStatus moves a transport booking through its lifecycle.
func (bc *BookingController) UpdateTransportStatus(c *ctx.Context) {
	var req statusRequest
	if !c.BindJSON(&req) {
		return
	}

	booking, err := bc.bookings.UpdateTransportBookingStatus(c.Context(), c.Param("id"), models.BookingStatus(req.Status))
	if err != nil {
		bc.writeTransitionError(c, err, "Booking not found")
		return
	}

	metrics.BookingTransitions.WithLabelValues("transport", req.Status).Inc()
	c.Success(booking)
}

func (bc *BookingController) writeTransitionError(c *ctx.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(notFoundMsg)
	case errors.Is(err, services.ErrInvalidTransition):
		c.Error(http.StatusBadRequest, "Invalid status transition")
	default:
		c.Error(http.StatusInternalServerError, "Could not update booking")
	}
}
