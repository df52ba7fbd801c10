package services

import (
	"math"
	"time"
)

// daysPerMonth is the proration constant: pricePerTon is a monthly rate
// scaled by the booked day count against a 30-day month.
const daysPerMonth = 30

// StorageBookingPrice computes the total price of storing quantity tons
// from start to end at a monthly pricePerTon rate:
//
//	pricePerTon * quantity * ceil(days) / 30
//
// Partial days count as a full day. The result is fractional; no rounding
// is applied here, callers decide their own display rounding.
func StorageBookingPrice(pricePerTon, quantity float64, start, end time.Time) float64 {
	days := math.Ceil(end.Sub(start).Hours() / 24)
	return pricePerTon * quantity * days / daysPerMonth
}

// TransportBookingPrice computes the flat linear haul price:
//
//	pricePerKm * distance
func TransportBookingPrice(pricePerKm, distance float64) float64 {
	return pricePerKm * distance
}
