package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStorageBookingPriceThirtyDays(t *testing.T) {
	// 10 tons at 1000/ton-month for exactly 30 days is one full month.
	start := date(2026, time.January, 1)
	end := date(2026, time.January, 31)

	got := StorageBookingPrice(1000, 10, start, end)
	assert.InDelta(t, 10000, got, 1e-9)
}

func TestStorageBookingPriceProratesByDay(t *testing.T) {
	start := date(2026, time.March, 1)
	end := date(2026, time.March, 16) // 15 days, half a month

	got := StorageBookingPrice(1000, 10, start, end)
	assert.InDelta(t, 5000, got, 1e-9)
}

func TestStorageBookingPricePartialDayRoundsUp(t *testing.T) {
	start := date(2026, time.March, 1)
	end := start.Add(36 * time.Hour) // 1.5 days counts as 2

	got := StorageBookingPrice(300, 1, start, end)
	assert.InDelta(t, 300*1*2.0/30, got, 1e-9)
}

func TestStorageBookingPriceIsFractional(t *testing.T) {
	// 7 days of 1 ton at 1000: 1000*7/30 is not a whole number and must
	// be stored as-is.
	start := date(2026, time.June, 1)
	end := date(2026, time.June, 8)

	got := StorageBookingPrice(1000, 1, start, end)
	assert.InDelta(t, 233.333333, got, 1e-5)
}

func TestTransportBookingPrice(t *testing.T) {
	assert.InDelta(t, 10000, TransportBookingPrice(500, 20), 1e-9)
	assert.InDelta(t, 0, TransportBookingPrice(500, 0), 1e-9)
	assert.InDelta(t, 1237.5, TransportBookingPrice(82.5, 15), 1e-9)
}
