package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
)

func f64(v float64) *float64 { return &v }

func TestCropFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, CropFilter{}.BSON())
}

func TestCropFilterPriceRange(t *testing.T) {
	q := CropFilter{MinPrice: f64(100), MaxPrice: f64(500)}.BSON()
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 100.0, "$lte": 500.0}}, q)

	q = CropFilter{MinPrice: f64(100)}.BSON()
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 100.0}}, q)
}

func TestCropFilterNameIsCaseInsensitiveRegex(t *testing.T) {
	q := CropFilter{Name: "wheat"}.BSON()
	re, ok := q["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "wheat", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestCropFilterFarmerMustBeObjectID(t *testing.T) {
	// A malformed id must narrow the result to nothing, never fall away
	// and return the whole collection.
	q := CropFilter{Farmer: "not-an-id"}.BSON()
	assert.Equal(t, primitive.NilObjectID, q["farmer"])

	id := primitive.NewObjectID()
	q = CropFilter{Farmer: id.Hex()}.BSON()
	assert.Equal(t, id, q["farmer"])
}

func TestCropFilterStatus(t *testing.T) {
	q := CropFilter{Status: models.CropAvailable}.BSON()
	assert.Equal(t, models.CropAvailable, q["status"])
}

func TestStorageFilter(t *testing.T) {
	q := StorageFilter{Location: "Nashik", Feature: "cold storage", MinAvailable: f64(25)}.BSON()
	assert.Equal(t, "cold storage", q["features"])
	assert.Equal(t, bson.M{"$gte": 25.0}, q["available"])
	re, ok := q["location"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "Nashik", re.Pattern)
}

func TestTransportFilter(t *testing.T) {
	q := TransportFilter{VehicleType: "truck", Availability: models.TransportAvailable, MinCapacity: f64(5)}.BSON()
	assert.Equal(t, "truck", q["vehicleType"])
	assert.Equal(t, models.TransportAvailable, q["availability"])
	assert.Equal(t, bson.M{"$gte": 5.0}, q["capacity"])
}

func TestBookingFilters(t *testing.T) {
	farmer := primitive.NewObjectID()
	q := StorageBookingFilter{Farmer: farmer.Hex(), Status: models.BookingPending}.BSON()
	assert.Equal(t, farmer, q["farmer"])
	assert.Equal(t, models.BookingPending, q["status"])

	assert.Equal(t, bson.M{}, TransportBookingFilter{}.BSON())
}
