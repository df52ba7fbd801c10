package repositories

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
)

// Filter builders translate the typed query parameters of each list endpoint
// into a conjunctive MongoDB filter. An empty filter matches the whole
// collection; name and location matching is case-insensitive substring.

// objectID parses an id filter value. Malformed input yields the zero
// ObjectID, which matches no stored document, so a bad id narrows the
// result to nothing instead of widening it to the whole collection.
func objectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// CropFilter narrows crop listings.
type CropFilter struct {
	Farmer   string
	Name     string
	Location string
	Quality  string
	MinPrice *float64
	MaxPrice *float64
	Status   models.CropStatus
}

// BSON renders the filter as a bson.M document.
func (f CropFilter) BSON() bson.M {
	q := bson.M{}
	if f.Farmer != "" {
		q["farmer"] = objectID(f.Farmer)
	}
	if f.Name != "" {
		q["name"] = primitive.Regex{Pattern: f.Name, Options: "i"}
	}
	if f.Location != "" {
		q["location"] = primitive.Regex{Pattern: f.Location, Options: "i"}
	}
	if f.Quality != "" {
		q["quality"] = f.Quality
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

// StorageFilter narrows storage facility listings.
type StorageFilter struct {
	Provider     string
	Location     string
	Feature      string
	MinAvailable *float64
}

func (f StorageFilter) BSON() bson.M {
	q := bson.M{}
	if f.Provider != "" {
		q["provider"] = objectID(f.Provider)
	}
	if f.Location != "" {
		q["location"] = primitive.Regex{Pattern: f.Location, Options: "i"}
	}
	if f.Feature != "" {
		q["features"] = f.Feature
	}
	if f.MinAvailable != nil {
		q["available"] = bson.M{"$gte": *f.MinAvailable}
	}
	return q
}

// TransportFilter narrows vehicle listings.
type TransportFilter struct {
	Provider     string
	Location     string
	VehicleType  string
	Feature      string
	MinCapacity  *float64
	Availability string
}

func (f TransportFilter) BSON() bson.M {
	q := bson.M{}
	if f.Provider != "" {
		q["provider"] = objectID(f.Provider)
	}
	if f.Location != "" {
		q["location"] = primitive.Regex{Pattern: f.Location, Options: "i"}
	}
	if f.VehicleType != "" {
		q["vehicleType"] = f.VehicleType
	}
	if f.Feature != "" {
		q["features"] = f.Feature
	}
	if f.MinCapacity != nil {
		q["capacity"] = bson.M{"$gte": *f.MinCapacity}
	}
	if f.Availability != "" {
		q["availability"] = f.Availability
	}
	return q
}

// StorageBookingFilter narrows storage booking listings.
type StorageBookingFilter struct {
	Farmer  string
	Storage string
	Status  models.BookingStatus
}

func (f StorageBookingFilter) BSON() bson.M {
	q := bson.M{}
	if f.Farmer != "" {
		q["farmer"] = objectID(f.Farmer)
	}
	if f.Storage != "" {
		q["storage"] = objectID(f.Storage)
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

// TransportBookingFilter narrows transport booking listings.
type TransportBookingFilter struct {
	User      string
	Transport string
	Status    models.BookingStatus
}

func (f TransportBookingFilter) BSON() bson.M {
	q := bson.M{}
	if f.User != "" {
		q["user"] = objectID(f.User)
	}
	if f.Transport != "" {
		q["transport"] = objectID(f.Transport)
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}
