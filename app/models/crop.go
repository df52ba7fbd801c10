package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropStatus is the sale lifecycle of a listed crop.
type CropStatus string

const (
	CropAvailable CropStatus = "available"
	CropReserved  CropStatus = "reserved"
	CropSold      CropStatus = "sold"
)

func (s CropStatus) Valid() bool {
	switch s {
	case CropAvailable, CropReserved, CropSold:
		return true
	}
	return false
}

// Crop is a harvested lot listed by a farmer.
type Crop struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Farmer      primitive.ObjectID `bson:"farmer" json:"farmer"`
	Location    string             `bson:"location" json:"location"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Unit        string             `bson:"unit" json:"unit"`
	Price       float64            `bson:"price" json:"price"`
	Quality     string             `bson:"quality,omitempty" json:"quality,omitempty"`
	HarvestDate time.Time          `bson:"harvestDate" json:"harvestDate"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status      CropStatus         `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
