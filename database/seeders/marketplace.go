package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/pkg/auth"
	"github.com/agrisetu/agrisetu/pkg/database"
)

func init() {
	Register("marketplace", SeedMarketplace)
}

// SeedMarketplace inserts a small demo dataset: one user per account type,
// a few crop listings, a storage facility, and a transport vehicle.
// Every demo account's password is "password123".
func SeedMarketplace(ctx context.Context, db *database.Mongo) error {
	users := repositories.NewUserRepository(db)
	crops := repositories.NewCropRepository(db)
	facilities := repositories.NewStorageRepository(db)
	vehicles := repositories.NewTransportRepository(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	demo := []models.User{
		{Name: "Asha Patil", Email: "asha@agrisetu.in", Phone: "9876500001", Location: "Nashik", UserType: models.UserTypeFarmer},
		{Name: "Vikram Mehta", Email: "vikram@agrisetu.in", Phone: "9876500002", Location: "Pune", UserType: models.UserTypeBuyer},
		{Name: "Nashik Cold Chain Pvt Ltd", Email: "coldchain@agrisetu.in", Phone: "9876500003", Location: "Nashik", UserType: models.UserTypeStorage},
		{Name: "Deccan Logistics", Email: "deccan@agrisetu.in", Phone: "9876500004", Location: "Pune", UserType: models.UserTypeTransporter},
		{Name: "Godavari Farmers Co-op", Email: "godavari@agrisetu.in", Phone: "9876500005", Location: "Nashik", UserType: models.UserTypeCooperative},
	}

	ids := make(map[models.UserType]primitive.ObjectID, len(demo))
	for i := range demo {
		demo[i].Password = hash
		if err := users.Create(ctx, &demo[i]); err != nil {
			// likely already seeded; stop rather than duplicating data
			return err
		}
		ids[demo[i].UserType] = demo[i].ID
	}

	harvest := time.Now().AddDate(0, 0, -14)
	for _, crop := range []models.Crop{
		{Name: "Onion", Farmer: ids[models.UserTypeFarmer], Location: "Nashik", Quantity: 25, Unit: "ton", Price: 1800, Quality: "Grade A", HarvestDate: harvest, Status: models.CropAvailable},
		{Name: "Tomato", Farmer: ids[models.UserTypeFarmer], Location: "Nashik", Quantity: 8, Unit: "ton", Price: 2400, Quality: "Grade B", HarvestDate: harvest, Status: models.CropAvailable},
		{Name: "Grapes", Farmer: ids[models.UserTypeCooperative], Location: "Nashik", Quantity: 12, Unit: "ton", Price: 5200, Quality: "Export", HarvestDate: harvest, Status: models.CropAvailable},
	} {
		crop := crop
		if err := crops.Create(ctx, &crop); err != nil {
			return err
		}
	}

	facility := models.Storage{
		Name:        "Nashik Cold Store",
		Provider:    ids[models.UserTypeStorage],
		Location:    "Nashik",
		Capacity:    500,
		Available:   500,
		PricePerTon: 1000,
		Features:    []string{"cold storage", "24x7 security", "pest control"},
	}
	if err := facilities.Create(ctx, &facility); err != nil {
		return err
	}

	vehicle := models.Transport{
		Name:         "Tata 407",
		Provider:     ids[models.UserTypeTransporter],
		Location:     "Pune",
		VehicleType:  "mini truck",
		Capacity:     4,
		PricePerKm:   45,
		Availability: models.TransportAvailable,
		Features:     []string{"refrigerated"},
	}
	return vehicles.Create(ctx, &vehicle)
}
