package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/pkg/database"
)

// StorageRepository handles database operations for storage facilities.
type StorageRepository struct {
	col *mongo.Collection
}

func NewStorageRepository(db *database.Mongo) *StorageRepository {
	return &StorageRepository{col: db.Collection("storage")}
}

// Create persists a new storage facility. The caller decides the initial
// Available value; zero is a valid state (a fully committed facility), so
// the repository never rewrites it.
func (r *StorageRepository) Create(ctx context.Context, s *models.Storage) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

// Find returns every facility matching the filter, in insertion order.
func (r *StorageRepository) Find(ctx context.Context, filter StorageFilter) ([]models.Storage, error) {
	cur, err := r.col.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Storage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID looks up a facility by hex id.
func (r *StorageRepository) FindByID(ctx context.Context, id string) (models.Storage, error) {
	var s models.Storage
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return s, mongo.ErrNoDocuments
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	return s, err
}

// IncAvailable adjusts the available-capacity counter by delta
// (negative to consume capacity). The write is a plain $inc; the
// capacity check happens in the service layer before this call.
func (r *StorageRepository) IncAvailable(ctx context.Context, id primitive.ObjectID, delta float64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"available": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}
