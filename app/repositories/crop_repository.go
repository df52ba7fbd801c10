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

// CropRepository handles database operations for crop listings.
type CropRepository struct {
	col *mongo.Collection
}

func NewCropRepository(db *database.Mongo) *CropRepository {
	return &CropRepository{col: db.Collection("crops")}
}

// Create persists a new crop listing.
func (r *CropRepository) Create(ctx context.Context, crop *models.Crop) error {
	now := time.Now()
	crop.CreatedAt = now
	crop.UpdatedAt = now
	if crop.Status == "" {
		crop.Status = models.CropAvailable
	}

	res, err := r.col.InsertOne(ctx, crop)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		crop.ID = oid
	}
	return nil
}

// Find returns every crop matching the filter, in insertion order.
func (r *CropRepository) Find(ctx context.Context, filter CropFilter) ([]models.Crop, error) {
	cur, err := r.col.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	crops := []models.Crop{}
	if err := cur.All(ctx, &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

// FindByID looks up a crop by hex id.
func (r *CropRepository) FindByID(ctx context.Context, id string) (models.Crop, error) {
	var crop models.Crop
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return crop, mongo.ErrNoDocuments
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&crop)
	return crop, err
}

// UpdateFields applies a partial $set update to a crop document.
func (r *CropRepository) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	fields["updatedAt"] = time.Now()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a crop listing.
func (r *CropRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
