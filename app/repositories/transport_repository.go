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

// TransportRepository handles database operations for vehicles.
type TransportRepository struct {
	col *mongo.Collection
}

func NewTransportRepository(db *database.Mongo) *TransportRepository {
	return &TransportRepository{col: db.Collection("transport")}
}

// Create persists a new vehicle listing. New vehicles start available.
func (r *TransportRepository) Create(ctx context.Context, t *models.Transport) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Availability == "" {
		t.Availability = models.TransportAvailable
	}

	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

// Find returns every vehicle matching the filter, in insertion order.
func (r *TransportRepository) Find(ctx context.Context, filter TransportFilter) ([]models.Transport, error) {
	cur, err := r.col.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Transport{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID looks up a vehicle by hex id.
func (r *TransportRepository) FindByID(ctx context.Context, id string) (models.Transport, error) {
	var t models.Transport
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return t, mongo.ErrNoDocuments
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	return t, err
}

// SetAvailability overwrites the availability marker.
func (r *TransportRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, availability string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"availability": availability, "updatedAt": time.Now()},
	})
	return err
}
