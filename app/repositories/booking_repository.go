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

// StorageBookingRepository handles the storageBookings collection.
type StorageBookingRepository struct {
	col *mongo.Collection
}

func NewStorageBookingRepository(db *database.Mongo) *StorageBookingRepository {
	return &StorageBookingRepository{col: db.Collection("storageBookings")}
}

func (r *StorageBookingRepository) Create(ctx context.Context, b *models.StorageBooking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (r *StorageBookingRepository) Find(ctx context.Context, filter StorageBookingFilter) ([]models.StorageBooking, error) {
	cur, err := r.col.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.StorageBooking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StorageBookingRepository) FindByID(ctx context.Context, id string) (models.StorageBooking, error) {
	var b models.StorageBooking
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return b, mongo.ErrNoDocuments
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	return b, err
}

// UpdateStatus overwrites the lifecycle status of a booking.
func (r *StorageBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TransportBookingRepository handles the transportBookings collection.
type TransportBookingRepository struct {
	col *mongo.Collection
}

func NewTransportBookingRepository(db *database.Mongo) *TransportBookingRepository {
	return &TransportBookingRepository{col: db.Collection("transportBookings")}
}

func (r *TransportBookingRepository) Create(ctx context.Context, b *models.TransportBooking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (r *TransportBookingRepository) Find(ctx context.Context, filter TransportBookingFilter) ([]models.TransportBooking, error) {
	cur, err := r.col.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.TransportBooking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransportBookingRepository) FindByID(ctx context.Context, id string) (models.TransportBooking, error) {
	var b models.TransportBooking
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return b, mongo.ErrNoDocuments
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	return b, err
}

func (r *TransportBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
