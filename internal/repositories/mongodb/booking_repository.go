package mongodb

import (
	"context"
	"time"

	"github.com/devevent/devevent-backend/internal/models"
	"github.com/devevent/devevent-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) repositories.BookingRepository {
	return &BookingRepository{
		collection: db.Collection("bookings"),
	}
}

// EnsureBookingIndexes indexes bookings by event for the per-event count
// query. The (eventId, email) pair is deliberately not a unique index;
// duplicate checking is an application-level rule.
func EnsureBookingIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("bookings").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventId", Value: 1}},
	})
	return err
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return nil
}

func (r *BookingRepository) FindByEventAndEmail(ctx context.Context, eventID primitive.ObjectID, email string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"eventId": eventID, "email": email}).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"eventId": eventID})
}
