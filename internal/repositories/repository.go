package repositories

import (
	"context"

	"github.com/devevent/devevent-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	FindAll(ctx context.Context) ([]*models.Event, error)
	FindByTags(ctx context.Context, tags []string, excludeID primitive.ObjectID) ([]*models.Event, error)
	// SlugExists reports whether any event other than excludeID holds the
	// given slug. A zero excludeID checks against every event.
	SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error)
	// UpdateWithVersion applies fields to the event only if its stored
	// version still equals expectedVersion, incrementing the version and
	// refreshing updatedAt in the same atomic write. It returns
	// mongo.ErrNoDocuments when no record matched, which callers treat
	// as a concurrent-update conflict.
	UpdateWithVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int64, fields bson.M) (*models.Event, error)
}

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByEventAndEmail(ctx context.Context, eventID primitive.ObjectID, email string) (*models.Booking, error)
	CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}
