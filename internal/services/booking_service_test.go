package services

import (
	"context"
	"testing"

	"github.com/devevent/devevent-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func bookingTestRepos(event *models.Event) (*mockBookingRepo, *mockEventRepo) {
	events := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
			if event != nil && id == event.ID {
				return event, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}
	bookings := &mockBookingRepo{
		findByEventAndEmailFn: func(ctx context.Context, eventID primitive.ObjectID, email string) (*models.Booking, error) {
			return nil, mongo.ErrNoDocuments
		},
		createFn: func(ctx context.Context, booking *models.Booking) error {
			booking.ID = primitive.NewObjectID()
			return nil
		},
	}
	return bookings, events
}

func TestCreateBooking_Success(t *testing.T) {
	event := sampleEvent()
	bookings, events := bookingTestRepos(event)
	svc := NewBookingService(bookings, events)

	booking, err := svc.CreateBooking(context.Background(), event.ID.Hex(), "  Gopher@Example.COM ")

	assert.NoError(t, err)
	assert.Equal(t, event.ID, booking.EventID)
	assert.Equal(t, "gopher@example.com", booking.Email, "email is stored lowercased and trimmed")
}

func TestCreateBooking_InvalidEventID(t *testing.T) {
	bookings, events := bookingTestRepos(nil)
	svc := NewBookingService(bookings, events)

	_, err := svc.CreateBooking(context.Background(), "not-an-id", "gopher@example.com")

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "eventId", vErr.Field)
}

func TestCreateBooking_InvalidEmail(t *testing.T) {
	event := sampleEvent()
	bookings, events := bookingTestRepos(event)
	svc := NewBookingService(bookings, events)

	for _, email := range []string{"", "no-at-sign", "two@@example.com ", "spaces in@example.com"} {
		_, err := svc.CreateBooking(context.Background(), event.ID.Hex(), email)

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr, "email %q", email)
		assert.Equal(t, "email", vErr.Field)
	}
}

func TestCreateBooking_EventMissing(t *testing.T) {
	bookings, events := bookingTestRepos(nil)
	svc := NewBookingService(bookings, events)

	_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID().Hex(), "gopher@example.com")

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateBooking_Duplicate(t *testing.T) {
	event := sampleEvent()
	bookings, events := bookingTestRepos(event)
	bookings.findByEventAndEmailFn = func(ctx context.Context, eventID primitive.ObjectID, email string) (*models.Booking, error) {
		return &models.Booking{EventID: eventID, Email: email}, nil
	}
	svc := NewBookingService(bookings, events)

	_, err := svc.CreateBooking(context.Background(), event.ID.Hex(), "gopher@example.com")

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}
