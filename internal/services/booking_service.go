package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/devevent/devevent-backend/internal/models"
	"github.com/devevent/devevent-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookingService handles booking-related business logic
type BookingService struct {
	bookingRepo repositories.BookingRepository
	eventRepo   repositories.EventRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repositories.BookingRepository, eventRepo repositories.EventRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
	}
}

// CreateBooking books a spot on an event for an email address. The
// event must exist and the (event, email) pair must not already hold a
// booking; that duplicate rule is enforced here, not by the store.
func (s *BookingService) CreateBooking(ctx context.Context, eventID, email string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(eventID))
	if err != nil {
		return nil, &ValidationError{Field: "eventId", Reason: "must be a valid event ID"}
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(normalized) {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	if _, err := s.eventRepo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if _, err := s.bookingRepo.FindByEventAndEmail(ctx, oid, normalized); err == nil {
		return nil, ErrDuplicateBooking
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	booking := &models.Booking{
		EventID: oid,
		Email:   normalized,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
