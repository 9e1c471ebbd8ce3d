package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking reserves a spot on an event for an email address.
// Uniqueness of (eventId, email) is enforced by the booking service,
// not by a store constraint.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"eventId" json:"eventId"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
