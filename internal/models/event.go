package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventMode describes how an event is attended
type EventMode string

const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
	ModeHybrid  EventMode = "hybrid"
)

// ValidMode reports whether the given string is a known event mode
func ValidMode(mode string) bool {
	switch EventMode(mode) {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// Field length ceilings enforced on create and update
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxOverviewLength    = 500
)

// Event represents a developer event listing
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Overview      string             `bson:"overview" json:"overview"`
	Image         string             `bson:"image" json:"image"`
	ImagePublicID string             `bson:"imagePublicId" json:"imagePublicId"`
	Venue         string             `bson:"venue" json:"venue"`
	Location      string             `bson:"location" json:"location"`
	Date          string             `bson:"date" json:"date"`
	Time          string             `bson:"time" json:"time"`
	Mode          string             `bson:"mode" json:"mode"`
	Audience      string             `bson:"audience" json:"audience"`
	Agenda        []string           `bson:"agenda" json:"agenda"`
	Organizer     string             `bson:"organizer" json:"organizer"`
	Tags          []string           `bson:"tags" json:"tags"`
	Version       int64              `bson:"version" json:"version"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
