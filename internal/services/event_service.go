package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/devevent/devevent-backend/internal/models"
	"github.com/devevent/devevent-backend/internal/repositories"
	"github.com/devevent/devevent-backend/internal/utils"
	"github.com/devevent/devevent-backend/pkg/mediastore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	maxSlugAttempts = 5
	maxImageBytes   = 5 * 1024 * 1024
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// The ten string fields callers may set on an event
var eventStringFields = []string{
	"title", "description", "overview", "venue", "location",
	"date", "time", "mode", "audience", "organizer",
}

// ImageUpload carries the bytes of an incoming image together with the
// content type declared by the client
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// UpdateEventInput is a partial update: only the fields present in
// Fields are touched, and Image is optional.
type UpdateEventInput struct {
	Fields map[string]string
	Image  *ImageUpload
}

// CreateEventInput requires every field and a mandatory image
type CreateEventInput struct {
	Fields map[string]string
	Image  *ImageUpload
}

// EventService handles event-related business logic
type EventService struct {
	eventRepo   repositories.EventRepository
	bookingRepo repositories.BookingRepository
	media       mediastore.Store
	logger      *slog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository, bookingRepo repositories.BookingRepository, media mediastore.Store, logger *slog.Logger) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		media:       media,
		logger:      logger,
	}
}

// GetEventBySlug retrieves one event and its booking count
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, int64, error) {
	event, err := s.eventRepo.FindBySlug(ctx, sanitizeSlug(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, 0, ErrEventNotFound
		}
		return nil, 0, err
	}

	count, err := s.bookingRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, 0, err
	}
	return event, count, nil
}

// ListEvents retrieves all events, newest first
func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// GetSimilarEvents retrieves events sharing at least one tag with the
// event identified by slug, excluding that event itself
func (s *EventService) GetSimilarEvents(ctx context.Context, slug string) ([]*models.Event, error) {
	event, err := s.eventRepo.FindBySlug(ctx, sanitizeSlug(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if len(event.Tags) == 0 {
		return []*models.Event{}, nil
	}
	return s.eventRepo.FindByTags(ctx, event.Tags, event.ID)
}

// CreateEvent validates the full field set, uploads the mandatory image
// and inserts the event. A failed insert triggers a compensating delete
// of the freshly uploaded asset.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	if input.Image == nil {
		return nil, &ValidationError{Field: "image", Reason: "file is required"}
	}
	if !allowedImageTypes[input.Image.ContentType] {
		return nil, ErrUnsupportedMediaType
	}
	if len(input.Image.Data) > maxImageBytes {
		return nil, ErrPayloadTooLarge
	}

	values := make(map[string]string, len(eventStringFields))
	for _, field := range eventStringFields {
		value, err := validateStringField(field, input.Fields[field])
		if err != nil {
			return nil, err
		}
		values[field] = value
	}

	date, err := utils.NormalizeDate(values["date"])
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
	}

	tags, err := parseStringList("tags", orEmptyArray(input.Fields["tags"]))
	if err != nil {
		return nil, err
	}
	agenda, err := parseStringList("agenda", orEmptyArray(input.Fields["agenda"]))
	if err != nil {
		return nil, err
	}

	slug, err := s.resolveUniqueSlug(ctx, values["title"], primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	asset, err := s.media.Upload(ctx, bytes.NewReader(input.Image.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	event := &models.Event{
		Title:         values["title"],
		Slug:          slug,
		Description:   values["description"],
		Overview:      values["overview"],
		Image:         asset.URL,
		ImagePublicID: asset.PublicID,
		Venue:         values["venue"],
		Location:      values["location"],
		Date:          date,
		Time:          utils.NormalizeTime(values["time"]),
		Mode:          values["mode"],
		Audience:      values["audience"],
		Agenda:        agenda,
		Organizer:     values["organizer"],
		Tags:          tags,
		Version:       1,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if cleanupErr := s.media.Delete(ctx, asset.PublicID); cleanupErr != nil {
			s.logger.Error("failed to clean up uploaded asset after insert error",
				"publicId", asset.PublicID, "error", cleanupErr)
		}
		return nil, err
	}
	return event, nil
}

// UpdateEvent applies a partial field update to the event identified by
// slug. The slug is regenerated only when the title changes, date and
// time are normalized, and an identical field set with no new image is
// an idempotent no-op. The commit itself is a single version-checked
// conditional write.
func (s *EventService) UpdateEvent(ctx context.Context, slug string, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindBySlug(ctx, sanitizeSlug(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	staged := bson.M{}
	for _, field := range eventStringFields {
		raw, ok := input.Fields[field]
		if !ok {
			continue
		}
		value, err := validateStringField(field, raw)
		if err != nil {
			return nil, err
		}
		staged[field] = value
	}

	if v, ok := staged["date"]; ok {
		normalized, err := utils.NormalizeDate(v.(string))
		if err != nil {
			return nil, &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
		}
		staged["date"] = normalized
	}
	if v, ok := staged["time"]; ok {
		staged["time"] = utils.NormalizeTime(v.(string))
	}

	if raw, ok := input.Fields["tags"]; ok {
		tags, err := parseStringList("tags", raw)
		if err != nil {
			return nil, err
		}
		staged["tags"] = tags
	}
	if raw, ok := input.Fields["agenda"]; ok {
		agenda, err := parseStringList("agenda", raw)
		if err != nil {
			return nil, err
		}
		staged["agenda"] = agenda
	}

	if v, ok := staged["title"]; ok && v.(string) != event.Title {
		newSlug, err := s.resolveUniqueSlug(ctx, v.(string), event.ID)
		if err != nil {
			return nil, err
		}
		staged["slug"] = newSlug
	}

	// Idempotent no-op: nothing differs and no new image was supplied
	if input.Image == nil && !hasChanges(event, staged) {
		return event, nil
	}

	return s.commitWithAsset(ctx, event, staged, input.Image)
}

// commitWithAsset coordinates the asset replacement around the
// version-checked commit: upload the new image first, roll the upload
// back if the commit fails, and delete the superseded asset only after
// the commit succeeded. Cleanup failures are logged, never escalated,
// so they cannot mask the original error.
func (s *EventService) commitWithAsset(ctx context.Context, event *models.Event, staged bson.M, image *ImageUpload) (*models.Event, error) {
	var uploaded *mediastore.Asset
	if image != nil {
		if !allowedImageTypes[image.ContentType] {
			return nil, ErrUnsupportedMediaType
		}
		if len(image.Data) > maxImageBytes {
			return nil, ErrPayloadTooLarge
		}

		asset, err := s.media.Upload(ctx, bytes.NewReader(image.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		uploaded = asset
		staged["image"] = asset.URL
		staged["imagePublicId"] = asset.PublicID
	}

	updated, err := s.eventRepo.UpdateWithVersion(ctx, event.ID, event.Version, staged)
	if err != nil {
		if uploaded != nil {
			if cleanupErr := s.media.Delete(ctx, uploaded.PublicID); cleanupErr != nil {
				s.logger.Error("failed to clean up uploaded asset after commit error",
					"publicId", uploaded.PublicID, "error", cleanupErr)
			}
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	if uploaded != nil && event.ImagePublicID != "" && event.ImagePublicID != uploaded.PublicID {
		if cleanupErr := s.media.Delete(ctx, event.ImagePublicID); cleanupErr != nil {
			s.logger.Warn("failed to remove superseded asset",
				"publicId", event.ImagePublicID, "error", cleanupErr)
		}
	}

	return updated, nil
}

// resolveUniqueSlug finds a slug no other event holds, retrying with a
// timestamp-and-attempt suffix up to the attempt budget.
func (s *EventService) resolveUniqueSlug(ctx context.Context, title string, excludeID primitive.ObjectID) (string, error) {
	base := utils.GenerateSlug(title)
	if base == "" {
		return "", &ValidationError{Field: "title", Reason: "does not produce a usable slug"}
	}

	candidate := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		taken, err := s.eventRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d-%d", base, time.Now().UnixMilli(), attempt)
	}
	return "", ErrSlugGeneration
}

func sanitizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func validateStringField(field, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &ValidationError{Field: field, Reason: "cannot be empty"}
	}

	switch field {
	case "title":
		if len(value) > models.MaxTitleLength {
			return "", &ValidationError{Field: field, Reason: fmt.Sprintf("must be less than %d characters", models.MaxTitleLength)}
		}
	case "description":
		if len(value) > models.MaxDescriptionLength {
			return "", &ValidationError{Field: field, Reason: fmt.Sprintf("must be less than %d characters", models.MaxDescriptionLength)}
		}
	case "overview":
		if len(value) > models.MaxOverviewLength {
			return "", &ValidationError{Field: field, Reason: fmt.Sprintf("must be less than %d characters", models.MaxOverviewLength)}
		}
	case "mode":
		if !models.ValidMode(value) {
			return "", &ValidationError{Field: field, Reason: "must be online, offline, or hybrid"}
		}
	}
	return value, nil
}

// parseStringList decodes a JSON-encoded array, coercing every element
// to a string the way the form encoding expects
func parseStringList(field, raw string) ([]string, error) {
	var parsed []interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ValidationError{Field: field, Reason: "must be a valid JSON array"}
	}
	if len(parsed) == 0 {
		return nil, &ValidationError{Field: field, Reason: "must contain at least one item"}
	}

	items := make([]string, len(parsed))
	for i, v := range parsed {
		items[i] = fmt.Sprint(v)
	}
	return items, nil
}

func orEmptyArray(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "[]"
	}
	return raw
}

func hasChanges(event *models.Event, staged bson.M) bool {
	for key, value := range staged {
		switch key {
		case "tags":
			if !slices.Equal(event.Tags, value.([]string)) {
				return true
			}
		case "agenda":
			if !slices.Equal(event.Agenda, value.([]string)) {
				return true
			}
		default:
			if currentFieldValue(event, key) != value.(string) {
				return true
			}
		}
	}
	return false
}

func currentFieldValue(event *models.Event, field string) string {
	switch field {
	case "title":
		return event.Title
	case "slug":
		return event.Slug
	case "description":
		return event.Description
	case "overview":
		return event.Overview
	case "venue":
		return event.Venue
	case "location":
		return event.Location
	case "date":
		return event.Date
	case "time":
		return event.Time
	case "mode":
		return event.Mode
	case "audience":
		return event.Audience
	case "organizer":
		return event.Organizer
	}
	return ""
}
