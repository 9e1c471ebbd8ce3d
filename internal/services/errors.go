package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEventNotFound means the referenced event does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrVersionConflict means another request updated the event between
	// this request's read and its conditional write. Callers should
	// re-fetch and retry the whole operation.
	ErrVersionConflict = errors.New("event was modified by a concurrent update")

	// ErrSlugGeneration means the bounded retry budget for finding a free
	// slug was exhausted
	ErrSlugGeneration = errors.New("failed to generate a unique slug")

	// ErrUnsupportedMediaType rejects image uploads outside the allow-list
	ErrUnsupportedMediaType = errors.New("only JPEG, PNG, and WebP images are allowed")

	// ErrPayloadTooLarge rejects image uploads over the size ceiling
	ErrPayloadTooLarge = errors.New("image size must not exceed 5MB")

	// ErrUploadFailed wraps remote media store upload errors
	ErrUploadFailed = errors.New("image upload failed")

	// ErrDuplicateBooking means the email has already booked the event
	ErrDuplicateBooking = errors.New("email has already booked this event")
)

// ValidationError reports malformed caller-supplied data for one field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
