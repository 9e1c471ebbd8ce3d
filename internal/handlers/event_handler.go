package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/devevent/devevent-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *services.EventService
	logger       *slog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Events fetched successfully", "events": events})
}

// GetEventBySlug handles GET /events/:slug
func (h *EventHandler) GetEventBySlug(c *gin.Context) {
	event, bookingsCount, err := h.eventService.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Event fetched successfully",
		"event":         event,
		"bookingsCount": bookingsCount,
	})
}

// GetSimilarEvents handles GET /events/:slug/similar
func (h *EventHandler) GetSimilarEvents(c *gin.Context) {
	events, err := h.eventService.GetSimilarEvents(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Similar events fetched successfully", "events": events})
}

// CreateEvent handles POST /events (multipart form, mandatory image)
func (h *EventHandler) CreateEvent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	image, err := readImagePart(form, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), services.CreateEventInput{
		Fields: collectFormFields(form),
		Image:  image,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": event})
}

// UpdateEvent handles PATCH /events/:slug (multipart form, any subset
// of fields, optional image)
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	image, err := readImagePart(form, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), c.Param("slug"), services.UpdateEventInput{
		Fields: collectFormFields(form),
		Image:  image,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": event})
}

func (h *EventHandler) respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, services.ErrUnsupportedMediaType),
		errors.Is(err, services.ErrPayloadTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUploadFailed):
		h.logger.Error("image upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		// Detail stays server-side
		h.logger.Error("event request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func collectFormFields(form *multipart.Form) map[string]string {
	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if key == "image" || len(values) == 0 {
			continue
		}
		fields[key] = values[0]
	}
	return fields
}

// readImagePart returns the uploaded image bytes, or nil when the part
// is absent or empty
func readImagePart(form *multipart.Form, key string) (*services.ImageUpload, error) {
	files := form.File[key]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil
	}

	file, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.ImageUpload{
		Data:        data,
		ContentType: files[0].Header.Get("Content-Type"),
	}, nil
}
