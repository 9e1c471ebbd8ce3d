package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devevent/devevent-backend/internal/models"
	"github.com/devevent/devevent-backend/internal/services"
	"github.com/devevent/devevent-backend/pkg/mediastore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubEventRepo struct {
	event    *models.Event
	updateFn func(fields bson.M) (*models.Event, error)
}

func (s *stubEventRepo) Create(ctx context.Context, event *models.Event) error { return nil }
func (s *stubEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubEventRepo) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	if s.event != nil && slug == s.event.Slug {
		copied := *s.event
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (s *stubEventRepo) FindAll(ctx context.Context) ([]*models.Event, error) {
	return []*models.Event{}, nil
}
func (s *stubEventRepo) FindByTags(ctx context.Context, tags []string, excludeID primitive.ObjectID) ([]*models.Event, error) {
	return []*models.Event{}, nil
}
func (s *stubEventRepo) SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	return false, nil
}
func (s *stubEventRepo) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int64, fields bson.M) (*models.Event, error) {
	return s.updateFn(fields)
}

type stubBookingRepo struct{}

func (s *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) error { return nil }
func (s *stubBookingRepo) FindByEventAndEmail(ctx context.Context, eventID primitive.ObjectID, email string) (*models.Booking, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubBookingRepo) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return 7, nil
}

type stubMediaStore struct{}

func (s *stubMediaStore) Upload(ctx context.Context, r io.Reader) (*mediastore.Asset, error) {
	return &mediastore.Asset{URL: "https://cdn/x.png", PublicID: "DevEvent/x"}, nil
}
func (s *stubMediaStore) Delete(ctx context.Context, publicID string) error { return nil }

func storedEvent() *models.Event {
	return &models.Event{
		ID:            primitive.NewObjectID(),
		Title:         "React Summit 2025",
		Slug:          "react-summit-2025",
		Description:   "The biggest React conference of the year",
		Overview:      "Two days of talks",
		Image:         "https://cdn/old.png",
		ImagePublicID: "DevEvent/old",
		Venue:         "Beurs van Berlage",
		Location:      "Amsterdam",
		Date:          "2025-11-07",
		Time:          "14:30",
		Mode:          "offline",
		Audience:      "Frontend developers",
		Agenda:        []string{"Keynote"},
		Organizer:     "GitNation",
		Tags:          []string{"react"},
		Version:       1,
	}
}

func newTestRouter(repo *stubEventRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewEventService(repo, &stubBookingRepo{}, &stubMediaStore{}, logger)
	handler := NewEventHandler(svc, logger)

	router := gin.New()
	router.GET("/api/v1/events/:slug", handler.GetEventBySlug)
	router.PATCH("/api/v1/events/:slug", handler.UpdateEvent)
	return router
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpdateEventRoute_Success(t *testing.T) {
	event := storedEvent()
	repo := &stubEventRepo{
		event: event,
		updateFn: func(fields bson.M) (*models.Event, error) {
			updated := *event
			updated.Location = fields["location"].(string)
			updated.Version++
			return &updated, nil
		},
	}
	router := newTestRouter(repo)

	body, contentType := multipartBody(t, map[string]string{"location": "Rotterdam"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/react-summit-2025", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Event models.Event `json:"event"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rotterdam", resp.Event.Location)
	assert.Equal(t, int64(2), resp.Event.Version)
}

func TestUpdateEventRoute_EmptyFieldRejected(t *testing.T) {
	repo := &stubEventRepo{event: storedEvent()}
	router := newTestRouter(repo)

	body, contentType := multipartBody(t, map[string]string{"title": "   "})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/react-summit-2025", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEventRoute_NotFound(t *testing.T) {
	router := newTestRouter(&stubEventRepo{})

	body, contentType := multipartBody(t, map[string]string{"location": "Utrecht"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/missing", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEventRoute_Conflict(t *testing.T) {
	repo := &stubEventRepo{
		event: storedEvent(),
		updateFn: func(fields bson.M) (*models.Event, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	router := newTestRouter(repo)

	body, contentType := multipartBody(t, map[string]string{"location": "Utrecht"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/react-summit-2025", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetEventRoute_IncludesBookingsCount(t *testing.T) {
	router := newTestRouter(&stubEventRepo{event: storedEvent()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/react-summit-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BookingsCount int64 `json:"bookingsCount"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.BookingsCount)
}
