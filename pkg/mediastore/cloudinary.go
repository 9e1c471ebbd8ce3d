package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/devevent/devevent-backend/internal/config"
)

// CloudinaryStore stores assets in a Cloudinary media folder
type CloudinaryStore struct {
	cld           *cloudinary.Cloudinary
	folder        string
	uploadTimeout time.Duration
	deleteTimeout time.Duration
}

// NewCloudinaryStore creates a Cloudinary-backed media store
func NewCloudinaryStore(cfg *config.Config) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}

	return &CloudinaryStore{
		cld:           cld,
		folder:        cfg.Cloudinary.Folder,
		uploadTimeout: time.Duration(cfg.Cloudinary.UploadTimeoutSeconds) * time.Second,
		deleteTimeout: time.Duration(cfg.Cloudinary.DeleteTimeoutSeconds) * time.Second,
	}, nil
}

// Upload pushes image bytes to Cloudinary and returns the hosted URL
// together with the public ID used to address the asset later.
func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader) (*Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		ResourceType: "image",
		Folder:       s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	if resp.SecureURL == "" || resp.PublicID == "" {
		return nil, errors.New("upload finished without a usable result")
	}

	return &Asset{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

// Delete removes an asset by public ID
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.deleteTimeout)
	defer cancel()

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}
