package mediastore

import (
	"context"
	"io"
)

// Asset is a stored media asset addressed by its public ID
type Asset struct {
	URL      string
	PublicID string
}

// Store represents a remote media store interface
type Store interface {
	Upload(ctx context.Context, r io.Reader) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
}
