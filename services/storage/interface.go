package storage

import (
	"context"
	"io"
)

// Asset is an uploaded file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// StorageService defines the interface for image storage operations.
type StorageService interface {
	// UploadImage stores r in folder under a generated public id.
	UploadImage(ctx context.Context, r io.Reader, folder string) (*Asset, error)
	// UploadBytes stores data in folder under publicID, replacing any
	// existing asset with that id.
	UploadBytes(ctx context.Context, data []byte, folder, publicID string) (*Asset, error)
	DeleteFile(ctx context.Context, publicID string) error
}
