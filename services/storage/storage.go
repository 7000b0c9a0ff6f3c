package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a new Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorage{cld: cld, cloudName: cloudName}
}

func (s *CloudinaryStorage) upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*Asset, error) {
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &Asset{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// UploadImage uploads an image into folder and returns its URL and public id.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, folder string) (*Asset, error) {
	return s.upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
}

// UploadBytes uploads raw bytes under an explicit public id.
func (s *CloudinaryStorage) UploadBytes(ctx context.Context, data []byte, folder, publicID string) (*Asset, error) {
	return s.upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("CloudinaryStorage: delete rejected: %s", result.Error.Message)
	}
	return nil
}
