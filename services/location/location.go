package location

import (
	"context"
	"errors"
	"strings"

	"roomservice/database"
	"roomservice/models"
	"roomservice/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultLocationService) ListLocations() ([]models.Location, error) {
	return s.Locations.GetAll()
}

func (s *DefaultLocationService) CreateLocation(name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.BadRequest("location is required")
	}
	existing, err := s.Locations.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Conflict("location already exists")
	}

	loc := &models.Location{ID: uuid.New().String(), Location: name}
	if err := s.Locations.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *DefaultLocationService) UpdateLocation(ctx context.Context, id, name string) (*LocationUpdate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.BadRequest("location is required")
	}
	if other, err := s.Locations.GetByName(name); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, utils.Conflict("location already exists")
	}

	updated, err := s.Locations.Rename(id, name)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("location not found")
		}
		return nil, err
	}

	codes, err := s.QRCodes.GetByLocation(id)
	if err != nil {
		return nil, err
	}
	count := 0
	for _, qr := range codes {
		if err := s.rerender(ctx, qr, *updated); err != nil {
			utils.GetLogger().Error("failed to regenerate QR code",
				zap.String("qrcodeId", qr.ID), zap.Error(err))
			continue
		}
		count++
	}
	return &LocationUpdate{Location: *updated, UpdatedQRCodes: count}, nil
}

// DeleteLocation removes the location, its QR codes and their images.
func (s *DefaultLocationService) DeleteLocation(ctx context.Context, id string) (*DeletedLocation, error) {
	existing, err := s.Locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("location not found")
	}

	codes, err := s.QRCodes.DeleteByLocation(id)
	if err != nil {
		return nil, err
	}
	if err := s.Locations.Delete(id); err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	assets := make([]string, 0, len(codes))
	for _, qr := range codes {
		assets = append(assets, qr.PublicID)
	}
	s.Assets.RemoveAssets(ctx, assets...)
	return &DeletedLocation{Location: *existing, QRCodes: codes}, nil
}
