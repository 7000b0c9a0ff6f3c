package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"roomservice/database"
	"roomservice/models"
	"roomservice/utils"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// content is the text a QR code encodes.
func (s *DefaultLocationService) content(qrID string, loc models.Location, label string) (string, error) {
	if base := strings.TrimRight(s.BaseURL, "/"); base != "" {
		return base + "/qr/" + qrID, nil
	}
	b, err := json.Marshal(struct {
		Location string `json:"location"`
		Label    string `json:"label"`
	}{loc.Location, label})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *DefaultLocationService) publicID(loc models.Location, label string) string {
	slug := func(v string) string { return strings.Join(strings.Fields(v), "_") }
	return fmt.Sprintf("qr-%s-%s-%d", slug(loc.Location), slug(label), s.now().UnixMilli())
}

// render encodes and uploads one QR image.
func (s *DefaultLocationService) render(ctx context.Context, qrID string, loc models.Location, label string) (url, publicID string, err error) {
	text, err := s.content(qrID, loc, label)
	if err != nil {
		return "", "", err
	}
	png, err := qrcode.Encode(text, qrcode.Medium, QRImageSize)
	if err != nil {
		return "", "", fmt.Errorf("encode qr: %w", err)
	}
	asset, err := s.Storage.UploadBytes(ctx, png, QRFolder, s.publicID(loc, label))
	if err != nil {
		return "", "", err
	}
	return asset.URL, asset.PublicID, nil
}

func (s *DefaultLocationService) rerender(ctx context.Context, qr models.QRCode, loc models.Location) error {
	url, publicID, err := s.render(ctx, qr.ID, loc, qr.Label)
	if err != nil {
		return err
	}
	if _, err := s.QRCodes.UpdateSetDocument(qr.ID, bson.M{"qrCodeUrl": url, "publicId": publicID}); err != nil {
		s.Assets.RemoveAssets(ctx, publicID)
		return err
	}
	if qr.PublicID != publicID {
		s.Assets.RemoveAssets(ctx, qr.PublicID)
	}
	return nil
}

func (s *DefaultLocationService) CreateQRCode(ctx context.Context, locationID, label string) (*models.QRCode, error) {
	label = strings.TrimSpace(label)
	if locationID == "" || label == "" {
		return nil, utils.BadRequest("location ID and label are required")
	}
	loc, err := s.Locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, utils.NotFound("location not found")
	}

	qr := &models.QRCode{ID: uuid.New().String(), Location: loc.ID, Label: label}
	qr.QRCodeURL, qr.PublicID, err = s.render(ctx, qr.ID, *loc, label)
	if err != nil {
		return nil, fmt.Errorf("CreateQRCode: %w", err)
	}
	if err := s.QRCodes.Create(qr); err != nil {
		s.Assets.RemoveAssets(ctx, qr.PublicID)
		return nil, err
	}
	return qr, nil
}

// populate joins each code with its location. Codes whose location is gone
// keep a nil Location.
func (s *DefaultLocationService) populate(codes []models.QRCode) ([]models.QRCodeView, error) {
	locations, err := s.Locations.GetAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Location, len(locations))
	for i := range locations {
		byID[locations[i].ID] = &locations[i]
	}

	views := make([]models.QRCodeView, 0, len(codes))
	for _, qr := range codes {
		views = append(views, models.QRCodeView{
			ID:        qr.ID,
			Location:  byID[qr.Location],
			Label:     qr.Label,
			QRCodeURL: qr.QRCodeURL,
			PublicID:  qr.PublicID,
			CreatedAt: qr.CreatedAt,
		})
	}
	return views, nil
}

func (s *DefaultLocationService) ListQRCodes() ([]models.QRCodeView, error) {
	codes, err := s.QRCodes.GetAll()
	if err != nil {
		return nil, err
	}
	return s.populate(codes)
}

// ListGrouped groups codes by location in order of each location's newest code.
func (s *DefaultLocationService) ListGrouped() ([]models.QRCodeGroup, error) {
	views, err := s.ListQRCodes()
	if err != nil {
		return nil, err
	}

	groups := []models.QRCodeGroup{}
	index := map[string]int{}
	for _, v := range views {
		if v.Location == nil {
			continue
		}
		i, ok := index[v.Location.ID]
		if !ok {
			i = len(groups)
			index[v.Location.ID] = i
			groups = append(groups, models.QRCodeGroup{Location: *v.Location, QRCodes: []models.QRCode{}})
		}
		groups[i].QRCodes = append(groups[i].QRCodes, models.QRCode{
			ID:        v.ID,
			Location:  v.Location.ID,
			Label:     v.Label,
			QRCodeURL: v.QRCodeURL,
			PublicID:  v.PublicID,
			CreatedAt: v.CreatedAt,
		})
	}
	return groups, nil
}

func (s *DefaultLocationService) ListByLocation(locationID string) ([]models.QRCodeView, error) {
	if locationID == "" {
		return nil, utils.BadRequest("locationId is required")
	}
	codes, err := s.QRCodes.GetByLocation(locationID)
	if err != nil {
		return nil, err
	}
	return s.populate(codes)
}

// GetQRCodeData resolves a scanned code for a guest.
func (s *DefaultLocationService) GetQRCodeData(id string) (*models.QRCodeData, error) {
	qr, err := s.QRCodes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qr == nil {
		return nil, utils.NotFound("QR code not found")
	}
	data := &models.QRCodeData{ID: qr.ID, Label: qr.Label, LocationID: qr.Location}
	loc, err := s.Locations.GetByID(qr.Location)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		data.Location = loc.Location
	}
	return data, nil
}

func (s *DefaultLocationService) DeleteQRCode(ctx context.Context, id string) (*models.QRCode, error) {
	qr, err := s.QRCodes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qr == nil {
		return nil, utils.NotFound("QR code not found")
	}
	if err := s.QRCodes.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("QR code not found")
		}
		return nil, err
	}
	s.Assets.RemoveAssets(ctx, qr.PublicID)
	return qr, nil
}
