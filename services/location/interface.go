package location

import (
	"context"
	"time"

	locationRepo "roomservice/database/repository/location"
	qrcodeRepo "roomservice/database/repository/qrcode"
	"roomservice/models"
	"roomservice/services/storage"
	"roomservice/services/tasks"
)

// QRFolder is the storage folder for rendered QR codes.
const QRFolder = "hotel_qrs"

// QRImageSize is the edge length of a rendered QR PNG, in pixels.
const QRImageSize = 256

type LocationService interface {
	ListLocations() ([]models.Location, error)
	CreateLocation(name string) (*models.Location, error)
	// UpdateLocation renames a location and re-renders every QR code bound to it.
	UpdateLocation(ctx context.Context, id, name string) (*LocationUpdate, error)
	DeleteLocation(ctx context.Context, id string) (*DeletedLocation, error)

	CreateQRCode(ctx context.Context, locationID, label string) (*models.QRCode, error)
	ListQRCodes() ([]models.QRCodeView, error)
	ListGrouped() ([]models.QRCodeGroup, error)
	ListByLocation(locationID string) ([]models.QRCodeView, error)
	GetQRCodeData(id string) (*models.QRCodeData, error)
	DeleteQRCode(ctx context.Context, id string) (*models.QRCode, error)
}

type DefaultLocationService struct {
	Locations locationRepo.LocationRepository
	QRCodes   qrcodeRepo.QRCodeRepository
	Storage   storage.StorageService
	Assets    tasks.AssetRemover
	// BaseURL is the guest menu address; codes encode BaseURL/qr/<id>.
	// When empty they encode {"location","label"} instead.
	BaseURL string
	Now     func() time.Time
}

// LocationUpdate is the result of a rename.
type LocationUpdate struct {
	Location       models.Location `json:"updatedLocation"`
	UpdatedQRCodes int             `json:"updatedQRCodes"`
}

// DeletedLocation reports what a location delete removed.
type DeletedLocation struct {
	Location models.Location `json:"deletedLocation"`
	QRCodes  []models.QRCode `json:"deletedQRCodes"`
}

func (s *DefaultLocationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
