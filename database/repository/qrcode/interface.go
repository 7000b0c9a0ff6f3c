package qrcodeRepo

import (
	"roomservice/models"

	"go.mongodb.org/mongo-driver/bson"
)

// QRCodeRepository defines methods for QR code data access.
type QRCodeRepository interface {
	// GetAll lists QR codes, newest first.
	GetAll() ([]models.QRCode, error)
	// GetByID returns (nil, nil) when the code does not exist.
	GetByID(id string) (*models.QRCode, error)
	GetByLocation(locationID string) ([]models.QRCode, error)
	Create(qr *models.QRCode) error
	UpdateSetDocument(id string, updateDoc bson.M) (*models.QRCode, error)
	Delete(id string) error
	// DeleteByLocation removes every code of a location and returns them.
	DeleteByLocation(locationID string) ([]models.QRCode, error)
}
