package models

import "time"

// Location is a named place in the hotel (a floor, the pool bar, ...).
type Location struct {
	ID        string    `bson:"_id" json:"_id"`
	Location  string    `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// QRCode is a printable code bound to a location, e.g. one per room.
type QRCode struct {
	ID        string    `bson:"_id" json:"_id"`
	Location  string    `bson:"location" json:"location"` // Location.ID
	Label     string    `bson:"label" json:"label"`
	QRCodeURL string    `bson:"qrCodeUrl" json:"qrCodeUrl"`
	PublicID  string    `bson:"publicId" json:"publicId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// QRCodeView is a QR code with its location populated.
type QRCodeView struct {
	ID        string    `json:"_id"`
	Location  *Location `json:"location"`
	Label     string    `json:"label"`
	QRCodeURL string    `json:"qrCodeUrl"`
	PublicID  string    `json:"publicId"`
	CreatedAt time.Time `json:"createdAt"`
}

// QRCodeGroup lists the QR codes of one location.
type QRCodeGroup struct {
	Location Location `json:"location"`
	QRCodes  []QRCode `json:"qrcodes"`
}

// QRCodeData is what a guest device learns from scanning a code.
type QRCodeData struct {
	ID         string `json:"_id"`
	Label      string `json:"label"`
	LocationID string `json:"locationId"`
	Location   string `json:"location"`
}
