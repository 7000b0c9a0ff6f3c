package order

import (
	"io"
	"time"

	locationRepo "roomservice/database/repository/location"
	orderRepo "roomservice/database/repository/order"
	qrcodeRepo "roomservice/database/repository/qrcode"
	subcategoryRepo "roomservice/database/repository/subcategory"
	"roomservice/models"
	"roomservice/services/notification"
	"roomservice/services/pricing"
)

// MaxQuantity caps a single order line.
const MaxQuantity = 50

type OrderService interface {
	// CreateOrder prices every line at now and notifies staff.
	CreateOrder(in OrderInput, now time.Time) (*models.Order, error)
	ListOrders(filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(id, status string) (*models.Order, error)
	PurgeOlderThan(cutoff time.Time) (int64, error)
	// ExportOrders writes matching orders as an xlsx workbook.
	ExportOrders(w io.Writer, filter models.OrderFilter) error
}

type DefaultOrderService struct {
	Orders        orderRepo.OrderRepository
	QRCodes       qrcodeRepo.QRCodeRepository
	Locations     locationRepo.LocationRepository
	Subcategories subcategoryRepo.SubcategoryRepository
	Pricing       *pricing.Resolver
	Publisher     notification.Publisher // optional
}

// OrderInput is a guest order as submitted from a scanned QR code.
type OrderInput struct {
	QRCodeID      string      `json:"qrcodeId"`
	RoomNumber    string      `json:"roomNumber"`
	OrderUserName string      `json:"orderUserName"`
	OrderNote     string      `json:"orderNote"`
	Items         []ItemInput `json:"items"`
}

type ItemInput struct {
	SubcategoryID string `json:"subcategoryId"`
	Quantity      int    `json:"quantity"`
}
