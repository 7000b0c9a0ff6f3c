package models

import "time"

// Order statuses.
const (
	OrderPending  = "pending"
	OrderSuccess  = "success"
	OrderRejected = "rejected"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderSuccess, OrderRejected:
		return true
	}
	return false
}

// OrderItem is a line of an order. Name and Price are snapshots taken when
// the order was placed.
type OrderItem struct {
	SubcategoryID string  `bson:"subcategoryId" json:"subcategoryId"`
	Name          string  `bson:"name" json:"name"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	Price         float64 `bson:"price" json:"price"`
}

// Order is a guest request delivered to a room.
type Order struct {
	ID            string      `bson:"_id" json:"_id"`
	Items         []OrderItem `bson:"items" json:"items"`
	RoomNumber    string      `bson:"roomNumber" json:"roomNumber"`
	OrderUserName string      `bson:"orderUserName" json:"orderUserName"`
	OrderNote     string      `bson:"orderNote" json:"orderNote"`
	QRCodeID      string      `bson:"qrcodeId" json:"qrcodeId"`
	QRCodeLabel   string      `bson:"qrcodeLabel" json:"qrcodeLabel"`
	Location      string      `bson:"location" json:"location"` // location name at order time
	Status        string      `bson:"status" json:"status"`
	TotalPrice    float64     `bson:"TotalPrice" json:"TotalPrice"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// OrderFilter narrows staff order listings. Empty fields match everything.
type OrderFilter struct {
	Location string
	QRCodeID string
	Status   string
}

// OrderStatusEvent is pushed to staff when an order changes status.
type OrderStatusEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
