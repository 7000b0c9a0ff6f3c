package orderRepo

import (
	"time"

	"roomservice/models"
)

// OrderRepository defines methods for guest order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(id string) (*models.Order, error)
	// List returns matching orders, newest first.
	List(filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(id, status string) (*models.Order, error)
	// DeleteOlderThan removes orders created before cutoff.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
