package categoryRepo

import (
	"roomservice/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CategoryRepository defines methods for menu category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	// GetByID returns (nil, nil) when the category does not exist.
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	// UpdateSetDocument applies a $set and returns the updated category.
	UpdateSetDocument(id string, updateDoc bson.M) (*models.Category, error)
	Delete(id string) error
}
