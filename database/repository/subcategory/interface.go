package subcategoryRepo

import (
	"roomservice/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SubcategoryRepository defines methods for menu item data access.
type SubcategoryRepository interface {
	GetAll() ([]models.Subcategory, error)
	// GetByID returns (nil, nil) when the item does not exist.
	GetByID(id string) (*models.Subcategory, error)
	GetByIDs(ids []string) ([]models.Subcategory, error)
	GetByCategory(categoryID string) ([]models.Subcategory, error)
	Create(sub *models.Subcategory) error
	UpdateSetDocument(id string, updateDoc bson.M) (*models.Subcategory, error)
	Delete(id string) error
	// DeleteByCategory removes every item of a category and returns them.
	DeleteByCategory(categoryID string) ([]models.Subcategory, error)
}
