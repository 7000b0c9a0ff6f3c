package catalog

import (
	"context"
	"io"
	"time"

	categoryRepo "roomservice/database/repository/category"
	subcategoryRepo "roomservice/database/repository/subcategory"
	"roomservice/models"
	"roomservice/services/pricing"
	"roomservice/services/storage"
	"roomservice/services/tasks"
	"roomservice/services/translation"
)

// Storage folders for menu images.
const (
	CategoryFolder    = "categories"
	SubcategoryFolder = "subcategories"
)

type CatalogService interface {
	// Categories
	ListCategories() ([]models.Category, error)
	CreateCategory(ctx context.Context, name string, image io.Reader) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, name string, image io.Reader) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string, now time.Time) (*DeletedCategory, error)
	// Menu is the guest view: every category with its active items priced at now.
	Menu(now time.Time) ([]models.CategoryWithSubcategories, error)

	// Subcategories
	ListSubcategories(now time.Time) ([]models.SubcategoryView, error)
	ListByCategory(categoryID string, now time.Time) ([]models.SubcategoryView, error)
	CreateSubcategory(ctx context.Context, in SubcategoryInput, image io.Reader, now time.Time) (*models.SubcategoryView, error)
	UpdateSubcategory(ctx context.Context, id string, in SubcategoryUpdate, image io.Reader, now time.Time) (*models.SubcategoryView, error)
	DeleteSubcategory(ctx context.Context, id string, now time.Time) (*models.SubcategoryView, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Categories    categoryRepo.CategoryRepository
	Subcategories subcategoryRepo.SubcategoryRepository
	Storage       storage.StorageService
	Assets        tasks.AssetRemover
	Translator    translation.Translator // optional
	Pricing       *pricing.Resolver
}

// DeletedCategory reports what a category delete removed.
type DeletedCategory struct {
	Category      models.Category      `json:"deletedCategory"`
	Subcategories []models.SubcategoryView `json:"deletedSubcategories"`
}

// SubcategoryInput is a new menu item. PriceSchedule may be a JSON string
// (multipart forms) or an object.
type SubcategoryInput struct {
	Name          string
	Category      string
	Description   string
	Price         float64
	PriceSchedule any
	IsActive      *bool
}

// SubcategoryUpdate is a partial edit; nil fields are left unchanged.
type SubcategoryUpdate struct {
	Name          *string
	Category      *string
	Description   *string
	Price         *float64
	PriceSchedule any
	IsActive      *bool
}
