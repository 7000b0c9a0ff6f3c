package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"roomservice/database"
	"roomservice/models"
	"roomservice/services/translation"
	"roomservice/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultCatalogService) ListCategories() ([]models.Category, error) {
	return s.Categories.GetAll()
}

func (s *DefaultCatalogService) CreateCategory(ctx context.Context, name string, image io.Reader) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || image == nil {
		return nil, utils.BadRequest("name and image are required")
	}

	asset, err := s.Storage.UploadImage(ctx, image, CategoryFolder)
	if err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}

	category := &models.Category{
		ID:           uuid.New().String(),
		Name:         name,
		Translations: translation.TranslateName(ctx, s.Translator, name),
		Image:        asset.URL,
		PublicID:     asset.PublicID,
	}
	if err := s.Categories.Create(category); err != nil {
		s.Assets.RemoveAssets(ctx, asset.PublicID)
		return nil, err
	}
	return category, nil
}

func (s *DefaultCatalogService) UpdateCategory(ctx context.Context, id string, name string, image io.Reader) (*models.Category, error) {
	existing, err := s.Categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("category not found")
	}

	update := bson.M{}
	if name = strings.TrimSpace(name); name != "" && name != existing.Name {
		update["name"] = name
		update["translations"] = translation.TranslateName(ctx, s.Translator, name)
	}

	var uploadedID string
	if image != nil {
		asset, err := s.Storage.UploadImage(ctx, image, CategoryFolder)
		if err != nil {
			return nil, fmt.Errorf("UpdateCategory: %w", err)
		}
		uploadedID = asset.PublicID
		update["image"] = asset.URL
		update["publicId"] = asset.PublicID
	}
	if len(update) == 0 {
		return existing, nil
	}

	updated, err := s.Categories.UpdateSetDocument(id, update)
	if err != nil {
		s.Assets.RemoveAssets(ctx, uploadedID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("category not found")
		}
		return nil, err
	}
	if uploadedID != "" && existing.PublicID != uploadedID {
		s.Assets.RemoveAssets(ctx, existing.PublicID)
	}
	return updated, nil
}

// DeleteCategory removes the category, its items, and every image they used.
func (s *DefaultCatalogService) DeleteCategory(ctx context.Context, id string, now time.Time) (*DeletedCategory, error) {
	existing, err := s.Categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("category not found")
	}

	subs, err := s.Subcategories.DeleteByCategory(id)
	if err != nil {
		return nil, err
	}
	if err := s.Categories.Delete(id); err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	assets := []string{existing.PublicID}
	for _, sub := range subs {
		assets = append(assets, sub.PublicID)
	}
	s.Assets.RemoveAssets(ctx, assets...)

	utils.GetLogger().Info("category deleted",
		zap.String("id", id), zap.Int("subcategories", len(subs)))
	return &DeletedCategory{Category: *existing, Subcategories: s.views(subs, now, false)}, nil
}

func (s *DefaultCatalogService) Menu(now time.Time) ([]models.CategoryWithSubcategories, error) {
	categories, err := s.Categories.GetAll()
	if err != nil {
		return nil, err
	}
	subs, err := s.Subcategories.GetAll()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.SubcategoryView, len(categories))
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		byCategory[sub.Category] = append(byCategory[sub.Category], s.view(sub, now))
	}

	menu := make([]models.CategoryWithSubcategories, 0, len(categories))
	for _, c := range categories {
		items := byCategory[c.ID]
		if items == nil {
			items = []models.SubcategoryView{}
		}
		menu = append(menu, models.CategoryWithSubcategories{Category: c, Subcategories: items})
	}
	return menu, nil
}
