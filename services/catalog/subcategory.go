package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"roomservice/database"
	"roomservice/models"
	"roomservice/services/pricing"
	"roomservice/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// view prices one item for a listing. now is shared by the whole listing.
func (s *DefaultCatalogService) view(sub models.Subcategory, now time.Time) models.SubcategoryView {
	return models.SubcategoryView{
		Subcategory:   sub,
		PriceSchedule: pricing.Canonical(pricing.Normalize(sub.RawPriceSchedule)),
		DisplayPrice:  s.Pricing.SafeResolve(sub.ID, sub.Price, sub.RawPriceSchedule, now),
	}
}

func (s *DefaultCatalogService) views(subs []models.Subcategory, now time.Time, activeOnly bool) []models.SubcategoryView {
	out := make([]models.SubcategoryView, 0, len(subs))
	for _, sub := range subs {
		if activeOnly && !sub.IsActive {
			continue
		}
		out = append(out, s.view(sub, now))
	}
	return out
}

func (s *DefaultCatalogService) ListSubcategories(now time.Time) ([]models.SubcategoryView, error) {
	subs, err := s.Subcategories.GetAll()
	if err != nil {
		return nil, err
	}
	return s.views(subs, now, false), nil
}

func (s *DefaultCatalogService) ListByCategory(categoryID string, now time.Time) ([]models.SubcategoryView, error) {
	subs, err := s.Subcategories.GetByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return s.views(subs, now, true), nil
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}

func scheduleError(err error) error {
	return utils.NewAppError(http.StatusBadRequest, "invalid priceSchedule: "+err.Error(), err)
}

func (s *DefaultCatalogService) CreateSubcategory(ctx context.Context, in SubcategoryInput, image io.Reader, now time.Time) (*models.SubcategoryView, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Category == "" || image == nil {
		return nil, utils.BadRequest("name, category and image are required")
	}
	if !validPrice(in.Price) {
		return nil, utils.BadRequest("price must be a non-negative number")
	}
	schedule, err := pricing.Validate(in.PriceSchedule)
	if err != nil {
		return nil, scheduleError(err)
	}

	category, err := s.Categories.GetByID(in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, utils.NotFound("category not found")
	}

	asset, err := s.Storage.UploadImage(ctx, image, SubcategoryFolder)
	if err != nil {
		return nil, fmt.Errorf("CreateSubcategory: %w", err)
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	sub := &models.Subcategory{
		ID:               uuid.New().String(),
		Category:         category.ID,
		Name:             in.Name,
		Description:      strings.TrimSpace(in.Description),
		Image:            asset.URL,
		PublicID:         asset.PublicID,
		Price:            in.Price,
		RawPriceSchedule: schedule,
		IsActive:         isActive,
	}
	if err := s.Subcategories.Create(sub); err != nil {
		s.Assets.RemoveAssets(ctx, asset.PublicID)
		return nil, err
	}
	v := s.view(*sub, now)
	return &v, nil
}

func (s *DefaultCatalogService) UpdateSubcategory(ctx context.Context, id string, in SubcategoryUpdate, image io.Reader, now time.Time) (*models.SubcategoryView, error) {
	existing, err := s.Subcategories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("subcategory not found")
	}

	update := bson.M{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.BadRequest("name cannot be empty")
		}
		update["name"] = name
	}
	if in.Description != nil {
		update["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil && *in.Category != existing.Category {
		category, err := s.Categories.GetByID(*in.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, utils.NotFound("category not found")
		}
		update["category"] = category.ID
	}
	if in.Price != nil {
		if !validPrice(*in.Price) {
			return nil, utils.BadRequest("price must be a non-negative number")
		}
		update["price"] = *in.Price
	}
	if in.PriceSchedule != nil {
		schedule, err := pricing.Validate(in.PriceSchedule)
		if err != nil {
			return nil, scheduleError(err)
		}
		update["priceSchedule"] = schedule
	}
	if in.IsActive != nil {
		update["isActive"] = *in.IsActive
	}

	var uploadedID string
	if image != nil {
		asset, err := s.Storage.UploadImage(ctx, image, SubcategoryFolder)
		if err != nil {
			return nil, fmt.Errorf("UpdateSubcategory: %w", err)
		}
		uploadedID = asset.PublicID
		update["image"] = asset.URL
		update["publicId"] = asset.PublicID
	}

	if len(update) == 0 {
		v := s.view(*existing, now)
		return &v, nil
	}

	updated, err := s.Subcategories.UpdateSetDocument(id, update)
	if err != nil {
		s.Assets.RemoveAssets(ctx, uploadedID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("subcategory not found")
		}
		return nil, err
	}
	if uploadedID != "" && existing.PublicID != uploadedID {
		s.Assets.RemoveAssets(ctx, existing.PublicID)
	}
	v := s.view(*updated, now)
	return &v, nil
}

// DeleteSubcategory returns the removed item in the same shape listings use.
func (s *DefaultCatalogService) DeleteSubcategory(ctx context.Context, id string, now time.Time) (*models.SubcategoryView, error) {
	existing, err := s.Subcategories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("subcategory not found")
	}
	if err := s.Subcategories.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("subcategory not found")
		}
		return nil, err
	}
	s.Assets.RemoveAssets(ctx, existing.PublicID)
	v := s.view(*existing, now)
	return &v, nil
}
