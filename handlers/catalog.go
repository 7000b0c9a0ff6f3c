package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"roomservice/services/catalog"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves categories, subcategories and the guest menu.
type CatalogHandler struct {
	CatalogService catalog.CatalogService
	Now            func() time.Time
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: svc, Now: time.Now}
}

func (h *CatalogHandler) GetAllCategoriesHandler(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		utils.RespondError(c, err, "Failed to get categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// MenuHandler handles GET /category/menu: every category with its active
// items priced at the time of the request.
func (h *CatalogHandler) MenuHandler(c *gin.Context) {
	menu, err := h.CatalogService.Menu(h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to get menu")
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *CatalogHandler) CreateCategoryHandler(c *gin.Context) {
	image, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err, "Invalid image")
		return
	}
	if image != nil {
		defer image.Close()
	}

	category, err := h.CatalogService.CreateCategory(c.Request.Context(), c.PostForm("name"), image)
	if err != nil {
		utils.RespondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategoryHandler(c *gin.Context) {
	image, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err, "Invalid image")
		return
	}
	if image != nil {
		defer image.Close()
	}

	category, err := h.CatalogService.UpdateCategory(c.Request.Context(), c.Param("id"), c.PostForm("name"), image)
	if err != nil {
		utils.RespondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategoryHandler(c *gin.Context) {
	deleted, err := h.CatalogService.DeleteCategory(c.Request.Context(), c.Param("id"), h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              "Category and its subcategories deleted",
		"deletedCategory":      deleted.Category,
		"deletedSubcategories": deleted.Subcategories,
	})
}

func (h *CatalogHandler) GetAllSubcategoriesHandler(c *gin.Context) {
	subs, err := h.CatalogService.ListSubcategories(h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to get subcategories")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *CatalogHandler) GetSubcategoriesByCategoryHandler(c *gin.Context) {
	subs, err := h.CatalogService.ListByCategory(c.Param("id"), h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to get subcategories")
		return
	}
	c.JSON(http.StatusOK, subs)
}

// parseFloatField reads an optional numeric form field.
func parseFloatField(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, utils.BadRequest(key + " must be a number")
	}
	return &v, nil
}

func parseBoolField(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, utils.BadRequest(key + " must be true or false")
	}
	return &v, nil
}

// scheduleField returns the raw priceSchedule form value, or nil when the
// field was not sent.
func scheduleField(c *gin.Context) any {
	if raw, ok := c.GetPostForm("priceSchedule"); ok {
		return raw
	}
	return nil
}

func (h *CatalogHandler) CreateSubcategoryHandler(c *gin.Context) {
	price, err := parseFloatField(c, "price")
	if err != nil {
		utils.RespondError(c, err, "Invalid price")
		return
	}
	isActive, err := parseBoolField(c, "isActive")
	if err != nil {
		utils.RespondError(c, err, "Invalid isActive")
		return
	}
	image, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err, "Invalid image")
		return
	}
	if image != nil {
		defer image.Close()
	}

	in := catalog.SubcategoryInput{
		Name:          c.PostForm("name"),
		Category:      c.PostForm("category"),
		Description:   c.PostForm("description"),
		PriceSchedule: scheduleField(c),
		IsActive:      isActive,
	}
	if price != nil {
		in.Price = *price
	}

	view, err := h.CatalogService.CreateSubcategory(c.Request.Context(), in, image, h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to create subcategory")
		return
	}
	getLogger(c).Info("Subcategory created", zap.String("id", view.ID), zap.String("category", view.Category))
	c.JSON(http.StatusCreated, view)
}

func (h *CatalogHandler) UpdateSubcategoryHandler(c *gin.Context) {
	price, err := parseFloatField(c, "price")
	if err != nil {
		utils.RespondError(c, err, "Invalid price")
		return
	}
	isActive, err := parseBoolField(c, "isActive")
	if err != nil {
		utils.RespondError(c, err, "Invalid isActive")
		return
	}
	image, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err, "Invalid image")
		return
	}
	if image != nil {
		defer image.Close()
	}

	in := catalog.SubcategoryUpdate{
		Price:         price,
		PriceSchedule: scheduleField(c),
		IsActive:      isActive,
	}
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("category"); ok && v != "" {
		in.Category = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}

	view, err := h.CatalogService.UpdateSubcategory(c.Request.Context(), c.Param("id"), in, image, h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to update subcategory")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) DeleteSubcategoryHandler(c *gin.Context) {
	deleted, err := h.CatalogService.DeleteSubcategory(c.Request.Context(), c.Param("id"), h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to delete subcategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted", "deletedSubcategory": deleted})
}
