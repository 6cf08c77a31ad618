// Package apihandlers implements the HTTP surface over the engine.
package apihandlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"taxo/internal/app"
	"taxo/internal/models"
)

// APIHandler holds the application dependencies for all route handlers.
type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// --- Categorization ---

type categorizeRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

// CategorizeHandler classifies ad hoc product names against the current
// taxonomy snapshot. POST /api/v1/categorize
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "body must contain a non-empty 'names' array: "+err.Error())
		return
	}

	results, err := h.App.CategorizationService.CategorizeNames(c.Request.Context(), req.Names)
	if err != nil {
		log.Errorf("Categorize API failed: %v", err)
		Internal(c, "categorization failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type enqueueCategorizeRequest struct {
	ProductIDs []int64 `json:"product_ids" binding:"required,min=1"`
}

// EnqueueCategorizeHandler submits a background categorize batch for stored
// products. POST /api/v1/categorize/batches
func (h *APIHandler) EnqueueCategorizeHandler(c *gin.Context) {
	var req enqueueCategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "body must contain a non-empty 'product_ids' array: "+err.Error())
		return
	}

	batchID, err := h.App.JobClient.EnqueueCategorizeBatch(c.Request.Context(), req.ProductIDs)
	if err != nil {
		log.Errorf("Failed to enqueue categorize batch: %v", err)
		Internal(c, "failed to enqueue categorize batch")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"batch_id": batchID, "product_count": len(req.ProductIDs)})
}

// --- Categories ---

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *APIHandler) CreateCategoryHandler(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "body must contain 'name': "+err.Error())
		return
	}

	category, err := h.App.TaxonomyService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.App.TaxonomyStore.ListCategories(c.Request.Context())
	if err != nil {
		log.Errorf("Failed to list categories: %v", err)
		Internal(c, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *APIHandler) DeleteCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	affected, err := h.App.TaxonomyService.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		writeTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected_product_count": affected})
}

// --- Subcategories ---

type createSubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
	// FromSuggestion switches to auto-suffixing slug collision handling,
	// for names that came from the AI rather than a user.
	FromSuggestion bool `json:"from_suggestion"`
}

func (h *APIHandler) CreateSubcategoryHandler(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req createSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "body must contain 'name': "+err.Error())
		return
	}

	var (
		subcategory *models.Subcategory
		err         error
	)
	if req.FromSuggestion {
		subcategory, err = h.App.TaxonomyService.CreateSuggestedSubcategory(c.Request.Context(), categoryID, req.Name)
	} else {
		subcategory, err = h.App.TaxonomyService.CreateSubcategory(c.Request.Context(), categoryID, req.Name)
	}
	if err != nil {
		writeTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subcategory)
}

func (h *APIHandler) ListSubcategoriesHandler(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	subcategories, err := h.App.TaxonomyStore.ListSubcategoriesByCategory(c.Request.Context(), categoryID)
	if err != nil {
		log.Errorf("Failed to list subcategories for category %d: %v", categoryID, err)
		Internal(c, "failed to list subcategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategories": subcategories})
}

func (h *APIHandler) DeleteSubcategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	affected, err := h.App.TaxonomyService.DeleteSubcategory(c.Request.Context(), id)
	if err != nil {
		writeTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected_product_count": affected})
}

// --- Products ---

type createProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Brand *string `json:"brand"`
}

func (h *APIHandler) CreateProductHandler(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "body must contain 'name': "+err.Error())
		return
	}

	product := &models.Product{Name: req.Name, Brand: req.Brand}
	if err := h.App.ProductStore.CreateProduct(c.Request.Context(), product); err != nil {
		log.Errorf("Failed to create product: %v", err)
		Internal(c, "failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *APIHandler) ListProductsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	uncategorized := c.Query("uncategorized") == "true"

	products, err := h.App.ProductStore.ListProducts(c.Request.Context(), limit, offset, uncategorized)
	if err != nil {
		log.Errorf("Failed to list products: %v", err)
		Internal(c, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// --- helpers ---

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, "invalid id parameter")
		return 0, false
	}
	return id, true
}

func writeTaxonomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, models.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, models.ErrDuplicate), errors.Is(err, models.ErrHasChildren):
		Conflict(c, err.Error())
	default:
		log.Errorf("Taxonomy operation failed: %v", err)
		Internal(c, "taxonomy operation failed")
	}
}
