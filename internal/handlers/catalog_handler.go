package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"commerce-service/internal/models"
	"commerce-service/internal/services"
)

type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// CreateProduct creates a new product
// @Summary Create product
// @Description Create a new catalog product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param product body models.UpsertProductRequest true "Product data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.service.UpsertProduct(c.Request.Context(), req, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

// UpdateProduct updates an existing product
// @Summary Update product
// @Description Update an existing catalog product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpsertProductRequest true "Product data"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.service.UpsertProduct(c.Request.Context(), req, &id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// GetProduct retrieves a product with derived pricing and image URLs
// @Summary Get product
// @Description Get a product by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: view})
}

// ListProducts lists products with pagination
// @Summary List products
// @Description List catalog products with optional category filter
// @Tags Catalog
// @Produce json
// @Param category query string false "Category ID filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	views, total, err := h.service.ListProducts(c.Request.Context(), c.Query("category"), limit, (page-1)*limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Data:    views,
		Pagination: &models.PaginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// DeleteProduct deletes a product and releases its stored images
// @Summary Delete product
// @Description Delete a product by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Product deleted"})
}
