package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"commerce-service/internal/models"
	"commerce-service/internal/repository"
	"commerce-service/internal/services"
)

type ReviewsHandler struct {
	service   *services.ReviewService
	customers repository.CustomersRepositoryInterface
	logger    *logrus.Entry
}

func NewReviewsHandler(service *services.ReviewService, customers repository.CustomersRepositoryInterface, logger *logrus.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		service:   service,
		customers: customers,
		logger:    logger.WithField("component", "reviews_handler"),
	}
}

// syncCustomer mirrors the token's profile claims locally so review display
// names resolve. Best effort; a failed sync never blocks the submission.
func (h *ReviewsHandler) syncCustomer(c *gin.Context, userID string) {
	firstName := c.GetString("userFirstName")
	lastName := c.GetString("userLastName")
	email := c.GetString("userEmail")
	if firstName == "" && lastName == "" && email == "" {
		return
	}

	err := h.customers.Upsert(c.Request.Context(), &models.Customer{
		ID:        userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		h.logger.WithError(err).WithField("userId", userID).Warn("Failed to sync customer profile")
	}
}

// SubmitReview creates or overwrites the caller's review of a product
// @Summary Submit review
// @Description Create the caller's review of a product, overwriting any previous one
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body models.SubmitReviewRequest true "Review data"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (h *ReviewsHandler) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Invalid productId"},
		})
		return
	}

	userID := currentUserID(c)
	review, err := h.service.SubmitReview(c.Request.Context(), userID, productID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.syncCustomer(c, userID)

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: review})
}

// DeleteReview deletes the caller's own review
// @Summary Delete review
// @Description Delete a review owned by the caller
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewsHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Review deleted"})
}

// AdminDeleteReview deletes any review regardless of owner
// @Summary Delete review (admin)
// @Description Delete any review by ID
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/reviews/{id} [delete]
func (h *ReviewsHandler) AdminDeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.AdminDeleteReview(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Review deleted"})
}

// ToggleFeatured sets a review's featured flag
// @Summary Toggle featured review
// @Description Mark or unmark a review as featured
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param featured body models.ToggleFeaturedRequest true "Featured flag"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/reviews/{id}/featured [patch]
func (h *ReviewsHandler) ToggleFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ToggleFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.ToggleFeatured(c.Request.Context(), id, *req.Featured); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Featured flag updated"})
}

// ListFeatured lists the storefront's featured reviews
// @Summary List featured reviews
// @Description List reviews marked as featured, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /reviews/featured [get]
func (h *ReviewsHandler) ListFeatured(c *gin.Context) {
	views, err := h.service.ListFeaturedReviews(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: views})
}

// ListByProduct lists reviews of one product
// @Summary List product reviews
// @Description List reviews of a product, newest first
// @Tags Reviews
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{id}/reviews [get]
func (h *ReviewsHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.service.ListProductReviews(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: views})
}

// ListMine lists the caller's own reviews
// @Summary List my reviews
// @Description List reviews written by the caller, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /me/reviews [get]
func (h *ReviewsHandler) ListMine(c *gin.Context) {
	views, err := h.service.ListUserReviews(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: views})
}
