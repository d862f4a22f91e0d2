package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/internal/app/feedback/service"

	"github.com/gin-gonic/gin"
)

type FeedbackServiceInterface interface {
	Submit(ctx context.Context, req *entity.SubmitFeedbackRequest) (*entity.Feedback, error)
	List(ctx context.Context) ([]entity.Feedback, error)
	Update(ctx context.Context, id string, req *entity.UpdateFeedbackRequest) error
	Delete(ctx context.Context, id string) error
	ValidateID(id string) error
	AdminOverview(ctx context.Context) (*entity.AdminFeedbackResponse, error)
}

type FeedbackHandler struct {
	feedbackService FeedbackServiceInterface
}

func NewFeedbackHandler(feedbackService FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// Submit handles POST /api/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req entity.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusCreated, entity.SubmitFeedbackResponse{
		Message: "Feedback submitted successfully!",
		ID:      fb.ID,
	})
}

// List handles GET /api/feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.feedbackService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback"})
		return
	}

	if feedback == nil {
		feedback = []entity.Feedback{}
	}

	c.JSON(http.StatusOK, feedback)
}

// Update handles PUT and PATCH /api/feedback/:id. The id is checked before
// the body, so a malformed id wins over any body validation error.
func (h *FeedbackHandler) Update(c *gin.Context) {
	id := c.Param("id")

	if err := h.feedbackService.ValidateID(id); err != nil {
		h.writeStoreError(c, id, err, "Failed to update feedback")
		return
	}

	var req entity.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedbackService.Update(c.Request.Context(), id, &req); err != nil {
		h.writeStoreError(c, id, err, "Failed to update feedback")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{
		Message: fmt.Sprintf("Feedback %s updated successfully", id),
	})
}

// Delete handles DELETE /api/feedback/:id.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.feedbackService.Delete(c.Request.Context(), id); err != nil {
		h.writeStoreError(c, id, err, "Failed to delete feedback")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{
		Message: fmt.Sprintf("Feedback %s deleted successfully", id),
	})
}

// AdminOverview handles GET /api/admin/feedback.
func (h *FeedbackHandler) AdminOverview(c *gin.Context) {
	overview, err := h.feedbackService.AdminOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feedback"})
		return
	}

	if overview.Feedback == nil {
		overview.Feedback = []entity.Feedback{}
	}

	c.JSON(http.StatusOK, overview)
}

// writeStoreError maps service errors onto the API contract: malformed ids
// are 400, unknown ids 404, anything else 500.
func (h *FeedbackHandler) writeStoreError(c *gin.Context, id string, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidFeedbackID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Feedback ID format"})
	case errors.Is(err, service.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Feedback with ID %s not found", id)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
