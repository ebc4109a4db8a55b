package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/internal/services"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	"go.uber.org/zap"
)

// ContactHandler relays contact form submissions
type ContactHandler struct {
	service services.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	if err := RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", zap.Error(err))
	}
	return &ContactHandler{service: service}
}

// SendMessage handles POST /api/contact
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("invalid").Inc()

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}

		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	if err := h.service.SendContactMessage(c.Request.Context(), &req); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to send message", err)
		return
	}

	c.JSON(http.StatusOK, models.ContactResponse{Success: true})
}
