package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/internal/services"
	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
)

// ContentHandler serves the site content behind the static pages
type ContentHandler struct {
	service services.ContentServiceInterface
}

func NewContentHandler(service services.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetSite handles GET /api/content
func (h *ContentHandler) GetSite(c *gin.Context) {
	site, err := h.service.GetSite(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// GetNavigation handles GET /api/content/navigation
func (h *ContentHandler) GetNavigation(c *gin.Context) {
	nav, err := h.service.GetNavigation(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"navigation": nav})
}

// GetSkills handles GET /api/content/skills
func (h *ContentHandler) GetSkills(c *gin.Context) {
	skills, err := h.service.GetSkills(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// GetLinks handles GET /api/content/links
func (h *ContentHandler) GetLinks(c *gin.Context) {
	categories, err := h.service.GetLinkCategories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetPhotos handles GET /api/content/photos?game=
func (h *ContentHandler) GetPhotos(c *gin.Context) {
	filter := models.PhotoFilter{Game: c.Query("game")}

	photos, err := h.service.GetPhotos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos, "count": len(photos)})
}

// GetPhoto handles GET /api/content/photos/:slug
func (h *ContentHandler) GetPhoto(c *gin.Context) {
	photo, err := h.service.GetPhotoBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Photo not found", err)
			return
		}
		respondError(c, http.StatusServiceUnavailable, "Content unavailable", err)
		return
	}
	c.JSON(http.StatusOK, photo)
}
