package services

import (
	"context"

	"github.com/kingzyphor/portfolio-api/internal/models"
)

// ContactServiceInterface defines the interface for contact service operations
type ContactServiceInterface interface {
	SendContactMessage(ctx context.Context, req *models.ContactRequest) error
}

// ContentServiceInterface defines the interface for site content operations
type ContentServiceInterface interface {
	GetSite(ctx context.Context) (*models.Site, error)
	GetNavigation(ctx context.Context) ([]models.NavLink, error)
	GetSkills(ctx context.Context) ([]models.Skill, error)
	GetLinkCategories(ctx context.Context) ([]models.LinkCategory, error)
	GetPhotos(ctx context.Context, filter models.PhotoFilter) ([]*models.Photo, error)
	GetPhotoBySlug(ctx context.Context, photoSlug string) (*models.Photo, error)
}

// Ensure services implement their interfaces
var _ ContactServiceInterface = (*ContactService)(nil)
var _ ContentServiceInterface = (*ContentService)(nil)
