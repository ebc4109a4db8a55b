package services

import (
	"context"

	"github.com/kingzyphor/portfolio-api/internal/models"
	apperrors "github.com/kingzyphor/portfolio-api/pkg/errors"
)

// SiteProvider supplies the current site content
type SiteProvider interface {
	Get(ctx context.Context) (*models.Site, error)
}

// ContentService serves read-only views of the site content
type ContentService struct {
	provider SiteProvider
}

func NewContentService(provider SiteProvider) *ContentService {
	return &ContentService{provider: provider}
}

func (s *ContentService) GetSite(ctx context.Context) (*models.Site, error) {
	return s.provider.Get(ctx)
}

func (s *ContentService) GetNavigation(ctx context.Context) ([]models.NavLink, error) {
	site, err := s.provider.Get(ctx)
	if err != nil {
		return nil, err
	}
	return site.Navigation, nil
}

func (s *ContentService) GetSkills(ctx context.Context) ([]models.Skill, error) {
	site, err := s.provider.Get(ctx)
	if err != nil {
		return nil, err
	}
	return site.Skills, nil
}

func (s *ContentService) GetLinkCategories(ctx context.Context) ([]models.LinkCategory, error) {
	site, err := s.provider.Get(ctx)
	if err != nil {
		return nil, err
	}
	return site.LinkCategories, nil
}

// GetPhotos returns the gallery in site order, narrowed by filter
func (s *ContentService) GetPhotos(ctx context.Context, filter models.PhotoFilter) ([]*models.Photo, error) {
	site, err := s.provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	photos := make([]*models.Photo, 0, len(site.Photos))
	for _, p := range site.Photos {
		if filter.Matches(p) {
			photos = append(photos, p)
		}
	}
	return photos, nil
}

// GetPhotoBySlug returns a single photo or an ErrNotFound error
func (s *ContentService) GetPhotoBySlug(ctx context.Context, photoSlug string) (*models.Photo, error) {
	site, err := s.provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range site.Photos {
		if p.Slug == photoSlug {
			return p, nil
		}
	}
	return nil, apperrors.NotFoundError("photo")
}
