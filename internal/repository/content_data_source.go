package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/pkg/slug"
	"gopkg.in/yaml.v3"
)

//go:embed data/site.yaml
var defaultSiteYAML []byte

// ContentDataSource loads the site content
type ContentDataSource interface {
	GetSite(ctx context.Context) (*models.Site, error)
}

// YAMLContentDataSource reads site content from a YAML file, falling back to the
// embedded default when no path is configured. The file is re-read on every call so
// edits are picked up on the next cache refresh.
type YAMLContentDataSource struct {
	path string
}

// NewYAMLContentDataSource creates a content data source. An empty path uses the embedded site.
func NewYAMLContentDataSource(path string) *YAMLContentDataSource {
	return &YAMLContentDataSource{path: path}
}

// GetSite loads and normalizes the site content
func (ds *YAMLContentDataSource) GetSite(ctx context.Context) (*models.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := defaultSiteYAML
	if ds.path != "" {
		data, err := os.ReadFile(ds.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file %s: %w", ds.path, err)
		}
		raw = data
	}

	return ParseSite(raw)
}

// ParseSite decodes YAML site content, rejects unknown keys and duplicate photo IDs,
// and assigns photo slugs.
func ParseSite(raw []byte) (*models.Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var site models.Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}

	seen := make(map[int]struct{}, len(site.Photos))
	for i, p := range site.Photos {
		if p == nil {
			return nil, fmt.Errorf("photo at index %d is empty", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate photo id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Src == "" {
			return nil, fmt.Errorf("photo %d has no src", p.ID)
		}
		p.Slug = slug.Generate(p.Title, p.ID)
	}

	return &site, nil
}
