package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kingzyphor/portfolio-api/internal/models"
	"github.com/kingzyphor/portfolio-api/internal/repository"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	siteCacheKey     = "site"
	contentCacheName = "content"
)

// ContentCache keeps the parsed site content in memory and reloads it after the TTL
type ContentCache struct {
	cache      *gocache.Cache
	dataSource repository.ContentDataSource
	ttl        time.Duration
	mu         sync.RWMutex
	refreshMu  sync.Mutex
	ready      bool
}

// NewContentCache creates a content cache
func NewContentCache(dataSource repository.ContentDataSource, ttlSeconds int) *ContentCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ContentCache{
		cache:      gocache.New(ttl, 2*ttl),
		dataSource: dataSource,
		ttl:        ttl,
	}
}

// Initialize performs initial cache population (synchronous, blocks until ready)
// Should be called during application startup before accepting requests
func (cc *ContentCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing content cache...")
	if _, err := cc.refresh(ctx); err != nil {
		logger.Error("Failed to initialize content cache", zap.Error(err))
		return err
	}

	cc.mu.Lock()
	cc.ready = true
	cc.mu.Unlock()

	logger.Info("Content cache initialized successfully")
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (cc *ContentCache) IsReady() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.ready
}

// Get returns the site content, reloading it on a cache miss
func (cc *ContentCache) Get(ctx context.Context) (*models.Site, error) {
	if !cc.IsReady() {
		return nil, fmt.Errorf("content cache not initialized")
	}

	if site, ok := cc.lookup(); ok {
		metrics.CacheHits.WithLabelValues(contentCacheName).Inc()
		return site, nil
	}

	metrics.CacheMisses.WithLabelValues(contentCacheName).Inc()
	logger.Debug("Content cache miss, reloading")

	return cc.refresh(ctx)
}

func (cc *ContentCache) lookup() (*models.Site, bool) {
	data, found := cc.cache.Get(siteCacheKey)
	if !found {
		return nil, false
	}
	site, ok := data.(*models.Site)
	if !ok {
		logger.Error("Invalid content cache data type")
		cc.cache.Delete(siteCacheKey)
		return nil, false
	}
	return site, true
}

// refresh reloads the site from the data source. Concurrent misses share one reload.
func (cc *ContentCache) refresh(ctx context.Context) (*models.Site, error) {
	cc.refreshMu.Lock()
	defer cc.refreshMu.Unlock()

	// Another goroutine may have refreshed while we waited
	if site, ok := cc.lookup(); ok {
		return site, nil
	}

	site, err := cc.dataSource.GetSite(ctx)
	if err != nil {
		logger.Error("Failed to refresh content cache", zap.Error(err))
		return nil, err
	}

	cc.cache.Set(siteCacheKey, site, cc.ttl)

	logger.Info("Content cache refreshed",
		zap.Int("photos", len(site.Photos)),
		zap.Int("link_categories", len(site.LinkCategories)))

	return site, nil
}
