package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caresight/facilityfinder/internal/domain/entities"
	"github.com/caresight/facilityfinder/internal/domain/providers"
	"github.com/caresight/facilityfinder/internal/infrastructure/observability"
	"github.com/caresight/facilityfinder/internal/pipeline"
	apperrors "github.com/caresight/facilityfinder/pkg/errors"
	"github.com/caresight/facilityfinder/pkg/retry"
)

const (
	resultCacheTTL = 60 * 5
	// Origins within ~11 m share a cache entry.
	resultCacheKeyFormat = "facilities:v1:result:%.4f:%.4f:%d"
)

// DiscoveryService locates healthcare facilities near a coordinate: it
// fetches raw candidates from the external geospatial source, runs them
// through the normalization pipeline and caches the ranked result.
type DiscoveryService struct {
	source        providers.FacilitySource
	cache         providers.CacheProvider
	retryCfg      retry.Config
	metrics       *observability.Metrics
	defaultRadius int
	maxRadius     int
}

// NewDiscoveryService creates a new discovery service. cache may be nil; the
// service then works uncached.
func NewDiscoveryService(source providers.FacilitySource, cache providers.CacheProvider, defaultRadiusMeters, maxRadiusMeters int) *DiscoveryService {
	return &DiscoveryService{
		source:        source,
		cache:         cache,
		retryCfg:      retry.DefaultConfig(),
		defaultRadius: defaultRadiusMeters,
		maxRadius:     maxRadiusMeters,
	}
}

// WithMetrics attaches application metrics to the service.
func (s *DiscoveryService) WithMetrics(metrics *observability.Metrics) *DiscoveryService {
	s.metrics = metrics
	return s
}

// FindNearby returns the deduplicated facility records around the origin,
// ascending by distance. An invalid origin yields an empty list, not an
// error: the caller treats it like "zero results found nearby". radiusMeters
// <= 0 selects the configured default; values above the cap are clamped.
func (s *DiscoveryService) FindNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]entities.FacilityRecord, error) {
	logger := observability.LoggerFromContext(ctx)

	if !pipeline.ValidCoordinate(lat, lon) {
		logger.Warn().Float64("lat", lat).Float64("lon", lon).Msg("rejecting invalid origin coordinate")
		return []entities.FacilityRecord{}, nil
	}

	if radiusMeters <= 0 {
		radiusMeters = s.defaultRadius
	}
	if s.maxRadius > 0 && radiusMeters > s.maxRadius {
		radiusMeters = s.maxRadius
	}

	cacheKey := fmt.Sprintf(resultCacheKeyFormat, lat, lon, radiusMeters)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var records []entities.FacilityRecord
			if err := json.Unmarshal(cached, &records); err == nil {
				logger.Debug().Str("cache_key", cacheKey).Msg("serving facilities from cache")
				if s.metrics != nil {
					s.metrics.CacheHitCount.Add(ctx, 1)
				}
				return records, nil
			}
		}
		if s.metrics != nil {
			s.metrics.CacheMissCount.Add(ctx, 1)
		}
	}

	var candidates []entities.RawCandidate
	start := time.Now()
	err := retry.Do(ctx, s.retryCfg, func() error {
		var fetchErr error
		candidates, fetchErr = s.source.NearbyCandidates(ctx, lat, lon, radiusMeters)
		return fetchErr
	})
	if s.metrics != nil {
		s.metrics.SourceDuration.Record(ctx, float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		logger.Error().Err(err).Msg("geospatial source query failed")
		return nil, apperrors.NewExternalError("failed to query geospatial source", err)
	}

	records := pipeline.Run(candidates, lat, lon)

	logger.Info().
		Int("candidates", len(candidates)).
		Int("records", len(records)).
		Int("radius_m", radiusMeters).
		Dur("source_elapsed", time.Since(start)).
		Msg("facility discovery completed")

	if s.cache != nil {
		if body, err := json.Marshal(records); err == nil {
			if err := s.cache.Set(ctx, cacheKey, body, resultCacheTTL); err != nil {
				logger.Warn().Err(err).Msg("failed to cache discovery result")
			}
		}
	}

	return records, nil
}
