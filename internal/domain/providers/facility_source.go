package providers

import (
	"context"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

// FacilitySource defines the interface for the external geospatial data
// source that supplies raw facility candidates.
type FacilitySource interface {
	// NearbyCandidates returns the raw candidates around a coordinate.
	// radiusMeters is forwarded to the source query untouched; the source
	// decides how to interpret it. Candidates are returned as-is, without
	// validation or normalization.
	NearbyCandidates(ctx context.Context, lat, lon float64, radiusMeters int) ([]entities.RawCandidate, error)
}
