// Package pipeline turns the loosely-structured facility candidates returned
// by an external geospatial source into a clean, deduplicated list of
// canonical records ranked by distance from the caller. It is pure and holds
// no state between invocations.
package pipeline

import (
	"sort"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

// Run executes the full normalization pipeline over one batch of candidates.
// An invalid origin yields an empty list immediately — distances are never
// computed from an unusable coordinate. Malformed candidates are dropped
// individually and never abort the batch.
func Run(candidates []entities.RawCandidate, userLat, userLon float64) []entities.FacilityRecord {
	if !ValidCoordinate(userLat, userLon) {
		return []entities.FacilityRecord{}
	}

	records := make([]entities.FacilityRecord, 0, len(candidates))
	for _, candidate := range candidates {
		if record, ok := BuildRecord(candidate, userLat, userLon); ok {
			records = append(records, record)
		}
	}

	records = Dedupe(records)

	// Stable sort keeps builder-emitted order for equal distances.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DistanceKm < records[j].DistanceKm
	})
	return records
}
