package pipeline

import (
	"fmt"
	"strings"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

// Dedupe collapses near-identical records referring to the same physical
// facility: same lowercased name at coordinates agreeing to three decimals
// (~111 m). First occurrence wins; later duplicates are dropped unchanged
// rather than merged field-by-field. Input order is preserved.
func Dedupe(records []entities.FacilityRecord) []entities.FacilityRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]entities.FacilityRecord, 0, len(records))
	for _, record := range records {
		key := dedupeKey(record)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, record)
	}
	return out
}

func dedupeKey(record entities.FacilityRecord) string {
	name := strings.ToLower(strings.TrimSpace(record.Name))
	return fmt.Sprintf("%s_%.3f_%.3f", name, record.Latitude, record.Longitude)
}
