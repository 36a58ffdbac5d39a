package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

// BuildRecord converts one raw candidate into a canonical FacilityRecord.
// A candidate without usable coordinates is rejected (ok=false) — a facility
// the caller cannot map or navigate to is useless output. Every other
// malformed field degrades to a documented default instead of failing.
func BuildRecord(c entities.RawCandidate, userLat, userLon float64) (entities.FacilityRecord, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return entities.FacilityRecord{}, false
	}
	lat, lon := *c.Latitude, *c.Longitude
	if !ValidCoordinate(lat, lon) {
		return entities.FacilityRecord{}, false
	}

	distanceKm := math.Round(HaversineKm(userLat, userLon, lat, lon)*10) / 10

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "Hospital"
	}

	rating := ratingFromTags(c.Tags)
	reviewCount := reviewCountFromTags(c.Tags)
	openNow := normalizeOpenNow(c.Tags)

	record := entities.FacilityRecord{
		ID:           recordID(c.ID),
		Name:         name,
		Address:      normalizeAddress(c.Tags, c.Name),
		Phone:        normalizePhone(c.Tags),
		Rating:       rating,
		ReviewCount:  reviewCount,
		DistanceKm:   distanceKm,
		FacilityType: classifyFacilityType(c),
		Services:     classifyServices(c.Category, c.Tags),
		Specialties:  classifySpecialties(c.Category, c.Tags),
		Features:     classifyFeatures(c, openNow, rating, reviewCount),
		ImageURL:     normalizeImage(c.Photos),
		Website:      normalizeWebsite(c.Tags),
		OpenNow:      openNow,
		Latitude:     lat,
		Longitude:    lon,
	}
	return record, true
}

// classifyFacilityType maps source classification tags onto the closed
// facility type set. An explicit hospital category wins over a generic
// health category, which wins over a clinic category.
func classifyFacilityType(c entities.RawCandidate) string {
	categories := []string{c.Category, c.Tags["amenity"], c.Tags["healthcare"]}
	has := func(wanted ...string) bool {
		for _, category := range categories {
			for _, want := range wanted {
				if category == want {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has("hospital"):
		return "General Hospital"
	case has("health", "medical_center", "centre"):
		return "Medical Center"
	case has("clinic", "doctor", "doctors"):
		return "Clinic"
	default:
		return "Healthcare Facility"
	}
}

// ratingFromTags parses a numeric rating tag, clamped to [0,5]. Absent or
// non-numeric values mean "no rating data" and surface as 0.
func ratingFromTags(tags map[string]string) float64 {
	raw := tags["rating"]
	if raw == "" {
		raw = tags["stars"]
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(rating) {
		return 0
	}
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func reviewCountFromTags(tags map[string]string) int {
	raw := tags["review_count"]
	if raw == "" {
		raw = tags["reviews"]
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// recordID keeps the source identifier when present and otherwise synthesizes
// one that is collision-free for the lifetime of the request.
func recordID(sourceID string) string {
	if trimmed := strings.TrimSpace(sourceID); trimmed != "" {
		return trimmed
	}
	return "gen-" + uuid.NewString()
}
