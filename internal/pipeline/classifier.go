package pipeline

import (
	"strings"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

// specialtyByCategory maps source classification categories to the specialty
// a facility of that kind reliably offers.
var specialtyByCategory = map[string]string{
	"hospital":       "Emergency Care",
	"doctor":         "General Medicine",
	"doctors":        "General Medicine",
	"medical_center": "Multi-specialty",
	"clinic":         "General Medicine",
	"health":         "Primary Care",
}

// featureRule describes one source tag that, when set to the expected value,
// yields a display feature. Keeping the truthiness checks in a table makes
// the rule set extensible without touching control flow.
type featureRule struct {
	key     string
	value   string
	feature string
}

var tagFeatureRules = []featureRule{
	{key: "wheelchair", value: "yes", feature: "Wheelchair Accessible"},
	{key: "emergency", value: "yes", feature: "Emergency Services"},
	{key: "parking", value: "yes", feature: "Parking Available"},
	{key: "internet_access", value: "wlan", feature: "WiFi Available"},
}

// classifySpecialties derives the specialty set from the candidate's category
// and any free-form specialty tag. The result is never empty: with no signal
// at all, a facility is assumed to cover general and emergency medicine.
func classifySpecialties(category string, tags map[string]string) []string {
	seen := make(map[string]bool)
	var specialties []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			specialties = append(specialties, s)
		}
	}

	if specialty, ok := specialtyByCategory[category]; ok {
		add(specialty)
	}
	for _, fragment := range specialtyFragments(tags) {
		add(fragment)
	}

	if len(specialties) == 0 {
		add("General Medicine")
		add("Emergency Care")
	}
	return specialties
}

// classifyServices lists the services a facility offers. Outpatient and
// diagnostic services are assumed for every facility; emergency care is added
// for hospitals or when the source marks emergency capability. At most two
// free-form specialty fragments are appended to keep the list bounded.
func classifyServices(category string, tags map[string]string) []string {
	services := []string{"Outpatient Services", "Diagnostic Services"}
	if category == "hospital" || tags["emergency"] == "yes" {
		services = append(services, "Emergency Care")
	}
	for i, fragment := range specialtyFragments(tags) {
		if i == 2 {
			break
		}
		services = appendUnique(services, fragment)
	}
	return services
}

// classifyFeatures evaluates the feature checks in fixed order; any subset
// may fire. A missing tag simply skips its feature.
func classifyFeatures(c entities.RawCandidate, openNow *bool, rating float64, reviewCount int) []string {
	var features []string
	if openNow != nil && *openNow {
		features = append(features, "Currently Open")
	}
	if c.Tags["opening_hours"] == "24/7" {
		features = append(features, "24/7 Open")
	}
	if rating >= 4.5 {
		features = append(features, "Highly Rated")
	}
	if reviewCount > 100 {
		features = append(features, "Well Reviewed")
	}
	for _, rule := range tagFeatureRules {
		if c.Tags[rule.key] == rule.value {
			features = append(features, rule.feature)
		}
	}
	return features
}

// specialtyFragments splits a free-form specialty tag into trimmed fragments.
func specialtyFragments(tags map[string]string) []string {
	raw := tags["healthcare:speciality"]
	if raw == "" {
		raw = tags["speciality"]
	}
	if raw == "" {
		return nil
	}
	var fragments []string
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fragments = append(fragments, trimmed)
		}
	}
	return fragments
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, value) {
			return list
		}
	}
	return append(list, value)
}
