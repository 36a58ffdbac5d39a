package pipeline

import "strings"

const (
	// PlaceholderImageURL is used when a candidate carries no usable photo.
	PlaceholderImageURL = "https://images.unsplash.com/photo-1586773860418-d37222d8fce3?w=400"

	addressUnavailable = "Address not available"
	phoneUnavailable   = "Not available"
)

// Sources spell the same contact fact under different keys; each chain is
// tried in order and the first non-empty value wins.
var (
	phoneTagKeys   = []string{"phone", "phone:formatted", "contact:phone", "contact:mobile"}
	websiteTagKeys = []string{"website", "contact:website"}
	cityTagKeys    = []string{"addr:city", "addr:town", "addr:village"}
)

// normalizeAddress reconciles the heterogeneous address fragments a source
// may attach to a candidate. Priority: a pre-formatted address, then
// OpenStreetMap-style fragment assembly, then a synthesized "<name> area",
// then an explicit placeholder. Never fails, even on an empty tag map.
func normalizeAddress(tags map[string]string, name string) string {
	if full := strings.TrimSpace(tags["addr:full"]); full != "" {
		return full
	}

	var fragments []string
	street := strings.TrimSpace(tags["addr:street"])
	if number := strings.TrimSpace(tags["addr:housenumber"]); number != "" && street != "" {
		fragments = append(fragments, number+" "+street)
	} else if street != "" {
		fragments = append(fragments, street)
	}
	for _, key := range cityTagKeys {
		if city := strings.TrimSpace(tags[key]); city != "" {
			fragments = append(fragments, city)
			break
		}
	}
	if postcode := strings.TrimSpace(tags["addr:postcode"]); postcode != "" {
		fragments = append(fragments, postcode)
	}

	// Thin addresses get backfilled from coarser administrative fragments.
	if len(fragments) < 2 {
		if district := strings.TrimSpace(tags["addr:district"]); district != "" {
			fragments = append(fragments, district)
		}
		if state := strings.TrimSpace(tags["addr:state"]); state != "" {
			fragments = append(fragments, state)
		}
	}

	if len(fragments) > 0 {
		return strings.Join(fragments, ", ")
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed + " area"
	}
	return addressUnavailable
}

func normalizePhone(tags map[string]string) string {
	for _, key := range phoneTagKeys {
		if phone := strings.TrimSpace(tags[key]); phone != "" {
			return phone
		}
	}
	return phoneUnavailable
}

func normalizeWebsite(tags map[string]string) string {
	for _, key := range websiteTagKeys {
		if site := strings.TrimSpace(tags[key]); site != "" {
			return site
		}
	}
	return ""
}

func normalizeImage(photos []string) string {
	for _, photo := range photos {
		if strings.TrimSpace(photo) != "" {
			return photo
		}
	}
	return PlaceholderImageURL
}

// normalizeOpenNow returns a tri-state open flag: nil unless the source
// explicitly supplied one.
func normalizeOpenNow(tags map[string]string) *bool {
	raw, ok := tags["open_now"]
	if !ok {
		return nil
	}
	var open bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		open = true
	case "false", "no", "0":
		open = false
	default:
		return nil
	}
	return &open
}
