package entities

// RawCandidate is one unprocessed facility entry as returned by the external
// geospatial data source. Every field is optional and untrusted; the tag bag
// carries arbitrary source-specific attributes under keys that cannot be
// enumerated in advance.
type RawCandidate struct {
	ID        string            `json:"id,omitempty"`
	Name      string            `json:"name,omitempty"`
	Category  string            `json:"category,omitempty"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Photos    []string          `json:"photos,omitempty"`
}
