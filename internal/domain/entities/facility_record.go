package entities

// FacilityRecord is the canonical, guaranteed-shape output unit of the
// discovery pipeline. Address, phone and image always carry a value, falling
// back to explicit placeholders; specialties is never empty.
type FacilityRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	DistanceKm   float64  `json:"distance_km"`
	FacilityType string   `json:"facility_type"`
	Services     []string `json:"services"`
	Specialties  []string `json:"specialties"`
	Features     []string `json:"features"`
	ImageURL     string   `json:"image_url"`
	Website      string   `json:"website,omitempty"`
	OpenNow      *bool    `json:"open_now,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}
