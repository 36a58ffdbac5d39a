package overpass

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caresight/facilityfinder/internal/domain/entities"
	"github.com/caresight/facilityfinder/internal/domain/providers"
)

const (
	defaultInterpreterURL = "https://overpass-api.de/api/interpreter"
	defaultHTTPTimeout    = 15 * time.Second
	defaultCandidateTTL   = 60 * 10
)

// Healthcare amenity categories queried per request. Sub-queries are merged
// in this order; downstream deduplication resolves places that appear in
// more than one.
var amenityCategories = []string{"hospital", "clinic", "doctors"}

// Client implements the FacilitySource interface against an Overpass API
// endpoint, returning raw OpenStreetMap healthcare elements as candidates.
type Client struct {
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewClient creates a new Overpass source client.
func NewClient(baseURL string, cache providers.CacheProvider) providers.FacilitySource {
	return NewClientWithOptions(baseURL, cache, nil)
}

// NewClientWithOptions allows overriding the HTTP client (used for tests).
func NewClientWithOptions(baseURL string, cache providers.CacheProvider, httpClient *http.Client) providers.FacilitySource {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultInterpreterURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// NearbyCandidates queries hospital, clinic and doctors amenities around the
// given coordinate. The radius is forwarded to the source verbatim. Results
// are cached briefly so repeated lookups from the same area skip the source.
func (c *Client) NearbyCandidates(ctx context.Context, lat, lon float64, radiusMeters int) ([]entities.RawCandidate, error) {
	cacheKey := "facilities:v1:candidates:" + hashKey(fmt.Sprintf("%.4f,%.4f,%d", lat, lon, radiusMeters))
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var candidates []entities.RawCandidate
			if err := json.Unmarshal(cached, &candidates); err == nil {
				return candidates, nil
			}
		}
	}

	payload, err := c.doQuery(ctx, buildQuery(lat, lon, radiusMeters))
	if err != nil {
		return nil, err
	}

	candidates := make([]entities.RawCandidate, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		candidates = append(candidates, element.toCandidate())
	}

	if c.cache != nil {
		if body, err := json.Marshal(candidates); err == nil {
			_ = c.cache.Set(ctx, cacheKey, body, defaultCandidateTTL)
		}
	}

	return candidates, nil
}

func (c *Client) doQuery(ctx context.Context, query string) (*overpassResponse, error) {
	form := url.Values{"data": []string{query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass request returned status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	return &payload, nil
}

// buildQuery assembles an Overpass QL union over the healthcare amenity
// categories, requesting node and way elements with computed centers.
func buildQuery(lat, lon float64, radiusMeters int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, category := range amenityCategories {
		fmt.Fprintf(&b, `node["amenity"=%q](around:%d,%f,%f);`, category, radiusMeters, lat, lon)
		fmt.Fprintf(&b, `way["amenity"=%q](around:%d,%f,%f);`, category, radiusMeters, lat, lon)
	}
	b.WriteString(");out center;")
	return b.String()
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// toCandidate maps one raw element to a RawCandidate without interpreting
// its contents; ways carry their coordinates in a computed center.
func (e overpassElement) toCandidate() entities.RawCandidate {
	candidate := entities.RawCandidate{
		ID:       fmt.Sprintf("%s/%d", e.Type, e.ID),
		Name:     e.Tags["name"],
		Category: e.Tags["amenity"],
		Tags:     e.Tags,
	}
	if candidate.Category == "" {
		candidate.Category = e.Tags["healthcare"]
	}
	if e.Lat != nil && e.Lon != nil {
		candidate.Latitude = e.Lat
		candidate.Longitude = e.Lon
	} else if e.Center != nil {
		candidate.Latitude = &e.Center.Lat
		candidate.Longitude = &e.Center.Lon
	}
	if image := strings.TrimSpace(e.Tags["image"]); image != "" {
		candidate.Photos = []string{image}
	}
	return candidate
}
