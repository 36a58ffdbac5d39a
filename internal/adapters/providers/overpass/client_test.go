package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureResponse = `{
	"elements": [
		{
			"type": "node",
			"id": 4406259419,
			"lat": 6.9196,
			"lon": 79.8586,
			"tags": {
				"amenity": "hospital",
				"name": "National Hospital of Sri Lanka",
				"emergency": "yes",
				"phone": "+94 11 269 1111",
				"addr:city": "Colombo"
			}
		},
		{
			"type": "way",
			"id": 155312507,
			"center": {"lat": 6.8890, "lon": 79.8723},
			"tags": {
				"healthcare": "clinic",
				"name": "Family Care Clinic"
			}
		},
		{
			"type": "node",
			"id": 99,
			"tags": {"amenity": "doctors"}
		}
	]
}`

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.entries[key]
	return ok, nil
}

func TestNearbyCandidates_MapsElements(t *testing.T) {
	var receivedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		receivedQuery = r.PostFormValue("data")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixtureResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	candidates, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)

	require.NoError(t, err)
	require.Len(t, candidates, 3)

	first := candidates[0]
	assert.Equal(t, "node/4406259419", first.ID)
	assert.Equal(t, "National Hospital of Sri Lanka", first.Name)
	assert.Equal(t, "hospital", first.Category)
	require.NotNil(t, first.Latitude)
	assert.Equal(t, 6.9196, *first.Latitude)
	assert.Equal(t, "+94 11 269 1111", first.Tags["phone"])

	// Way elements carry coordinates in their computed center; the
	// healthcare tag backfills a missing amenity category.
	second := candidates[1]
	assert.Equal(t, "way/155312507", second.ID)
	assert.Equal(t, "clinic", second.Category)
	require.NotNil(t, second.Latitude)
	assert.Equal(t, 6.8890, *second.Latitude)

	// Elements without geometry pass through untouched; rejection is the
	// pipeline's job, not the adapter's.
	third := candidates[2]
	assert.Nil(t, third.Latitude)
	assert.Nil(t, third.Longitude)

	assert.Contains(t, receivedQuery, `node["amenity"="hospital"](around:5000,`)
	assert.Contains(t, receivedQuery, `way["amenity"="doctors"](around:5000,`)
	assert.Contains(t, receivedQuery, "out center;")
}

func TestNearbyCandidates_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestNearbyCandidates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)
	require.Error(t, err)
}

func TestNearbyCandidates_ServesFromCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, fixtureResponse)
	}))
	defer server.Close()

	cache := newMemoryCache()
	client := NewClient(server.URL, cache)

	first, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)
	require.NoError(t, err)

	second, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first, second)
}

func TestNearbyCandidates_DistinctRadiusMissesCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, fixtureResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL, newMemoryCache())

	_, err := client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 5000)
	require.NoError(t, err)
	_, err = client.NearbyCandidates(context.Background(), 6.9271, 79.8612, 10000)
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
}

func TestBuildQuery(t *testing.T) {
	query := buildQuery(6.9271, 79.8612, 5000)

	assert.True(t, strings.HasPrefix(query, "[out:json]"))
	for _, category := range amenityCategories {
		assert.Contains(t, query, fmt.Sprintf(`node["amenity"=%q]`, category))
	}
}
