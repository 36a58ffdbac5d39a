package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"typical point", 6.9271, 79.8612, true},
		{"upper bounds", 90, 180, true},
		{"lower bounds", -90, -180, true},
		{"latitude above bounds", 90.0001, 0, false},
		{"latitude below bounds", -90.0001, 0, false},
		{"longitude above bounds", 0, 180.0001, false},
		{"longitude below bounds", 0, -180.0001, false},
		{"zero pair sentinel", 0, 0, false},
		{"zero latitude only", 0, 79.8612, true},
		{"zero longitude only", 6.9271, 0, true},
		{"NaN latitude", math.NaN(), 79.8612, false},
		{"NaN longitude", 6.9271, math.NaN(), false},
		{"infinite latitude", math.Inf(1), 0, false},
		{"infinite longitude", 0, math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinate(tt.lat, tt.lon))
		})
	}
}

func TestHaversineKm_KnownSeparation(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km.
	got := HaversineKm(0, 0, 0, 1)
	assert.InEpsilon(t, 111.19, got, 0.005)
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(6.9271, 79.8612, 6.9271, 79.8612))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	forward := HaversineKm(6.9271, 79.8612, 7.2906, 80.6337)
	backward := HaversineKm(7.2906, 80.6337, 6.9271, 79.8612)
	assert.InDelta(t, forward, backward, 1e-9)
}
