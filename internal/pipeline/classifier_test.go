package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caresight/facilityfinder/internal/domain/entities"
)

func TestClassifySpecialties(t *testing.T) {
	tests := []struct {
		name     string
		category string
		tags     map[string]string
		want     []string
	}{
		{
			name:     "hospital category",
			category: "hospital",
			want:     []string{"Emergency Care"},
		},
		{
			name:     "medical center category",
			category: "medical_center",
			want:     []string{"Multi-specialty"},
		},
		{
			name:     "health category",
			category: "health",
			want:     []string{"Primary Care"},
		},
		{
			name:     "free-form specialty tag split and trimmed",
			category: "clinic",
			tags:     map[string]string{"healthcare:speciality": "cardiology; paediatrics ;"},
			want:     []string{"General Medicine", "cardiology", "paediatrics"},
		},
		{
			name: "no signal defaults",
			want: []string{"General Medicine", "Emergency Care"},
		},
		{
			name:     "duplicate fragments collapsed",
			category: "doctors",
			tags:     map[string]string{"healthcare:speciality": "General Medicine;General Medicine"},
			want:     []string{"General Medicine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySpecialties(tt.category, tt.tags)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestClassifyServices(t *testing.T) {
	base := []string{"Outpatient Services", "Diagnostic Services"}

	t.Run("baseline services always present", func(t *testing.T) {
		assert.Equal(t, base, classifyServices("", nil))
	})

	t.Run("hospital adds emergency care", func(t *testing.T) {
		got := classifyServices("hospital", nil)
		assert.Contains(t, got, "Emergency Care")
	})

	t.Run("emergency tag adds emergency care", func(t *testing.T) {
		got := classifyServices("clinic", map[string]string{"emergency": "yes"})
		assert.Contains(t, got, "Emergency Care")
	})

	t.Run("specialty fragments capped at two", func(t *testing.T) {
		got := classifyServices("", map[string]string{
			"healthcare:speciality": "cardiology;orthopaedics;dermatology;urology",
		})
		assert.Equal(t, append(base, "cardiology", "orthopaedics"), got)
	})
}

func TestClassifyFeatures_RuleTable(t *testing.T) {
	open := true
	candidate := entities.RawCandidate{
		Tags: map[string]string{
			"opening_hours":   "24/7",
			"wheelchair":      "yes",
			"emergency":       "yes",
			"parking":         "yes",
			"internet_access": "wlan",
		},
	}

	got := classifyFeatures(candidate, &open, 4.7, 240)

	assert.Equal(t, []string{
		"Currently Open",
		"24/7 Open",
		"Highly Rated",
		"Well Reviewed",
		"Wheelchair Accessible",
		"Emergency Services",
		"Parking Available",
		"WiFi Available",
	}, got)
}

func TestClassifyFeatures_Thresholds(t *testing.T) {
	candidate := entities.RawCandidate{Tags: map[string]string{}}

	assert.Contains(t, classifyFeatures(candidate, nil, 4.5, 0), "Highly Rated")
	assert.NotContains(t, classifyFeatures(candidate, nil, 4.4, 0), "Highly Rated")
	assert.Contains(t, classifyFeatures(candidate, nil, 0, 101), "Well Reviewed")
	assert.NotContains(t, classifyFeatures(candidate, nil, 0, 100), "Well Reviewed")
}

func TestClassifyFeatures_AbsentTagsSkipQuietly(t *testing.T) {
	closed := false
	got := classifyFeatures(entities.RawCandidate{}, &closed, 0, 0)
	assert.Empty(t, got)
}

func TestClassifyFeatures_WiredInternetIsNotWiFi(t *testing.T) {
	candidate := entities.RawCandidate{Tags: map[string]string{"internet_access": "wired"}}
	assert.NotContains(t, classifyFeatures(candidate, nil, 0, 0), "WiFi Available")
}
