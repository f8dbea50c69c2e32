package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord_Validate(t *testing.T) {
	valid := fullerton()

	tests := []struct {
		name   string
		mutate func(r *MetricsRecord)
		field  string
	}{
		{"valid", func(*MetricsRecord) {}, ""},
		{"walkability below range", func(r *MetricsRecord) { r.Walkability = -1 }, "walkability"},
		{"walkability above range", func(r *MetricsRecord) { r.Walkability = 101 }, "walkability"},
		{"school above range", func(r *MetricsRecord) { r.SchoolScore = 10.5 }, "school_score"},
		{"school NaN", func(r *MetricsRecord) { r.SchoolScore = math.NaN() }, "school_score"},
		{"crime above range", func(r *MetricsRecord) { r.CrimeIndex = 120 }, "crime_index"},
		{"negative income", func(r *MetricsRecord) { r.MedianIncome = -5 }, "median_income"},
		{"infinite growth", func(r *MetricsRecord) { r.PriceGrowth5y = math.Inf(1) }, "price_growth_5y"},
		{"negative growth allowed", func(r *MetricsRecord) { r.PriceGrowth5y = -12.5 }, ""},
		{"negative share", func(r *MetricsRecord) {
			r.Demographics = []Demographic{{Group: "A", Share: -1}}
		}, "demographics.share"},
		{"duplicate group", func(r *MetricsRecord) {
			r.Demographics = []Demographic{{Group: "A", Share: 50}, {Group: "A", Share: 50}}
		}, "demographics.group"},
		{"blank group", func(r *MetricsRecord) {
			r.Demographics = []Demographic{{Group: "  ", Share: 10}}
		}, "demographics.group"},
		{"shares need not sum to 100", func(r *MetricsRecord) {
			r.Demographics = []Demographic{{Group: "A", Share: 10}, {Group: "B", Share: 20}}
		}, ""},
		{"boundaries inclusive", func(r *MetricsRecord) {
			r.Walkability, r.SchoolScore, r.CrimeIndex, r.MedianIncome = 100, 10, 0, 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			r.Demographics = append([]Demographic(nil), valid.Demographics...)
			tt.mutate(&r)

			err := r.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMetric)

			var ime *InvalidMetricError
			require.True(t, errors.As(err, &ime))
			assert.Equal(t, tt.field, ime.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestPlaceKey(t *testing.T) {
	assert.Equal(t, "Fullerton, CA", PlaceKey("Fullerton", "CA"))
	assert.Equal(t, "fullerton, ca", PlaceKey("fullerton", "ca"))
	assert.Equal(t, " Fullerton , CA", PlaceKey(" Fullerton ", "CA"), "verbatim join keeps whitespace")
}

func TestNormalizePlaceKey(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		region   string
		expected string
	}{
		{"already canonical", "Fullerton", "CA", "Fullerton, CA"},
		{"trims", "  Fullerton ", " CA ", "Fullerton, CA"},
		{"upper-cases region", "Fullerton", "ca", "Fullerton, CA"},
		{"collapses inner spaces", "San   Luis  Obispo", "CA", "San Luis Obispo, CA"},
		{"keeps city casing", "fullerton", "CA", "fullerton, CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePlaceKey(tt.city, tt.region))
		})
	}
}

func TestSeedPlaces_AreValid(t *testing.T) {
	seeds := SeedPlaces()
	require.Len(t, seeds, 3)
	for key, r := range seeds {
		assert.NoError(t, r.Validate(), key)
	}
}

func TestSeedPlaces_FreshCopy(t *testing.T) {
	a := SeedPlaces()
	a["Fullerton, CA"].Demographics[0].Share = 99
	b := SeedPlaces()
	assert.Equal(t, 36.0, b["Fullerton, CA"].Demographics[0].Share)
}
