package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrPlaceNotFound is returned by a PlaceStore when a key has no record.
	// It is a user-correctable miss, not a fault.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrInvalidMetric marks a record whose fields fall outside their documented domains.
	ErrInvalidMetric = errors.New("invalid metric")
)

// Demographic is one group's share of the population, in percent.
type Demographic struct {
	Group string  `json:"group" koanf:"group"`
	Share float64 `json:"share" koanf:"share"`
}

// MetricsRecord is the normalized bundle of quality indicators for one place.
type MetricsRecord struct {
	Walkability   int           `json:"walkability" koanf:"walkability"`
	SchoolScore   float64       `json:"school_score" koanf:"school_score"`
	CrimeIndex    int           `json:"crime_index" koanf:"crime_index"`
	MedianIncome  int           `json:"median_income" koanf:"median_income"`
	PriceGrowth5y float64       `json:"price_growth_5y" koanf:"price_growth_5y"`
	Demographics  []Demographic `json:"demographics" koanf:"demographics"`
}

// InvalidMetricError reports which field of a record is out of range.
type InvalidMetricError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid metric %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidMetricError) Unwrap() error { return ErrInvalidMetric }

// Validate rejects records the threshold bands cannot classify correctly.
// Values are never clamped.
func (r MetricsRecord) Validate() error {
	if r.Walkability < 0 || r.Walkability > 100 {
		return &InvalidMetricError{Field: "walkability", Value: r.Walkability, Reason: "must be within 0-100"}
	}
	if !isFinite(r.SchoolScore) || r.SchoolScore < 0 || r.SchoolScore > 10 {
		return &InvalidMetricError{Field: "school_score", Value: r.SchoolScore, Reason: "must be within 0-10"}
	}
	if r.CrimeIndex < 0 || r.CrimeIndex > 100 {
		return &InvalidMetricError{Field: "crime_index", Value: r.CrimeIndex, Reason: "must be within 0-100"}
	}
	if r.MedianIncome < 0 {
		return &InvalidMetricError{Field: "median_income", Value: r.MedianIncome, Reason: "must not be negative"}
	}
	if !isFinite(r.PriceGrowth5y) {
		return &InvalidMetricError{Field: "price_growth_5y", Value: r.PriceGrowth5y, Reason: "must be a finite number"}
	}

	seen := make(map[string]struct{}, len(r.Demographics))
	for _, d := range r.Demographics {
		if strings.TrimSpace(d.Group) == "" {
			return &InvalidMetricError{Field: "demographics.group", Value: d.Group, Reason: "must not be empty"}
		}
		if _, dup := seen[d.Group]; dup {
			return &InvalidMetricError{Field: "demographics.group", Value: d.Group, Reason: "must be unique"}
		}
		seen[d.Group] = struct{}{}
		if !isFinite(d.Share) || d.Share < 0 {
			return &InvalidMetricError{Field: "demographics.share", Value: d.Share, Reason: "must be a non-negative number"}
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PlaceKey joins a city and region into the lookup key "<city>, <region>".
// Inputs are used verbatim.
func PlaceKey(city, region string) string {
	return city + ", " + region
}

// NormalizePlaceKey builds a key after trimming and collapsing whitespace in
// both parts and upper-casing the region code, e.g. "  Fullerton ", "ca" ->
// "Fullerton, CA".
func NormalizePlaceKey(city, region string) string {
	return PlaceKey(collapseSpaces(city), strings.ToUpper(collapseSpaces(region)))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
