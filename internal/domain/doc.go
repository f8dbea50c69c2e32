// Package domain models normalized location-quality metrics for a place and
// derives the observations and narrative shown to someone comparing places.
//
// # Metrics Record
//
// A [MetricsRecord] is a projection of the external factors provider payload:
//
//	walkability    scores.walk.walkScore          integer 0–100, higher is better
//	schoolScore    scores.school.value            real 0–10, higher is better
//	crimeIndex     scores.crime.index             integer 0–100, lower is better
//	medianIncome   context.income.median_household USD, non-negative
//	priceGrowth5y  trend source                   percent over five years, signed
//	demographics   context.demographics.race_ethnicity
//
// Records are produced whole or not at all. A store either returns a complete
// record or [ErrPlaceNotFound]; there are no optional fields downstream.
//
// # Place Keys
//
// A place key is "<city>, <region>", joined verbatim by [PlaceKey]. Lookups are
// case- and whitespace-sensitive unless the caller opts into
// [NormalizePlaceKey], which trims and collapses whitespace and upper-cases the
// region code. City casing is never changed.
//
// # Threshold Bands
//
// Both [Evaluate] and [Compose] classify each metric with the same closed bands:
//
//	walkability:  ≥70 high | 60–69 decent | <60 car-dependent
//	schools:      ≥8 strong | 7–7.99 solid | <7 below average
//	crime:        ≤40 lower than average | 41–50 moderate | >50 higher
//	income:       ≥100,000 high | <85,000 lower | otherwise no observation
//	price growth: ≥7 healthy | <5 slower | otherwise no observation
//
// Income and growth have a dead zone in [Evaluate]; the composer still writes
// a neutral line for them so every metric appears in the narrative.
package domain
