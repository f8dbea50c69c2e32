package domain

// SeedPlaces returns the built-in place table used when no seed file or
// external provider is configured. Each call returns a fresh copy.
func SeedPlaces() map[string]MetricsRecord {
	return map[string]MetricsRecord{
		"Fullerton, CA": {
			Walkability:   68,
			SchoolScore:   7.8,
			CrimeIndex:    42,
			MedianIncome:  98_000,
			PriceGrowth5y: 6.2,
			Demographics: []Demographic{
				{Group: "Hispanic", Share: 36},
				{Group: "White", Share: 29},
				{Group: "Asian", Share: 25},
				{Group: "Black", Share: 2},
				{Group: "Other", Share: 8},
			},
		},
		"Irvine, CA": {
			Walkability:   55,
			SchoolScore:   8.9,
			CrimeIndex:    24,
			MedianIncome:  122_000,
			PriceGrowth5y: 7.4,
			Demographics: []Demographic{
				{Group: "Asian", Share: 43},
				{Group: "White", Share: 36},
				{Group: "Hispanic", Share: 11},
				{Group: "Black", Share: 2},
				{Group: "Other", Share: 8},
			},
		},
		"Austin, TX": {
			Walkability:   72,
			SchoolScore:   6.7,
			CrimeIndex:    56,
			MedianIncome:  84_000,
			PriceGrowth5y: 4.3,
			Demographics: []Demographic{
				{Group: "White", Share: 47},
				{Group: "Hispanic", Share: 33},
				{Group: "Black", Share: 7},
				{Group: "Asian", Share: 9},
				{Group: "Other", Share: 4},
			},
		},
	}
}
