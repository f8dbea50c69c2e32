package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose_NilRecord(t *testing.T) {
	assert.Equal(t, UnresolvedPlaceMessage, Compose("Nowhere, ZZ", nil))
}

func TestCompose_Fullerton(t *testing.T) {
	r := fullerton()
	got := Compose("Fullerton, CA", &r)

	want := strings.Join([]string{
		"Here's a quick read on Fullerton, CA:",
		"- Walkability 68/100: decent, some errands on foot.",
		"- Schools 7.8/10: solid schools.",
		"- Crime index 42: moderate.",
		"- Median household income $98,000: middle-income area.",
		"- 5-year price growth 6.2%: steady appreciation.",
		closingPrompt,
	}, "\n")
	assert.Equal(t, want, got)
}

func TestCompose_Deterministic(t *testing.T) {
	r := SeedPlaces()["Irvine, CA"]
	assert.Equal(t, Compose("Irvine, CA", &r), Compose("Irvine, CA", &r))
}

func TestCompose_LineOrder(t *testing.T) {
	r := SeedPlaces()["Austin, TX"]
	lines := strings.Split(Compose("Austin, TX", &r), "\n")

	assert.Len(t, lines, 7)
	assert.Contains(t, lines[1], "Walkability")
	assert.Contains(t, lines[2], "Schools")
	assert.Contains(t, lines[3], "Crime")
	assert.Contains(t, lines[4], "income")
	assert.Contains(t, lines[5], "growth")
	assert.Equal(t, closingPrompt, lines[6])
}

func TestVerdicts(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"walk 70", walkabilityVerdict(70), "good for errands on foot"},
		{"walk 60", walkabilityVerdict(60), "decent, some errands on foot"},
		{"walk 59", walkabilityVerdict(59), "car-dependent"},
		{"school 8", schoolVerdict(8), "strong schools"},
		{"school 7", schoolVerdict(7), "solid schools"},
		{"school 6.9", schoolVerdict(6.9), "below-average schools"},
		{"crime 40", crimeVerdict(40), "lower than average"},
		{"crime 50", crimeVerdict(50), "moderate"},
		{"crime 51", crimeVerdict(51), "higher than average"},
		{"income 100000", incomeVerdict(100_000), "high-income area"},
		{"income 85000", incomeVerdict(85_000), "middle-income area"},
		{"income 84999", incomeVerdict(84_999), "lower-income area"},
		{"growth 7", growthVerdict(7), "healthy appreciation"},
		{"growth 5", growthVerdict(5), "steady appreciation"},
		{"growth 4.99", growthVerdict(4.99), "slower appreciation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
