package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const boiseSeed = `places:
  - city: Boise
    region: ID
    walkability: 40
    school_score: 8.1
    crime_index: 30
    median_income: 101000
    price_growth_5y: 9
`

func TestLookup_Text(t *testing.T) {
	out, err := run(t, "lookup", "--city", "Fullerton", "--region", "CA")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Here's a quick read on Fullerton, CA:\n"))
	assert.Contains(t, out, "- Median household income $98,000: middle-income area.")
	assert.Contains(t, out, "Pros:\n  + decent walkability\n  + solid schools\n  + moderate crime\nCons:\n")
}

func TestLookup_JSON(t *testing.T) {
	out, err := run(t, "lookup", "--city", "Austin", "--region", "TX", "--format", "json")
	require.NoError(t, err)

	var report insight.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Found)
	assert.Equal(t, "Austin, TX", report.Key)
	require.Len(t, report.Insights.Positives, 1)
	assert.Equal(t, "high walkability", report.Insights.Positives[0].Text)
	assert.Len(t, report.Insights.Negatives, 4)
}

func TestLookup_NotFound(t *testing.T) {
	out, err := run(t, "lookup", "--city", "Fullerton", "--region", "ca")
	require.NoError(t, err)
	assert.Equal(t, domain.UnresolvedPlaceMessage+"\n", out)
}

func TestLookup_Normalize(t *testing.T) {
	out, err := run(t, "lookup", "--city", " Fullerton ", "--region", "ca", "--normalize")
	require.NoError(t, err)
	assert.Contains(t, out, "Here's a quick read on Fullerton, CA:")
}

func TestLookup_RequiresFlags(t *testing.T) {
	_, err := run(t, "lookup", "--city", "Irvine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestLookup_BadFormat(t *testing.T) {
	_, err := run(t, "lookup", "--city", "Irvine", "--region", "CA", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestLookup_SeedFile(t *testing.T) {
	path := writeSeed(t, boiseSeed)

	out, err := run(t, "lookup", "--city", "Boise", "--region", "ID", "--seed-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Pros:\n  + strong schools\n  + lower-than-average crime\n  + high income\n  + healthy growth\nCons:\n  - car-dependent\n")
}

func TestPlaces_Text(t *testing.T) {
	out, err := run(t, "places")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "PLACE"))
	assert.True(t, strings.HasPrefix(lines[1], "Austin, TX"))
	assert.Contains(t, lines[2], "$98,000")
	assert.True(t, strings.HasPrefix(lines[3], "Irvine, CA"))
}

func TestPlaces_JSON(t *testing.T) {
	out, err := run(t, "places", "--format", "json")
	require.NoError(t, err)

	var rows []struct {
		Key    string               `json:"key"`
		Record domain.MetricsRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Austin, TX", rows[0].Key)
	assert.Equal(t, 122000, rows[2].Record.MedianIncome)
}

func TestPlaces_FactorsProviderUnsupported(t *testing.T) {
	t.Setenv("FACTORS_BASE_URL", "http://factors.invalid")

	_, err := run(t, "places")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local store")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writeSeed(t, boiseSeed))
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 places\n", out)
}

func TestValidate_InvalidRecord(t *testing.T) {
	path := writeSeed(t, strings.Replace(boiseSeed, "crime_index: 30", "crime_index: 130", 1))

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMetric)
	assert.Contains(t, err.Error(), "crime_index")
}
