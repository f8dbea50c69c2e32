package memstore

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// seedFile is the YAML layout accepted by LoadFile:
//
//	places:
//	  - city: Fullerton
//	    region: CA
//	    walkability: 68
//	    school_score: 7.8
//	    crime_index: 42
//	    median_income: 98000
//	    price_growth_5y: 6.2
//	    demographics:
//	      - {group: Hispanic, share: 36}
type seedFile struct {
	Places []seedPlace `koanf:"places"`
}

type seedPlace struct {
	City          string               `koanf:"city"`
	Region        string               `koanf:"region"`
	Walkability   int                  `koanf:"walkability"`
	SchoolScore   float64              `koanf:"school_score"`
	CrimeIndex    int                  `koanf:"crime_index"`
	MedianIncome  int                  `koanf:"median_income"`
	PriceGrowth5y float64              `koanf:"price_growth_5y"`
	Demographics  []domain.Demographic `koanf:"demographics"`
}

func (p seedPlace) record() domain.MetricsRecord {
	return domain.MetricsRecord{
		Walkability:   p.Walkability,
		SchoolScore:   p.SchoolScore,
		CrimeIndex:    p.CrimeIndex,
		MedianIncome:  p.MedianIncome,
		PriceGrowth5y: p.PriceGrowth5y,
		Demographics:  p.Demographics,
	}
}

// LoadFile reads a YAML seed file and builds a Store keyed by "<city>, <region>".
func LoadFile(path string) (*Store, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}

	var sf seedFile
	if err := k.UnmarshalWithConf("", &sf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if len(sf.Places) == 0 {
		return nil, errors.New("seed file has no places")
	}

	places := make(map[string]domain.MetricsRecord, len(sf.Places))
	for i, p := range sf.Places {
		if p.City == "" || p.Region == "" {
			return nil, fmt.Errorf("seed place %d: city and region are required", i)
		}
		key := domain.PlaceKey(p.City, p.Region)
		if _, dup := places[key]; dup {
			return nil, fmt.Errorf("seed place %d: duplicate key %q", i, key)
		}
		places[key] = p.record()
	}
	return New(places)
}
