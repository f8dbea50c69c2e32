package domain

// Polarity says whether an observation counts for or against a place.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// Observation is one short, polarity-tagged statement about a place.
type Observation struct {
	Text     string   `json:"text"`
	Polarity Polarity `json:"polarity"`
}

// Insights holds the pros and cons derived from a MetricsRecord, each in
// evaluation order: walkability, schools, crime, income, price growth.
type Insights struct {
	Positives []Observation `json:"pros"`
	Negatives []Observation `json:"cons"`
}

// Len returns the total number of observations.
func (in Insights) Len() int {
	return len(in.Positives) + len(in.Negatives)
}

func pro(text string) *Observation { return &Observation{Text: text, Polarity: Positive} }
func con(text string) *Observation { return &Observation{Text: text, Polarity: Negative} }

// Evaluate maps a record to its pros and cons. Each metric contributes at most
// one observation; walkability, schools and crime always contribute one, while
// income and price growth are silent inside their dead zones.
//
// The record is assumed valid; see MetricsRecord.Validate.
func Evaluate(r MetricsRecord) Insights {
	in := Insights{
		Positives: []Observation{},
		Negatives: []Observation{},
	}

	for _, o := range []*Observation{
		walkabilityObservation(r.Walkability),
		schoolObservation(r.SchoolScore),
		crimeObservation(r.CrimeIndex),
		incomeObservation(r.MedianIncome),
		growthObservation(r.PriceGrowth5y),
	} {
		switch {
		case o == nil:
		case o.Polarity == Positive:
			in.Positives = append(in.Positives, *o)
		default:
			in.Negatives = append(in.Negatives, *o)
		}
	}
	return in
}

func walkabilityObservation(score int) *Observation {
	switch {
	case score >= 70:
		return pro("high walkability")
	case score >= 60:
		return pro("decent walkability")
	default:
		return con("car-dependent")
	}
}

func schoolObservation(score float64) *Observation {
	switch {
	case score >= 8:
		return pro("strong schools")
	case score >= 7:
		return pro("solid schools")
	default:
		return con("below-average schools")
	}
}

func crimeObservation(index int) *Observation {
	switch {
	case index <= 40:
		return pro("lower-than-average crime")
	case index <= 50:
		return pro("moderate crime")
	default:
		return con("higher crime")
	}
}

// incomeObservation is nil for 85,000–99,999.
func incomeObservation(income int) *Observation {
	switch {
	case income >= 100_000:
		return pro("high income")
	case income < 85_000:
		return con("lower income")
	default:
		return nil
	}
}

// growthObservation is nil for 5–6.99%.
func growthObservation(pct float64) *Observation {
	switch {
	case pct >= 7:
		return pro("healthy growth")
	case pct < 5:
		return con("slower growth")
	default:
		return nil
	}
}
