package types

import (
	"encoding/json"
	"math"
)

// Ratio is a float64 that marshals non-finite values as JSON null so reports
// stay serializable when a denominator degenerates to zero.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

type LorenzCurve struct {
	X []float64 `json:"x" bson:"x"`
	Y []float64 `json:"y" bson:"y"`
}

type MetricsReport struct {
	GiniCoefficient            float64            `json:"gini_coefficient" bson:"giniCoefficient"`
	HerfindahlIndex            float64            `json:"herfindahl_index" bson:"herfindahlIndex"`
	PalmaRatio                 Ratio              `json:"palma_ratio" bson:"palmaRatio"`
	HooverIndex                float64            `json:"hoover_index" bson:"hooverIndex"`
	TheilIndex                 float64            `json:"theil_index" bson:"theilIndex"`
	NakamotoCoefficient        int                `json:"nakamoto_coefficient" bson:"nakamotoCoefficient"`
	TopPercentileConcentration map[string]float64 `json:"top_percentile_concentration" bson:"topPercentileConcentration"`
	LorenzCurve                *LorenzCurve       `json:"lorenz_curve" bson:"lorenzCurve"`

	Error string `json:"error,omitempty" bson:"error,omitempty"`
}
