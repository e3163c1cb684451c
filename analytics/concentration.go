package analytics

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"
)

const DefaultNakamotoThreshold = 51.0

type ConcentrationOpts struct {
	// NakamotoThreshold is the control threshold in percent, default 51.
	NakamotoThreshold float64
	// Percentiles selects the top-percentile shares, default {1,5,10,20,50}.
	Percentiles []int
}

func (o ConcentrationOpts) sanitize() ConcentrationOpts {
	if o.NakamotoThreshold <= 0 || o.NakamotoThreshold > 100 {
		o.NakamotoThreshold = DefaultNakamotoThreshold
	}
	if len(o.Percentiles) == 0 {
		o.Percentiles = []int{1, 5, 10, 20, 50}
	}
	return o
}

// ZeroReport is the documented result for an empty or zero-supply balance
// vector. Not an error.
func ZeroReport() *types.MetricsReport {
	return &types.MetricsReport{
		TopPercentileConcentration: map[string]float64{},
		LorenzCurve:                &types.LorenzCurve{X: []float64{0, 1}, Y: []float64{0, 1}},
	}
}

func errorReport(msg string) *types.MetricsReport {
	report := ZeroReport()
	report.Error = msg
	return report
}

// Concentration computes the full inequality report for a balance vector.
// Invalid entries are dropped first; an empty or zero-sum remainder yields
// the zero report. A panic anywhere in the metric pipeline degrades to an
// error-shaped report instead of propagating.
func (a *Analyzer) Concentration(balances []float64, opts ConcentrationOpts) (report *types.MetricsReport) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("concentration computation failed", zap.Any("panic", r))
			report = errorReport(fmt.Sprintf("concentration: %v", r))
		}
	}()
	opts = opts.sanitize()

	xs := validBalances(balances)
	if len(xs) == 0 || sum(xs) == 0 {
		return ZeroReport()
	}

	return &types.MetricsReport{
		GiniCoefficient:            Gini(xs),
		HerfindahlIndex:            Herfindahl(xs),
		PalmaRatio:                 types.Ratio(PalmaRatio(xs)),
		HooverIndex:                HooverIndex(xs),
		TheilIndex:                 TheilIndex(xs),
		NakamotoCoefficient:        NakamotoCoefficient(xs, opts.NakamotoThreshold),
		TopPercentileConcentration: TopPercentiles(xs, opts.Percentiles),
		LorenzCurve:                LorenzCurve(xs),
	}
}

// Gini computes the Gini coefficient over an ascending sort of the vector,
// clamped to [0,1].
func Gini(balances []float64) float64 {
	xs := sortedAsc(validBalances(balances))
	n := len(xs)
	total := sum(xs)
	if n == 0 || total == 0 {
		return 0
	}
	var weighted float64
	for i, x := range xs {
		weighted += float64(i+1) * x
	}
	g := 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}
	return g
}

// Herfindahl computes the HHI on the 0..10000 scale.
func Herfindahl(balances []float64) float64 {
	var hhi float64
	for _, s := range shares(validBalances(balances)) {
		hhi += s * s
	}
	return 10000 * hhi
}

// PalmaRatio divides the top ~10% of balances by the bottom ~40%, both counts
// rounded up and at least one holder each. Returns +Inf when the bottom share
// holds nothing.
func PalmaRatio(balances []float64) float64 {
	xs := sortedAsc(validBalances(balances))
	n := len(xs)
	if n == 0 {
		return 0
	}
	topCount := int(math.Ceil(float64(n) * 0.1))
	if topCount < 1 {
		topCount = 1
	}
	bottomCount := int(math.Ceil(float64(n) * 0.4))
	if bottomCount < 1 {
		bottomCount = 1
	}
	topSum := sum(xs[n-topCount:])
	bottomSum := sum(xs[:bottomCount])
	if bottomSum == 0 {
		return math.Inf(1)
	}
	return topSum / bottomSum
}

// HooverIndex is the Robin Hood index: the share of total supply that would
// have to move to equalize the distribution.
func HooverIndex(balances []float64) float64 {
	xs := validBalances(balances)
	total := sum(xs)
	if len(xs) == 0 || total == 0 {
		return 0
	}
	mean := total / float64(len(xs))
	var dev float64
	for _, x := range xs {
		dev += math.Abs(x - mean)
	}
	return dev / (2 * total)
}

// TheilIndex computes the Theil entropy index, skipping non-positive entries.
func TheilIndex(balances []float64) float64 {
	xs := validBalances(balances)
	total := sum(xs)
	if len(xs) == 0 || total == 0 {
		return 0
	}
	mean := total / float64(len(xs))
	var theil float64
	for _, x := range xs {
		if x <= 0 {
			continue
		}
		r := x / mean
		theil += r * math.Log(r)
	}
	return theil / float64(len(xs))
}

// NakamotoCoefficient is the minimum number of holders whose combined share
// reaches the threshold (percent). Returns n when the threshold is never
// reached.
func NakamotoCoefficient(balances []float64, thresholdPct float64) int {
	xs := sortedDesc(validBalances(balances))
	n := len(xs)
	total := sum(xs)
	if n == 0 || total == 0 {
		return 0
	}
	target := thresholdPct / 100
	var cum float64
	for i, x := range xs {
		cum += x / total
		if cum >= target {
			return i + 1
		}
	}
	return n
}

// LorenzCurve returns cumulative holder fraction vs cumulative balance
// fraction, starting at (0,0); both slices have length n+1.
func LorenzCurve(balances []float64) *types.LorenzCurve {
	xs := sortedAsc(validBalances(balances))
	n := len(xs)
	total := sum(xs)
	if n == 0 || total == 0 {
		return &types.LorenzCurve{X: []float64{0, 1}, Y: []float64{0, 1}}
	}
	curve := &types.LorenzCurve{
		X: make([]float64, n+1),
		Y: make([]float64, n+1),
	}
	var cum float64
	for i, x := range xs {
		cum += x
		curve.X[i+1] = float64(i+1) / float64(n)
		curve.Y[i+1] = cum / total
	}
	return curve
}

// TopPercentiles maps each percentile to the share of supply (in percent)
// held by its top holders; the holder count is floored but never below one.
func TopPercentiles(balances []float64, percentiles []int) map[string]float64 {
	xs := sortedDesc(validBalances(balances))
	n := len(xs)
	total := sum(xs)
	out := make(map[string]float64, len(percentiles))
	if n == 0 || total == 0 {
		return out
	}
	for _, p := range percentiles {
		holderCount := n * p / 100
		if holderCount < 1 {
			holderCount = 1
		}
		if holderCount > n {
			holderCount = n
		}
		out[strconv.Itoa(p)] = sum(xs[:holderCount]) / total * 100
	}
	return out
}
