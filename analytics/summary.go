package analytics

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/govlens/governance-backend/types"
)

// CleanBalance parses upstream balance strings that may carry currency
// symbols, thousand separators or stray whitespace.
func CleanBalance(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SanitizeBalances filters a heterogeneous raw vector down to valid entries.
// Unparseable and negative values are dropped; zero balances are legitimate
// and retained.
func SanitizeBalances(raw []interface{}) []float64 {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		var (
			f  float64
			ok bool
		)
		switch b := v.(type) {
		case float64:
			f, ok = b, true
		case int:
			f, ok = float64(b), true
		case int64:
			f, ok = float64(b), true
		case json.Number:
			if parsed, err := b.Float64(); err == nil {
				f, ok = parsed, true
			}
		case string:
			f, ok = CleanBalance(b)
		}
		if ok && f >= 0 {
			out = append(out, f)
		}
	}
	return out
}

// BalanceVector extracts the balance vector from holder records, preferring
// the pre-parsed float and falling back to cleaning the raw string.
func BalanceVector(holders []*types.Holder) []float64 {
	out := make([]float64, 0, len(holders))
	for _, h := range holders {
		if h == nil {
			continue
		}
		if v, ok := holderBalance(h); ok {
			out = append(out, v)
		}
	}
	return out
}

// HolderBalances maps addresses to cleaned balances. Later records for the
// same address win, mirroring snapshot upserts.
func HolderBalances(holders []*types.Holder) map[string]float64 {
	out := make(map[string]float64, len(holders))
	for _, h := range holders {
		if h == nil || h.Address == "" {
			continue
		}
		if v, ok := holderBalance(h); ok {
			out[h.Address] = v
		}
	}
	return out
}

func holderBalance(h *types.Holder) (float64, bool) {
	v := h.BalanceFloat
	if v == 0 && h.Balance != "" {
		parsed, ok := CleanBalance(h.Balance)
		if !ok {
			return 0, false
		}
		v = parsed
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}

func sortedAsc(xs []float64) []float64 {
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	return cp
}

func sortedDesc(xs []float64) []float64 {
	cp := sortedAsc(xs)
	for i, j := 0, len(cp)-1; i < j; i, j = i+1, j-1 {
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// shares normalizes the vector to fractions of its total, nil if degenerate.
func shares(xs []float64) []float64 {
	total := sum(xs)
	if total <= 0 {
		return nil
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x / total
	}
	return out
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// validBalances drops negative entries, keeping zeros.
func validBalances(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x >= 0 {
			out = append(out, x)
		}
	}
	return out
}
