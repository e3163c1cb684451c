// Package types
package types

import (
	"encoding/json"
	"math"
	"testing"

	"gotest.tools/assert"
)

func TestNormalizeHolder_FieldVariants(t *testing.T) {
	variants := []map[string]interface{}{
		{"address": "0xa1", "balance": "1,250.50"},
		{"holderAddress": "0xa1", "tokenBalance": "1,250.50"},
		{"wallet": "0xa1", "TokenHolderQuantity": "1,250.50"},
	}
	for _, raw := range variants {
		h, ok := NormalizeHolder(raw)
		assert.Assert(t, ok)
		assert.Equal(t, h.Address, "0xa1")
		assert.Equal(t, h.Balance, "1,250.50")
	}
}

func TestNormalizeHolder_NumericBalance(t *testing.T) {
	h, ok := NormalizeHolder(map[string]interface{}{"address": "0xa2", "balance": 42.5})
	assert.Assert(t, ok)
	assert.Equal(t, h.BalanceFloat, 42.5)
	assert.Equal(t, h.Balance, "42.5")
}

func TestNormalizeHolder_MissingAddress(t *testing.T) {
	_, ok := NormalizeHolder(map[string]interface{}{"balance": "100"})
	assert.Assert(t, !ok)
}

func TestNormalizeVote_ChoiceEncodings(t *testing.T) {
	cases := map[string]string{
		"for": VoteFor, "FOR": VoteFor, "yes": VoteFor, "1": VoteFor,
		"against": VoteAgainst, "no": VoteAgainst, "0": VoteAgainst,
		"abstain": VoteAbstain, "pass": VoteAbstain, "2": VoteAbstain,
	}
	for raw, want := range cases {
		v, ok := NormalizeVote(map[string]interface{}{"voter_address": "0xb1", "vote": raw, "proposal_id": "12"})
		assert.Assert(t, ok)
		assert.Equal(t, v.Choice, want)
		assert.Equal(t, v.ProposalID, "12")
	}
}

func TestNormalizeVote_RejectsUnknownChoice(t *testing.T) {
	_, ok := NormalizeVote(map[string]interface{}{"voter": "0xb1", "vote": "maybe"})
	assert.Assert(t, !ok)
}

func TestNormalizeVote_NumericProposalID(t *testing.T) {
	v, ok := NormalizeVote(map[string]interface{}{"voter": "0xb1", "choice": "for", "proposalId": float64(7)})
	assert.Assert(t, ok)
	assert.Equal(t, v.ProposalID, "7")
}

func TestNormalizeDelegation(t *testing.T) {
	d, ok := NormalizeDelegation(map[string]interface{}{"delegator": "0xc1", "delegate": "0xc2", "amount": 10.0})
	assert.Assert(t, ok)
	assert.Equal(t, d.Delegator, "0xc1")
	assert.Equal(t, d.Delegate, "0xc2")
	assert.Equal(t, *d.Amount, 10.0)

	d, ok = NormalizeDelegation(map[string]interface{}{"from": "0xc1", "to": "0xc2"})
	assert.Assert(t, ok)
	assert.Assert(t, d.Amount == nil)

	_, ok = NormalizeDelegation(map[string]interface{}{"delegator": "0xc1"})
	assert.Assert(t, !ok)
}

func TestRatioMarshalsInfinityAsNull(t *testing.T) {
	report := &MetricsReport{PalmaRatio: Ratio(math.Inf(1))}
	data, err := json.Marshal(report)
	assert.NilError(t, err)
	assert.Assert(t, json.Valid(data))

	var decoded map[string]interface{}
	assert.NilError(t, json.Unmarshal(data, &decoded))
	assert.Assert(t, decoded["palma_ratio"] == nil)
}
