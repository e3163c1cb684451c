package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govlens/governance-backend/types"
)

func delegation(delegator, delegate string, amount ...float64) *types.Delegation {
	d := &types.Delegation{Delegator: delegator, Delegate: delegate}
	if len(amount) > 0 {
		d.Amount = &amount[0]
	}
	return d
}

func TestDelegationNetwork(t *testing.T) {
	a := newTestAnalyzer()
	holders := []*types.Holder{
		{Address: "d1", BalanceFloat: 100},
		{Address: "d2", BalanceFloat: 40},
		{Address: "d3", BalanceFloat: 10},
		{Address: "D", BalanceFloat: 500},
		{Address: "E", BalanceFloat: 300},
	}
	delegations := []*types.Delegation{
		delegation("d1", "D"), // amount defaults to d1's balance
		delegation("d2", "D", 50),
		delegation("d3", "E"),
	}

	result := a.DelegationNetwork(delegations, holders)
	assert.Empty(t, result.Error)
	assert.Equal(t, 3, result.TotalDelegations)

	assert.Equal(t, "D", result.KeyDelegates[0].Address)
	assert.Equal(t, 2, result.KeyDelegates[0].Delegators)
	assert.Equal(t, "E", result.KeyDelegates[1].Address)

	assert.Equal(t, "D", result.TopDelegate)
	assert.InDelta(t, 150.0, result.TopDelegatePower, 1e-9) // 100 from d1 + 50 from d2

	assert.NotEmpty(t, result.Centrality.InDegree)
	assert.NotEmpty(t, result.Centrality.PageRank)
	assert.NotEmpty(t, result.Centrality.Authority)
	assert.True(t, result.Centrality.PageRank["D"] > result.Centrality.PageRank["d1"])
}

func TestDelegationNetwork_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	holders := []*types.Holder{
		{Address: "d1", BalanceFloat: 100},
		{Address: "d2", BalanceFloat: 40},
		{Address: "D", BalanceFloat: 500},
	}
	delegations := []*types.Delegation{
		delegation("d1", "D"),
		delegation("d2", "D", 50),
	}
	first := a.DelegationNetwork(delegations, holders)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.DelegationNetwork(delegations, holders))
	}
}

func TestDelegationNetwork_Empty(t *testing.T) {
	a := newTestAnalyzer()
	result := a.DelegationNetwork(nil, nil)

	assert.Empty(t, result.Error)
	assert.Equal(t, 0, result.TotalDelegations)
	assert.Empty(t, result.KeyDelegates)
	assert.Empty(t, result.RankedDelegates)
	assert.Empty(t, result.DelegationChains)
	assert.Empty(t, result.Centrality.PageRank)
}

func TestDelegationNetwork_SkipsMalformedRecords(t *testing.T) {
	a := newTestAnalyzer()
	delegations := []*types.Delegation{
		{Delegator: "", Delegate: "D"},
		{Delegator: "d1", Delegate: ""},
		nil,
		delegation("d2", "D", 10),
	}
	result := a.DelegationNetwork(delegations, nil)
	assert.Equal(t, 1, result.TotalDelegations)
}

func TestDelegationNetwork_LastDelegationWins(t *testing.T) {
	a := newTestAnalyzer()
	delegations := []*types.Delegation{
		delegation("d1", "D", 100),
		delegation("d1", "E", 25),
	}
	result := a.DelegationNetwork(delegations, nil)

	assert.Equal(t, 1, result.TotalDelegations)
	assert.Equal(t, "E", result.TopDelegate)
	assert.InDelta(t, 25.0, result.TopDelegatePower, 1e-9)
}

func TestDelegationChains(t *testing.T) {
	a := newTestAnalyzer()
	delegations := []*types.Delegation{
		delegation("root", "mid", 1),
		delegation("mid", "leaf", 1),
	}
	result := a.DelegationNetwork(delegations, nil)
	assert.Equal(t, [][]string{{"root", "mid", "leaf"}}, result.DelegationChains)
}

func TestDelegationChains_CycleSentinel(t *testing.T) {
	a := newTestAnalyzer()
	delegations := []*types.Delegation{
		delegation("r", "a", 1),
		delegation("a", "b", 1),
		delegation("b", "a", 1),
	}
	result := a.DelegationNetwork(delegations, nil)
	assert.Equal(t, [][]string{{"r", "a", "b", CycleMarker}}, result.DelegationChains)
}

func TestDelegationChains_DepthCap(t *testing.T) {
	a := newTestAnalyzer()
	var delegations []*types.Delegation
	names := []string{"n00", "n01", "n02", "n03", "n04", "n05", "n06", "n07", "n08", "n09", "n10", "n11", "n12", "n13", "n14"}
	for i := 0; i+1 < len(names); i++ {
		delegations = append(delegations, delegation(names[i], names[i+1], 1))
	}
	result := a.DelegationNetwork(delegations, nil)
	assert.Len(t, result.DelegationChains, 1)
	// root plus at most ten hops
	assert.Len(t, result.DelegationChains[0], 11)
}

func TestDelegationEffectiveness(t *testing.T) {
	a := newTestAnalyzer()
	delegations := []*types.Delegation{
		delegation("w", "D", 1),
		delegation("x", "E", 1),
		delegation("y", "F", 1),
		delegation("z", "G", 1),
	}
	vote := func(voters ...string) map[string]string {
		m := make(map[string]string)
		for _, v := range voters {
			m[v] = types.VoteFor
		}
		return m
	}
	proposals := []*types.Proposal{
		makeProposal("p1", vote("D", "E", "F")),
		makeProposal("p2", vote("D", "E")),
		makeProposal("p3", vote("D")),
		makeProposal("p4", vote("D")),
	}

	result := a.DelegationEffectiveness(delegations, proposals)
	assert.InDelta(t, 1.0, result.ParticipationRates["D"], 1e-12)
	assert.InDelta(t, 0.5, result.ParticipationRates["E"], 1e-12)
	assert.InDelta(t, 0.25, result.ParticipationRates["F"], 1e-12)
	assert.InDelta(t, 0.0, result.ParticipationRates["G"], 1e-12)

	assert.Equal(t, []string{"D"}, result.HighlyActive)
	assert.Equal(t, []string{"E"}, result.Active)
	assert.Equal(t, []string{"F"}, result.Occasional)
	assert.Equal(t, []string{"G"}, result.Inactive)
}

func TestDelegationEffectiveness_Empty(t *testing.T) {
	a := newTestAnalyzer()
	result := a.DelegationEffectiveness(nil, nil)
	assert.Empty(t, result.ParticipationRates)
	assert.Empty(t, result.HighlyActive)
	assert.Empty(t, result.Inactive)
}

func TestDelegationMetrics(t *testing.T) {
	a := newTestAnalyzer()
	holders := []*types.Holder{
		{Address: "d1", BalanceFloat: 100},
		{Address: "d2", BalanceFloat: 100},
		{Address: "idle", BalanceFloat: 300},
		{Address: "D", BalanceFloat: 500},
	}
	delegations := []*types.Delegation{
		delegation("d1", "D"),
		delegation("d2", "E", 80),
		delegation("d2", "E", 60), // re-delegation, last record authoritative
	}

	metrics := a.DelegationMetrics(delegations, holders)
	assert.InDelta(t, 200.0, metrics.TotalDelegated, 1e-9)
	assert.InDelta(t, 20.0, metrics.DelegationPercentage, 1e-9) // 200 of 1000 supply
	assert.Equal(t, 2, metrics.UniqueDelegators)
	assert.Equal(t, 2, metrics.UniqueDelegates)
	// two delegates, both inside the top five
	assert.InDelta(t, 100.0, metrics.Top5Concentration, 1e-9)
	assert.InDelta(t, 100.0, metrics.Top10Concentration, 1e-9)
}

func TestDelegationMetrics_Empty(t *testing.T) {
	a := newTestAnalyzer()
	metrics := a.DelegationMetrics(nil, nil)
	assert.Equal(t, 0.0, metrics.TotalDelegated)
	assert.Equal(t, 0.0, metrics.DelegationPercentage)
	assert.Equal(t, 0, metrics.UniqueDelegators)
}
