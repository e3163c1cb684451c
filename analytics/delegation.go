package analytics

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"

	"github.com/govlens/governance-backend/analytics/graph"
)

const (
	maxChainDepth = 10
	// CycleMarker terminates a delegation chain that revisits an address.
	CycleMarker = "<cycle>"

	topDelegateCount = 10

	pagerankDamping   = 0.85
	pagerankTolerance = 1e-6
	hitsTolerance     = 1e-8
)

func emptyNetworkResult() *types.NetworkResult {
	return &types.NetworkResult{
		KeyDelegates:     []*types.DelegateRank{},
		RankedDelegates:  []*types.DelegateRank{},
		DelegationChains: [][]string{},
		Centrality: &types.CentralityMetrics{
			InDegree:  map[string]float64{},
			PageRank:  map[string]float64{},
			Authority: map[string]float64{},
		},
	}
}

// effectiveDelegations reduces the record list to one delegation per
// delegator, last record wins. Records missing either address are skipped.
// Returned delegators keep first-seen order.
func (a *Analyzer) effectiveDelegations(delegations []*types.Delegation) ([]string, map[string]*types.Delegation) {
	effective := make(map[string]*types.Delegation)
	var order []string
	var skipped int
	for _, d := range delegations {
		if d == nil || d.Delegator == "" || d.Delegate == "" {
			skipped++
			continue
		}
		if _, ok := effective[d.Delegator]; !ok {
			order = append(order, d.Delegator)
		}
		effective[d.Delegator] = d
	}
	if skipped > 0 {
		a.logger.Debug("skipped malformed delegation records", zap.Int("count", skipped))
	}
	return order, effective
}

// DelegationNetwork builds the directed delegation graph and derives
// delegate rankings, centrality metrics and delegation chains. An empty
// delegation list yields empty result structures.
func (a *Analyzer) DelegationNetwork(delegations []*types.Delegation, holders []*types.Holder) (result *types.NetworkResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("delegation network analysis failed", zap.Any("panic", r))
			result = emptyNetworkResult()
			result.Error = fmt.Sprintf("delegation network: %v", r)
		}
	}()

	balances := HolderBalances(holders)
	order, effective := a.effectiveDelegations(delegations)

	g := graph.NewDirected()
	for _, h := range holders {
		if h != nil && h.Address != "" {
			g.AddNode(h.Address)
		}
	}
	for _, delegator := range order {
		d := effective[delegator]
		amount := balances[d.Delegator]
		if d.Amount != nil {
			amount = *d.Amount
		}
		g.SetEdge(d.Delegator, d.Delegate, amount)
	}

	result = emptyNetworkResult()
	result.TotalDelegations = g.EdgeCount()
	nodes := g.Nodes()

	var delegates []string
	for _, addr := range nodes {
		if g.InDegree(addr) > 0 {
			delegates = append(delegates, addr)
		}
	}

	byInDegree := append([]string(nil), delegates...)
	sort.SliceStable(byInDegree, func(i, j int) bool {
		return g.InDegree(byInDegree[i]) > g.InDegree(byInDegree[j])
	})
	for _, addr := range topN(byInDegree, topDelegateCount) {
		result.KeyDelegates = append(result.KeyDelegates, &types.DelegateRank{
			Address:    addr,
			Delegators: g.InDegree(addr),
		})
	}

	byPower := append([]string(nil), delegates...)
	sort.SliceStable(byPower, func(i, j int) bool {
		return g.IncomingWeight(byPower[i]) > g.IncomingWeight(byPower[j])
	})
	for _, addr := range topN(byPower, topDelegateCount) {
		result.RankedDelegates = append(result.RankedDelegates, &types.DelegateRank{
			Address: addr,
			Power:   g.IncomingWeight(addr),
		})
	}
	if len(result.RankedDelegates) > 0 {
		result.TopDelegate = result.RankedDelegates[0].Address
		result.TopDelegatePower = result.RankedDelegates[0].Power
	}

	if g.EdgeCount() > 0 {
		result.Centrality.InDegree = g.InDegreeCentrality()
		result.Centrality.PageRank = g.PageRank(pagerankDamping, pagerankTolerance)
		result.Centrality.Authority = g.Authority(hitsTolerance)
	}

	result.DelegationChains = traceChains(g)
	return result
}

// traceChains follows delegation edges from every root (no incoming, at
// least one outgoing) up to maxChainDepth hops, flagging cycles with the
// sentinel marker instead of looping.
func traceChains(g *graph.Directed) [][]string {
	chains := [][]string{}
	for _, root := range g.Nodes() {
		if g.InDegree(root) != 0 || g.OutDegree(root) == 0 {
			continue
		}
		chain := []string{root}
		seen := map[string]bool{root: true}
		current := root
		for hop := 0; hop < maxChainDepth; hop++ {
			succ := g.Successors(current)
			if len(succ) == 0 {
				break
			}
			next := succ[0]
			if seen[next] {
				chain = append(chain, CycleMarker)
				break
			}
			chain = append(chain, next)
			seen[next] = true
			current = next
		}
		chains = append(chains, chain)
	}
	return chains
}

// DelegationEffectiveness measures how often each effective delegate shows up
// among proposal voters, then buckets delegates by participation rate.
func (a *Analyzer) DelegationEffectiveness(delegations []*types.Delegation, proposals []*types.Proposal) *types.DelegationEffectiveness {
	result := &types.DelegationEffectiveness{
		ParticipationRates: map[string]float64{},
		HighlyActive:       []string{},
		Active:             []string{},
		Occasional:         []string{},
		Inactive:           []string{},
	}
	order, effective := a.effectiveDelegations(delegations)
	if len(order) == 0 || len(proposals) == 0 {
		return result
	}

	delegates := make(map[string]bool)
	var delegateList []string
	for _, delegator := range order {
		delegate := effective[delegator].Delegate
		if !delegates[delegate] {
			delegates[delegate] = true
			delegateList = append(delegateList, delegate)
		}
	}
	sort.Strings(delegateList)

	voters := make([]map[string]bool, 0, len(proposals))
	for _, p := range proposals {
		if p == nil {
			continue
		}
		set := make(map[string]bool, len(p.Votes))
		for _, v := range p.Votes {
			if v != nil {
				set[v.Voter] = true
			}
		}
		voters = append(voters, set)
	}
	if len(voters) == 0 {
		return result
	}

	for _, delegate := range delegateList {
		var active int
		for _, set := range voters {
			if set[delegate] {
				active++
			}
		}
		rate := float64(active) / float64(len(voters))
		result.ParticipationRates[delegate] = rate
		switch {
		case rate >= 0.75:
			result.HighlyActive = append(result.HighlyActive, delegate)
		case rate >= 0.5:
			result.Active = append(result.Active, delegate)
		case rate >= 0.25:
			result.Occasional = append(result.Occasional, delegate)
		default:
			result.Inactive = append(result.Inactive, delegate)
		}
	}
	return result
}

// DelegationMetrics sizes the delegation market: how much supply is
// delegated and how concentrated it is among the top delegates.
func (a *Analyzer) DelegationMetrics(delegations []*types.Delegation, holders []*types.Holder) *types.DelegationMetrics {
	metrics := &types.DelegationMetrics{}
	balances := HolderBalances(holders)
	order, effective := a.effectiveDelegations(delegations)
	if len(order) == 0 {
		return metrics
	}

	var supply float64
	for _, b := range balances {
		supply += b
	}

	perDelegate := make(map[string]float64)
	var delegateOrder []string
	var totalAmount float64
	for _, delegator := range order {
		d := effective[delegator]
		metrics.TotalDelegated += balances[d.Delegator]

		amount := balances[d.Delegator]
		if d.Amount != nil {
			amount = *d.Amount
		}
		if _, ok := perDelegate[d.Delegate]; !ok {
			delegateOrder = append(delegateOrder, d.Delegate)
		}
		perDelegate[d.Delegate] += amount
		totalAmount += amount
	}

	metrics.DelegationPercentage = safeDiv(metrics.TotalDelegated, supply) * 100
	metrics.UniqueDelegators = len(order)
	metrics.UniqueDelegates = len(delegateOrder)

	sort.SliceStable(delegateOrder, func(i, j int) bool {
		return perDelegate[delegateOrder[i]] > perDelegate[delegateOrder[j]]
	})
	metrics.Top5Concentration = concentrationOfTop(delegateOrder, perDelegate, totalAmount, 5)
	metrics.Top10Concentration = concentrationOfTop(delegateOrder, perDelegate, totalAmount, 10)
	return metrics
}

func concentrationOfTop(ranked []string, perDelegate map[string]float64, total float64, n int) float64 {
	var topSum float64
	for _, addr := range topN(ranked, n) {
		topSum += perDelegate[addr]
	}
	return safeDiv(topSum, total) * 100
}

func topN(xs []string, n int) []string {
	if len(xs) < n {
		n = len(xs)
	}
	return xs[:n]
}
