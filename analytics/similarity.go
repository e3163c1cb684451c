package analytics

import (
	"sort"

	"github.com/govlens/governance-backend/types"

	"github.com/govlens/governance-backend/analytics/graph"
)

const DefaultSimilarityThreshold = 0.7

// voterVotes flattens proposal vote lists into voter -> proposalID -> choice.
// A voter's later vote on the same proposal supersedes the earlier one.
func voterVotes(proposals []*types.Proposal) map[string]map[string]string {
	votes := make(map[string]map[string]string)
	for _, p := range proposals {
		if p == nil {
			continue
		}
		for _, v := range p.Votes {
			if v == nil || v.Voter == "" || v.Choice == "" {
				continue
			}
			if _, ok := votes[v.Voter]; !ok {
				votes[v.Voter] = make(map[string]string)
			}
			votes[v.Voter][p.ID] = v.Choice
		}
	}
	return votes
}

// activeVoters returns voters with votes on at least two proposals, sorted
// so downstream graph construction is order-independent.
func activeVoters(votes map[string]map[string]string) []string {
	voters := make([]string, 0, len(votes))
	for voter, byProposal := range votes {
		if len(byProposal) >= 2 {
			voters = append(voters, voter)
		}
	}
	sort.Strings(voters)
	return voters
}

// Similarity scores vote agreement between two voters over the proposals both
// voted on: matching choices divided by common proposals. The second return
// is false when they share no proposals.
func Similarity(a, b map[string]string) (float64, bool) {
	var common, matched int
	for pid, choiceA := range a {
		choiceB, ok := b[pid]
		if !ok {
			continue
		}
		common++
		if choiceA == choiceB {
			matched++
		}
	}
	if common == 0 {
		return 0, false
	}
	return float64(matched) / float64(common), true
}

// buildSimilarityGraph adds a node per active voter and an edge for every
// pair whose agreement reaches the threshold, weighted by the similarity.
func buildSimilarityGraph(votes map[string]map[string]string, voters []string, threshold float64) *graph.Undirected {
	g := graph.NewUndirected()
	for _, voter := range voters {
		g.AddNode(voter)
	}
	for i := 0; i < len(voters); i++ {
		for j := i + 1; j < len(voters); j++ {
			sim, ok := Similarity(votes[voters[i]], votes[voters[j]])
			if !ok || sim < threshold {
				continue
			}
			g.SetEdge(voters[i], voters[j], sim)
		}
	}
	return g
}
