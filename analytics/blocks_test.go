// Package analytics
package analytics

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govlens/governance-backend/types"
)

func makeProposal(id string, votes map[string]string) *types.Proposal {
	p := &types.Proposal{ID: id}
	for voter, choice := range votes {
		p.Votes = append(p.Votes, &types.Vote{ProposalID: id, Voter: voter, Choice: choice})
	}
	return p
}

// two coalitions: a1/a2 always for, b1/b2 always against
func coalitionProposals() []*types.Proposal {
	var proposals []*types.Proposal
	for _, id := range []string{"p1", "p2", "p3"} {
		proposals = append(proposals, makeProposal(id, map[string]string{
			"a1": types.VoteFor,
			"a2": types.VoteFor,
			"b1": types.VoteAgainst,
			"b2": types.VoteAgainst,
		}))
	}
	return proposals
}

func TestSimilarity(t *testing.T) {
	a := map[string]string{"p1": "for", "p2": "for", "p3": "against"}
	b := map[string]string{"p1": "for", "p2": "against", "p4": "for"}
	sim, ok := Similarity(a, b)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, sim, 1e-12)

	_, ok = Similarity(a, map[string]string{"p9": "for"})
	assert.False(t, ok)
}

func TestIdentifyBlocks_PerfectAgreement(t *testing.T) {
	a := newTestAnalyzer()
	result := a.IdentifyBlocks(coalitionProposals(), 0.7)

	assert.Equal(t, 2, result.TotalBlocks)
	assert.Equal(t, 2, result.LargestBlockSize)
	assert.Equal(t, []string{"a1", "a2"}, result.Blocks[0].Members)
	assert.Equal(t, []string{"b1", "b2"}, result.Blocks[1].Members)
	assert.Equal(t, result.VoterBlockMapping["a1"], result.VoterBlockMapping["a2"])
	assert.NotEqual(t, result.VoterBlockMapping["a1"], result.VoterBlockMapping["b1"])

	for _, stats := range result.BlockStats {
		assert.InDelta(t, 1.0, stats.Cohesion, 1e-12)
		assert.InDelta(t, 2.0, stats.InfluenceScore, 1e-12)
	}
}

func TestIdentifyBlocks_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	first := a.IdentifyBlocks(coalitionProposals(), 0.7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.IdentifyBlocks(coalitionProposals(), 0.7))
	}
}

func TestIdentifyBlocks_TooFewActiveVoters(t *testing.T) {
	a := newTestAnalyzer()

	// single voter on two proposals
	proposals := []*types.Proposal{
		makeProposal("p1", map[string]string{"solo": types.VoteFor}),
		makeProposal("p2", map[string]string{"solo": types.VoteFor}),
	}
	result := a.IdentifyBlocks(proposals, 0.7)
	assert.Equal(t, emptyBlockResult(), result)

	// many voters, each active on a single proposal
	result = a.IdentifyBlocks([]*types.Proposal{
		makeProposal("p1", map[string]string{"x": types.VoteFor, "y": types.VoteFor}),
	}, 0.7)
	assert.Equal(t, emptyBlockResult(), result)

	result = a.IdentifyBlocks(nil, 0.7)
	assert.Equal(t, emptyBlockResult(), result)
}

func TestIdentifyBlocks_ThresholdFilters(t *testing.T) {
	a := newTestAnalyzer()
	// agreement on 1 of 2 common proposals: similarity 0.5
	proposals := []*types.Proposal{
		makeProposal("p1", map[string]string{"v1": types.VoteFor, "v2": types.VoteFor}),
		makeProposal("p2", map[string]string{"v1": types.VoteFor, "v2": types.VoteAgainst}),
	}

	strict := a.IdentifyBlocks(proposals, 0.7)
	for _, stats := range strict.BlockStats {
		assert.Equal(t, 0.0, stats.Cohesion)
	}

	loose := a.IdentifyBlocks(proposals, 0.5)
	assert.Equal(t, 1, loose.TotalBlocks)
	assert.Equal(t, 2, loose.LargestBlockSize)
	assert.InDelta(t, 0.5, loose.BlockStats["0"].Cohesion, 1e-12)
}

func TestIdentifyBlocks_ZeroThreshold(t *testing.T) {
	a := newTestAnalyzer()
	// similarity 0.5 between the two voters: below the 0.7 default, so a
	// zero threshold must be honored as-is rather than replaced by it
	proposals := []*types.Proposal{
		makeProposal("p1", map[string]string{"v1": types.VoteFor, "v2": types.VoteFor}),
		makeProposal("p2", map[string]string{"v1": types.VoteFor, "v2": types.VoteAgainst}),
	}

	result := a.IdentifyBlocks(proposals, 0)
	assert.Equal(t, 1, result.TotalBlocks)
	assert.Equal(t, 2, result.LargestBlockSize)
	assert.InDelta(t, 0.5, result.BlockStats["0"].Cohesion, 1e-12)
}

func TestBlockInfluence(t *testing.T) {
	a := newTestAnalyzer()
	blocks := a.IdentifyBlocks(coalitionProposals(), 0.7)
	holders := []*types.Holder{
		{Address: "a1", BalanceFloat: 600},
		{Address: "a2", BalanceFloat: 200},
		{Address: "b1", BalanceFloat: 100},
		{Address: "b2", BalanceFloat: 100},
		{Address: "outsider", BalanceFloat: 5000},
	}

	influence := a.BlockInfluence(blocks, holders)
	assert.Len(t, influence.Blocks, 2)
	assert.NotNil(t, influence.MostInfluentialBlock)

	top := influence.Blocks[0]
	assert.Equal(t, *influence.MostInfluentialBlock, top.ID)
	// outsider balance is ignored: shares computed over blocked addresses only
	assert.InDelta(t, 80.0, top.TokenShare, 1e-9)
	assert.InDelta(t, 80.0, top.InfluenceScore, 1e-9)
	assert.InDelta(t, 20.0, influence.Blocks[1].TokenShare, 1e-9)
}

func TestBlockInfluence_NoBlocks(t *testing.T) {
	a := newTestAnalyzer()
	influence := a.BlockInfluence(emptyBlockResult(), nil)
	assert.Empty(t, influence.Blocks)
	assert.Nil(t, influence.MostInfluentialBlock)
}

func TestBlockVotingPatterns(t *testing.T) {
	a := newTestAnalyzer()
	proposals := coalitionProposals()
	blocks := a.IdentifyBlocks(proposals, 0.7)

	patterns := a.BlockVotingPatterns(proposals, blocks.VoterBlockMapping)
	assert.Len(t, patterns.Proposals, 3)

	blockA := blocks.VoterBlockMapping["a1"]
	blockB := blocks.VoterBlockMapping["b1"]
	for _, byBlock := range patterns.Proposals {
		assert.Equal(t, types.VoteFor, byBlock[strconv.Itoa(blockA)].Dominant)
		assert.Equal(t, types.VoteAgainst, byBlock[strconv.Itoa(blockB)].Dominant)
	}
	assert.InDelta(t, 0.0, patterns.Agreement["0-1"], 1e-12)
}

func TestBlockVotingPatterns_Agreement(t *testing.T) {
	a := newTestAnalyzer()
	mapping := map[string]int{"a1": 0, "a2": 0, "b1": 1, "b2": 1}
	proposals := []*types.Proposal{
		// blocks agree
		makeProposal("p1", map[string]string{"a1": types.VoteFor, "a2": types.VoteFor, "b1": types.VoteFor, "b2": types.VoteFor}),
		// blocks disagree
		makeProposal("p2", map[string]string{"a1": types.VoteFor, "a2": types.VoteFor, "b1": types.VoteAgainst, "b2": types.VoteAgainst}),
	}
	patterns := a.BlockVotingPatterns(proposals, mapping)
	assert.InDelta(t, 0.5, patterns.Agreement["0-1"], 1e-12)
}

func TestDominantChoiceTieBreak(t *testing.T) {
	// for/against tied: the fixed choice order decides
	assert.Equal(t, types.VoteFor, dominantChoice(&types.VoteTally{For: 2, Against: 2}))
	assert.Equal(t, types.VoteAgainst, dominantChoice(&types.VoteTally{Against: 1, Abstain: 1}))
	assert.Equal(t, types.VoteAbstain, dominantChoice(&types.VoteTally{For: 1, Abstain: 2}))
}
