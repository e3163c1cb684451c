package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/govlens/governance-backend/types"

	"github.com/govlens/governance-backend/analytics/graph"
)

// communitySeed pins the community-detection shuffle so block formation is
// reproducible for identical inputs.
const communitySeed uint64 = 1

func emptyBlockResult() *types.BlockResult {
	return &types.BlockResult{
		Blocks:            []*types.VotingBlock{},
		BlockStats:        map[string]*types.BlockStats{},
		VoterBlockMapping: map[string]int{},
	}
}

// IdentifyBlocks detects voting coalitions among voters active on at least
// two proposals. Fewer than two active voters is a documented empty result,
// not an error.
func (a *Analyzer) IdentifyBlocks(proposals []*types.Proposal, similarityThreshold float64) (result *types.BlockResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("block identification failed", zap.Any("panic", r))
			result = emptyBlockResult()
			result.Error = fmt.Sprintf("identify blocks: %v", r)
		}
	}()
	// zero is a legal threshold: every pair with a common proposal gets an edge
	if similarityThreshold < 0 || similarityThreshold > 1 {
		similarityThreshold = DefaultSimilarityThreshold
	}

	votes := voterVotes(proposals)
	voters := activeVoters(votes)
	if len(voters) < 2 {
		return emptyBlockResult()
	}

	g := buildSimilarityGraph(votes, voters, similarityThreshold)
	communities := g.Communities(1.0, communitySeed)

	result = emptyBlockResult()
	for id, members := range communities {
		cohesion := blockCohesion(g, members)
		result.Blocks = append(result.Blocks, &types.VotingBlock{
			ID:      id,
			Size:    len(members),
			Members: members,
		})
		result.BlockStats[strconv.Itoa(id)] = &types.BlockStats{
			Size:           len(members),
			Cohesion:       cohesion,
			InfluenceScore: float64(len(members)) * cohesion,
		}
		for _, m := range members {
			result.VoterBlockMapping[m] = id
		}
	}
	result.TotalBlocks = len(result.Blocks)
	if len(result.Blocks) > 0 {
		// communities are ordered by descending size
		result.LargestBlockSize = result.Blocks[0].Size
	}
	return result
}

// blockCohesion is the mean pairwise similarity among members whose
// similarity cleared the threshold (the graph only holds such edges);
// 0 when no pair did.
func blockCohesion(g *graph.Undirected, members []string) float64 {
	var total float64
	var pairs int
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if w, ok := g.Weight(members[i], members[j]); ok {
				total += w
				pairs++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

// BlockInfluence re-scores blocks by token holdings: influence is the block's
// share of all blocked addresses' balances (in percent) times its cohesion.
// Addresses without a holder record contribute zero balance.
func (a *Analyzer) BlockInfluence(blocks *types.BlockResult, holders []*types.Holder) *types.BlockInfluence {
	influence := &types.BlockInfluence{Blocks: []*types.BlockInfluenceEntry{}}
	if blocks == nil || len(blocks.Blocks) == 0 {
		return influence
	}
	balances := HolderBalances(holders)

	var total float64
	blockBalances := make(map[int]float64, len(blocks.Blocks))
	for _, b := range blocks.Blocks {
		for _, m := range b.Members {
			blockBalances[b.ID] += balances[m]
			total += balances[m]
		}
	}

	for _, b := range blocks.Blocks {
		share := safeDiv(blockBalances[b.ID], total) * 100
		var cohesion float64
		if stats, ok := blocks.BlockStats[strconv.Itoa(b.ID)]; ok {
			cohesion = stats.Cohesion
		}
		influence.Blocks = append(influence.Blocks, &types.BlockInfluenceEntry{
			ID:             b.ID,
			Size:           b.Size,
			TokenShare:     share,
			Cohesion:       cohesion,
			InfluenceScore: share * cohesion,
		})
	}
	sort.SliceStable(influence.Blocks, func(i, j int) bool {
		if influence.Blocks[i].InfluenceScore != influence.Blocks[j].InfluenceScore {
			return influence.Blocks[i].InfluenceScore > influence.Blocks[j].InfluenceScore
		}
		return influence.Blocks[i].ID < influence.Blocks[j].ID
	})
	top := influence.Blocks[0].ID
	influence.MostInfluentialBlock = &top
	return influence
}

// dominantChoiceOrder fixes the plurality tie-break: the earliest choice in
// this order wins a tied tally.
var dominantChoiceOrder = [3]string{types.VoteFor, types.VoteAgainst, types.VoteAbstain}

// BlockVotingPatterns aggregates per-proposal vote tallies by block and
// scores pairwise block agreement over commonly voted proposals.
func (a *Analyzer) BlockVotingPatterns(proposals []*types.Proposal, mapping map[string]int) *types.BlockVotingPatterns {
	patterns := &types.BlockVotingPatterns{
		Proposals: map[string]map[string]*types.VoteTally{},
		Agreement: map[string]float64{},
	}
	if len(mapping) == 0 {
		return patterns
	}

	// dominant[proposalID][blockID]
	dominant := make(map[string]map[int]string)
	for _, p := range proposals {
		if p == nil {
			continue
		}
		tallies := make(map[int]*types.VoteTally)
		for _, v := range p.Votes {
			if v == nil {
				continue
			}
			blockID, ok := mapping[v.Voter]
			if !ok {
				continue
			}
			tally, ok := tallies[blockID]
			if !ok {
				tally = &types.VoteTally{}
				tallies[blockID] = tally
			}
			switch v.Choice {
			case types.VoteFor:
				tally.For++
			case types.VoteAgainst:
				tally.Against++
			case types.VoteAbstain:
				tally.Abstain++
			}
		}
		if len(tallies) == 0 {
			continue
		}
		byBlock := make(map[string]*types.VoteTally, len(tallies))
		dominant[p.ID] = make(map[int]string, len(tallies))
		for blockID, tally := range tallies {
			tally.Dominant = dominantChoice(tally)
			byBlock[strconv.Itoa(blockID)] = tally
			dominant[p.ID][blockID] = tally.Dominant
		}
		patterns.Proposals[p.ID] = byBlock
	}

	blockIDs := blockIDSet(mapping)
	for i := 0; i < len(blockIDs); i++ {
		for j := i + 1; j < len(blockIDs); j++ {
			var common, matched int
			for _, byBlock := range dominant {
				left, okLeft := byBlock[blockIDs[i]]
				right, okRight := byBlock[blockIDs[j]]
				if !okLeft || !okRight {
					continue
				}
				common++
				if left == right {
					matched++
				}
			}
			if common == 0 {
				continue
			}
			key := fmt.Sprintf("%d-%d", blockIDs[i], blockIDs[j])
			patterns.Agreement[key] = float64(matched) / float64(common)
		}
	}
	return patterns
}

func dominantChoice(tally *types.VoteTally) string {
	counts := [3]int{tally.For, tally.Against, tally.Abstain}
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return dominantChoiceOrder[best]
}

func blockIDSet(mapping map[string]int) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, id := range mapping {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
