package types

type VotingBlock struct {
	ID      int      `json:"id" bson:"id"`
	Size    int      `json:"size" bson:"size"`
	Members []string `json:"members" bson:"members"`
}

type BlockStats struct {
	Size           int     `json:"size" bson:"size"`
	Cohesion       float64 `json:"cohesion" bson:"cohesion"`
	InfluenceScore float64 `json:"influence_score" bson:"influenceScore"`
}

// BlockResult is keyed by stringified block ids so it round-trips through BSON.
type BlockResult struct {
	Blocks            []*VotingBlock         `json:"blocks" bson:"blocks"`
	BlockStats        map[string]*BlockStats `json:"block_stats" bson:"blockStats"`
	VoterBlockMapping map[string]int         `json:"voter_block_mapping" bson:"voterBlockMapping"`
	TotalBlocks       int                    `json:"total_blocks" bson:"totalBlocks"`
	LargestBlockSize  int                    `json:"largest_block_size" bson:"largestBlockSize"`

	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

type BlockInfluenceEntry struct {
	ID             int     `json:"id" bson:"id"`
	Size           int     `json:"size" bson:"size"`
	TokenShare     float64 `json:"token_share" bson:"tokenShare"`
	Cohesion       float64 `json:"cohesion" bson:"cohesion"`
	InfluenceScore float64 `json:"influence_score" bson:"influenceScore"`
}

type BlockInfluence struct {
	Blocks               []*BlockInfluenceEntry `json:"blocks" bson:"blocks"`
	MostInfluentialBlock *int                   `json:"most_influential_block" bson:"mostInfluentialBlock,omitempty"`
}

type VoteTally struct {
	For      int    `json:"for" bson:"for"`
	Against  int    `json:"against" bson:"against"`
	Abstain  int    `json:"abstain" bson:"abstain"`
	Dominant string `json:"dominant_vote" bson:"dominantVote"`
}

// BlockVotingPatterns aggregates votes by block per proposal. Proposals maps
// proposalID -> blockID -> tally; Agreement maps "i-j" block pairs to the
// fraction of commonly voted proposals with matching dominant votes.
type BlockVotingPatterns struct {
	Proposals map[string]map[string]*VoteTally `json:"proposals" bson:"proposals"`
	Agreement map[string]float64               `json:"block_agreement" bson:"blockAgreement"`
}
