package types

type DelegateRank struct {
	Address    string  `json:"address" bson:"address"`
	Delegators int     `json:"delegators,omitempty" bson:"delegators,omitempty"`
	Power      float64 `json:"power,omitempty" bson:"power,omitempty"`
}

type CentralityMetrics struct {
	InDegree  map[string]float64 `json:"in_degree" bson:"inDegree"`
	PageRank  map[string]float64 `json:"pagerank" bson:"pagerank"`
	Authority map[string]float64 `json:"authority" bson:"authority"`
}

type NetworkResult struct {
	KeyDelegates     []*DelegateRank    `json:"key_delegates" bson:"keyDelegates"`
	RankedDelegates  []*DelegateRank    `json:"ranked_delegates" bson:"rankedDelegates"`
	TopDelegate      string             `json:"top_delegate" bson:"topDelegate"`
	TopDelegatePower float64            `json:"top_delegate_power" bson:"topDelegatePower"`
	TotalDelegations int                `json:"total_delegations" bson:"totalDelegations"`
	DelegationChains [][]string         `json:"delegation_chains" bson:"delegationChains"`
	Centrality       *CentralityMetrics `json:"centrality_metrics" bson:"centralityMetrics"`

	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

type DelegationEffectiveness struct {
	ParticipationRates map[string]float64 `json:"participation_rates" bson:"participationRates"`
	HighlyActive       []string           `json:"highly_active" bson:"highlyActive"`
	Active             []string           `json:"active" bson:"active"`
	Occasional         []string           `json:"occasional" bson:"occasional"`
	Inactive           []string           `json:"inactive" bson:"inactive"`
}

type DelegationMetrics struct {
	TotalDelegated       float64 `json:"total_delegated_tokens" bson:"totalDelegatedTokens"`
	DelegationPercentage float64 `json:"delegation_percentage" bson:"delegationPercentage"`
	Top5Concentration    float64 `json:"top5_concentration" bson:"top5Concentration"`
	Top10Concentration   float64 `json:"top10_concentration" bson:"top10Concentration"`
	UniqueDelegators     int     `json:"unique_delegators" bson:"uniqueDelegators"`
	UniqueDelegates      int     `json:"unique_delegates" bson:"uniqueDelegates"`
}
