// Package types
package types

const (
	VoteFor     = "for"
	VoteAgainst = "against"
	VoteAbstain = "abstain"
)

type Vote struct {
	Protocol   string  `json:"protocol,omitempty" bson:"protocol,omitempty"`
	ProposalID string  `json:"proposalID" bson:"proposalID"`
	Voter      string  `json:"voter" bson:"voter"`
	Choice     string  `json:"choice" bson:"choice"`
	Weight     float64 `json:"weight,omitempty" bson:"weight,omitempty"`
}

type Proposal struct {
	Protocol string  `json:"protocol,omitempty" bson:"protocol,omitempty"`
	ID       string  `json:"id" bson:"id"`
	Title    string  `json:"title,omitempty" bson:"title,omitempty"`
	Votes    []*Vote `json:"votes,omitempty" bson:"votes,omitempty"`

	UpdateTime int64 `json:"updateTime,omitempty" bson:"updateTime,omitempty"`
}
