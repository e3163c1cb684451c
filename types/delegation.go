package types

// Delegation records delegator -> delegate voting power. Amount is optional
// upstream; a nil Amount falls back to the delegator's token balance.
type Delegation struct {
	Protocol  string   `json:"protocol,omitempty" bson:"protocol,omitempty"`
	Delegator string   `json:"delegator" bson:"delegator"`
	Delegate  string   `json:"delegate" bson:"delegate"`
	Amount    *float64 `json:"amount,omitempty" bson:"amount,omitempty"`

	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
