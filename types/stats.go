package types

// ProtocolStats tracks ingested record counts per protocol, refreshed by the
// watcher after every analysis pass.
type ProtocolStats struct {
	Protocol        string `json:"protocol" bson:"protocol"`
	HolderCount     uint64 `json:"holderCount" bson:"holderCount"`
	ProposalCount   uint64 `json:"proposalCount" bson:"proposalCount"`
	VoteCount       uint64 `json:"voteCount" bson:"voteCount"`
	DelegationCount uint64 `json:"delegationCount" bson:"delegationCount"`

	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

type ServerStatus struct {
	Status        string `json:"status"`
	AppVersion    string `json:"appVersion"`
	ServerVersion string `json:"serverVersion"`
	DbVersion     string `json:"dbVersion"`
}
