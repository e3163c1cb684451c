package types

type Holder struct {
	Protocol     string  `json:"protocol,omitempty" bson:"protocol,omitempty"`
	Address      string  `json:"address" bson:"address"`
	Balance      string  `json:"balance,omitempty" bson:"balance,omitempty"`
	BalanceFloat float64 `json:"balanceFloat,omitempty" bson:"balanceFloat,omitempty"`

	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type HolderFilter struct {
	Protocol   string      `bson:"protocol,omitempty"`
	Address    string      `bson:"address,omitempty"`
	Pagination *Pagination `bson:"-"`
}
