package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always ordered newest-first.
type QueryOrdersModel struct {
	Ids     []int64 `json:"ids,omitempty"`
	UserIds []int64 `json:"userIds,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}
