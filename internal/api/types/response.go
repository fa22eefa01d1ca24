// internal/api/types/response.go
package types

// PaginatedResponse is the envelope for list endpoints that page through
// large result sets, such as transaction history. Data holds one page of T;
// TotalCount is the size of the full set so clients can compute page counts.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
