package history

import "time"

// Entry is one append-only audit record for a catalog mutation.
type Entry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions are the raw list filters as they arrive from the transport.
type ListOptions struct {
	Date   string // YYYY-MM-DD, single day in store-local time
	Search string
	Page   int
	Limit  int
}

type ListResult struct {
	Items []Entry `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
	Limit int     `json:"limit"`
}

// QueryOptions are the normalized filters handed to the repository.
type QueryOptions struct {
	From   *time.Time
	To     *time.Time
	Search string
	Limit  int
	Offset int
}
