package payment

import "time"

// Currency is fixed; the gateway account is provisioned for a single
// settlement currency.
const Currency = "USD"

type LinkRequest struct {
	Reference string
	Amount    int
	FirstName string
	LastName  string
	Email     string
	ReturnURL string
}

type LinkResponse struct {
	URL   string
	Token string
}

// Link is the persisted record of an issued payment link.
type Link struct {
	ID             string    `json:"id"`
	OrderReference string    `json:"order_reference"`
	URL            string    `json:"url"`
	Token          string    `json:"token"`
	CreatedAt      time.Time `json:"created_at"`
}
