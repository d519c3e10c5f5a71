package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusSent      Status = "sent"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions is the legal status graph. Same-status sets are
// idempotent no-ops handled before this table is consulted. sent and
// cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusSent, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusSent, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item is a point-in-time snapshot of the purchased product. It keeps a
// weak reference only; later catalog edits do not alter past orders.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
}

// ItemList is stored as a JSONB column.
type ItemList []Item

func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemList{}
	}
	return json.Marshal(l)
}

func (l *ItemList) Scan(src any) error {
	if src == nil {
		*l = ItemList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ItemList", src)
	}
}

type Order struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	Customer       Customer  `json:"customer"`
	Items          ItemList  `json:"items"`
	Total          int       `json:"total"`
	Status         Status    `json:"status"`
	GatewayToken   string    `json:"gateway_token,omitempty"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CheckoutInput struct {
	Customer       Customer `json:"customer"`
	Items          []Item   `json:"items"`
	Total          int      `json:"total"`
	IdempotencyKey string   `json:"-"`
}

type CheckoutResult struct {
	Order       *Order `json:"order"`
	RedirectURL string `json:"redirect_url"`
}

type ListOptions struct {
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
	Limit int     `json:"limit"`
}
