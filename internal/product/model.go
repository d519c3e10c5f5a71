package product

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AllowedSizes is the closed set of size labels the store sells.
// Anything else is dropped on write.
var AllowedSizes = []string{"S", "M", "L", "XL", "XXL"}

// SizeCount maps a size label to a non-negative unit count. Stored as
// JSONB.
type SizeCount map[string]int

func (s SizeCount) Value() (driver.Value, error) {
	if s == nil {
		s = SizeCount{}
	}
	return json.Marshal(s)
}

func (s *SizeCount) Scan(src any) error {
	if src == nil {
		*s = SizeCount{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into SizeCount", src)
	}
}

// Total sums units over every size.
func (s SizeCount) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// StringSlice is a JSONB-backed list of image URLs.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", src)
	}
}

type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	Price         int         `json:"price"`
	DiscountPrice int         `json:"discount_price"` // 0 means no active discount
	Stock         SizeCount   `json:"stock"`
	Bodega        SizeCount   `json:"bodega"`
	Images        StringSlice `json:"images"`
	IsNew         bool        `json:"is_new"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Summary is the bounded projection returned by list views.
type Summary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Price         int       `json:"price"`
	DiscountPrice int       `json:"discount_price"`
	Image         string    `json:"image"`
	IsNew         bool      `json:"is_new"`
	CreatedAt     time.Time `json:"created_at"`
}

// List filter modes, mutually exclusive with the type filter.
const (
	ModeOffer     = "offer"     // discount price present and > 0
	ModeAvailable = "available" // no active discount and total stock > 0
)

type QueryOptions struct {
	Search string
	Type   string
	Mode   string
	Sizes  []string
	Page   int
	Limit  int
}

type ListResult struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
	Limit int       `json:"limit"`
}

type NewProductInput struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Price         int            `json:"price"`
	DiscountPrice int            `json:"discount_price"`
	Stock         map[string]int `json:"stock"`
	Bodega        map[string]int `json:"bodega"`
	Images        []string       `json:"images"`
	IsNew         bool           `json:"is_new"`
}

type UpdateProductInput struct {
	ID            string         `json:"-"`
	Name          *string        `json:"name"`
	Type          *string        `json:"type"`
	Price         *int           `json:"price"`
	DiscountPrice *int           `json:"discount_price"`
	Stock         map[string]int `json:"stock"`
	Bodega        map[string]int `json:"bodega"`
	Images        []string       `json:"images"`
	IsNew         *bool          `json:"is_new"`
}

// normalizeSizes drops unrecognized size labels and rejects negatives.
func normalizeSizes(in map[string]int) (SizeCount, error) {
	out := SizeCount{}
	for _, size := range AllowedSizes {
		n, ok := in[size]
		if !ok {
			continue
		}
		if n < 0 {
			return nil, errors.New("stock cannot be negative")
		}
		out[size] = n
	}
	return out, nil
}
