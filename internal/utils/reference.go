package utils

import (
	"strconv"
	"strings"
	"time"
)

// GenerateOrderReference returns the external order reference shown to
// customers and sent to the payment gateway as its order number.
// Two calls within the same millisecond collide; the unique index on
// orders.reference is the only guard against that.
func GenerateOrderReference() string {
	return "ORD-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// SplitBillingName splits a full name into first/last at the first
// whitespace, which is what the gateway's billing fields expect.
func SplitBillingName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
