package payment

import "context"

// Gateway issues hosted payment links on the external processor.
type Gateway interface {
	CreatePaymentLink(ctx context.Context, req LinkRequest) (*LinkResponse, error)
}
