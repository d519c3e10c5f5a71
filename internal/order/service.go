package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"futstore-be/internal/logger"
	"futstore-be/internal/payment"
	"futstore-be/internal/product"
	"futstore-be/internal/utils"

	"go.uber.org/zap"
)

// Fallbacks for guest checkouts that leave billing fields blank.
const (
	defaultCustomerName  = "Cliente"
	defaultCustomerEmail = "cliente@futstore.com"
)

// Catalog is the slice of the product layer checkout needs to price
// items. product.Repository satisfies it.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	GetByReference(ctx context.Context, reference string) (*Order, error)
	SetStatus(ctx context.Context, id string, status Status) (*Order, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type service struct {
	repo            Repository
	gateway         payment.Gateway
	links           payment.Repository
	catalog         Catalog
	checkoutBaseURL string
}

func NewService(repo Repository, gateway payment.Gateway, links payment.Repository, catalog Catalog, checkoutBaseURL string) Service {
	return &service{
		repo:            repo,
		gateway:         gateway,
		links:           links,
		catalog:         catalog,
		checkoutBaseURL: checkoutBaseURL,
	}
}

// Checkout persists a pending order and asks the gateway for a hosted
// payment link. The order is committed before the first network call;
// a gateway failure leaves it pending with no rollback.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: item %q has no product reference", ErrInvalidCart, item.Name)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q: quantity must be at least 1", ErrInvalidCart, item.Name)
		}
	}

	if input.Customer.Name == "" {
		input.Customer.Name = defaultCustomerName
	}
	if input.Customer.Email == "" {
		input.Customer.Email = defaultCustomerEmail
	}

	if input.IdempotencyKey != "" {
		if existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey); err == nil {
			return s.replay(ctx, existing)
		} else if !errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
	}

	total, err := s.computeTotal(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if input.Total != 0 && input.Total != total {
		log.Warn("client total disagrees with catalog prices",
			zap.Int("client_total", input.Total),
			zap.Int("computed_total", total),
		)
	}

	o := &Order{
		Reference:      utils.GenerateOrderReference(),
		Customer:       input.Customer,
		Items:          input.Items,
		Total:          total,
		Status:         StatusPending,
		IdempotencyKey: input.IdempotencyKey,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log = log.With(zap.String("reference", o.Reference))

	firstName, lastName := utils.SplitBillingName(o.Customer.Name)
	link, err := s.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
		Reference: o.Reference,
		Amount:    o.Total,
		FirstName: firstName,
		LastName:  lastName,
		Email:     o.Customer.Email,
		ReturnURL: s.returnURL(o.Reference),
	})
	if err != nil {
		// The pending order stays behind for manual reconciliation or
		// the stale sweep.
		log.Error("gateway link request failed, order remains pending", zap.Error(err))
		return nil, err
	}

	if err := s.repo.SetGatewayToken(ctx, o.ID, link.Token); err != nil {
		log.Warn("failed to store gateway token", zap.Error(err))
	} else {
		o.GatewayToken = link.Token
	}

	if err := s.links.SaveLink(ctx, &payment.Link{
		OrderReference: o.Reference,
		URL:            link.URL,
		Token:          link.Token,
	}); err != nil {
		log.Warn("failed to store payment link record", zap.Error(err))
	}

	log.Info("checkout completed", zap.Int("total", o.Total))

	return &CheckoutResult{Order: o, RedirectURL: link.URL}, nil
}

// replay returns the already-created order for a repeated idempotency
// key without opening a second gateway session.
func (s *service) replay(ctx context.Context, o *Order) (*CheckoutResult, error) {
	result := &CheckoutResult{Order: o}

	link, err := s.links.GetByOrderReference(ctx, o.Reference)
	if err == nil {
		result.RedirectURL = link.URL
	} else if !errors.Is(err, payment.ErrLinkNotFound) {
		return nil, err
	}

	logger.FromCtx(ctx).Info("checkout replayed from idempotency key",
		zap.String("reference", o.Reference),
	)
	return result, nil
}

// computeTotal prices the cart from the catalog, discount price when
// one is active. The catalog is the sole price authority; submitted
// item prices are overwritten, never trusted.
func (s *service) computeTotal(ctx context.Context, items []Item) (int, error) {
	total := 0
	for i := range items {
		item := &items[i]

		p, err := s.catalog.GetByID(ctx, item.ProductID)
		if errors.Is(err, product.ErrProductNotFound) {
			return 0, fmt.Errorf("%w: item %q references an unknown product", ErrInvalidCart, item.Name)
		}
		if err != nil {
			return 0, err
		}

		unit := p.Price
		if p.DiscountPrice > 0 {
			unit = p.DiscountPrice
		}
		item.Price = unit
		total += unit * item.Quantity
	}
	return total, nil
}

func (s *service) returnURL(reference string) string {
	return s.checkoutBaseURL + "/checkout/result?order=" + url.QueryEscape(reference)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*Order, error) {
	return s.repo.GetByReference(ctx, reference)
}

// SetStatus moves an order along the legal status graph. Setting the
// current status again is a no-op that returns the order unchanged.
func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == status {
		return current, nil
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("reference", updated.Reference),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)
	return updated, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	if opts.Status != "" && !Status(opts.Status).Valid() {
		return nil, ErrInvalidStatus
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  opts.Page,
		Pages: (total + opts.Limit - 1) / opts.Limit,
		Limit: opts.Limit,
	}, nil
}

// ReconcileStale cancels pending orders older than the cutoff that
// never reached the gateway. This is the compensating path for orders
// orphaned by a gateway failure during checkout.
func (s *service) ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, errors.New("cutoff must be positive")
	}

	cutoff := time.Now().Add(-olderThan)
	cancelled, err := s.repo.CancelStalePending(ctx, cutoff)
	if err != nil {
		logger.FromCtx(ctx).Error("stale order sweep failed", zap.Error(err))
		return 0, err
	}

	logger.FromCtx(ctx).Info("stale order sweep completed",
		zap.Int("cancelled", cancelled),
		zap.Time("cutoff", cutoff),
	)
	return cancelled, nil
}
