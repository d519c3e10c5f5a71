package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"futstore-be/internal/history"
	"futstore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts QueryOptions) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	hist history.Service
}

func NewService(repo Repository, hist history.Service) Service {
	return &service{repo: repo, hist: hist}
}

func (s *service) List(ctx context.Context, opts QueryOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	start := time.Now()

	/* ---------- INPUT NORMALIZATION ---------- */

	if opts.Page <= 0 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	if opts.Mode != "" && opts.Mode != ModeOffer && opts.Mode != ModeAvailable {
		return nil, fmt.Errorf("%w: unknown mode, expected offer or available", ErrInvalidQuery)
	}

	if opts.Type != "" && opts.Mode != "" {
		return nil, fmt.Errorf("%w: type and mode filters are mutually exclusive", ErrInvalidQuery)
	}

	opts.Sizes = normalizeSizeFilters(opts.Sizes)

	/* ---------- FETCH DATA ---------- */

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("get product list success",
		zap.Int("count", len(items)),
		zap.Int("total", total),
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
		zap.Duration("duration", time.Since(start)),
	)

	return &ListResult{
		Items: items,
		Total: total,
		Page:  opts.Page,
		Pages: (total + opts.Limit - 1) / opts.Limit,
		Limit: opts.Limit,
	}, nil
}

// normalizeSizeFilters upper-cases and trims the requested labels.
// Unknown labels stay in the filter; they never carry stock, so they
// match nothing rather than widening the result set.
func normalizeSizeFilters(sizes []string) []string {
	var out []string
	for _, size := range sizes {
		size = strings.ToUpper(strings.TrimSpace(size))
		if size != "" {
			out = append(out, size)
		}
	}
	return out
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if input.Price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if input.DiscountPrice < 0 {
		return nil, errors.New("discount price cannot be negative")
	}

	stock, err := normalizeSizes(input.Stock)
	if err != nil {
		return nil, err
	}
	bodega, err := normalizeSizes(input.Bodega)
	if err != nil {
		return nil, err
	}

	p := &Product{
		Name:          strings.TrimSpace(input.Name),
		Type:          input.Type,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Stock:         stock,
		Bodega:        bodega,
		Images:        input.Images,
		IsNew:         input.IsNew,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.hist.Record(ctx, "crear", p.Name, "producto creado")

	return p, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if input.ID == "" {
		return nil, errors.New("product id is required")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if input.DiscountPrice != nil && *input.DiscountPrice < 0 {
		return nil, errors.New("discount price cannot be negative")
	}

	prev, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	next := *prev
	if input.Name != nil {
		next.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		next.Type = *input.Type
	}
	if input.Price != nil {
		next.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		next.DiscountPrice = *input.DiscountPrice
	}
	if input.Stock != nil {
		stock, err := normalizeSizes(input.Stock)
		if err != nil {
			return nil, err
		}
		next.Stock = stock
	}
	if input.Bodega != nil {
		bodega, err := normalizeSizes(input.Bodega)
		if err != nil {
			return nil, err
		}
		next.Bodega = bodega
	}
	if input.Images != nil {
		next.Images = input.Images
	}
	if input.IsNew != nil {
		next.IsNew = *input.IsNew
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, err
	}

	// Audit after the mutation committed; no lines means nothing changed.
	lines := history.DiffProductSnapshots(snapshot(prev), snapshot(&next))
	if len(lines) > 0 {
		s.hist.Record(ctx, "editar", next.Name, strings.Join(lines, "\n"))
	}

	return &next, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hist.Record(ctx, "eliminar", prev.Name, "producto eliminado")

	return nil
}

func snapshot(p *Product) history.ProductSnapshot {
	return history.ProductSnapshot{
		Name:     p.Name,
		Price:    p.Price,
		Discount: p.DiscountPrice,
		Type:     p.Type,
		IsNew:    p.IsNew,
		Stock:    p.Stock,
		Bodega:   p.Bodega,
	}
}
