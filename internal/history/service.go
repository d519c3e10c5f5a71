package history

import (
	"context"
	"errors"
	"time"

	"futstore-be/internal/logger"
	"futstore-be/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

const (
	defaultLimit = 200
	maxLimit     = 1000

	// actor recorded when no authenticated identity is present,
	// e.g. migrations or background sweeps.
	fallbackActor = "sistema"
)

// storeZone is the storefront's fixed local time for day filtering.
// No daylight saving is applied; the source system never did either.
var storeZone = time.FixedZone("UTC-6", -6*60*60)

type Service interface {
	// Record appends an audit entry. It never fails the caller: a write
	// error is logged and swallowed, the triggering mutation stays
	// authoritative.
	Record(ctx context.Context, action, subject, details string)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	Clear(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, action, subject, details string) {
	e := &Entry{
		Actor:   resolveActor(ctx),
		Action:  action,
		Subject: subject,
		Details: details,
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		logger.FromCtx(ctx).Warn("failed to record history entry",
			zap.String("action", action),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// resolveActor attributes the entry to the verified identity only:
// token name, then token email, then the system fallback. Client-supplied
// headers are never consulted.
func resolveActor(ctx context.Context) string {
	if name := utils.GetUserNameFromContext(ctx); name != "" {
		return name
	}
	if email := utils.GetUserEmailFromContext(ctx); email != "" {
		return email
	}
	return fallbackActor
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	} else if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}

	query := QueryOptions{
		Search: opts.Search,
		Limit:  opts.Limit,
		Offset: (opts.Page - 1) * opts.Limit,
	}

	if opts.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", opts.Date, storeZone)
		if err != nil {
			return nil, ErrInvalidDate
		}
		from := day.UTC()
		to := from.Add(24 * time.Hour)
		query.From = &from
		query.To = &to
	}

	entries, total, err := s.repo.List(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list history", zap.Error(err))
		return nil, err
	}

	pages := (total + opts.Limit - 1) / opts.Limit

	return &ListResult{
		Items: entries,
		Total: total,
		Page:  opts.Page,
		Pages: pages,
		Limit: opts.Limit,
	}, nil
}

func (s *service) Clear(ctx context.Context) error {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleSuperAdmin {
		return ErrForbidden
	}

	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("history cleared",
		zap.String("actor", resolveActor(ctx)),
	)
	return nil
}
