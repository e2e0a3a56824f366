// Package balanceservice manages business logic layer of balance entries.
package balanceservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nwtrack/networth/internal/domain"
)

// Repo provides data access layer interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type Repo interface {
	Set(ctx context.Context, accountID int32, date time.Time, value decimal.Decimal) (domain.BalanceEntry, error)
	ListByAccount(ctx context.Context, accountID int32) ([]domain.BalanceEntry, error)
	Delete(ctx context.Context, accountID int32, date time.Time) error
}

// Invalidator rebuilds the derived snapshot sequence after a durable mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service facilitates balance service layer logic.
type Service struct {
	repo      Repo
	snapshots Invalidator
}

// New returns balance Service.
func New(repo Repo, snapshots Invalidator) *Service {
	return &Service{repo: repo, snapshots: snapshots}
}

// Set records an account's value on a date and rebuilds snapshots before
// returning. Observing the same date twice keeps only the newest value.
func (s *Service) Set(ctx context.Context, accountID int32, date time.Time, value decimal.Decimal) (domain.BalanceEntry, error) {
	entry, err := s.repo.Set(ctx, accountID, date, value)
	if err != nil {
		return entry, err
	}

	if err := s.invalidate(ctx); err != nil {
		return entry, err
	}

	return entry, nil
}

// List returns all balance entries of an account in date ascending order.
func (s *Service) List(ctx context.Context, accountID int32) ([]domain.BalanceEntry, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// Delete removes one balance observation and rebuilds snapshots.
func (s *Service) Delete(ctx context.Context, accountID int32, date time.Time) error {
	if err := s.repo.Delete(ctx, accountID, date); err != nil {
		return err
	}

	return s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) error {
	if err := s.snapshots.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("snapshot rebuild after mutation failed")
		return domain.ErrSnapshotRebuild
	}

	return nil
}
