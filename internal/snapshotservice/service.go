package snapshotservice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nwtrack/networth/internal/domain"
)

// balanceFetchLimit bounds how many per-account balance queries run at once
// during a rebuild.
const balanceFetchLimit = 8

// AccountRepo provides the account read access needed by the snapshot service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package snapshotservice
type AccountRepo interface {
	List(ctx context.Context) ([]domain.Account, error)
}

// BalanceRepo provides the balance read access needed by the snapshot service.
type BalanceRepo interface {
	ListByAccount(ctx context.Context, accountID int32) ([]domain.BalanceEntry, error)
}

// CategoryRepo provides the category read access needed by the snapshot service.
type CategoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

// Service owns the materialized snapshot sequence. Mutating services call
// Invalidate after every durable write; readers only ever see the cache,
// never the store.
type Service struct {
	accounts   AccountRepo
	balances   BalanceRepo
	categories CategoryRepo

	cache  *Cache
	coord  *coordinator
	logger zerolog.Logger
	now    func() time.Time
}

// New returns a snapshot Service reading from the given repos.
func New(ar AccountRepo, br BalanceRepo, cr CategoryRepo, logger zerolog.Logger) *Service {
	s := &Service{
		accounts:   ar,
		balances:   br,
		categories: cr,
		cache:      NewCache(),
		logger:     logger,
		now:        time.Now,
	}
	s.coord = newCoordinator(s.rebuild)

	return s
}

// Invalidate rebuilds the snapshot sequence from current store state.
// When it returns nil, the cache reflects every mutation applied before the
// call. On failure the cache keeps its last known-good sequence.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.coord.Invalidate(ctx)
}

// Snapshots returns the current snapshot sequence, building it on first use.
func (s *Service) Snapshots(ctx context.Context) ([]domain.MonthlySnapshot, error) {
	if snapshots, ok := s.cache.Current(); ok {
		return snapshots, nil
	}

	if err := s.coord.Invalidate(ctx); err != nil {
		return nil, err
	}

	snapshots, _ := s.cache.Current()

	return snapshots, nil
}

// Growth computes growth of the chosen aggregate from startDate (nil means
// all time) to the newest snapshot.
func (s *Service) Growth(ctx context.Context, field domain.StatField, startDate *time.Time) (domain.GrowthResult, error) {
	snapshots, err := s.Snapshots(ctx)
	if err != nil {
		return domain.GrowthResult{}, err
	}

	return Growth(snapshots, field, startDate), nil
}

func (s *Service) rebuild(ctx context.Context) error {
	ctx = s.logger.WithContext(ctx)

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}

	var mu sync.Mutex

	balancesByAccount := make(map[int32][]domain.BalanceEntry, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(balanceFetchLimit)

	for _, a := range accounts {
		g.Go(func() error {
			entries, err := s.balances.ListByAccount(gctx, a.ID)
			if err != nil {
				return err
			}

			mu.Lock()
			balancesByAccount[a.ID] = entries
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	snapshots, warnings := Build(accounts, balancesByAccount, categories, s.now())

	for _, w := range warnings {
		s.logger.Warn().
			Int32("account_id", w.AccountID).
			Str("reason", w.Reason).
			Msg("record excluded from snapshot build")
	}

	s.cache.install(snapshots)

	return nil
}
