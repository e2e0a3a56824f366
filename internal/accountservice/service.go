// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Invalidator rebuilds the derived snapshot sequence after a durable mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	snapshots Invalidator
}

// New returns account Service.
func New(repo Repo, snapshots Invalidator) *Service {
	return &Service{repo: repo, snapshots: snapshots}
}

// Create creates the account and rebuilds snapshots before returning.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	if err := s.invalidate(ctx); err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

// Update changes account attributes and rebuilds snapshots before returning.
// Recategorizing an account can flip its kind, which moves its whole history
// between the asset and liability totals.
func (s *Service) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	account, err := s.repo.Update(ctx, arg)
	if err != nil {
		return account, err
	}

	if err := s.invalidate(ctx); err != nil {
		return account, err
	}

	return account, nil
}

// Delete removes the account and its balance history, then rebuilds snapshots.
func (s *Service) Delete(ctx context.Context, id int32) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.invalidate(ctx)
}

// invalidate runs the snapshot rebuild after a durable write. The write has
// already succeeded, so a rebuild failure is reported as ErrSnapshotRebuild
// rather than the storage error itself.
func (s *Service) invalidate(ctx context.Context) error {
	if err := s.snapshots.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("snapshot rebuild after mutation failed")
		return domain.ErrSnapshotRebuild
	}

	return nil
}
