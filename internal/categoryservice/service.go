// Package categoryservice manages business logic layer of categories.
package categoryservice

import (
	"context"

	"github.com/nwtrack/networth/internal/domain"
)

// Repo provides data access layer interface needed by category service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package categoryservice
type Repo interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Get(ctx context.Context, key string) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// Service facilitates category service layer logic.
type Service struct {
	repo Repo
}

// New returns category Service.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Create creates the category and then returns it. A fresh category has no
// accounts, so no snapshot rebuild is needed.
func (s *Service) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return s.repo.Create(ctx, c)
}

// Get returns the category with the given key.
func (s *Service) Get(ctx context.Context, key string) (domain.Category, error) {
	return s.repo.Get(ctx, key)
}

// List returns all categories.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}
