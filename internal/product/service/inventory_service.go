package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tracknstock/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Snapshot is a copy of the cached inventory.
type Snapshot struct {
	Products   []domain.Product
	Statistics domain.Statistics
}

// Find returns the cached product with id.
func (s Snapshot) Find(id int64) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// InventoryService caches the product list and statistics. The backend is
// the only source of truth: every mutation is followed by a full refetch and
// the cache is replaced, never merged.
type InventoryService struct {
	repo   Repository
	logger *zap.Logger

	mu       sync.RWMutex
	products []domain.Product
	stats    domain.Statistics
	loaded   bool
}

func NewInventoryService(repo Repository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		repo:     repo,
		logger:   logger,
		products: []domain.Product{},
	}
}

// Refresh fetches products and statistics concurrently. Each result replaces
// its half of the cache independently, so a failed statistics call leaves
// fresh products in place and vice versa.
func (s *InventoryService) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.RefreshProducts(ctx) })
	g.Go(func() error { return s.refreshStatistics(ctx) })
	return g.Wait()
}

// RefreshProducts replaces the cached product list and leaves the statistics
// untouched.
func (s *InventoryService) RefreshProducts(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("fetching products failed", zap.Error(err))
		return fmt.Errorf("loading products: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *InventoryService) refreshStatistics(ctx context.Context) error {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		s.logger.Warn("fetching statistics failed", zap.Error(err))
		return fmt.Errorf("loading statistics: %w", err)
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return nil
}

// Loaded reports whether the product list has been fetched at least once.
func (s *InventoryService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *InventoryService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return Snapshot{
		Products:   products,
		Statistics: s.stats,
	}
}

func (s *InventoryService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("product created", zap.Int64("productId", created.ID), zap.String("name", created.Name))
	s.refreshAfter(ctx, "create")
	return created, nil
}

func (s *InventoryService) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("product updated", zap.Int64("productId", id))
	s.refreshAfter(ctx, "update")
	return updated, nil
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int64("productId", id))
	s.refreshAfter(ctx, "delete")
	return nil
}

// refreshAfter reloads the cache after a successful mutation. A failed
// reload does not undo the mutation; the next page load retries it.
func (s *InventoryService) refreshAfter(ctx context.Context, mutation string) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after mutation failed",
			zap.String("mutation", mutation),
			zap.Error(err),
		)
	}
}
