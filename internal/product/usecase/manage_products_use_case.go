package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tracknstock/internal/domain"
	"tracknstock/internal/form"
	"tracknstock/internal/product/service"
)

var ErrDeleteNotConfirmed = errors.New("delete was not confirmed")

type Store interface {
	Refresh(ctx context.Context) error
	RefreshProducts(ctx context.Context) error
	Loaded() bool
	Snapshot() service.Snapshot
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ManageProductsUseCase struct {
	store  Store
	logger *zap.Logger
}

func NewManageProductsUseCase(store Store, logger *zap.Logger) *ManageProductsUseCase {
	return &ManageProductsUseCase{
		store:  store,
		logger: logger,
	}
}

// Load refreshes the cache and returns it. On failure the snapshot still
// holds whatever was fetched last, so callers can render it next to the
// error.
func (uc *ManageProductsUseCase) Load(ctx context.Context) (service.Snapshot, error) {
	err := uc.store.Refresh(ctx)
	return uc.store.Snapshot(), err
}

// Browse serves the cached inventory for in-page navigation. The backend is
// only called when refetch is set or nothing has been loaded yet.
func (uc *ManageProductsUseCase) Browse(ctx context.Context, refetch bool) (service.Snapshot, error) {
	if !refetch && uc.store.Loaded() {
		return uc.store.Snapshot(), nil
	}
	return uc.Load(ctx)
}

// Products returns the full product collection. A cold cache fetches the
// product list alone; statistics are never requested.
func (uc *ManageProductsUseCase) Products(ctx context.Context) ([]domain.Product, error) {
	if !uc.store.Loaded() {
		if err := uc.store.RefreshProducts(ctx); err != nil {
			return nil, err
		}
	}
	return uc.store.Snapshot().Products, nil
}

// Cached returns the last fetched inventory without calling the backend.
func (uc *ManageProductsUseCase) Cached() service.Snapshot {
	return uc.store.Snapshot()
}

// Submit validates the open modal's buffer and sends it to the backend. The
// returned modal is closed on success and unchanged on any failure, so the
// user can correct the input and retry.
func (uc *ManageProductsUseCase) Submit(ctx context.Context, modal form.Modal) (form.Modal, *domain.Product, error) {
	if !modal.IsOpen() {
		return modal, nil, form.ErrModalClosed
	}

	in, err := modal.Buffer().ToInput()
	if err != nil {
		uc.logger.Debug("product form rejected", zap.String("mode", modal.Mode().String()), zap.Error(err))
		return modal, nil, err
	}

	var saved domain.Product
	switch modal.Mode() {
	case form.AddOpen:
		saved, err = uc.store.Create(ctx, in)
	case form.EditOpen:
		saved, err = uc.store.Update(ctx, modal.ProductID(), in)
	}
	if err != nil {
		uc.logger.Warn("saving product failed",
			zap.String("mode", modal.Mode().String()),
			zap.Int64("productId", modal.ProductID()),
			zap.Error(err),
		)
		return modal, nil, err
	}

	return modal.Cancel(), &saved, nil
}

// Delete removes a product once the user has confirmed it.
func (uc *ManageProductsUseCase) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if err := uc.store.Delete(ctx, id); err != nil {
		uc.logger.Warn("deleting product failed", zap.Int64("productId", id), zap.Error(err))
		return err
	}
	return nil
}
