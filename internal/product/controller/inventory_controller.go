package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
	"tracknstock/internal/export"
	"tracknstock/internal/form"
	"tracknstock/internal/product/service"
	"tracknstock/internal/product/usecase"
	"tracknstock/internal/view"
	"tracknstock/internal/viewstate"
)

const (
	paramModal  = "modal"
	paramEdit   = "edit"
	paramDelete = "delete"
	fieldReturn = "return"
)

type ManageProductsUseCase interface {
	Browse(ctx context.Context, refetch bool) (service.Snapshot, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Cached() service.Snapshot
	Submit(ctx context.Context, modal form.Modal) (form.Modal, *domain.Product, error)
	Delete(ctx context.Context, id int64, confirmed bool) error
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

type InventoryController struct {
	useCase ManageProductsUseCase
	views   Renderer
	logger  *zap.Logger
}

func NewInventoryController(useCase ManageProductsUseCase, views Renderer, logger *zap.Logger) *InventoryController {
	return &InventoryController{
		useCase: useCase,
		views:   views,
		logger:  logger,
	}
}

// Index renders the dashboard. The query carries the filter selections plus
// at most one of modal=add, edit={id} or delete={id}. Only a bare "/" reloads
// the inventory from the backend; any query re-derives the view from the
// cache, which mutations keep current.
func (c *InventoryController) Index(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	query := r.URL.Query()
	state := viewstate.FromQuery(query)
	status := http.StatusOK

	snap, err := c.useCase.Browse(r.Context(), len(query) == 0)
	if err != nil {
		logger.Error("loading inventory failed", zap.Error(err))
		status = statusFor(err)
		state = viewstate.Reduce(state, viewstate.Notify{Kind: viewstate.NoticeError, Message: apperrors.UserMessage(err)})
	}

	switch {
	case query.Get(paramModal) == "add":
		state = viewstate.Reduce(state, viewstate.OpenAdd{})
	case query.Has(paramEdit):
		p, ok := lookup(snap, query.Get(paramEdit))
		if !ok {
			state = viewstate.Reduce(state, productNotFound())
			break
		}
		state = viewstate.Reduce(state, viewstate.OpenEdit{Product: p})
	case query.Has(paramDelete):
		p, ok := lookup(snap, query.Get(paramDelete))
		if !ok {
			state = viewstate.Reduce(state, productNotFound())
			break
		}
		state = viewstate.Reduce(state, viewstate.RequestDelete{ID: p.ID})
	}

	c.render(w, logger, status, view.NewInventoryPage(state, snap.Products, snap.Statistics))
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	c.submit(w, r, viewstate.OpenAdd{}, "created")
}

func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.notFound(w, r)
		return
	}
	c.submit(w, r, viewstate.OpenEdit{Product: domain.Product{ID: id}}, "updated")
}

func (c *InventoryController) submit(w http.ResponseWriter, r *http.Request, open viewstate.Action, notice string) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid form body", zap.Error(err))
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	state := viewstate.Reduce(viewstate.ParseReturn(r.PostForm.Get(fieldReturn)),
		open,
		viewstate.EditBuffer{Buffer: bufferFrom(r)},
	)

	modal, saved, err := c.useCase.Submit(r.Context(), state.Modal)
	if err != nil {
		state = viewstate.Reduce(state,
			viewstate.SetModal{Modal: modal},
			viewstate.Notify{Kind: viewstate.NoticeError, Message: apperrors.UserMessage(err)},
		)
		snap := c.useCase.Cached()
		page := view.NewInventoryPage(state, snap.Products, snap.Statistics).WithError(err)
		c.render(w, logger, statusFor(err), page)
		return
	}

	logger.Info("product saved", zap.Int64("productId", saved.ID), zap.String("notice", notice))
	http.Redirect(w, r, state.WithNotice("/", notice), http.StatusSeeOther)
}

// Delete removes a product only when the form carries confirm=yes.
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		c.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid form body", zap.Error(err))
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	state := viewstate.ParseReturn(r.PostForm.Get(fieldReturn))
	confirmed := r.PostForm.Get("confirm") == "yes"

	err = c.useCase.Delete(r.Context(), id, confirmed)
	switch {
	case errors.Is(err, usecase.ErrDeleteNotConfirmed):
		logger.Debug("delete not confirmed", zap.Int64("productId", id))
		http.Redirect(w, r, state.URL("/"), http.StatusSeeOther)
	case err != nil:
		state = viewstate.Reduce(state, viewstate.Notify{Kind: viewstate.NoticeError, Message: apperrors.UserMessage(err)})
		snap := c.useCase.Cached()
		c.render(w, logger, statusFor(err), view.NewInventoryPage(state, snap.Products, snap.Statistics))
	default:
		logger.Info("product deleted", zap.Int64("productId", id))
		http.Redirect(w, r, state.WithNotice("/", "deleted"), http.StatusSeeOther)
	}
}

// Export streams the full collection as CSV, ignoring any active filter.
// Statistics play no part in it.
func (c *InventoryController) Export(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	products, err := c.useCase.Products(r.Context())
	if err != nil {
		logger.Error("loading inventory for export failed", zap.Error(err))
		http.Error(w, apperrors.UserMessage(err), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	if err := export.WriteCSV(w, products); err != nil {
		logger.Error("writing csv export failed", zap.Error(err))
		return
	}
	logger.Info("inventory exported", zap.Int("rows", len(products)))
}

func (c *InventoryController) notFound(w http.ResponseWriter, r *http.Request) {
	state := viewstate.Reduce(viewstate.FromQuery(r.URL.Query()), productNotFound())
	snap := c.useCase.Cached()
	c.render(w, c.logger, http.StatusNotFound, view.NewInventoryPage(state, snap.Products, snap.Statistics))
}

func (c *InventoryController) render(w http.ResponseWriter, logger *zap.Logger, status int, page view.InventoryPage) {
	if err := c.views.Render(w, status, view.PageInventory, page); err != nil {
		logger.Error("rendering inventory page failed", zap.Error(err))
		http.Error(w, "an unexpected error occurred", http.StatusInternalServerError)
	}
}

func bufferFrom(r *http.Request) form.Buffer {
	get := func(key string) string {
		return strings.TrimSpace(r.PostForm.Get(key))
	}
	return form.Buffer{
		Name:     get("name"),
		Category: get("category"),
		Quantity: get("quantity"),
		MinStock: get("minStock"),
		Price:    get("price"),
		Supplier: get("supplier"),
	}
}

func lookup(snap service.Snapshot, raw string) (domain.Product, bool) {
	id, err := parseID(raw)
	if err != nil {
		return domain.Product{}, false
	}
	return snap.Find(id)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product id")
	}
	return id, nil
}

func productNotFound() viewstate.Action {
	return viewstate.Notify{Kind: viewstate.NoticeError, Message: "product not found"}
}

func statusFor(err error) int {
	if _, ok := apperrors.IsValidationError(err); ok {
		return http.StatusUnprocessableEntity
	}
	if _, ok := apperrors.IsTransportError(err); ok {
		return http.StatusBadGateway
	}
	if _, ok := apperrors.IsServerError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
