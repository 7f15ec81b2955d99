package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
)

const maxErrorBody = 4 << 10

// CallObserver receives one observation per backend round trip.
type CallObserver interface {
	ObserveBackendCall(operation, outcome string, elapsed time.Duration)
}

// APIRepository reads and writes products through the inventory REST API.
type APIRepository struct {
	client   *http.Client
	baseURL  string
	logger   *zap.Logger
	observer CallObserver
}

func NewAPIRepository(client *http.Client, baseURL string, logger *zap.Logger, observer CallObserver) *APIRepository {
	return &APIRepository{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		observer: observer,
	}
}

func (r *APIRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.do(ctx, "list_products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *APIRepository) Statistics(ctx context.Context) (domain.Statistics, error) {
	var stats domain.Statistics
	if err := r.do(ctx, "get_statistics", http.MethodGet, "/products/statistics", nil, &stats); err != nil {
		return domain.Statistics{}, err
	}
	return stats, nil
}

func (r *APIRepository) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var created domain.Product
	if err := r.do(ctx, "create_product", http.MethodPost, "/products", in, &created); err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

func (r *APIRepository) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	var updated domain.Product
	if err := r.do(ctx, "update_product", http.MethodPut, productPath(id), in, &updated); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

func (r *APIRepository) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, "delete_product", http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

func (r *APIRepository) do(ctx context.Context, op, method, path string, body, out any) error {
	requestID := uuid.NewString()
	logger := r.logger.With(
		zap.String("operation", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestId", requestID),
	)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("encoding request body", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, payload)
	if err != nil {
		return apperrors.NewInternalError("building request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.observe(op, "transport_error", start)
		logger.Warn("backend unreachable", zap.Error(err))
		return apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.observe(op, "server_error", start)
		msg := errorMessage(resp.Body)
		logger.Warn("backend returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return apperrors.NewServerError(op, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			r.observe(op, "decode_error", start)
			logger.Error("decoding backend response", zap.Error(err))
			return apperrors.NewInternalError(fmt.Sprintf("%s: decoding response", op), err)
		}
	}

	r.observe(op, "ok", start)
	logger.Debug("backend call succeeded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (r *APIRepository) observe(op, outcome string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveBackendCall(op, outcome, time.Since(start))
	}
}

// errorMessage extracts a human readable message from an error body: the
// JSON "message" or "error" field, else the trimmed text.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}
