package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"tracknstock/internal/domain"
)

// Backend is an in-memory stand-in for the inventory REST API. It serves the
// same routes under /api, counts calls per route and can be told to fail.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
	calls    map[string]int
	failures map[string]failure
	bodies   []domain.ProductInput
}

type failure struct {
	status int
	body   string
}

// Route keys accepted by Calls and FailWith.
const (
	RouteList       = "GET /products"
	RouteStatistics = "GET /products/statistics"
	RouteCreate     = "POST /products"
	RouteUpdate     = "PUT /products/{id}"
	RouteDelete     = "DELETE /products/{id}"
)

// NewBackend starts a fake backend seeded with products. It is closed when
// the test ends.
func NewBackend(t *testing.T, seed ...domain.Product) *Backend {
	t.Helper()

	b := &Backend{
		products: make(map[int64]domain.Product),
		calls:    make(map[string]int),
		failures: make(map[string]failure),
	}
	for _, p := range seed {
		b.products[p.ID] = p
		if p.ID > b.nextID {
			b.nextID = p.ID
		}
	}

	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", b.track(RouteList, b.list))
		r.Post("/", b.track(RouteCreate, b.create))
		r.Get("/statistics", b.track(RouteStatistics, b.statistics))
		r.Put("/{id}", b.track(RouteUpdate, b.update))
		r.Delete("/{id}", b.track(RouteDelete, b.delete))
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// BaseURL is the value to configure as API_BASE_URL.
func (b *Backend) BaseURL() string {
	return b.Server.URL + "/api"
}

func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// FailWith makes every later call to route respond with status and body.
func (b *Backend) FailWith(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, body: body}
}

func (b *Backend) Products() []domain.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedLocked()
}

// Bodies returns the request bodies received on create and update.
func (b *Backend) Bodies() []domain.ProductInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.ProductInput, len(b.bodies))
	copy(out, b.bodies)
	return out
}

func (b *Backend) track(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[route]++
		f, failing := b.failures[route]
		b.mu.Unlock()

		if failing {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next(w, r)
	}
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Products())
}

func (b *Backend) statistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ComputeStatistics(b.Products()))
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	b.bodies = append(b.bodies, in)
	b.nextID++
	p := fromInput(b.nextID, in)
	b.products[p.ID] = p
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var in domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	b.mu.Lock()
	b.bodies = append(b.bodies, in)
	_, ok := b.products[id]
	if ok {
		b.products[id] = fromInput(id, in)
	}
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fromInput(id, in))
}

func (b *Backend) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		b.mu.Lock()
		delete(b.products, id)
		b.mu.Unlock()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) sortedLocked() []domain.Product {
	out := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func fromInput(id int64, in domain.ProductInput) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     in.Name,
		Category: in.Category,
		Supplier: in.Supplier,
		Quantity: in.Quantity,
		MinStock: in.MinStock,
		Price:    in.Price,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
