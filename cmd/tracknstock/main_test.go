package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
	"tracknstock/internal/product"
	"tracknstock/internal/testutil"
)

func seed() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Apple", Category: "Fruits", Supplier: "FarmFresh", Quantity: 5, MinStock: 10, Price: 120},
		{ID: 2, Name: "Banana", Category: "Fruits", Supplier: "TropicalTaste", Quantity: 40, MinStock: 3, Price: 40},
		{ID: 3, Name: "Desk, oak", Category: "Furniture", Supplier: "Ikea", Quantity: 0, MinStock: 1, Price: 9000},
	}
}

type harness struct {
	backend *testutil.Backend
	out     *bytes.Buffer
}

func run(t *testing.T, stdin string, args ...string) (*harness, error) {
	t.Helper()
	backend := testutil.NewBackend(t, seed()...)
	return runAgainst(t, backend, stdin, args...)
}

func runAgainst(t *testing.T, backend *testutil.Backend, stdin string, args ...string) (*harness, error) {
	t.Helper()
	out := &bytes.Buffer{}
	a := &app{
		in:        strings.NewReader(stdin),
		out:       out,
		errOut:    &bytes.Buffer{},
		inventory: product.NewUseCase(&http.Client{Timeout: 2 * time.Second}, backend.BaseURL(), zap.NewNop(), nil),
	}
	cmd := rootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return &harness{backend: backend, out: out}, err
}

func TestList(t *testing.T) {
	h, err := run(t, "", "list")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Desk, oak")
	assert.Contains(t, out, "₹9,000.00")
	assert.Contains(t, out, "Showing 3 of 3 products")
}

func TestList_Filters(t *testing.T) {
	h, err := run(t, "", "list", "--status", "low")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Desk, oak")
	assert.NotContains(t, out, "Banana")
	assert.Contains(t, out, "Showing 2 of 3 products")
}

func TestList_Search(t *testing.T) {
	h, err := run(t, "", "list", "-q", "ban")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Banana")
	assert.Contains(t, h.out.String(), "Showing 1 of 3 products")
}

func TestList_UnknownStatus(t *testing.T) {
	_, err := run(t, "", "list", "--status", "nearly")

	assert.ErrorContains(t, err, `unknown status "nearly"`)
}

func TestStats(t *testing.T) {
	h, err := run(t, "", "stats")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Total products  3")
	assert.Contains(t, out, "Low stock       2")
	assert.Contains(t, out, "Out of stock    1")
	assert.Contains(t, out, "₹2,200.00")
}

func TestExport_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	h, err := run(t, "", "export", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Ikea", "Desk, oak", "Furniture", "0", "1", "9000", "Out of Stock"}, records[3])
	assert.Contains(t, h.out.String(), "Exported 3 products")
}

func TestExport_Stdout(t *testing.T) {
	h, err := run(t, "", "export", "-o", "-")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h.out.String(), "Brand,Name,Category,Quantity,Min Stock,Price (₹),Status\n"))
	assert.Contains(t, h.out.String(), `"Desk, oak"`)
}

func TestAdd(t *testing.T) {
	h, err := run(t, "", "add",
		"--name", "Mango", "--category", "fruits", "--brand", "organicvalley",
		"--quantity", "30", "--min-stock", "5", "--price", "80.5")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Product added successfully! (id 4)")
	assert.Equal(t, []domain.ProductInput{{
		Name: "Mango", Category: "Fruits", Supplier: "OrganicValley", Quantity: 30, MinStock: 5, Price: 80.5,
	}}, h.backend.Bodies())
}

func TestAdd_MissingFieldSendsNothing(t *testing.T) {
	h, err := run(t, "", "add", "--name", "Mango", "--category", "Fruits")

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "please fill in all fields", ve.Message)
	assert.Zero(t, h.backend.Calls(testutil.RouteCreate))
}

func TestUpdate_KeepsUnsetFields(t *testing.T) {
	h, err := run(t, "", "update", "2", "--quantity", "2")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Product updated successfully!")
	updated := h.backend.Products()[1]
	assert.Equal(t, "Banana", updated.Name)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, 40.0, updated.Price)
}

func TestUpdate_UnknownProduct(t *testing.T) {
	h, err := run(t, "", "update", "42", "--quantity", "2")

	assert.ErrorContains(t, err, "product 42 not found")
	assert.Zero(t, h.backend.Calls(testutil.RouteUpdate))
}

func TestDelete_PromptDeclined(t *testing.T) {
	h, err := run(t, "n\n", "delete", "1")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), `Delete "Apple" (FarmFresh)? [y/N]: `)
	assert.Contains(t, h.out.String(), "Delete cancelled.")
	assert.Zero(t, h.backend.Calls(testutil.RouteDelete))
}

func TestDelete_EndOfInputIsNo(t *testing.T) {
	h, err := run(t, "", "delete", "1")
	require.NoError(t, err)

	assert.Zero(t, h.backend.Calls(testutil.RouteDelete))
}

func TestDelete_PromptAccepted(t *testing.T) {
	h, err := run(t, "yes\n", "delete", "1")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Product deleted successfully!")
	assert.Equal(t, 1, h.backend.Calls(testutil.RouteDelete))
	assert.Len(t, h.backend.Products(), 2)
}

func TestDelete_Yes(t *testing.T) {
	h, err := run(t, "", "delete", "3", "--yes")
	require.NoError(t, err)

	assert.NotContains(t, h.out.String(), "[y/N]")
	assert.Equal(t, 1, h.backend.Calls(testutil.RouteDelete))
}

func statisticsDown(t *testing.T) *testutil.Backend {
	t.Helper()
	backend := testutil.NewBackend(t, seed()...)
	backend.FailWith(testutil.RouteStatistics, http.StatusInternalServerError, "stats broken")
	return backend
}

func TestList_WithoutStatistics(t *testing.T) {
	h, err := runAgainst(t, statisticsDown(t), "", "list")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Showing 3 of 3 products")
	assert.Zero(t, h.backend.Calls(testutil.RouteStatistics))
}

func TestExport_WithoutStatistics(t *testing.T) {
	h, err := runAgainst(t, statisticsDown(t), "", "export", "-o", "-")
	require.NoError(t, err)

	records, err := csv.NewReader(h.out).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestDelete_WithoutStatistics(t *testing.T) {
	h, err := runAgainst(t, statisticsDown(t), "", "delete", "1", "--yes")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Product deleted successfully!")
	assert.Equal(t, 1, h.backend.Calls(testutil.RouteDelete))
	assert.Len(t, h.backend.Products(), 2)
}

func TestUpdate_WithoutStatistics(t *testing.T) {
	h, err := runAgainst(t, statisticsDown(t), "", "update", "2", "--quantity", "7")
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Product updated successfully!")
	assert.Equal(t, 7, h.backend.Products()[1].Quantity)
}

func TestBackendUnreachable(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Server.Close()

	_, err := runAgainst(t, backend, "", "stats")

	require.Error(t, err)
	assert.Equal(t, "the inventory service is unreachable", describeError(err))
}

func TestAPIURLFlag(t *testing.T) {
	backend := testutil.NewBackend(t, seed()...)
	out := &bytes.Buffer{}
	a := &app{in: strings.NewReader(""), out: out, errOut: &bytes.Buffer{}}
	cmd := rootCmd(a)
	cmd.SetArgs([]string{"--config", "", "--api-url", backend.BaseURL() + "/", "stats"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Total products  3")
	assert.Equal(t, 1, backend.Calls(testutil.RouteStatistics))
}

func TestDescribeError(t *testing.T) {
	err := apperrors.NewValidationError("please correct the highlighted fields",
		apperrors.ValidationDetail{Field: "price", Message: "price must be a number of zero or more"},
	)

	assert.Equal(t, "please correct the highlighted fields\n  - price must be a number of zero or more", describeError(err))
	assert.Equal(t, "boom", describeError(errors.New("boom")))
}
