package inventory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/api"
	"github.com/Thabana01/wings-cafe-Inventory/internal/client"
	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend spins up the stand-in remote inventory service over an
// in-memory store.
func newBackend(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	router := gin.New()
	api.NewHandler(mem).SetupRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mem
}

func newService(t *testing.T, baseURL string) *Service {
	t.Helper()
	apiClient := client.New(baseURL, 5*time.Second)
	return NewService(apiClient, NewState(apiClient), nil, nil)
}

func seedProduct(t *testing.T, mem *store.MemoryStore, quantity int) models.Product {
	t.Helper()
	created, err := mem.CreateProduct(context.Background(), models.Product{
		Name:     "Espresso Beans",
		Category: "coffee",
		Price:    12.5,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return created
}

func TestRecordSaleDeductsStockAndWritesSale(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)
	svc.RefreshAll(ctx)

	result, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, result.QuantitySold)
	assert.Equal(t, 6, result.Remaining)
	assert.False(t, result.Duplicate)

	updated, ok := svc.State().FindProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, 6, updated.Quantity)
	require.Len(t, updated.Transactions, 1)
	assert.Equal(t, models.TransactionTypeDeduct, updated.Transactions[0].Type)
	assert.Equal(t, 4, updated.Transactions[0].Quantity)

	sales := svc.State().Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, product.ID, sales[0].ProductID)
	assert.Equal(t, 4, sales[0].Quantity)
	assert.Equal(t, models.SaleStatusActive, sales[0].Status)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 3)
	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 5})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// No write happened: product and sales are unchanged server-side.
	products, err := mem.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Quantity)
	assert.Empty(t, products[0].Transactions)

	sales, err := mem.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	sales, err := mem.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)
	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: -2})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRecordSaleIdempotencyKey(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)
	svc.RefreshAll(ctx)

	first, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 2, IdempotencyKey: "attempt-1"})
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 2, IdempotencyKey: "attempt-1"})
	require.NoError(t, err)
	assert.True(t, second.Duplicate)

	// The retry deducted nothing and wrote no second sale.
	products, err := mem.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, products[0].Quantity)

	sales, err := mem.ListSales(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestRecordSaleCompensatesFailedSaleWrite(t *testing.T) {
	srv, mem := newBackend(t)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)

	// Front the backend with a proxy that rejects the sale create, leaving
	// the earlier product overwrite in place.
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/sales" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		req, err := http.NewRequestWithContext(r.Context(), r.Method, srv.URL+r.URL.Path, r.Body)
		require.NoError(t, err)
		req.Header = r.Header.Clone()
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}))
	defer proxy.Close()

	svc := newService(t, proxy.URL)
	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 4})
	require.Error(t, err)

	// The deduction was rolled back: quantity and ledger are as before.
	products, listErr := mem.ListProducts(ctx)
	require.NoError(t, listErr)
	require.Len(t, products, 1)
	assert.Equal(t, 10, products[0].Quantity)
	assert.Empty(t, products[0].Transactions)

	sales, listErr := mem.ListSales(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, sales)
}

func TestDeleteSaleSoftDeletesOnly(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)
	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)

	original := svc.State().Sales()[0]
	require.NoError(t, svc.DeleteSale(ctx, original.ID))

	sales := svc.State().Sales()
	require.Len(t, sales, 1)
	cancelled := sales[0]
	assert.Equal(t, models.SaleStatusDeleted, cancelled.Status)
	assert.Equal(t, original.ID, cancelled.ID)
	assert.Equal(t, original.ProductID, cancelled.ProductID)
	assert.Equal(t, original.Quantity, cancelled.Quantity)
	assert.True(t, original.Date.Equal(cancelled.Date))

	// Cancelling does not restore the deducted stock.
	updated, ok := svc.State().FindProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, 6, updated.Quantity)

	// Already deleted and unknown ids are no-ops.
	require.NoError(t, svc.DeleteSale(ctx, original.ID))
	require.NoError(t, svc.DeleteSale(ctx, 404))
	assert.Len(t, svc.State().Sales(), 1)
}

func TestUpdateStockAddAndClampedDeduct(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 6)
	svc.RefreshAll(ctx)

	require.NoError(t, svc.UpdateStock(ctx, StockUpdateRequest{
		ProductID: product.ID, Type: models.TransactionTypeAdd, Quantity: 10,
	}))
	updated, _ := svc.State().FindProduct(product.ID)
	assert.Equal(t, 16, updated.Quantity)

	// Deduction past zero clamps, it never goes negative.
	require.NoError(t, svc.UpdateStock(ctx, StockUpdateRequest{
		ProductID: product.ID, Type: models.TransactionTypeDeduct, Quantity: 100,
	}))
	updated, _ = svc.State().FindProduct(product.ID)
	assert.Equal(t, 0, updated.Quantity)

	require.Len(t, updated.Transactions, 2)
	assert.Equal(t, models.TransactionTypeAdd, updated.Transactions[0].Type)
	assert.Equal(t, models.TransactionTypeDeduct, updated.Transactions[1].Type)

	assert.ErrorIs(t, svc.UpdateStock(ctx, StockUpdateRequest{ProductID: 99, Quantity: 1}), ErrProductNotFound)
	assert.ErrorIs(t, svc.UpdateStock(ctx, StockUpdateRequest{ProductID: product.ID, Quantity: 0}), ErrInvalidQuantity)
}

func TestTransactionLedgerIsAppendOnly(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 50)
	svc.RefreshAll(ctx)

	adjustments := []StockUpdateRequest{
		{ProductID: product.ID, Type: models.TransactionTypeAdd, Quantity: 5},
		{ProductID: product.ID, Type: models.TransactionTypeDeduct, Quantity: 3},
		{ProductID: product.ID, Type: models.TransactionTypeAdd, Quantity: 2},
	}
	for _, adj := range adjustments {
		require.NoError(t, svc.UpdateStock(ctx, adj))
	}
	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)

	updated, ok := svc.State().FindProduct(product.ID)
	require.True(t, ok)
	require.Len(t, updated.Transactions, 4)

	// Entries are in chronological insertion order and match what was asked.
	for i := 1; i < len(updated.Transactions); i++ {
		assert.False(t, updated.Transactions[i].Date.Before(updated.Transactions[i-1].Date))
	}
	assert.Equal(t, 5, updated.Transactions[0].Quantity)
	assert.Equal(t, 3, updated.Transactions[1].Quantity)
	assert.Equal(t, 2, updated.Transactions[2].Quantity)
	assert.Equal(t, 4, updated.Transactions[3].Quantity)
	assert.Equal(t, 50+5-3+2-4, updated.Quantity)
}

func TestProductLifecycle(t *testing.T) {
	srv, _ := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, models.Product{
		Name:     "Rooibos Tea",
		Category: "tea",
		Price:    4.2,
		Quantity: 20,
	}))

	products := svc.State().Products()
	require.Len(t, products, 1)
	created := products[0]
	assert.NotZero(t, created.ID)
	assert.NotNil(t, created.Transactions)
	assert.Empty(t, created.Transactions)

	created.Description = "Organic"
	created.Price = 4.5
	require.NoError(t, svc.UpdateProduct(ctx, created.ID, created))
	updated, ok := svc.State().FindProduct(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Organic", updated.Description)
	assert.Equal(t, 4.5, updated.Price)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assert.Empty(t, svc.State().Products())

	// Validation runs before any network call.
	err := svc.AddProduct(ctx, models.Product{Name: " ", Category: "tea", Price: 1})
	assert.Error(t, err)
}

func TestDeleteProductLeavesDanglingSales(t *testing.T) {
	srv, mem := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	product := seedProduct(t, mem, 10)
	svc.RefreshAll(ctx)

	_, err := svc.RecordSale(ctx, RecordSaleRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	svc.State().Refresh(ctx, models.CollectionSales)

	// The historical sale keeps its productId even though it no longer
	// resolves; readers treat it as an unknown product.
	sales := svc.State().Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, product.ID, sales[0].ProductID)
	_, ok := svc.State().FindProduct(sales[0].ProductID)
	assert.False(t, ok)
}

func TestCustomerLifecycle(t *testing.T) {
	srv, _ := newBackend(t)
	svc := newService(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, svc.AddCustomer(ctx, models.Customer{Name: "Naledi", Email: "naledi@example.com"}))

	customers := svc.State().Customers()
	require.Len(t, customers, 1)
	created := customers[0]

	created.Phone = "+266 5800 0000"
	require.NoError(t, svc.UpdateCustomer(ctx, created.ID, created))
	assert.Equal(t, "+266 5800 0000", svc.State().Customers()[0].Phone)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))
	assert.Empty(t, svc.State().Customers())

	assert.Error(t, svc.AddCustomer(ctx, models.Customer{Name: "No Email"}))
}
