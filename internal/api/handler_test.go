package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := store.NewMemoryStore()
	router := gin.New()
	NewHandler(mem).SetupRoutes(router)
	return router, mem
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProductEndpoints(t *testing.T) {
	router, _ := newRouter(t)

	// Empty list answers with a JSON array, not null.
	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/products", models.Product{
		Name: "Espresso", Category: "coffee", Price: 3.5, Quantity: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	created.Quantity = 6
	w = doJSON(t, router, http.MethodPut, "/api/products/1", created)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products", nil)
	var listed []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 6, listed[0].Quantity)

	w = doJSON(t, router, http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/products/1", created)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/products/abc", created)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleEndpoints(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/sales", models.Sale{
		ProductID: 1, Quantity: 2, Date: time.Now().UTC(), Status: models.SaleStatusActive,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))

	// Soft delete goes through PUT; there is no DELETE route for sales.
	sale.Status = models.SaleStatusDeleted
	w = doJSON(t, router, http.MethodPut, "/api/sales/1", sale)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/sales/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/sales", nil)
	var sales []models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sales))
	require.Len(t, sales, 1)
	assert.Equal(t, models.SaleStatusDeleted, sales[0].Status)
}

func TestCustomerEndpoints(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/customers", models.Customer{
		Name: "Naledi", Email: "naledi@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/customers", nil)
	var customers []models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)

	w = doJSON(t, router, http.MethodDelete, "/api/customers/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
