package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/store"
	"github.com/Thabana01/wings-cafe-Inventory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the stand-in remote inventory service over HTTP. List
// endpoints answer with JSON arrays; mutations are collection-oriented
// REST keyed by integer ids.
type Handler struct {
	store store.Store
}

// NewHandler creates a new HTTP handler
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.POST("/products", h.createProduct)
		api.PUT("/products/:id", h.replaceProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.GET("/sales", h.listSales)
		api.POST("/sales", h.createSale)
		api.PUT("/sales/:id", h.replaceSale)

		api.GET("/customers", h.listCustomers)
		api.POST("/customers", h.createCustomer)
		api.PUT("/customers/:id", h.replaceCustomer)
		api.DELETE("/customers/:id", h.deleteCustomer)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	created, err := h.store.CreateProduct(c.Request.Context(), product)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) replaceProduct(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.store.ReplaceProduct(c.Request.Context(), id, product); err != nil {
		h.storeError(c, err)
		return
	}
	product.ID = id
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listSales(c *gin.Context) {
	sales, err := h.store.ListSales(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handler) createSale(c *gin.Context) {
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	created, err := h.store.CreateSale(c.Request.Context(), sale)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) replaceSale(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.store.ReplaceSale(c.Request.Context(), id, sale); err != nil {
		h.storeError(c, err)
		return
	}
	sale.ID = id
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.store.ListCustomers(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	created, err := h.store.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) replaceCustomer(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.store.ReplaceCustomer(c.Request.Context(), id, customer); err != nil {
		h.storeError(c, err)
		return
	}
	customer.ID = id
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
