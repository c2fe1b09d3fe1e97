package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
)

// Client talks to the remote inventory service, the authoritative store of
// products, sales, and customers. All mutations here are full-record writes;
// none of them are retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL (origin only, no /api).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) url(parts ...interface{}) string {
	url := c.baseURL + "/api"
	for _, p := range parts {
		url = fmt.Sprintf("%s/%v", url, p)
	}
	return url
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s returned status %d", method, url, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", url, err)
		}
	}
	return nil
}

// ListProducts fetches the full product collection.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, c.url("products"), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct submits a new product. The service assigns the id.
func (c *Client) CreateProduct(ctx context.Context, product models.Product) error {
	return c.do(ctx, http.MethodPost, c.url("products"), product, nil)
}

// ReplaceProduct overwrites the full product record at id.
func (c *Client) ReplaceProduct(ctx context.Context, id int64, product models.Product) error {
	return c.do(ctx, http.MethodPut, c.url("products", id), product, nil)
}

// DeleteProduct removes the product permanently.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.url("products", id), nil, nil)
}

// ListSales fetches the full sale collection, soft-deleted records included.
func (c *Client) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := c.do(ctx, http.MethodGet, c.url("sales"), nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CreateSale submits a new sale record.
func (c *Client) CreateSale(ctx context.Context, sale models.Sale) error {
	return c.do(ctx, http.MethodPost, c.url("sales"), sale, nil)
}

// ReplaceSale overwrites the full sale record at id. Soft deletes go through
// here, not through an HTTP DELETE.
func (c *Client) ReplaceSale(ctx context.Context, id int64, sale models.Sale) error {
	return c.do(ctx, http.MethodPut, c.url("sales", id), sale, nil)
}

// ListCustomers fetches the full customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.do(ctx, http.MethodGet, c.url("customers"), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer submits a new customer.
func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) error {
	return c.do(ctx, http.MethodPost, c.url("customers"), customer, nil)
}

// ReplaceCustomer overwrites the full customer record at id.
func (c *Client) ReplaceCustomer(ctx context.Context, id int64, customer models.Customer) error {
	return c.do(ctx, http.MethodPut, c.url("customers", id), customer, nil)
}

// DeleteCustomer removes the customer.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.url("customers", id), nil, nil)
}
