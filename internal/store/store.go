package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
)

// ErrNotFound is returned for writes against an id the store does not hold.
var ErrNotFound = errors.New("record not found")

// Store is the persistence behind the stand-in inventory service. Ids are
// assigned by the store on create; replace is a full-record overwrite.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	ReplaceProduct(ctx context.Context, id int64, product models.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListSales(ctx context.Context) ([]models.Sale, error)
	CreateSale(ctx context.Context, sale models.Sale) (models.Sale, error)
	ReplaceSale(ctx context.Context, id int64, sale models.Sale) error

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	ReplaceCustomer(ctx context.Context, id int64, customer models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	Close() error
}

// MemoryStore keeps every collection in process. It is the default backend
// for the stand-in service and the one the tests run against.
type MemoryStore struct {
	mu        sync.RWMutex
	products  map[int64]models.Product
	sales     map[int64]models.Sale
	customers map[int64]models.Customer
	nextID    map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:  make(map[int64]models.Product),
		sales:     make(map[int64]models.Sale),
		customers: make(map[int64]models.Customer),
		nextID:    make(map[string]int64),
	}
}

func (s *MemoryStore) allocate(collection string) int64 {
	s.nextID[collection]++
	return s.nextID[collection]
}

// ListProducts returns all products ordered by id.
func (s *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// CreateProduct stores a new product under a fresh id.
func (s *MemoryStore) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.allocate(models.CollectionProducts)
	if product.Transactions == nil {
		product.Transactions = []models.Transaction{}
	}
	s.products[product.ID] = product
	return product, nil
}

// ReplaceProduct overwrites an existing product.
func (s *MemoryStore) ReplaceProduct(_ context.Context, id int64, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	product.ID = id
	s.products[id] = product
	return nil
}

// DeleteProduct removes a product.
func (s *MemoryStore) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// ListSales returns all sales ordered by id, soft-deleted ones included.
func (s *MemoryStore) ListSales(_ context.Context) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sales := make([]models.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ID < sales[j].ID })
	return sales, nil
}

// CreateSale stores a new sale under a fresh id.
func (s *MemoryStore) CreateSale(_ context.Context, sale models.Sale) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = s.allocate(models.CollectionSales)
	s.sales[sale.ID] = sale
	return sale, nil
}

// ReplaceSale overwrites an existing sale.
func (s *MemoryStore) ReplaceSale(_ context.Context, id int64, sale models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[id]; !ok {
		return ErrNotFound
	}
	sale.ID = id
	s.sales[id] = sale
	return nil
}

// ListCustomers returns all customers ordered by id.
func (s *MemoryStore) ListCustomers(_ context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customers := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// CreateCustomer stores a new customer under a fresh id.
func (s *MemoryStore) CreateCustomer(_ context.Context, customer models.Customer) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer.ID = s.allocate(models.CollectionCustomers)
	s.customers[customer.ID] = customer
	return customer, nil
}

// ReplaceCustomer overwrites an existing customer.
func (s *MemoryStore) ReplaceCustomer(_ context.Context, id int64, customer models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return ErrNotFound
	}
	customer.ID = id
	s.customers[id] = customer
	return nil
}

// DeleteCustomer removes a customer.
func (s *MemoryStore) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
