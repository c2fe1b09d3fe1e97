package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/util"

	"go.uber.org/zap"
)

// Fetcher lists collections from the remote inventory service.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// State caches the latest known product, sale, and customer collections.
// Refresh is the only writer and always replaces a collection wholesale;
// there is no incremental merge, so the cache never diverges from the last
// successful fetch. A failed fetch resets the collection to empty.
type State struct {
	api    Fetcher
	logger *zap.Logger

	mu        sync.RWMutex
	products  []models.Product
	sales     []models.Sale
	customers []models.Customer
}

// NewState creates an empty cache over the given fetcher.
func NewState(api Fetcher) *State {
	return &State{
		api:    api,
		logger: util.GetLogger(),
	}
}

// Refresh re-fetches the named collection and replaces the cached copy.
// Failures are non-fatal: the collection is reset to empty, the failure is
// logged and counted, and no retry happens.
func (s *State) Refresh(ctx context.Context, collection string) {
	start := time.Now()
	defer func() {
		util.RefreshLatency.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	}()

	switch collection {
	case models.CollectionProducts:
		products, err := s.api.ListProducts(ctx)
		if err != nil {
			s.resetOnError(collection, err)
			return
		}
		s.mu.Lock()
		s.products = products
		s.mu.Unlock()

	case models.CollectionSales:
		sales, err := s.api.ListSales(ctx)
		if err != nil {
			s.resetOnError(collection, err)
			return
		}
		s.mu.Lock()
		s.sales = sales
		s.mu.Unlock()

	case models.CollectionCustomers:
		customers, err := s.api.ListCustomers(ctx)
		if err != nil {
			s.resetOnError(collection, err)
			return
		}
		s.mu.Lock()
		s.customers = customers
		s.mu.Unlock()

	default:
		s.logger.Warn("Refresh requested for unknown collection",
			zap.String("collection", collection))
	}
}

func (s *State) resetOnError(collection string, err error) {
	s.logger.Error("Failed to refresh collection, resetting to empty",
		zap.String("collection", collection),
		zap.Error(err))
	util.RefreshFailuresTotal.WithLabelValues(collection).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	switch collection {
	case models.CollectionProducts:
		s.products = nil
	case models.CollectionSales:
		s.sales = nil
	case models.CollectionCustomers:
		s.customers = nil
	}
}

// Products returns a snapshot of the cached product collection.
func (s *State) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Sales returns a snapshot of the cached sale collection.
func (s *State) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sale(nil), s.sales...)
}

// Customers returns a snapshot of the cached customer collection.
func (s *State) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...)
}

// FindProduct resolves a product id against the cache.
func (s *State) FindProduct(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// FindSale resolves a sale id against the cache.
func (s *State) FindSale(id int64) (models.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return sale, true
		}
	}
	return models.Sale{}, false
}

// LowStockProducts returns the cached products at or under the threshold.
func (s *State) LowStockProducts(threshold int) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var low []models.Product
	for _, p := range s.products {
		if models.LowStock(p.Quantity, threshold) {
			low = append(low, p)
		}
	}
	return low
}
