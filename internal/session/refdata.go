package session

import (
	"context"
	"sync"

	"invdesk/internal/models"
)

// RefLister is the slice of the API client the reference cache needs.
type RefLister interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
}

// RefData caches slow-changing reference collections (suppliers,
// customers, warehouses) for the lifetime of a session. Loads happen at
// most once until Invalidate or Refresh; wizard steps re-entered after
// Back reuse the cache instead of refetching.
type RefData struct {
	client RefLister

	mu         sync.Mutex
	suppliers  []models.Supplier
	customers  []models.Customer
	warehouses []models.Warehouse
	loaded     bool
}

// NewRefData wraps the given client.
func NewRefData(client RefLister) *RefData {
	return &RefData{client: client}
}

// load fetches all collections once.
func (r *RefData) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	suppliers, err := r.client.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	customers, err := r.client.ListCustomers(ctx)
	if err != nil {
		return err
	}
	warehouses, err := r.client.ListWarehouses(ctx)
	if err != nil {
		return err
	}
	r.suppliers = suppliers
	r.customers = customers
	r.warehouses = warehouses
	r.loaded = true
	return nil
}

// Suppliers returns the cached supplier list, loading on first use.
func (r *RefData) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r.suppliers, nil
}

// Customers returns the cached customer list, loading on first use.
func (r *RefData) Customers(ctx context.Context) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r.customers, nil
}

// Warehouses returns the cached warehouse list, loading on first use.
func (r *RefData) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r.warehouses, nil
}

// Invalidate drops the cache; the next read reloads.
func (r *RefData) Invalidate() {
	r.mu.Lock()
	r.loaded = false
	r.suppliers = nil
	r.customers = nil
	r.warehouses = nil
	r.mu.Unlock()
}

// Refresh invalidates and reloads in one step.
func (r *RefData) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	return r.load(ctx)
}
