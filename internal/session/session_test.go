package session

import (
	"context"
	"errors"
	"testing"

	"invdesk/internal/models"
)

func TestStore_TokenLifecycle(t *testing.T) {
	s := NewStore()
	if s.Authenticated() {
		t.Error("New store must start unauthenticated")
	}

	s.SetToken("  tok-123  ")
	if got := s.Token(); got != "tok-123" {
		t.Errorf("Expected trimmed token, got %q", got)
	}
	if !s.Authenticated() {
		t.Error("Store with a token must report authenticated")
	}

	s.Clear()
	if s.Token() != "" || s.Authenticated() {
		t.Error("Clear must drop the token")
	}
}

type fakeRefLister struct {
	suppliersCalls int
	customersCalls int
	warehouseCalls int
	err            error
}

func (f *fakeRefLister) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	f.suppliersCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Supplier{{ID: "SUP-1", Name: "Acme"}}, nil
}

func (f *fakeRefLister) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	f.customersCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Customer{{ID: "CUST-1", Name: "Bella"}}, nil
}

func (f *fakeRefLister) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	f.warehouseCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Warehouse{{ID: "WH-1", Name: "Main"}}, nil
}

func TestRefData_LoadsOnce(t *testing.T) {
	lister := &fakeRefLister{}
	ref := NewRefData(lister)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		suppliers, err := ref.Suppliers(ctx)
		if err != nil {
			t.Fatalf("Suppliers failed: %v", err)
		}
		if len(suppliers) != 1 || suppliers[0].ID != "SUP-1" {
			t.Fatalf("Unexpected suppliers: %+v", suppliers)
		}
	}
	if _, err := ref.Customers(ctx); err != nil {
		t.Fatalf("Customers failed: %v", err)
	}

	if lister.suppliersCalls != 1 || lister.customersCalls != 1 || lister.warehouseCalls != 1 {
		t.Errorf("Expected one fetch per collection, got %d/%d/%d",
			lister.suppliersCalls, lister.customersCalls, lister.warehouseCalls)
	}
}

func TestRefData_LoadFailureIsRetriable(t *testing.T) {
	lister := &fakeRefLister{err: errors.New("backend down")}
	ref := NewRefData(lister)
	ctx := context.Background()

	if _, err := ref.Suppliers(ctx); err == nil {
		t.Fatal("Expected load failure")
	}

	lister.err = nil
	suppliers, err := ref.Suppliers(ctx)
	if err != nil {
		t.Fatalf("Retry after failure must work: %v", err)
	}
	if len(suppliers) != 1 {
		t.Errorf("Unexpected suppliers: %+v", suppliers)
	}
}

func TestRefData_InvalidateForcesReload(t *testing.T) {
	lister := &fakeRefLister{}
	ref := NewRefData(lister)
	ctx := context.Background()

	if _, err := ref.Suppliers(ctx); err != nil {
		t.Fatalf("Suppliers failed: %v", err)
	}
	ref.Invalidate()
	if _, err := ref.Suppliers(ctx); err != nil {
		t.Fatalf("Suppliers failed: %v", err)
	}

	if lister.suppliersCalls != 2 {
		t.Errorf("Expected reload after Invalidate, got %d calls", lister.suppliersCalls)
	}
}

func TestRefData_Refresh(t *testing.T) {
	lister := &fakeRefLister{}
	ref := NewRefData(lister)
	ctx := context.Background()

	if _, err := ref.Warehouses(ctx); err != nil {
		t.Fatalf("Warehouses failed: %v", err)
	}
	if err := ref.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if lister.warehouseCalls != 2 {
		t.Errorf("Expected reload on Refresh, got %d calls", lister.warehouseCalls)
	}
}
