package api

import (
	"context"
	"net/http"

	"invdesk/internal/ingest"
	"invdesk/internal/models"
)

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Login exchanges credentials for a session token. The only anonymous
// endpoint; storing the token is the caller's job.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out, true)
	return out, err
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// ListProducts fetches the full product collection for the list view.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.get(ctx, "/api/v1/products", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// ListStockTransfers fetches the stock-transfer collection.
func (c *Client) ListStockTransfers(ctx context.Context) ([]models.StockTransfer, error) {
	var out []models.StockTransfer
	if err := c.get(ctx, "/api/v1/transfers", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.StockTransfer{}
	}
	return out, nil
}

// ListPurchaseOrders fetches the purchase-order collection.
func (c *Client) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	var out []models.PurchaseOrder
	if err := c.get(ctx, "/api/v1/pos", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.PurchaseOrder{}
	}
	return out, nil
}

// ListSuppliers fetches the supplier collection.
func (c *Client) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	if err := c.get(ctx, "/api/v1/suppliers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCustomers fetches the customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.get(ctx, "/api/v1/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWarehouses fetches the warehouse collection.
func (c *Client) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var out []models.Warehouse
	if err := c.get(ctx, "/api/v1/warehouses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePurchaseOrder submits a purchase-order draft and returns the
// persisted order with its server-assigned id.
func (c *Client) CreatePurchaseOrder(ctx context.Context, req models.PurchaseOrder) (models.PurchaseOrder, error) {
	var out models.PurchaseOrder
	err := c.post(ctx, "/api/v1/pos", req, &out)
	return out, err
}

// CreateProformaInvoice submits a proforma-invoice draft.
func (c *Client) CreateProformaInvoice(ctx context.Context, req models.ProformaInvoice) (models.ProformaInvoice, error) {
	var out models.ProformaInvoice
	err := c.post(ctx, "/api/v1/proformas", req, &out)
	return out, err
}

// UploadProducts submits canonical product rows from the upload wizard
// and returns the persisted products.
func (c *Client) UploadProducts(ctx context.Context, rows []ingest.ProductRow) ([]models.Product, error) {
	type uploadRow struct {
		SKU      string `json:"sku"`
		Name     string `json:"name"`
		Brand    string `json:"brand,omitempty"`
		Category string `json:"category,omitempty"`
		Price    string `json:"price,omitempty"`
		Quantity int    `json:"quantity"`
	}
	payload := make([]uploadRow, len(rows))
	for i, r := range rows {
		payload[i] = uploadRow{
			SKU:      r.SKU,
			Name:     r.Name,
			Brand:    r.Brand,
			Category: r.Category,
			Quantity: r.Quantity,
		}
		if r.Price != nil {
			payload[i].Price = r.Price.String()
		}
	}
	var out []models.Product
	err := c.post(ctx, "/api/v1/products/bulk", map[string]interface{}{"rows": payload}, &out)
	return out, err
}
