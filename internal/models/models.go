package models

import "github.com/shopspring/decimal"

// APIResponse is the standard JSON envelope for all backend responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// PriceTier is a quantity-break price on a product.
type PriceTier struct {
	MinQty int             `json:"min_qty"`
	Price  decimal.Decimal `json:"price"`
}

type Product struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	// Price is nil when the backend has no price on record; such products
	// fail any active price-range filter.
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int              `json:"quantity"`
	Tiers     []PriceTier      `json:"tiers,omitempty"`
	UpdatedAt string           `json:"updated_at"`
}

type StockTransfer struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	SKU         string `json:"sku"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	Quantity    int    `json:"quantity"`
	CreatedAt   string `json:"created_at"`
}

type Supplier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Status       string `json:"status"`
	LeadTimeDays int    `json:"lead_time_days"`
}

type POLine struct {
	SKU       string          `json:"sku"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type PurchaseOrder struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	SupplierID string          `json:"supplier_id"`
	Supplier   string          `json:"supplier"`
	Status     string          `json:"status"`
	Lines      []POLine        `json:"lines,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	ExpectedAt string          `json:"expected_at,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type ProformaInvoice struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	CustomerID string          `json:"customer_id"`
	Customer   string          `json:"customer"`
	Status     string          `json:"status"`
	Lines      []POLine        `json:"lines,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Terms      string          `json:"terms,omitempty"`
	ValidUntil string          `json:"valid_until,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
}

// UserResponse is the authenticated user as returned by login.
type UserResponse struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type Warehouse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
