package wizard

import (
	"context"

	"invdesk/internal/models"
	"invdesk/internal/validation"

	"github.com/shopspring/decimal"
)

// Purchase-order flow steps.
const (
	StepSelectSupplier = "select_supplier"
	StepOrderLines     = "order_lines"
	StepConfirmOrder   = "confirm"
)

// POBackend is the slice of the API client the purchase-order flow needs.
type POBackend interface {
	CreatePurchaseOrder(ctx context.Context, req models.PurchaseOrder) (models.PurchaseOrder, error)
}

// SupplierSource provides supplier choices for the first step. Loading
// happens once per session; re-entering the step reuses the cached list.
type SupplierSource interface {
	Suppliers(ctx context.Context) ([]models.Supplier, error)
}

// PurchaseOrderDraft accumulates across the purchase-order wizard.
type PurchaseOrderDraft struct {
	SupplierID string
	Reference  string
	Lines      []models.POLine
	Notes      string
	ExpectedAt string

	// SupplierChoices is filled by the select step's loader.
	SupplierChoices []models.Supplier
}

// Total sums the line amounts.
func (d *PurchaseOrderDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

func (d *PurchaseOrderDraft) supplierKnown() bool {
	for _, s := range d.SupplierChoices {
		if s.ID == d.SupplierID {
			return true
		}
	}
	return false
}

// NewPurchaseOrderFlow builds the SelectSupplier -> Lines -> Confirm wizard.
func NewPurchaseOrderFlow(backend POBackend, suppliers SupplierSource) (*Controller[*PurchaseOrderDraft], error) {
	commit := func(ctx context.Context, d *PurchaseOrderDraft) (string, error) {
		po, err := backend.CreatePurchaseOrder(ctx, models.PurchaseOrder{
			SupplierID: d.SupplierID,
			Lines:      d.Lines,
			Total:      d.Total(),
			Notes:      d.Notes,
			ExpectedAt: d.ExpectedAt,
		})
		if err != nil {
			return "", err
		}
		return po.ID, nil
	}

	return New(
		func() *PurchaseOrderDraft { return &PurchaseOrderDraft{} },
		commit,
		Step[*PurchaseOrderDraft]{
			ID: StepSelectSupplier,
			Load: func(ctx context.Context, d *PurchaseOrderDraft) error {
				choices, err := suppliers.Suppliers(ctx)
				if err != nil {
					return err
				}
				d.SupplierChoices = choices
				return nil
			},
			Validate: func(d *PurchaseOrderDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.RequireField(ve, "supplier_id", d.SupplierID)
				if d.SupplierID != "" && !d.supplierKnown() {
					ve.Add("supplier_id", "is not a known supplier")
				}
				return ve
			},
		},
		Step[*PurchaseOrderDraft]{
			ID: StepOrderLines,
			Validate: func(d *PurchaseOrderDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				if len(d.Lines) == 0 {
					ve.Add("lines", "at least one line is required")
				}
				for _, l := range d.Lines {
					validation.RequireField(ve, "sku", l.SKU)
					validation.ValidatePositiveInt(ve, "qty", l.Qty)
					validation.ValidateNonNegativeFloat(ve, "unit_price", l.UnitPrice.InexactFloat64())
				}
				validation.ValidateDate(ve, "expected_at", d.ExpectedAt)
				return ve
			},
		},
		Step[*PurchaseOrderDraft]{ID: StepConfirmOrder},
	)
}
