package wizard

import (
	"context"

	"invdesk/internal/models"
	"invdesk/internal/validation"

	"github.com/shopspring/decimal"
)

// Proforma-invoice flow steps.
const (
	StepSelectCustomer = "select_customer"
	StepInvoiceLines   = "invoice_lines"
	StepInvoiceTerms   = "terms"
	StepConfirmInvoice = "confirm"
)

// ProformaBackend is the slice of the API client the proforma flow needs.
type ProformaBackend interface {
	CreateProformaInvoice(ctx context.Context, req models.ProformaInvoice) (models.ProformaInvoice, error)
}

// CustomerSource provides customer choices for the first step.
type CustomerSource interface {
	Customers(ctx context.Context) ([]models.Customer, error)
}

// ProformaDraft accumulates across the proforma-invoice wizard.
type ProformaDraft struct {
	CustomerID string
	Lines      []models.POLine
	Terms      string
	ValidUntil string

	CustomerChoices []models.Customer
}

// Total sums the line amounts.
func (d *ProformaDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

// NewProformaFlow builds the Customer -> Lines -> Terms -> Confirm wizard.
func NewProformaFlow(backend ProformaBackend, customers CustomerSource) (*Controller[*ProformaDraft], error) {
	commit := func(ctx context.Context, d *ProformaDraft) (string, error) {
		inv, err := backend.CreateProformaInvoice(ctx, models.ProformaInvoice{
			CustomerID: d.CustomerID,
			Lines:      d.Lines,
			Total:      d.Total(),
			Terms:      d.Terms,
			ValidUntil: d.ValidUntil,
		})
		if err != nil {
			return "", err
		}
		return inv.ID, nil
	}

	return New(
		func() *ProformaDraft { return &ProformaDraft{} },
		commit,
		Step[*ProformaDraft]{
			ID: StepSelectCustomer,
			Load: func(ctx context.Context, d *ProformaDraft) error {
				choices, err := customers.Customers(ctx)
				if err != nil {
					return err
				}
				d.CustomerChoices = choices
				return nil
			},
			Validate: func(d *ProformaDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.RequireField(ve, "customer_id", d.CustomerID)
				return ve
			},
		},
		Step[*ProformaDraft]{
			ID: StepInvoiceLines,
			Validate: func(d *ProformaDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				if len(d.Lines) == 0 {
					ve.Add("lines", "at least one line is required")
				}
				for _, l := range d.Lines {
					validation.RequireField(ve, "sku", l.SKU)
					validation.ValidatePositiveInt(ve, "qty", l.Qty)
				}
				return ve
			},
		},
		Step[*ProformaDraft]{
			ID: StepInvoiceTerms,
			Validate: func(d *ProformaDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.ValidateDate(ve, "valid_until", d.ValidUntil)
				validation.ValidateMaxLength(ve, "terms", d.Terms, 2000)
				return ve
			},
		},
		Step[*ProformaDraft]{ID: StepConfirmInvoice},
	)
}
