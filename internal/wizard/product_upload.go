package wizard

import (
	"context"

	"invdesk/internal/ingest"
	"invdesk/internal/models"
	"invdesk/internal/validation"
)

// Product-upload flow steps. SelectMethod forks to either the spreadsheet
// upload step or the manual entry step; both converge on Review.
const (
	StepSelectMethod  = "select_method"
	StepUploadFile    = "upload_file"
	StepManualDetails = "manual_details"
	StepReviewRows    = "review"
	StepConfirmUpload = "confirm"
)

// Upload methods selectable on the first step.
const (
	MethodUpload = "upload"
	MethodManual = "manual"
)

// UploadBackend is the slice of the API client the upload flow needs.
type UploadBackend interface {
	UploadProducts(ctx context.Context, rows []ingest.ProductRow) ([]models.Product, error)
}

// ProductUploadDraft accumulates across the product-upload wizard.
type ProductUploadDraft struct {
	Method string

	// Spreadsheet path: set when the user picks a file, parsed into Rows.
	FileName string
	FileSize int64
	Rows     []ingest.ProductRow
	RowCount int
	Skipped  []ingest.RowError

	// Manual path: a single product entered field by field.
	Manual ingest.ProductRow
}

// AttachSpreadsheet records a parsed upload on the draft. Re-selecting a
// file replaces the previous rows wholesale.
func (d *ProductUploadDraft) AttachSpreadsheet(name string, size int64, res *ingest.Result) {
	d.FileName = name
	d.FileSize = size
	d.Rows = res.Rows
	d.RowCount = res.RowCount
	d.Skipped = res.Skipped
}

// rowsToSubmit is the canonical row set regardless of entry method.
func (d *ProductUploadDraft) rowsToSubmit() []ingest.ProductRow {
	if d.Method == MethodManual {
		return []ingest.ProductRow{d.Manual}
	}
	return d.Rows
}

// NewProductUploadFlow builds the SelectMethod -> {Upload|Manual} ->
// Review -> Confirm wizard.
func NewProductUploadFlow(backend UploadBackend) (*Controller[*ProductUploadDraft], error) {
	commit := func(ctx context.Context, d *ProductUploadDraft) (string, error) {
		created, err := backend.UploadProducts(ctx, d.rowsToSubmit())
		if err != nil {
			return "", err
		}
		if len(created) == 1 {
			return created[0].ID, nil
		}
		return "", nil
	}

	return New(
		func() *ProductUploadDraft { return &ProductUploadDraft{} },
		commit,
		Step[*ProductUploadDraft]{
			ID: StepSelectMethod,
			Validate: func(d *ProductUploadDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.RequireField(ve, "method", d.Method)
				validation.ValidateEnum(ve, "method", d.Method, []string{MethodUpload, MethodManual})
				return ve
			},
			Branch: func(d *ProductUploadDraft) string {
				if d.Method == MethodManual {
					return StepManualDetails
				}
				return StepUploadFile
			},
		},
		Step[*ProductUploadDraft]{
			ID: StepUploadFile,
			Validate: func(d *ProductUploadDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.ValidateUploadFile(ve, d.FileName, d.FileSize)
				if !ve.HasErrors() && len(d.Rows) == 0 {
					ve.Add("file", "contains no product rows")
				}
				return ve
			},
			Branch: func(d *ProductUploadDraft) string { return StepReviewRows },
		},
		Step[*ProductUploadDraft]{
			ID: StepManualDetails,
			Validate: func(d *ProductUploadDraft) *validation.ValidationErrors {
				ve := &validation.ValidationErrors{}
				validation.RequireField(ve, "sku", d.Manual.SKU)
				validation.RequireField(ve, "name", d.Manual.Name)
				if d.Manual.Quantity < 0 {
					ve.Add("quantity", "must be non-negative")
				}
				return ve
			},
		},
		Step[*ProductUploadDraft]{ID: StepReviewRows},
		Step[*ProductUploadDraft]{ID: StepConfirmUpload},
	)
}
