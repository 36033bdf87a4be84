package validation

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"
)

// ValidationError represents a structured validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects multiple field errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

func (ve *ValidationErrors) HasErrors() bool {
	return ve != nil && len(ve.Errors) > 0
}

// Fields returns the offending field names in insertion order.
func (ve *ValidationErrors) Fields() []string {
	if ve == nil {
		return nil
	}
	fields := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		fields[i] = e.Field
	}
	return fields
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

// RequireField checks a required string field is non-empty.
func RequireField(ve *ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "is required")
	}
}

// ValidateEnum checks a field is one of allowed values.
func ValidateEnum(ve *ValidationErrors, field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	ve.Add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// ValidateDate checks a field is a valid date (YYYY-MM-DD).
func ValidateDate(ve *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	_, err := time.Parse("2006-01-02", value)
	if err != nil {
		ve.Add(field, "must be a valid date (YYYY-MM-DD)")
	}
}

// ValidatePositiveInt checks a field is > 0.
func ValidatePositiveInt(ve *ValidationErrors, field string, value int) {
	if value <= 0 {
		ve.Add(field, "must be a positive integer")
	}
}

// ValidateNonNegativeFloat checks a field is >= 0.
func ValidateNonNegativeFloat(ve *ValidationErrors, field string, value float64) {
	if value < 0 {
		ve.Add(field, "must be non-negative")
	}
}

// ValidateEmail checks a field is a valid email (if non-empty).
func ValidateEmail(ve *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	_, err := mail.ParseAddress(value)
	if err != nil {
		ve.Add(field, "must be a valid email address")
	}
}

// ValidateMaxLength checks string doesn't exceed max length.
func ValidateMaxLength(ve *ValidationErrors, field, value string, max int) {
	if len(value) > max {
		ve.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// Upload file validation constants.
const (
	MaxUploadSize = 10 * 1024 * 1024
	MinUploadSize = 1
)

// UploadExtensions is the whitelist of accepted spreadsheet extensions.
var UploadExtensions = []string{".csv", ".xlsx"}

// ValidateUploadFile validates an upload wizard file by name and size.
func ValidateUploadFile(ve *ValidationErrors, filename string, size int64) {
	if strings.TrimSpace(filename) == "" {
		ve.Add("file", "is required")
		return
	}
	if size < MinUploadSize {
		ve.Add("file", "cannot be empty (0 bytes)")
		return
	}
	if size > MaxUploadSize {
		ve.Add("file", fmt.Sprintf("exceeds maximum size of %d MB (got %d MB)",
			MaxUploadSize/(1024*1024), size/(1024*1024)))
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, ok := range UploadExtensions {
		if ext == ok {
			return
		}
	}
	ve.Add("file", fmt.Sprintf("file type not supported: %s (allowed: %s)",
		ext, strings.Join(UploadExtensions, ", ")))
}
