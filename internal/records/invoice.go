package records

import (
	"encoding/json"
	"time"

	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	pkgerrors "github.com/alvarosantos/reconlens-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// Invoice is a billed amount owed by a customer. The customer name on the
// invoice is the canonical spelling as recorded in billing.
type Invoice struct {
	ID           string
	CustomerName string
	AmountDue    decimal.Decimal
	DueDate      time.Time
	Status       enums.InvoiceStatus
}

// InvoiceInput is the raw wire shape an Invoice is built from.
type InvoiceInput struct {
	ID           string          `json:"invoice_id" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required"`
	AmountDue    decimal.Decimal `json:"amount_due"`
	DueDate      string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status       string          `json:"status" validate:"required"`
}

// NewInvoice validates the input and returns an immutable Invoice.
func NewInvoice(input InvoiceInput) (Invoice, error) {
	if err := checkInput(input); err != nil {
		return Invoice{}, err
	}
	if input.AmountDue.IsNegative() {
		return Invoice{}, pkgerrors.Validation("amount_due", "must not be negative")
	}
	status, err := enums.ParseInvoiceStatus(input.Status)
	if err != nil {
		return Invoice{}, pkgerrors.Validation("status", err.Error())
	}
	dueDate, err := time.Parse(DateFormat, input.DueDate)
	if err != nil {
		return Invoice{}, pkgerrors.Validation("due_date", "must be a well-formed date")
	}
	return Invoice{
		ID:           input.ID,
		CustomerName: input.CustomerName,
		AmountDue:    input.AmountDue,
		DueDate:      dueDate,
		Status:       status,
	}, nil
}

// MarshalJSON emits the dashboard payload shape.
func (i Invoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           string          `json:"invoice_id"`
		CustomerName string          `json:"customer_name"`
		AmountDue    decimal.Decimal `json:"amount_due"`
		DueDate      string          `json:"due_date"`
		Status       string          `json:"status"`
	}{
		ID:           i.ID,
		CustomerName: i.CustomerName,
		AmountDue:    i.AmountDue,
		DueDate:      i.DueDate.Format(DateFormat),
		Status:       i.Status.String(),
	})
}
