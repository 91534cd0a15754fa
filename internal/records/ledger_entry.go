package records

import (
	"encoding/json"
	"time"

	pkgerrors "github.com/alvarosantos/reconlens-engine/pkg/errors"
	"github.com/shopspring/decimal"
)

// LedgerEntry links a payment to an invoice in the general ledger. A triple
// may legitimately have none.
type LedgerEntry struct {
	ID        string
	InvoiceID string
	PaymentID string
	Amount    decimal.Decimal
	EntryDate time.Time
}

// LedgerEntryInput is the raw wire shape a LedgerEntry is built from.
type LedgerEntryInput struct {
	ID        string          `json:"ledger_entry_id" validate:"required"`
	InvoiceID string          `json:"invoice_id" validate:"required"`
	PaymentID string          `json:"payment_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	EntryDate string          `json:"entry_date" validate:"required,datetime=2006-01-02"`
}

// NewLedgerEntry validates the input and returns an immutable LedgerEntry.
func NewLedgerEntry(input LedgerEntryInput) (LedgerEntry, error) {
	if err := checkInput(input); err != nil {
		return LedgerEntry{}, err
	}
	if input.Amount.IsNegative() {
		return LedgerEntry{}, pkgerrors.Validation("amount", "must not be negative")
	}
	entryDate, err := time.Parse(DateFormat, input.EntryDate)
	if err != nil {
		return LedgerEntry{}, pkgerrors.Validation("entry_date", "must be a well-formed date")
	}
	return LedgerEntry{
		ID:        input.ID,
		InvoiceID: input.InvoiceID,
		PaymentID: input.PaymentID,
		Amount:    input.Amount,
		EntryDate: entryDate,
	}, nil
}

// MarshalJSON emits the dashboard payload shape.
func (l LedgerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string          `json:"ledger_entry_id"`
		InvoiceID string          `json:"invoice_id"`
		PaymentID string          `json:"payment_id"`
		Amount    decimal.Decimal `json:"amount"`
		EntryDate string          `json:"entry_date"`
	}{
		ID:        l.ID,
		InvoiceID: l.InvoiceID,
		PaymentID: l.PaymentID,
		Amount:    l.Amount,
		EntryDate: l.EntryDate.Format(DateFormat),
	})
}
