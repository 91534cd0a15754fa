package records

import (
	"fmt"

	"go.uber.org/multierr"
)

// NewPayments builds every payment in the batch or none: per-record
// validation failures are combined and the whole batch is rejected, so a
// partially-constructed batch is never exposed.
func NewPayments(inputs []PaymentInput) ([]Payment, error) {
	payments := make([]Payment, 0, len(inputs))
	var errs error
	for i, input := range inputs {
		payment, err := NewPayment(input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("payment %d (%s): %w", i, input.ID, err))
			continue
		}
		payments = append(payments, payment)
	}
	if errs != nil {
		return nil, errs
	}
	return payments, nil
}

// NewInvoices builds every invoice in the batch or none.
func NewInvoices(inputs []InvoiceInput) ([]Invoice, error) {
	invoices := make([]Invoice, 0, len(inputs))
	var errs error
	for i, input := range inputs {
		invoice, err := NewInvoice(input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invoice %d (%s): %w", i, input.ID, err))
			continue
		}
		invoices = append(invoices, invoice)
	}
	if errs != nil {
		return nil, errs
	}
	return invoices, nil
}

// NewLedgerEntries builds every ledger entry in the batch or none.
func NewLedgerEntries(inputs []LedgerEntryInput) ([]LedgerEntry, error) {
	entries := make([]LedgerEntry, 0, len(inputs))
	var errs error
	for i, input := range inputs {
		entry, err := NewLedgerEntry(input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("ledger entry %d (%s): %w", i, input.ID, err))
			continue
		}
		entries = append(entries, entry)
	}
	if errs != nil {
		return nil, errs
	}
	return entries, nil
}
