package recon

import (
	"encoding/json"

	"github.com/alvarosantos/reconlens-engine/internal/records"
	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	"github.com/shopspring/decimal"
)

// Issue is a tagged variant describing one specific discrepancy detected
// within a payment triple. Only the fields relevant to the kind are set.
type Issue struct {
	Kind             enums.IssueKind
	Message          string
	DuplicatePayment *records.Payment
	InvoiceAmount    decimal.Decimal
	PaymentAmount    decimal.Decimal
	CustomerName     string
	PayerName        string
}

// NewDuplicatePaymentIssue flags a payment that repeats an earlier one. The
// conflicting prior payment rides along for explanation.
func NewDuplicatePaymentIssue(prior records.Payment) Issue {
	return Issue{
		Kind:             enums.IssueKindDuplicatePayment,
		DuplicatePayment: &prior,
	}
}

// NewMissingInvoiceIssue flags a payment with no associable invoice.
func NewMissingInvoiceIssue() Issue {
	return Issue{
		Kind:    enums.IssueKindMissingInvoice,
		Message: "Payment has no invoice reference",
	}
}

// NewAmountMismatchIssue flags a payment amount that differs from the
// invoiced amount beyond the configured epsilon.
func NewAmountMismatchIssue(invoiceAmount, paymentAmount decimal.Decimal) Issue {
	return Issue{
		Kind:          enums.IssueKindAmountMismatch,
		InvoiceAmount: invoiceAmount,
		PaymentAmount: paymentAmount,
	}
}

// NewMissingLedgerEntryIssue flags a triple without a ledger entry.
func NewMissingLedgerEntryIssue() Issue {
	return Issue{
		Kind:    enums.IssueKindMissingLedgerEntry,
		Message: "No corresponding ledger entry found",
	}
}

// NewPayerNameMismatchIssue flags a payer name that resolves to a different
// canonical entity than the invoice's customer name.
func NewPayerNameMismatchIssue(customerName, payerName string) Issue {
	return Issue{
		Kind:         enums.IssueKindPayerNameMismatch,
		CustomerName: customerName,
		PayerName:    payerName,
	}
}

// MarshalJSON emits the dashboard issue payload: the type tag plus only the
// fields that kind carries.
func (i Issue) MarshalJSON() ([]byte, error) {
	payload := map[string]any{"type": i.Kind}
	switch i.Kind {
	case enums.IssueKindDuplicatePayment:
		payload["duplicatePayment"] = i.DuplicatePayment
	case enums.IssueKindMissingInvoice, enums.IssueKindMissingLedgerEntry:
		payload["message"] = i.Message
	case enums.IssueKindAmountMismatch:
		payload["invoiceAmount"] = i.InvoiceAmount
		payload["paymentAmount"] = i.PaymentAmount
	case enums.IssueKindPayerNameMismatch:
		payload["customerName"] = i.CustomerName
		payload["payerName"] = i.PayerName
	}
	return json.Marshal(payload)
}

// ContainsKind reports whether the issue list carries the given kind.
func ContainsKind(issues []Issue, kind enums.IssueKind) bool {
	for _, issue := range issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}
