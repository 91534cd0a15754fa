package enums

import "fmt"

// IssueKind names a specific discrepancy detected within a payment triple.
// The wire values match the dashboard payloads consumed downstream.
type IssueKind string

const (
	IssueKindDuplicatePayment   IssueKind = "duplicate_payment"
	IssueKindMissingInvoice     IssueKind = "missing_invoice"
	IssueKindAmountMismatch     IssueKind = "amount_mismatch"
	IssueKindMissingLedgerEntry IssueKind = "missing_ledger_entry"
	IssueKindPayerNameMismatch  IssueKind = "payer_name_mismatch"
)

var validIssueKinds = []IssueKind{
	IssueKindDuplicatePayment,
	IssueKindMissingInvoice,
	IssueKindAmountMismatch,
	IssueKindMissingLedgerEntry,
	IssueKindPayerNameMismatch,
}

// String implements fmt.Stringer.
func (k IssueKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known IssueKind.
func (k IssueKind) IsValid() bool {
	for _, candidate := range validIssueKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseIssueKind converts raw input into an IssueKind.
func ParseIssueKind(value string) (IssueKind, error) {
	for _, candidate := range validIssueKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue kind %q", value)
}

// IssueKinds returns every known kind in detection order.
func IssueKinds() []IssueKind {
	kinds := make([]IssueKind, len(validIssueKinds))
	copy(kinds, validIssueKinds)
	return kinds
}
