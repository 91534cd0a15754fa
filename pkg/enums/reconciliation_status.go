package enums

import "fmt"

// ReconciliationStatus is the overall verdict for a classified payment triple.
type ReconciliationStatus string

const (
	ReconciliationStatusReconciled          ReconciliationStatus = "Reconciled"
	ReconciliationStatusPartiallyReconciled ReconciliationStatus = "Partially Reconciled"
	ReconciliationStatusUnreconciled        ReconciliationStatus = "Unreconciled"
)

var validReconciliationStatuses = []ReconciliationStatus{
	ReconciliationStatusReconciled,
	ReconciliationStatusPartiallyReconciled,
	ReconciliationStatusUnreconciled,
}

// String implements fmt.Stringer.
func (s ReconciliationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ReconciliationStatus.
func (s ReconciliationStatus) IsValid() bool {
	for _, candidate := range validReconciliationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReconciliationStatus converts raw input into a ReconciliationStatus.
func ParseReconciliationStatus(value string) (ReconciliationStatus, error) {
	for _, candidate := range validReconciliationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reconciliation status %q", value)
}
