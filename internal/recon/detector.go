package recon

import (
	"fmt"

	"github.com/alvarosantos/reconlens-engine/internal/entities"
	"github.com/alvarosantos/reconlens-engine/internal/records"
)

// Detector evaluates every discrepancy rule against a payment triple. It is
// pure and deterministic: the only non-local input is the caller-supplied
// snapshot of recent payments used for duplicate detection.
type Detector struct {
	policy   Policy
	resolver *entities.Resolver
}

// NewDetector wires a detector with the provided policy and resolver.
func NewDetector(policy Policy, resolver *entities.Resolver) (*Detector, error) {
	if resolver == nil {
		return nil, fmt.Errorf("entity resolver required")
	}
	return &Detector{policy: policy, resolver: resolver}, nil
}

// Detect returns the issues present in the triple, in fixed detection order.
// Every rule is evaluated independently; a triple may carry several issues.
//
// When no invoice can be associated (empty or sentinel reference note, or no
// matched invoice), the invoice-relative rules are skipped: there is nothing
// to compare amounts or names against.
func (d *Detector) Detect(payment records.Payment, invoice *records.Invoice, ledger *records.LedgerEntry, recent []records.Payment) []Issue {
	var issues []Issue

	if prior, ok := d.findDuplicate(payment, recent); ok {
		issues = append(issues, NewDuplicatePaymentIssue(prior))
	}

	invoiceAssociated := invoice != nil && d.policy.associatesInvoice(payment.ReferenceNote)
	if !invoiceAssociated {
		issues = append(issues, NewMissingInvoiceIssue())
	}

	if invoiceAssociated {
		delta := payment.Amount.Sub(invoice.AmountDue).Abs()
		if delta.GreaterThan(d.policy.AmountEpsilon) {
			issues = append(issues, NewAmountMismatchIssue(invoice.AmountDue, payment.Amount))
		}
	}

	if ledger == nil {
		issues = append(issues, NewMissingLedgerEntryIssue())
	}

	if invoiceAssociated && !d.resolver.SameEntity(payment.PayerName, invoice.CustomerName) {
		issues = append(issues, NewPayerNameMismatchIssue(invoice.CustomerName, payment.PayerName))
	}

	return issues
}

// findDuplicate scans the snapshot for a prior payment with the same payer
// name, amount and method. Dates may differ, but only within the configured
// history window.
func (d *Detector) findDuplicate(payment records.Payment, recent []records.Payment) (records.Payment, bool) {
	for _, prior := range recent {
		if prior.ID == payment.ID {
			continue
		}
		if prior.PayerName != payment.PayerName || prior.Method != payment.Method {
			continue
		}
		if !prior.Amount.Equal(payment.Amount) {
			continue
		}
		if d.policy.HistoryWindowDays > 0 {
			age := payment.Date.Sub(prior.Date)
			if age < 0 {
				age = -age
			}
			if int(age.Hours()/24) > d.policy.HistoryWindowDays {
				continue
			}
		}
		return prior, true
	}
	return records.Payment{}, false
}
