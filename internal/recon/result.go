package recon

import (
	"github.com/alvarosantos/reconlens-engine/internal/records"
	"github.com/alvarosantos/reconlens-engine/pkg/enums"
)

// Result is one classified payment triple: the payment, whatever invoice and
// ledger entry could be matched, the detected issues, and the verdict.
type Result struct {
	Payment         records.Payment            `json:"payment"`
	MatchedInvoice  *records.Invoice           `json:"matchedInvoice,omitempty"`
	LedgerEntry     *records.LedgerEntry       `json:"ledgerEntry,omitempty"`
	Issues          []Issue                    `json:"issues"`
	Status          enums.ReconciliationStatus `json:"status"`
	ConfidenceScore int                        `json:"confidenceScore"`
}

// HasIssue reports whether the result carries an issue of the given kind.
func (r Result) HasIssue(kind enums.IssueKind) bool {
	return ContainsKind(r.Issues, kind)
}
