package recon

import (
	"math"

	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	"github.com/shopspring/decimal"
)

// Classify derives the overall status from the issue set alone. Duplicate
// payments and missing invoices mean the match cannot be trusted at all;
// anything else only degrades it.
func Classify(issues []Issue) enums.ReconciliationStatus {
	if len(issues) == 0 {
		return enums.ReconciliationStatusReconciled
	}
	if ContainsKind(issues, enums.IssueKindDuplicatePayment) || ContainsKind(issues, enums.IssueKindMissingInvoice) {
		return enums.ReconciliationStatusUnreconciled
	}
	return enums.ReconciliationStatusPartiallyReconciled
}

// Score computes the 0-100 confidence for a status and its issue set.
//
// The base score comes from the status. Secondary signals subtract a bounded
// penalty: each issue past the first, and the relative magnitude of any
// amount mismatch. The penalty is capped at the jitter bound and never turns
// into a bonus, so a superset of issues can never score higher.
func (p Policy) Score(status enums.ReconciliationStatus, issues []Issue) int {
	base := p.BaseUnreconciled
	switch status {
	case enums.ReconciliationStatusReconciled:
		base = p.BaseReconciled
	case enums.ReconciliationStatusPartiallyReconciled:
		base = p.BasePartial
	}

	penalty := 0
	if len(issues) > 1 {
		penalty += 2 * (len(issues) - 1)
	}
	for _, issue := range issues {
		if issue.Kind != enums.IssueKindAmountMismatch {
			continue
		}
		penalty += mismatchPenalty(issue.InvoiceAmount, issue.PaymentAmount, p.ScoreJitter)
	}
	if penalty > p.ScoreJitter {
		penalty = p.ScoreJitter
	}

	return clampScore(base - penalty)
}

// mismatchPenalty scales with how far the payment strays from the invoice,
// relative to the invoiced amount, capped at the jitter bound.
func mismatchPenalty(invoiceAmount, paymentAmount decimal.Decimal, jitter int) int {
	if !invoiceAmount.IsPositive() {
		return jitter
	}
	ratio, _ := paymentAmount.Sub(invoiceAmount).Abs().Div(invoiceAmount).Float64()
	penalty := int(math.Round(ratio * float64(jitter)))
	if penalty > jitter {
		penalty = jitter
	}
	return penalty
}

// Demote applies the one re-scoring path in the system: a late-discovered
// payer name mismatch on a result already classified as Reconciled. The
// issue is appended, the status drops to Partially Reconciled, and the score
// is cut by the demotion percentage, floored at the demotion floor.
//
// Results that are not Reconciled are returned unchanged, which makes a
// second application a no-op.
func (p Policy) Demote(result Result, customerName, payerName string) Result {
	if result.Status != enums.ReconciliationStatusReconciled {
		return result
	}

	issues := make([]Issue, len(result.Issues), len(result.Issues)+1)
	copy(issues, result.Issues)
	result.Issues = append(issues, NewPayerNameMismatchIssue(customerName, payerName))
	result.Status = enums.ReconciliationStatusPartiallyReconciled

	demoted := int(math.Floor(float64(result.ConfidenceScore) * (1 - p.DemotionPercent)))
	if demoted < p.DemotionFloor {
		demoted = p.DemotionFloor
	}
	result.ConfidenceScore = clampScore(demoted)
	return result
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
