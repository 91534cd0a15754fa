package recon

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alvarosantos/reconlens-engine/internal/entities"
	"github.com/alvarosantos/reconlens-engine/internal/records"
	"github.com/alvarosantos/reconlens-engine/pkg/logger"
	"github.com/alvarosantos/reconlens-engine/pkg/metrics"
)

// Triple is the unit of classification: a payment with zero-or-one matched
// invoice and zero-or-one ledger entry.
type Triple struct {
	Payment records.Payment
	Invoice *records.Invoice
	Ledger  *records.LedgerEntry
}

// Engine classifies payment triples. Classification is total: a triple that
// matches nothing is still classified, as maximally unreconciled.
type Engine interface {
	// ClassifyTriple classifies one triple against a snapshot of recent
	// payments.
	ClassifyTriple(ctx context.Context, triple Triple, recent []records.Payment) Result
	// ClassifyBatch classifies a batch. The duplicate-detection snapshot is
	// fixed before the pass begins (prior history plus the batch's own
	// payments), so results are deterministic and order-independent.
	ClassifyBatch(ctx context.Context, triples []Triple, history []records.Payment) []Result
	// HistoryWindow bounds a payment history to the configured snapshot
	// window: at most HistoryWindowDays old relative to asOf, at most
	// HistoryMaxPayments entries, newest first.
	HistoryWindow(payments []records.Payment, asOf time.Time) []records.Payment
}

// Params configure the engine.
type Params struct {
	Policy   Policy
	Resolver *entities.Resolver
	Logger   *logger.Logger
	Metrics  *metrics.EngineMetrics
}

type engine struct {
	policy   Policy
	detector *Detector
	log      *logger.Logger
	metrics  *metrics.EngineMetrics
}

// NewEngine wires a classification engine.
func NewEngine(params Params) (Engine, error) {
	if params.Resolver == nil {
		return nil, fmt.Errorf("entity resolver required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	detector, err := NewDetector(params.Policy, params.Resolver)
	if err != nil {
		return nil, err
	}
	return &engine{
		policy:   params.Policy,
		detector: detector,
		log:      params.Logger,
		metrics:  params.Metrics,
	}, nil
}

func (e *engine) ClassifyTriple(ctx context.Context, triple Triple, recent []records.Payment) Result {
	result := e.classify(triple, recent)
	e.observe(result)
	return result
}

func (e *engine) ClassifyBatch(ctx context.Context, triples []Triple, history []records.Payment) []Result {
	start := time.Now()

	// Fixed snapshot: concurrently classified results never feed back into
	// duplicate detection within the same pass.
	snapshot := make([]records.Payment, 0, len(history)+len(triples))
	snapshot = append(snapshot, history...)
	for _, triple := range triples {
		snapshot = append(snapshot, triple.Payment)
	}

	results := make([]Result, len(triples))
	workers := e.policy.BatchWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(triples) {
		workers = len(triples)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.classify(triples[i], snapshot)
			}
		}()
	}
	for i := range triples {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, result := range results {
		e.observe(result)
	}
	e.metrics.ObserveBatchDuration("ok", time.Since(start))

	ctx = e.log.WithFields(ctx, map[string]any{
		"batch_size":  len(triples),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	e.log.Info(ctx, "classified reconciliation batch")

	return results
}

func (e *engine) HistoryWindow(payments []records.Payment, asOf time.Time) []records.Payment {
	window := make([]records.Payment, 0, len(payments))
	for _, payment := range payments {
		if e.policy.HistoryWindowDays > 0 {
			age := asOf.Sub(payment.Date)
			if age < 0 {
				age = -age
			}
			if int(age.Hours()/24) > e.policy.HistoryWindowDays {
				continue
			}
		}
		window = append(window, payment)
	}

	sort.SliceStable(window, func(i, j int) bool {
		if !window[i].Date.Equal(window[j].Date) {
			return window[i].Date.After(window[j].Date)
		}
		return window[i].ID < window[j].ID
	})

	if e.policy.HistoryMaxPayments > 0 && len(window) > e.policy.HistoryMaxPayments {
		window = window[:e.policy.HistoryMaxPayments]
	}
	return window
}

func (e *engine) classify(triple Triple, snapshot []records.Payment) Result {
	issues := e.detector.Detect(triple.Payment, triple.Invoice, triple.Ledger, snapshot)
	status := Classify(issues)

	matched := triple.Invoice
	if matched != nil && !e.policy.associatesInvoice(triple.Payment.ReferenceNote) {
		matched = nil
	}

	return Result{
		Payment:         triple.Payment,
		MatchedInvoice:  matched,
		LedgerEntry:     triple.Ledger,
		Issues:          issues,
		Status:          status,
		ConfidenceScore: e.policy.Score(status, issues),
	}
}

func (e *engine) observe(result Result) {
	e.metrics.IncResult(result.Status.String())
	for _, issue := range result.Issues {
		e.metrics.IncIssue(issue.Kind.String())
	}
}
