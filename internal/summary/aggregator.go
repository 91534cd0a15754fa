package summary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alvarosantos/reconlens-engine/internal/entities"
	"github.com/alvarosantos/reconlens-engine/internal/recon"
	"github.com/alvarosantos/reconlens-engine/pkg/enums"
	"github.com/shopspring/decimal"
)

// Summary is the portfolio-level rollup of a result collection, the shape
// the dashboard's overview and anomaly panels consume.
type Summary struct {
	TotalResults      int                                `json:"total_results"`
	StatusCounts      map[enums.ReconciliationStatus]int `json:"status_counts"`
	TotalConfidence   int                                `json:"total_confidence"`
	AverageConfidence float64                            `json:"average_confidence"`
	IssueCounts       map[enums.IssueKind]int            `json:"issue_counts"`
	IssueAmounts      map[enums.IssueKind]decimal.Decimal `json:"issue_amounts"`
	Entities          []EntityCluster                    `json:"entities"`
}

// EntityCluster groups the results whose payer names resolve to one
// canonical entity. A weak aggregation built from results, not owned by them.
type EntityCluster struct {
	CanonicalName string          `json:"canonical_name"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Variants      []string        `json:"variants"`
}

// Aggregator reduces result collections into summaries.
type Aggregator struct {
	resolver *entities.Resolver
}

// NewAggregator wires an aggregator with the provided resolver.
func NewAggregator(resolver *entities.Resolver) (*Aggregator, error) {
	if resolver == nil {
		return nil, fmt.Errorf("entity resolver required")
	}
	return &Aggregator{resolver: resolver}, nil
}

// Summarize reduces the results in a single pass.
func (a *Aggregator) Summarize(results []recon.Result) Summary {
	acc := newAccumulator()
	for _, result := range results {
		acc.add(a.resolver, result)
	}
	return acc.export()
}

// SummarizeParallel splits the results into shards, reduces them
// concurrently and merges the parts. The combine step is associative and
// commutative (sums and counts), so the outcome matches Summarize.
func (a *Aggregator) SummarizeParallel(results []recon.Result, shards int) Summary {
	if shards < 2 || len(results) < shards {
		return a.Summarize(results)
	}

	parts := make([]Summary, shards)
	chunk := (len(results) + shards - 1) / shards
	var wg sync.WaitGroup
	for i := 0; i < shards; i++ {
		lo := i * chunk
		hi := lo + chunk
		if hi > len(results) {
			hi = len(results)
		}
		wg.Add(1)
		go func(slot int, part []recon.Result) {
			defer wg.Done()
			parts[slot] = a.Summarize(part)
		}(i, results[lo:hi])
	}
	wg.Wait()

	return Merge(parts...)
}

// Merge combines partial summaries into one.
func Merge(parts ...Summary) Summary {
	acc := newAccumulator()
	for _, part := range parts {
		acc.merge(part)
	}
	return acc.export()
}

type clusterAccumulator struct {
	count    int
	total    decimal.Decimal
	variants map[string]struct{}
}

type accumulator struct {
	totalResults    int
	statusCounts    map[enums.ReconciliationStatus]int
	totalConfidence int
	issueCounts     map[enums.IssueKind]int
	issueAmounts    map[enums.IssueKind]decimal.Decimal
	clusters        map[string]*clusterAccumulator
}

func newAccumulator() *accumulator {
	return &accumulator{
		statusCounts: make(map[enums.ReconciliationStatus]int),
		issueCounts:  make(map[enums.IssueKind]int),
		issueAmounts: make(map[enums.IssueKind]decimal.Decimal),
		clusters:     make(map[string]*clusterAccumulator),
	}
}

func (acc *accumulator) add(resolver *entities.Resolver, result recon.Result) {
	acc.totalResults++
	acc.statusCounts[result.Status]++
	acc.totalConfidence += result.ConfidenceScore

	for _, issue := range result.Issues {
		acc.issueCounts[issue.Kind]++
		acc.issueAmounts[issue.Kind] = acc.issueAmounts[issue.Kind].Add(result.Payment.Amount)
	}

	entity := resolver.Resolve(result.Payment.PayerName)
	cluster := acc.cluster(entity.CanonicalName)
	cluster.count++
	cluster.total = cluster.total.Add(result.Payment.Amount)
	if result.Payment.PayerName != entity.CanonicalName {
		cluster.variants[result.Payment.PayerName] = struct{}{}
	}
}

func (acc *accumulator) merge(part Summary) {
	acc.totalResults += part.TotalResults
	acc.totalConfidence += part.TotalConfidence
	for status, count := range part.StatusCounts {
		acc.statusCounts[status] += count
	}
	for kind, count := range part.IssueCounts {
		acc.issueCounts[kind] += count
	}
	for kind, amount := range part.IssueAmounts {
		acc.issueAmounts[kind] = acc.issueAmounts[kind].Add(amount)
	}
	for _, entityCluster := range part.Entities {
		cluster := acc.cluster(entityCluster.CanonicalName)
		cluster.count += entityCluster.Count
		cluster.total = cluster.total.Add(entityCluster.TotalAmount)
		for _, variant := range entityCluster.Variants {
			cluster.variants[variant] = struct{}{}
		}
	}
}

func (acc *accumulator) cluster(canonicalName string) *clusterAccumulator {
	cluster, ok := acc.clusters[canonicalName]
	if !ok {
		cluster = &clusterAccumulator{variants: make(map[string]struct{})}
		acc.clusters[canonicalName] = cluster
	}
	return cluster
}

func (acc *accumulator) export() Summary {
	summary := Summary{
		TotalResults:    acc.totalResults,
		StatusCounts:    acc.statusCounts,
		TotalConfidence: acc.totalConfidence,
		IssueCounts:     acc.issueCounts,
		IssueAmounts:    acc.issueAmounts,
		Entities:        make([]EntityCluster, 0, len(acc.clusters)),
	}
	if acc.totalResults > 0 {
		summary.AverageConfidence = float64(acc.totalConfidence) / float64(acc.totalResults)
	}

	for name, cluster := range acc.clusters {
		variants := make([]string, 0, len(cluster.variants))
		for variant := range cluster.variants {
			variants = append(variants, variant)
		}
		sort.Strings(variants)
		summary.Entities = append(summary.Entities, EntityCluster{
			CanonicalName: name,
			Count:         cluster.count,
			TotalAmount:   cluster.total,
			Variants:      variants,
		})
	}
	sort.Slice(summary.Entities, func(i, j int) bool {
		return summary.Entities[i].CanonicalName < summary.Entities[j].CanonicalName
	})
	return summary
}
