package recon

import (
	"strings"

	"github.com/alvarosantos/reconlens-engine/pkg/config"
	"github.com/shopspring/decimal"
)

// Policy holds the classification thresholds. The values are deployment
// configuration, not invariants; defaults mirror the documented production
// thresholds.
type Policy struct {
	AmountEpsilon      decimal.Decimal
	ScoreJitter        int
	BaseReconciled     int
	BasePartial        int
	BaseUnreconciled   int
	DemotionPercent    float64
	DemotionFloor      int
	HistoryWindowDays  int
	HistoryMaxPayments int
	BatchWorkers       int

	unknownReferenceSentinels map[string]struct{}
}

// DefaultPolicy returns the production default thresholds.
func DefaultPolicy() Policy {
	return Policy{
		AmountEpsilon:             decimal.New(1, -2),
		ScoreJitter:               10,
		BaseReconciled:            90,
		BasePartial:               70,
		BaseUnreconciled:          50,
		DemotionPercent:           0.20,
		DemotionFloor:             60,
		HistoryWindowDays:         90,
		HistoryMaxPayments:        500,
		BatchWorkers:              8,
		unknownReferenceSentinels: map[string]struct{}{"UNKNOWN": {}},
	}
}

// PolicyFromConfig builds a Policy from validated engine configuration.
func PolicyFromConfig(cfg config.EngineConfig) Policy {
	sentinels := make(map[string]struct{}, len(cfg.UnknownReferenceSentinels))
	for _, sentinel := range cfg.UnknownReferenceSentinels {
		sentinels[strings.ToUpper(strings.TrimSpace(sentinel))] = struct{}{}
	}
	return Policy{
		AmountEpsilon:             decimal.NewFromFloat(cfg.AmountEpsilon),
		ScoreJitter:               cfg.ScoreJitter,
		BaseReconciled:            cfg.BaseReconciled,
		BasePartial:               cfg.BasePartial,
		BaseUnreconciled:          cfg.BaseUnreconciled,
		DemotionPercent:           cfg.DemotionPercent,
		DemotionFloor:             cfg.DemotionFloor,
		HistoryWindowDays:         cfg.HistoryWindowDays,
		HistoryMaxPayments:        cfg.HistoryMaxPayments,
		BatchWorkers:              cfg.BatchWorkers,
		unknownReferenceSentinels: sentinels,
	}
}

// associatesInvoice reports whether a reference note identifies an invoice.
// Empty notes and configured sentinels ("UNKNOWN") associate nothing.
func (p Policy) associatesInvoice(referenceNote string) bool {
	trimmed := strings.TrimSpace(referenceNote)
	if trimmed == "" {
		return false
	}
	if _, ok := p.unknownReferenceSentinels[strings.ToUpper(trimmed)]; ok {
		return false
	}
	return true
}
