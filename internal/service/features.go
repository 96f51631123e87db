package service

import (
	"math"
	"time"

	"github.com/aditi/profilecore/internal/domain"
)

// Aggregation windows, measured backward from the evaluation instant.
const (
	window30d = 30 * 24 * time.Hour
	window90d = 90 * 24 * time.Hour
)

// FeatureEngine computes windowed financial aggregates over a transaction
// set. Compute is a pure function of its inputs; the same transactions and
// the same instant always produce identical aggregates.
type FeatureEngine struct{}

// Compute derives the financial aggregate set for the given transactions
// relative to now. Rows whose amount fails numeric coercion still count
// toward transaction counts and velocity but are absent from sums, the mean,
// and the extrema. Rows without a parseable date fall outside both windows.
// Every output is finite: undefined computations collapse to 0.
func (FeatureEngine) Compute(txs []domain.Transaction, now time.Time) domain.FinancialAggregates {
	agg := domain.FinancialAggregates{}
	if len(txs) == 0 {
		return agg
	}

	cut30 := now.Add(-window30d)
	cut90 := now.Add(-window90d)

	var (
		spend30, spend90     float64
		sum90                float64
		numeric90            int
		maxAmount, minAmount float64
		hasAmount            bool
		earliest30, latest30 time.Time
	)

	for _, tx := range txs {
		amount, numeric := tx.AmountValue()
		if numeric {
			if !hasAmount || amount > maxAmount {
				maxAmount = amount
			}
			if !hasAmount || amount < minAmount {
				minAmount = amount
			}
			hasAmount = true
		}

		if tx.Date.IsZero() || tx.Date.Before(cut90) {
			continue
		}
		agg.TxCount90d++
		if numeric {
			sum90 += amount
			numeric90++
			if tx.IsDebit() {
				spend90 += amount
			}
		}

		if tx.Date.Before(cut30) {
			continue
		}
		agg.TxCount30d++
		if numeric && tx.IsDebit() {
			spend30 += amount
		}
		if earliest30.IsZero() || tx.Date.Before(earliest30) {
			earliest30 = tx.Date
		}
		if latest30.IsZero() || tx.Date.After(latest30) {
			latest30 = tx.Date
		}
	}

	agg.TotalSpending30d = finiteOrZero(spend30)
	agg.TotalSpending90d = finiteOrZero(spend90)
	if numeric90 > 0 {
		agg.AvgTxValue90d = finiteOrZero(sum90 / float64(numeric90))
	}
	if hasAmount {
		agg.MaxTxAmount = finiteOrZero(maxAmount)
		agg.MinTxAmount = finiteOrZero(minAmount)
	}
	if agg.TxCount30d > 0 {
		// A single-point or sub-hour window floors the divisor to one hour
		// so velocity cannot blow up.
		span := latest30.Sub(earliest30).Hours()
		if span < 1 {
			span = 1
		}
		agg.VelocityTxPerHour = finiteOrZero(float64(agg.TxCount30d) / span)
	}

	return agg
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
