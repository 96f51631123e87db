package domain

import (
	"math"
	"strconv"
	"time"
)

// DebitMarker is the direction discriminator for spend aggregation. The match
// is case-sensitive: "Debit" or "DEBIT" rows do not count as spending.
const DebitMarker = "debit"

// Transaction models one row of the transaction table. Amount and balance are
// kept as raw strings because the source data does not guarantee numeric
// values; Date is the parsed timestamp and is the zero time when the raw
// value could not be parsed.
type Transaction struct {
	AccountID                string
	Date                     time.Time
	RawDate                  string
	Amount                   string
	DebitCredit              string
	Currency                 string
	Balance                  string
	TransferType             string
	CounterpartyAccountID    string
	ExtCounterpartyAccountID string
	ExtCounterpartyCountry   string
}

// AmountValue coerces the raw amount to a finite float64. The second return
// is false for non-numeric and non-finite values; such rows stay in
// count-based aggregates but are absent from sums, means, and extrema.
func (t Transaction) AmountValue() (float64, bool) {
	v, err := strconv.ParseFloat(t.Amount, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsDebit reports whether the row is flagged as a debit.
func (t Transaction) IsDebit() bool {
	return t.DebitCredit == DebitMarker
}

// Document renders the transaction as a key-value record using the source
// table column names, raw values included.
func (t Transaction) Document() map[string]any {
	return map[string]any{
		"Account ID":                  t.AccountID,
		"Date":                        t.RawDate,
		"Amount":                      t.Amount,
		"Debit/Credit":                t.DebitCredit,
		"Currency":                    t.Currency,
		"Balance":                     t.Balance,
		"Transfer_Type":               t.TransferType,
		"counterparty_Account_ID":     t.CounterpartyAccountID,
		"ext_counterparty_Account_ID": t.ExtCounterpartyAccountID,
		"ext_counterparty_country":    t.ExtCounterpartyCountry,
	}
}
