package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLimitTracker aggregates the money moved per calendar day through the
// customer-payment path. Internal moves and loan operations do not count
// toward it. The external midnight timer clears it via ResetAll; callers
// serialize access through the command processor's lock.
type DailyLimitTracker struct {
	totals map[string]decimal.Decimal
}

// NewDailyLimitTracker creates an empty tracker
func NewDailyLimitTracker() *DailyLimitTracker {
	return &DailyLimitTracker{totals: make(map[string]decimal.Decimal)}
}

// Add records a completed payment against the given date
func (t *DailyLimitTracker) Add(date time.Time, amount decimal.Decimal) {
	key := dayKey(date)
	t.totals[key] = t.totals[key].Add(amount)
}

// Total returns the cumulative payment amount for the date, zero if unseen
func (t *DailyLimitTracker) Total(date time.Time) decimal.Decimal {
	return t.totals[dayKey(date)]
}

// ResetAll clears every per-day total. Idempotent.
func (t *DailyLimitTracker) ResetAll() {
	t.totals = make(map[string]decimal.Decimal)
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}
