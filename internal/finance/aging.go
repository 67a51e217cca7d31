package finance

import "time"

// AgingCategory buckets an outstanding balance by days since document date.
type AgingCategory string

const (
	AgingCurrent AgingCategory = "current"
	Aging0To30   AgingCategory = "0-30"
	Aging30To60  AgingCategory = "30-60"
	Aging60To90  AgingCategory = "60-90"
	Aging90Plus  AgingCategory = "90+"
)

// AgingCategories lists the buckets in ascending age order.
var AgingCategories = []AgingCategory{AgingCurrent, Aging0To30, Aging30To60, Aging60To90, Aging90Plus}

// DaysOutstanding returns the whole calendar days elapsed from the document
// date to today. Both instants are truncated to their local calendar day
// before differencing, so the count is stable across DST transitions.
func DaysOutstanding(today, documentDate time.Time) int {
	ty, tm, td := today.Date()
	dy, dm, dd := documentDate.Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(d) / (24 * time.Hour))
}

// ClassifyAge maps a days-outstanding count to its aging bucket. The
// buckets are contiguous and exhaustive over the integers.
func ClassifyAge(days int) AgingCategory {
	switch {
	case days <= 0:
		return AgingCurrent
	case days <= 30:
		return Aging0To30
	case days <= 60:
		return Aging30To60
	case days <= 90:
		return Aging60To90
	default:
		return Aging90Plus
	}
}

// IsOverdue reports whether a document counts as overdue. Deliberately
// narrower than "not current": the first 30 days outstanding are treated as
// normal trade credit.
func IsOverdue(days int) bool {
	return days > 30
}

// AgeTally accumulates per-bucket counts and balances over a set of
// outstanding documents.
type AgeTally struct {
	Counts   map[AgingCategory]int
	Balances map[AgingCategory]float64

	Total        int
	TotalBalance float64
	Overdue      int
}

// NewAgeTally returns an empty tally with every bucket present.
func NewAgeTally() *AgeTally {
	t := &AgeTally{
		Counts:   make(map[AgingCategory]int, len(AgingCategories)),
		Balances: make(map[AgingCategory]float64, len(AgingCategories)),
	}
	for _, c := range AgingCategories {
		t.Counts[c] = 0
		t.Balances[c] = 0
	}
	return t
}

// Add records one outstanding document. Documents with a non-positive
// balance are excluded upstream and must not reach the tally.
func (t *AgeTally) Add(days int, balance float64) {
	cat := ClassifyAge(days)
	t.Counts[cat]++
	t.Balances[cat] = Round2(t.Balances[cat] + balance)
	t.Total++
	t.TotalBalance = Round2(t.TotalBalance + balance)
	if IsOverdue(days) {
		t.Overdue++
	}
}
