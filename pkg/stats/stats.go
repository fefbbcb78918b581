// Package stats computes dashboard figures by scanning the store at call
// time. Everything here is read-only, so the numbers are always consistent
// with the current collections.
package stats

import (
	"time"

	"github.com/invmock/invmock/pkg/store"
)

// ExpiringSoonDays is the near-term window for the expiring stock count.
const ExpiringSoonDays = 30

// Aggregator answers statistics queries against one store.
type Aggregator struct {
	store *store.Store
	now   func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an aggregator over the given store.
func New(s *store.Store, opts ...Option) *Aggregator {
	a := &Aggregator{store: s, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InvoiceCounts is the created-document tally for one invoice type.
type InvoiceCounts struct {
	Today    int `json:"today"`
	ThisWeek int `json:"thisWeek"`
}

// InvoiceCounts counts invoices of the given type created today and this ISO
// week. Day and week boundaries are evaluated in the caller's time zone,
// supplied as minutes east of UTC.
func (a *Aggregator) InvoiceCounts(typ store.InvoiceType, offsetMinutes int) InvoiceCounts {
	loc := time.FixedZone("caller", offsetMinutes*60)
	now := a.now().In(loc)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	// ISO weeks start on Monday.
	back := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -back)

	var counts InvoiceCounts
	for _, inv := range a.store.Invoices.List() {
		if inv.Type != typ {
			continue
		}
		entered := inv.EntryDatetime.In(loc)
		if !entered.Before(dayStart) {
			counts.Today++
		}
		if !entered.Before(weekStart) {
			counts.ThisWeek++
		}
	}
	return counts
}

// ToBePickedCount counts outbound invoices that have not yet reached PICKED.
func (a *Aggregator) ToBePickedCount() int {
	n := 0
	for _, inv := range a.store.Invoices.List() {
		if inv.Type == store.InvoiceTypeOutbound && inv.Status.Rank() < store.StatusPicked.Rank() {
			n++
		}
	}
	return n
}

// StockCounts is the expiry tally across all stock lines.
type StockCounts struct {
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiringSoon"`
}

// StockCounts counts stock lines whose expiry has passed and those expiring
// within the near-term window. Lines without an expiry date are skipped.
// The caller's time zone is supplied as minutes east of UTC.
func (a *Aggregator) StockCounts(offsetMinutes int) StockCounts {
	loc := time.FixedZone("caller", offsetMinutes*60)
	now := a.now().In(loc)
	soon := now.AddDate(0, 0, ExpiringSoonDays)

	var counts StockCounts
	for _, sl := range a.store.StockLines.List() {
		if sl.ExpiryDate.IsZero() {
			continue
		}
		expiry := sl.ExpiryDate.In(loc)
		switch {
		case expiry.Before(now):
			counts.Expired++
		case expiry.Before(soon):
			counts.ExpiringSoon++
		}
	}
	return counts
}
