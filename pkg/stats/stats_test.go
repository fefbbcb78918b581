package stats

import (
	"testing"
	"time"

	"github.com/invmock/invmock/pkg/store"
)

// Fixed "now": Wednesday 2024-06-05 02:00 UTC.
var wednesday = time.Date(2024, 6, 5, 2, 0, 0, 0, time.UTC)

func clock() func() time.Time {
	return func() time.Time { return wednesday }
}

func invoiceAt(id string, typ store.InvoiceType, entered time.Time) store.Invoice {
	return store.Invoice{ID: id, InvoiceNumber: 1, Type: typ, Status: store.StatusNew, EntryDatetime: entered}
}

func TestInvoiceCounts(t *testing.T) {
	s := store.New()
	out := store.InvoiceTypeOutbound

	_ = s.Invoices.Insert(invoiceAt("a", out, wednesday.Add(-time.Hour)))          // today
	_ = s.Invoices.Insert(invoiceAt("b", out, wednesday.Add(-26*time.Hour)))       // Tuesday, this week
	_ = s.Invoices.Insert(invoiceAt("c", out, wednesday.AddDate(0, 0, -7)))        // last week
	_ = s.Invoices.Insert(invoiceAt("d", store.InvoiceTypeInbound, wednesday))     // other type
	_ = s.Invoices.Insert(invoiceAt("e", out, wednesday.Add(-49*time.Hour)))       // Monday 01:00, this week
	_ = s.Invoices.Insert(invoiceAt("f", out, wednesday.AddDate(0, 0, -2).Add(-3*time.Hour))) // Sunday, last week

	a := New(s, WithClock(clock()))
	counts := a.InvoiceCounts(out, 0)
	if counts.Today != 1 {
		t.Errorf("today = %d, want 1", counts.Today)
	}
	if counts.ThisWeek != 3 {
		t.Errorf("thisWeek = %d, want 3", counts.ThisWeek)
	}
}

func TestInvoiceCountsRespectCallerOffset(t *testing.T) {
	s := store.New()
	out := store.InvoiceTypeOutbound

	// 2024-06-04 23:00 UTC: yesterday in UTC, but already "today" at UTC+3.
	_ = s.Invoices.Insert(invoiceAt("a", out, time.Date(2024, 6, 4, 23, 0, 0, 0, time.UTC)))

	a := New(s, WithClock(clock()))
	if got := a.InvoiceCounts(out, 0).Today; got != 0 {
		t.Errorf("UTC today = %d, want 0", got)
	}
	if got := a.InvoiceCounts(out, 3*60).Today; got != 1 {
		t.Errorf("UTC+3 today = %d, want 1", got)
	}
}

func TestToBePickedCount(t *testing.T) {
	s := store.New()
	out := store.InvoiceTypeOutbound

	add := func(id string, status store.InvoiceStatus, typ store.InvoiceType) {
		_ = s.Invoices.Insert(store.Invoice{ID: id, Type: typ, Status: status, EntryDatetime: wednesday})
	}
	add("a", store.StatusNew, out)
	add("b", store.StatusAllocated, out)
	add("c", store.StatusPicked, out)
	add("d", store.StatusShipped, out)
	add("e", store.StatusNew, store.InvoiceTypeInbound)

	a := New(s, WithClock(clock()))
	if got := a.ToBePickedCount(); got != 2 {
		t.Errorf("toBePicked = %d, want 2", got)
	}
}

func TestStockCounts(t *testing.T) {
	s := store.New()

	add := func(id string, expiry time.Time) {
		_ = s.StockLines.Insert(store.StockLine{ID: id, ItemID: "i", ExpiryDate: expiry})
	}
	add("expired", wednesday.AddDate(0, 0, -1))
	add("soon", wednesday.AddDate(0, 0, 10))
	add("edge", wednesday.AddDate(0, 0, ExpiringSoonDays-1))
	add("far", wednesday.AddDate(0, 0, ExpiringSoonDays+5))
	add("none", time.Time{})

	a := New(s, WithClock(clock()))
	counts := a.StockCounts(0)
	if counts.Expired != 1 {
		t.Errorf("expired = %d, want 1", counts.Expired)
	}
	if counts.ExpiringSoon != 2 {
		t.Errorf("expiringSoon = %d, want 2", counts.ExpiringSoon)
	}
}
