package seed

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/invmock/invmock/pkg/store"
)

var seedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func TestApplyIsDeterministic(t *testing.T) {
	a, b := store.New(), store.New()
	cfg := DefaultConfig()

	cfg.Apply(a, seedNow)
	cfg.Apply(b, seedNow)

	if !reflect.DeepEqual(a.Items.List(), b.Items.List()) {
		t.Error("items differ between runs")
	}
	if !reflect.DeepEqual(a.StockLines.List(), b.StockLines.List()) {
		t.Error("stock lines differ between runs")
	}
	if !reflect.DeepEqual(a.Invoices.List(), b.Invoices.List()) {
		t.Error("invoices differ between runs")
	}
	if !reflect.DeepEqual(a.InvoiceLines.List(), b.InvoiceLines.List()) {
		t.Error("invoice lines differ between runs")
	}
}

func TestApplyIsResetPath(t *testing.T) {
	s := store.New()
	cfg := DefaultConfig()
	cfg.Apply(s, seedNow)

	before := s.StockLines.List()
	sl := before[0]
	sl.AvailableNumberOfPacks = 0
	if _, err := s.StockLines.Update(sl); err != nil {
		t.Fatal(err)
	}

	cfg.Apply(s, seedNow)
	if !reflect.DeepEqual(s.StockLines.List(), before) {
		t.Error("re-applying the config must restore the original picture")
	}
}

func TestSeededCountsMatchConfig(t *testing.T) {
	s := store.New()
	cfg := Config{Items: 10, Names: 4, Locations: 3, Invoices: 7, Requisitions: 2, Stocktakes: 1, RandomSeed: 42}
	cfg.Apply(s, seedNow)

	if got := s.Items.Len(); got != 10 {
		t.Errorf("items = %d", got)
	}
	if got := s.Names.Len(); got != 4 {
		t.Errorf("names = %d", got)
	}
	if got := s.Locations.Len(); got != 3 {
		t.Errorf("locations = %d", got)
	}
	if got := s.Invoices.Len(); got != 7 {
		t.Errorf("invoices = %d", got)
	}
	if got := s.Requisitions.Len(); got != 2 {
		t.Errorf("requisitions = %d", got)
	}
	if got := s.Stocktakes.Len(); got != 1 {
		t.Errorf("stocktakes = %d", got)
	}
}

func TestSeededDataIsConsistent(t *testing.T) {
	s := store.New()
	DefaultConfig().Apply(s, seedNow)

	for _, sl := range s.StockLines.List() {
		if sl.AvailableNumberOfPacks < 0 || sl.AvailableNumberOfPacks > sl.TotalNumberOfPacks {
			t.Errorf("stock line %s violates the pack invariant: %d/%d",
				sl.ID, sl.AvailableNumberOfPacks, sl.TotalNumberOfPacks)
		}
		if !s.Items.Has(sl.ItemID) {
			t.Errorf("stock line %s references missing item %s", sl.ID, sl.ItemID)
		}
	}
	for _, inv := range s.Invoices.List() {
		if !s.Names.Has(inv.OtherPartyID) {
			t.Errorf("invoice %s references missing name %s", inv.ID, inv.OtherPartyID)
		}
		if inv.Status.PastNew() && inv.AllocatedDatetime == nil {
			t.Errorf("invoice %s at %s is missing its allocated timestamp", inv.ID, inv.Status)
		}
	}
	for _, line := range s.InvoiceLines.List() {
		if !s.Invoices.Has(line.InvoiceID) {
			t.Errorf("line %s references missing invoice %s", line.ID, line.InvoiceID)
		}
		if !s.Items.Has(line.ItemID) {
			t.Errorf("line %s references missing item %s", line.ID, line.ItemID)
		}
		if line.StockLineID != "" && !s.StockLines.Has(line.StockLineID) {
			t.Errorf("line %s references missing stock line %s", line.ID, line.StockLineID)
		}
	}
	for _, rl := range s.RequisitionLines.List() {
		if !s.Requisitions.Has(rl.RequisitionID) {
			t.Errorf("requisition line %s references missing requisition %s", rl.ID, rl.RequisitionID)
		}
	}
	for _, stl := range s.StocktakeLines.List() {
		if !s.Stocktakes.Has(stl.StocktakeID) {
			t.Errorf("stocktake line %s references missing stocktake %s", stl.ID, stl.StocktakeID)
		}
	}
}

func TestCatalogCoversSubstringSearches(t *testing.T) {
	s := store.New()
	DefaultConfig().Apply(s, seedNow)

	glu := 0
	for _, item := range s.Items.List() {
		if strings.Contains(strings.ToLower(item.Name), "glu") {
			glu++
		}
	}
	if glu < 5 {
		t.Errorf("only %d glucose-family items seeded, want at least 5", glu)
	}
}
