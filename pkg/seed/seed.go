// Package seed populates a store with deterministic demo data. The same
// configuration always produces the same records, so tests and demos can
// rely on stable identifiers.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/invmock/invmock/pkg/store"
)

// Config controls how much data is generated. Zero values fall back to the
// defaults from DefaultConfig.
type Config struct {
	Items        int   `json:"items" yaml:"items"`
	Names        int   `json:"names" yaml:"names"`
	Locations    int   `json:"locations" yaml:"locations"`
	Invoices     int   `json:"invoices" yaml:"invoices"`
	Requisitions int   `json:"requisitions" yaml:"requisitions"`
	Stocktakes   int   `json:"stocktakes" yaml:"stocktakes"`
	RandomSeed   int64 `json:"randomSeed" yaml:"randomSeed"`
}

// DefaultConfig returns the standard demo sizing.
func DefaultConfig() Config {
	return Config{
		Items:        25,
		Names:        12,
		Locations:    8,
		Invoices:     30,
		Requisitions: 6,
		Stocktakes:   3,
		RandomSeed:   1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Items <= 0 {
		c.Items = d.Items
	}
	if c.Names <= 0 {
		c.Names = d.Names
	}
	if c.Locations <= 0 {
		c.Locations = d.Locations
	}
	if c.Invoices <= 0 {
		c.Invoices = d.Invoices
	}
	if c.Requisitions <= 0 {
		c.Requisitions = d.Requisitions
	}
	if c.Stocktakes <= 0 {
		c.Stocktakes = d.Stocktakes
	}
	return c
}

// itemCatalog is cycled through when generating items. The glucose family is
// deliberately well represented so substring searches have something to find.
var itemCatalog = []struct {
	name string
	unit string
}{
	{"Glucose 5%", "bag"},
	{"Glucose 10%", "bag"},
	{"Glucose 50%", "ampoule"},
	{"Glucagon 1mg", "vial"},
	{"Glucometer test strips", "strip"},
	{"Amoxicillin 250mg", "tablet"},
	{"Paracetamol 500mg", "tablet"},
	{"Ibuprofen 200mg", "tablet"},
	{"Sodium chloride 0.9%", "bag"},
	{"Ceftriaxone 1g", "vial"},
	{"Metformin 500mg", "tablet"},
	{"Omeprazole 20mg", "capsule"},
	{"Zinc sulfate 20mg", "tablet"},
	{"Oral rehydration salts", "sachet"},
	{"Vitamin A 200000IU", "capsule"},
	{"Artemether/Lumefantrine 20/120", "tablet"},
	{"Chlorhexidine 5%", "bottle"},
	{"Gentamicin 80mg", "ampoule"},
	{"Diazepam 5mg", "tablet"},
	{"Salbutamol inhaler", "inhaler"},
	{"Tetanus toxoid", "vial"},
	{"Ferrous sulfate 200mg", "tablet"},
	{"Azithromycin 500mg", "tablet"},
	{"Hydrocortisone 1%", "tube"},
	{"Doxycycline 100mg", "capsule"},
}

var facilityNames = []string{
	"Central Medical Store",
	"District Hospital",
	"Riverside Clinic",
	"Northern Health Centre",
	"St. Mary's Hospital",
	"Harbour Pharmacy",
	"Mobile Outreach Team",
	"Regional Warehouse",
	"Eastside Dispensary",
	"Community Health Post",
	"Southern Referral Hospital",
	"Lakeview Clinic",
}

// Apply replaces the store's contents with generated data. It is also the
// reset path: applying the same config again restores the original picture.
func (c Config) Apply(s *store.Store, now time.Time) {
	c = c.withDefaults()
	rng := rand.New(rand.NewSource(c.RandomSeed))

	items := c.genItems()
	names := c.genNames()
	locations := c.genLocations()
	stockLines := c.genStockLines(rng, items, locations, now)
	invoices, invoiceLines := c.genInvoices(rng, items, names, stockLines, now)
	requisitions, requisitionLines := c.genRequisitions(rng, items, names, now)
	stocktakes, stocktakeLines := c.genStocktakes(rng, items, stockLines, now)

	s.Items.Replace(items)
	s.Names.Replace(names)
	s.Locations.Replace(locations)
	s.StockLines.Replace(stockLines)
	s.Invoices.Replace(invoices)
	s.InvoiceLines.Replace(invoiceLines)
	s.Requisitions.Replace(requisitions)
	s.RequisitionLines.Replace(requisitionLines)
	s.Stocktakes.Replace(stocktakes)
	s.StocktakeLines.Replace(stocktakeLines)
}

func (c Config) genItems() []store.Item {
	items := make([]store.Item, 0, c.Items)
	for i := 0; i < c.Items; i++ {
		entry := itemCatalog[i%len(itemCatalog)]
		name := entry.name
		if i >= len(itemCatalog) {
			name = fmt.Sprintf("%s (alt %d)", entry.name, i/len(itemCatalog))
		}
		items = append(items, store.Item{
			ID:        fmt.Sprintf("item-%03d", i+1),
			Code:      fmt.Sprintf("%06d", 30000+i),
			Name:      name,
			UnitName:  entry.unit,
			IsVisible: true,
		})
	}
	return items
}

func (c Config) genNames() []store.Name {
	names := make([]store.Name, 0, c.Names)
	for i := 0; i < c.Names; i++ {
		label := facilityNames[i%len(facilityNames)]
		if i >= len(facilityNames) {
			label = fmt.Sprintf("%s %d", label, i/len(facilityNames)+1)
		}
		names = append(names, store.Name{
			ID:         fmt.Sprintf("name-%03d", i+1),
			Code:       fmt.Sprintf("F%04d", i+1),
			Name:       label,
			IsCustomer: i%3 != 0,
			IsSupplier: i%3 == 0 || i%4 == 0,
		})
	}
	return names
}

func (c Config) genLocations() []store.Location {
	locations := make([]store.Location, 0, c.Locations)
	for i := 0; i < c.Locations; i++ {
		locations = append(locations, store.Location{
			ID:   fmt.Sprintf("location-%03d", i+1),
			Code: fmt.Sprintf("%c%02d", 'A'+i%4, i/4+1),
			Name: fmt.Sprintf("Shelf %c%02d", 'A'+i%4, i/4+1),
		})
	}
	return locations
}

func (c Config) genStockLines(rng *rand.Rand, items []store.Item, locations []store.Location, now time.Time) []store.StockLine {
	var lines []store.StockLine
	n := 0
	for _, item := range items {
		batches := 1 + rng.Intn(3)
		for b := 0; b < batches; b++ {
			n++
			total := 20 + rng.Intn(480)
			// A minority of batches is already expired or close to it.
			expiry := now.AddDate(0, 0, -60+rng.Intn(700))
			lines = append(lines, store.StockLine{
				ID:                     fmt.Sprintf("stockline-%03d", n),
				ItemID:                 item.ID,
				LocationID:             locations[rng.Intn(len(locations))].ID,
				Batch:                  fmt.Sprintf("B%05d", 10000+n),
				PackSize:               []int{1, 10, 100}[rng.Intn(3)],
				CostPricePerPack:       float64(rng.Intn(2000)) / 100,
				SellPricePerPack:       float64(rng.Intn(3000)) / 100,
				ExpiryDate:             expiry,
				AvailableNumberOfPacks: total,
				TotalNumberOfPacks:     total,
			})
		}
	}
	return lines
}

func (c Config) genInvoices(rng *rand.Rand, items []store.Item, names []store.Name, stockLines []store.StockLine, now time.Time) ([]store.Invoice, []store.InvoiceLine) {
	statuses := []store.InvoiceStatus{
		store.StatusNew, store.StatusAllocated, store.StatusPicked,
		store.StatusShipped, store.StatusDelivered,
	}
	itemByID := make(map[string]store.Item, len(items))
	for _, it := range items {
		itemByID[it.ID] = it
	}

	var invoices []store.Invoice
	var lines []store.InvoiceLine
	lineNo := 0

	for i := 0; i < c.Invoices; i++ {
		typ := store.InvoiceTypeOutbound
		if i%3 == 0 {
			typ = store.InvoiceTypeInbound
		}
		status := statuses[rng.Intn(len(statuses))]
		entered := now.AddDate(0, 0, -rng.Intn(60)).Add(-time.Duration(rng.Intn(86400)) * time.Second)

		inv := store.Invoice{
			ID:            fmt.Sprintf("invoice-%03d", i+1),
			InvoiceNumber: i + 1,
			OtherPartyID:  names[rng.Intn(len(names))].ID,
			Type:          typ,
			Status:        status,
			EntryDatetime: entered,
		}
		stampSeeded(&inv, entered)
		invoices = append(invoices, inv)

		for l := 0; l < 1+rng.Intn(4); l++ {
			sl := &stockLines[rng.Intn(len(stockLines))]
			item := itemByID[sl.ItemID]
			lineNo++

			line := store.InvoiceLine{
				ID:               fmt.Sprintf("invoiceline-%03d", lineNo),
				InvoiceID:        inv.ID,
				ItemID:           item.ID,
				StockLineID:      sl.ID,
				LocationID:       sl.LocationID,
				ItemName:         item.Name,
				ItemCode:         item.Code,
				ItemUnit:         item.UnitName,
				Batch:            sl.Batch,
				ExpiryDate:       sl.ExpiryDate,
				PackSize:         sl.PackSize,
				CostPricePerPack: sl.CostPricePerPack,
				SellPricePerPack: sl.SellPricePerPack,
			}

			switch {
			case typ == store.InvoiceTypeOutbound && inv.Status.PastNew():
				// Draw down the batch, keeping 0 <= available <= total.
				if sl.AvailableNumberOfPacks == 0 {
					continue
				}
				packs := 1 + rng.Intn(sl.AvailableNumberOfPacks)
				line.NumberOfPacks = packs
				sl.AvailableNumberOfPacks -= packs
				sl.TotalNumberOfPacks -= packs
			case typ == store.InvoiceTypeInbound && inv.Status.PastNew():
				packs := 1 + rng.Intn(100)
				line.NumberOfPacks = packs
				sl.AvailableNumberOfPacks += packs
				sl.TotalNumberOfPacks += packs
			default:
				line.NumberOfPacks = 1 + rng.Intn(50)
				line.StockLineID = ""
				if typ == store.InvoiceTypeOutbound {
					line.StockLineID = sl.ID
				}
			}
			lines = append(lines, line)
		}
	}
	return invoices, lines
}

func (c Config) genRequisitions(rng *rand.Rand, items []store.Item, names []store.Name, now time.Time) ([]store.Requisition, []store.RequisitionLine) {
	statuses := []store.RequisitionStatus{
		store.RequisitionStatusDraft, store.RequisitionStatusSent, store.RequisitionStatusFinalised,
	}

	var requisitions []store.Requisition
	var lines []store.RequisitionLine
	lineNo := 0

	for i := 0; i < c.Requisitions; i++ {
		typ := store.RequisitionTypeSupplier
		if i%2 == 0 {
			typ = store.RequisitionTypeCustomer
		}
		req := store.Requisition{
			ID:                fmt.Sprintf("requisition-%03d", i+1),
			RequisitionNumber: i + 1,
			OtherPartyID:      names[rng.Intn(len(names))].ID,
			Type:              typ,
			Status:            statuses[rng.Intn(len(statuses))],
			OrderDate:         now.AddDate(0, 0, -rng.Intn(90)),
		}
		requisitions = append(requisitions, req)

		for l := 0; l < 2+rng.Intn(5); l++ {
			item := items[rng.Intn(len(items))]
			lineNo++
			monthly := float64(10 + rng.Intn(500))
			lines = append(lines, store.RequisitionLine{
				ID:                 fmt.Sprintf("requisitionline-%03d", lineNo),
				RequisitionID:      req.ID,
				ItemID:             item.ID,
				ItemName:           item.Name,
				ItemCode:           item.Code,
				MonthlyConsumption: monthly,
				MonthsOfSupply:     float64(rng.Intn(6)) + 0.5,
				RequestedQuantity:  int(monthly) * (1 + rng.Intn(3)),
				SuppliedQuantity:   rng.Intn(int(monthly) + 1),
				ReceivedQuantity:   0,
			})
		}
	}
	return requisitions, lines
}

func (c Config) genStocktakes(rng *rand.Rand, items []store.Item, stockLines []store.StockLine, now time.Time) ([]store.Stocktake, []store.StocktakeLine) {
	var stocktakes []store.Stocktake
	var lines []store.StocktakeLine
	lineNo := 0

	for i := 0; i < c.Stocktakes; i++ {
		status := store.StocktakeStatusSuggested
		if i%2 == 1 {
			status = store.StocktakeStatusFinalised
		}
		st := store.Stocktake{
			ID:              fmt.Sprintf("stocktake-%03d", i+1),
			StocktakeNumber: i + 1,
			Status:          status,
			Description:     fmt.Sprintf("Stocktake %d", i+1),
			CreatedDatetime: now.AddDate(0, 0, -rng.Intn(30)),
		}
		stocktakes = append(stocktakes, st)

		for l := 0; l < 3+rng.Intn(5); l++ {
			sl := stockLines[rng.Intn(len(stockLines))]
			lineNo++
			counted := sl.TotalNumberOfPacks + rng.Intn(5) - 2
			if counted < 0 {
				counted = 0
			}
			lines = append(lines, store.StocktakeLine{
				ID:                    fmt.Sprintf("stocktakeline-%03d", lineNo),
				StocktakeID:           st.ID,
				ItemID:                sl.ItemID,
				Batch:                 sl.Batch,
				SnapshotNumberOfPacks: sl.TotalNumberOfPacks,
				SnapshotPackSize:      sl.PackSize,
				CountedNumberOfPacks:  counted,
			})
		}
	}
	return stocktakes, lines
}

// stampSeeded backfills the first-arrival timestamps a document at the given
// status would carry.
func stampSeeded(inv *store.Invoice, entered time.Time) {
	rank := inv.Status.Rank()
	step := func(offset time.Duration) *time.Time {
		ts := entered.Add(offset)
		return &ts
	}
	if rank >= store.StatusAllocated.Rank() {
		inv.AllocatedDatetime = step(1 * time.Hour)
	}
	if rank >= store.StatusPicked.Rank() {
		inv.PickedDatetime = step(4 * time.Hour)
	}
	if rank >= store.StatusShipped.Rank() {
		inv.ShippedDatetime = step(24 * time.Hour)
	}
	if rank >= store.StatusDelivered.Rank() {
		inv.DeliveredDatetime = step(72 * time.Hour)
	}
}
