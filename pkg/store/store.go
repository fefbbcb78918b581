// Package store holds the in-memory entity collections the mock engine
// serves from.
//
// A Store is an explicit constructed object with a plain lifecycle: seed it,
// mutate it, drop it. Handlers receive a *Store; nothing reads collections
// through ambient package state, so per-test isolation is just another
// constructor call.
package store

import "sync"

// Store bundles one ordered collection per entity type.
type Store struct {
	// mu serializes multi-collection mutations (ledger adjustments that touch
	// an invoice line and its stock line together). Single-collection access
	// is already safe through each collection's own lock.
	mu sync.Mutex

	Items            *Collection[Item]
	Locations        *Collection[Location]
	Names            *Collection[Name]
	StockLines       *Collection[StockLine]
	Invoices         *Collection[Invoice]
	InvoiceLines     *Collection[InvoiceLine]
	Requisitions     *Collection[Requisition]
	RequisitionLines *Collection[RequisitionLine]
	Stocktakes       *Collection[Stocktake]
	StocktakeLines   *Collection[StocktakeLine]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		Items:            NewCollection[Item]("item"),
		Locations:        NewCollection[Location]("location"),
		Names:            NewCollection[Name]("name"),
		StockLines:       NewCollection[StockLine]("stockLine"),
		Invoices:         NewCollection[Invoice]("invoice"),
		InvoiceLines:     NewCollection[InvoiceLine]("invoiceLine"),
		Requisitions:     NewCollection[Requisition]("requisition"),
		RequisitionLines: NewCollection[RequisitionLine]("requisitionLine"),
		Stocktakes:       NewCollection[Stocktake]("stocktake"),
		StocktakeLines:   NewCollection[StocktakeLine]("stocktakeLine"),
	}
}

// WithLock runs fn while holding the store-wide mutation lock. Every ledger
// adjustment goes through here so a given invoice/stock-line pair is never
// raced by two mutations.
func (s *Store) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// InvoiceByNumber returns the invoice with the given sequence number.
func (s *Store) InvoiceByNumber(n int) (Invoice, error) {
	inv, ok := s.Invoices.Find(func(i Invoice) bool { return i.InvoiceNumber == n })
	if !ok {
		return Invoice{}, &NotFoundError{Entity: "invoice", ID: "number"}
	}
	return inv, nil
}

// NextInvoiceNumber returns one past the highest invoice number in use.
func (s *Store) NextInvoiceNumber() int {
	max := 0
	for _, inv := range s.Invoices.List() {
		if inv.InvoiceNumber > max {
			max = inv.InvoiceNumber
		}
	}
	return max + 1
}

// NextRequisitionNumber returns one past the highest requisition number in use.
func (s *Store) NextRequisitionNumber() int {
	max := 0
	for _, req := range s.Requisitions.List() {
		if req.RequisitionNumber > max {
			max = req.RequisitionNumber
		}
	}
	return max + 1
}

// NextStocktakeNumber returns one past the highest stocktake number in use.
func (s *Store) NextStocktakeNumber() int {
	max := 0
	for _, st := range s.Stocktakes.List() {
		if st.StocktakeNumber > max {
			max = st.StocktakeNumber
		}
	}
	return max + 1
}

// StockLinesByItem returns the stock lines belonging to an item, in insertion
// order.
func (s *Store) StockLinesByItem(itemID string) []StockLine {
	return s.StockLines.Filter(func(sl StockLine) bool { return sl.ItemID == itemID })
}

// InvoiceLinesByInvoice returns the lines owned by an invoice, in insertion
// order.
func (s *Store) InvoiceLinesByInvoice(invoiceID string) []InvoiceLine {
	return s.InvoiceLines.Filter(func(l InvoiceLine) bool { return l.InvoiceID == invoiceID })
}

// RequisitionLinesByRequisition returns the lines owned by a requisition.
func (s *Store) RequisitionLinesByRequisition(reqID string) []RequisitionLine {
	return s.RequisitionLines.Filter(func(l RequisitionLine) bool { return l.RequisitionID == reqID })
}

// StocktakeLinesByStocktake returns the lines owned by a stocktake.
func (s *Store) StocktakeLinesByStocktake(stID string) []StocktakeLine {
	return s.StocktakeLines.Filter(func(l StocktakeLine) bool { return l.StocktakeID == stID })
}
