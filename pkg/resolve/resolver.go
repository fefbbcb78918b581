// Package resolve expands flat, foreign-key-referencing records into the
// nested node trees the external query protocol expects.
//
// Resolution depth is fixed per entity type and the schema is acyclic by
// construction: Invoice expands to Name and InvoiceLine, InvoiceLine to
// StockLine and Item, StockLine to a shallow Item, and nothing ever leads
// back to Invoice. A dangling reference becomes a NotFoundNode embedded at
// the point of failure instead of failing the whole read.
//
// List reads are defined as "resolve each record the query engine selects",
// so single and list reads always share node shapes.
package resolve

import (
	"github.com/invmock/invmock/pkg/query"
	"github.com/invmock/invmock/pkg/store"
)

// Resolver resolves entity graphs against one store.
type Resolver struct {
	store *store.Store
}

// New creates a resolver bound to the given store.
func New(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// Item resolves an item with its derived available quantity and batch
// connector.
func (r *Resolver) Item(id string) (ItemNode, error) {
	item, err := r.store.Items.Get(id)
	if err != nil {
		return ItemNode{}, err
	}
	return r.itemNode(item, true), nil
}

func (r *Resolver) itemNode(item store.Item, withBatches bool) ItemNode {
	node := ItemNode{Typename: TypenameItem, Item: item}

	lines := r.store.StockLinesByItem(item.ID)
	for _, sl := range lines {
		node.AvailableQuantity += float64(sl.AvailableNumberOfPacks * sl.PackSize)
	}

	node.AvailableBatches = query.Connector[StockLineNode]{
		Typename: ConnectorStockLine,
		Nodes:    []StockLineNode{},
	}
	if withBatches {
		node.AvailableBatches.TotalCount = len(lines)
		for _, sl := range lines {
			node.AvailableBatches.Nodes = append(node.AvailableBatches.Nodes, r.stockLineNode(sl))
		}
	}
	return node
}

// StockLine resolves a stock line with its item and location expanded.
func (r *Resolver) StockLine(id string) (StockLineNode, error) {
	sl, err := r.store.StockLines.Get(id)
	if err != nil {
		return StockLineNode{}, err
	}
	return r.stockLineNode(sl), nil
}

func (r *Resolver) stockLineNode(sl store.StockLine) StockLineNode {
	node := StockLineNode{Typename: TypenameStockLine, StockLine: sl}

	if item, err := r.store.Items.Get(sl.ItemID); err != nil {
		node.Item = NewNotFoundNode("item", sl.ItemID)
	} else {
		// Shallow item: batches are not expanded below a stock line.
		node.Item = r.itemNode(item, false)
	}

	if sl.LocationID != "" {
		if loc, err := r.store.Locations.Get(sl.LocationID); err != nil {
			node.Location = NewNotFoundNode("location", sl.LocationID)
		} else {
			node.Location = LocationNode{Typename: TypenameLocation, Location: loc}
		}
	}
	return node
}

// Name resolves a counterparty.
func (r *Resolver) Name(id string) (NameNode, error) {
	n, err := r.store.Names.Get(id)
	if err != nil {
		return NameNode{}, err
	}
	return NameNode{Typename: TypenameName, Name: n}, nil
}

// Location resolves a location.
func (r *Resolver) Location(id string) (LocationNode, error) {
	loc, err := r.store.Locations.Get(id)
	if err != nil {
		return LocationNode{}, err
	}
	return LocationNode{Typename: TypenameLocation, Location: loc}, nil
}

// InvoiceLine resolves an invoice line with its item and referenced stock
// line expanded.
func (r *Resolver) InvoiceLine(id string) (InvoiceLineNode, error) {
	line, err := r.store.InvoiceLines.Get(id)
	if err != nil {
		return InvoiceLineNode{}, err
	}
	return r.invoiceLineNode(line), nil
}

func (r *Resolver) invoiceLineNode(line store.InvoiceLine) InvoiceLineNode {
	node := InvoiceLineNode{Typename: TypenameInvoiceLine, InvoiceLine: line}

	if item, err := r.store.Items.Get(line.ItemID); err != nil {
		node.Item = NewNotFoundNode("item", line.ItemID)
	} else {
		node.Item = r.itemNode(item, false)
	}

	if line.StockLineID != "" {
		if sl, err := r.store.StockLines.Get(line.StockLineID); err != nil {
			node.StockLine = NewNotFoundNode("stockLine", line.StockLineID)
		} else {
			node.StockLine = r.stockLineNode(sl)
		}
	}

	if line.LocationID != "" {
		if loc, err := r.store.Locations.Get(line.LocationID); err != nil {
			node.Location = NewNotFoundNode("location", line.LocationID)
		} else {
			node.Location = LocationNode{Typename: TypenameLocation, Location: loc}
		}
	}
	return node
}

// Invoice resolves an invoice with its counterparty and owned lines expanded.
func (r *Resolver) Invoice(id string) (InvoiceNode, error) {
	inv, err := r.store.Invoices.Get(id)
	if err != nil {
		return InvoiceNode{}, err
	}
	return r.invoiceNode(inv), nil
}

// InvoiceByNumber resolves an invoice by its sequence number.
func (r *Resolver) InvoiceByNumber(n int) (InvoiceNode, error) {
	inv, err := r.store.InvoiceByNumber(n)
	if err != nil {
		return InvoiceNode{}, err
	}
	return r.invoiceNode(inv), nil
}

func (r *Resolver) invoiceNode(inv store.Invoice) InvoiceNode {
	node := InvoiceNode{Typename: TypenameInvoice, Invoice: inv}

	if party, err := r.store.Names.Get(inv.OtherPartyID); err != nil {
		node.OtherParty = NewNotFoundNode("name", inv.OtherPartyID)
	} else {
		node.OtherParty = NameNode{Typename: TypenameName, Name: party}
		node.OtherPartyName = party.Name
	}

	lines := r.store.InvoiceLinesByInvoice(inv.ID)
	node.Lines = query.Connector[InvoiceLineNode]{
		Typename:   ConnectorInvoiceLine,
		TotalCount: len(lines),
		Nodes:      make([]InvoiceLineNode, 0, len(lines)),
	}
	for _, line := range lines {
		node.Lines.Nodes = append(node.Lines.Nodes, r.invoiceLineNode(line))
	}
	return node
}

// Requisition resolves a requisition with its counterparty and lines.
func (r *Resolver) Requisition(id string) (RequisitionNode, error) {
	req, err := r.store.Requisitions.Get(id)
	if err != nil {
		return RequisitionNode{}, err
	}
	return r.requisitionNode(req), nil
}

func (r *Resolver) requisitionNode(req store.Requisition) RequisitionNode {
	node := RequisitionNode{Typename: TypenameRequisition, Requisition: req}

	if party, err := r.store.Names.Get(req.OtherPartyID); err != nil {
		node.OtherParty = NewNotFoundNode("name", req.OtherPartyID)
	} else {
		node.OtherParty = NameNode{Typename: TypenameName, Name: party}
		node.OtherPartyName = party.Name
	}

	lines := r.store.RequisitionLinesByRequisition(req.ID)
	node.Lines = query.Connector[RequisitionLineNode]{
		Typename:   ConnectorRequisitionLine,
		TotalCount: len(lines),
		Nodes:      make([]RequisitionLineNode, 0, len(lines)),
	}
	for _, line := range lines {
		node.Lines.Nodes = append(node.Lines.Nodes, r.requisitionLineNode(line))
	}
	return node
}

func (r *Resolver) requisitionLineNode(line store.RequisitionLine) RequisitionLineNode {
	node := RequisitionLineNode{Typename: TypenameRequisitionLine, RequisitionLine: line}
	if item, err := r.store.Items.Get(line.ItemID); err != nil {
		node.Item = NewNotFoundNode("item", line.ItemID)
	} else {
		node.Item = r.itemNode(item, false)
	}
	return node
}

// Stocktake resolves a stocktake with its lines.
func (r *Resolver) Stocktake(id string) (StocktakeNode, error) {
	st, err := r.store.Stocktakes.Get(id)
	if err != nil {
		return StocktakeNode{}, err
	}
	return r.stocktakeNode(st), nil
}

func (r *Resolver) stocktakeNode(st store.Stocktake) StocktakeNode {
	node := StocktakeNode{Typename: TypenameStocktake, Stocktake: st}

	lines := r.store.StocktakeLinesByStocktake(st.ID)
	node.Lines = query.Connector[StocktakeLineNode]{
		Typename:   ConnectorStocktakeLine,
		TotalCount: len(lines),
		Nodes:      make([]StocktakeLineNode, 0, len(lines)),
	}
	for _, line := range lines {
		lineNode := StocktakeLineNode{Typename: TypenameStocktakeLine, StocktakeLine: line}
		if item, err := r.store.Items.Get(line.ItemID); err != nil {
			lineNode.Item = NewNotFoundNode("item", line.ItemID)
		} else {
			lineNode.Item = r.itemNode(item, false)
		}
		node.Lines.Nodes = append(node.Lines.Nodes, lineNode)
	}
	return node
}
