package resolve

import (
	"github.com/invmock/invmock/pkg/query"
	"github.com/invmock/invmock/pkg/store"
)

// Sort-key maps: external token to internal attribute, with a per-entity
// default for unrecognized tokens. Filtering and sorting run on the raw
// records; only the selected page is resolved into nodes.

func itemSortMap() query.SortMap[store.Item] {
	return query.SortMap[store.Item]{
		Default: "name",
		Keys: map[string]query.KeyFunc[store.Item]{
			"name": func(i store.Item) any { return i.Name },
			"code": func(i store.Item) any { return i.Code },
		},
	}
}

func nameSortMap() query.SortMap[store.Name] {
	return query.SortMap[store.Name]{
		Default: "name",
		Keys: map[string]query.KeyFunc[store.Name]{
			"name": func(n store.Name) any { return n.Name },
			"code": func(n store.Name) any { return n.Code },
		},
	}
}

func (r *Resolver) invoiceSortMap() query.SortMap[store.Invoice] {
	return query.SortMap[store.Invoice]{
		Default: "status",
		Keys: map[string]query.KeyFunc[store.Invoice]{
			"status":        func(i store.Invoice) any { return string(i.Status) },
			"comment":       func(i store.Invoice) any { return i.Comment },
			"invoiceNumber": func(i store.Invoice) any { return i.InvoiceNumber },
			"entryDatetime": func(i store.Invoice) any { return i.EntryDatetime },
			"otherPartyName": func(i store.Invoice) any {
				party, err := r.store.Names.Get(i.OtherPartyID)
				if err != nil {
					return ""
				}
				return party.Name
			},
		},
	}
}

func stockLineSortMap() query.SortMap[store.StockLine] {
	return query.SortMap[store.StockLine]{
		Default: "expiryDate",
		Keys: map[string]query.KeyFunc[store.StockLine]{
			"expiryDate": func(sl store.StockLine) any { return sl.ExpiryDate },
			"batch":      func(sl store.StockLine) any { return sl.Batch },
		},
	}
}

func (r *Resolver) requisitionSortMap() query.SortMap[store.Requisition] {
	return query.SortMap[store.Requisition]{
		Default: "otherPartyName",
		Keys: map[string]query.KeyFunc[store.Requisition]{
			"otherPartyName": func(req store.Requisition) any {
				party, err := r.store.Names.Get(req.OtherPartyID)
				if err != nil {
					return ""
				}
				return party.Name
			},
			"requisitionNumber": func(req store.Requisition) any { return req.RequisitionNumber },
			"status":            func(req store.Requisition) any { return string(req.Status) },
		},
	}
}

func stocktakeSortMap() query.SortMap[store.Stocktake] {
	return query.SortMap[store.Stocktake]{
		Default: "createdDatetime",
		Keys: map[string]query.KeyFunc[store.Stocktake]{
			"createdDatetime": func(st store.Stocktake) any { return st.CreatedDatetime },
			"description":     func(st store.Stocktake) any { return st.Description },
		},
	}
}

// mapConnector resolves each selected record into its node shape, keeping the
// connector's total count.
func mapConnector[T any, N any](conn query.Connector[T], typename string, fn func(T) N) query.Connector[N] {
	out := query.Connector[N]{
		Typename:   typename,
		TotalCount: conn.TotalCount,
		Nodes:      make([]N, 0, len(conn.Nodes)),
	}
	for _, rec := range conn.Nodes {
		out.Nodes = append(out.Nodes, fn(rec))
	}
	return out
}

// Items lists items as resolved nodes.
func (r *Resolver) Items(params ItemListParams) query.Connector[ItemNode] {
	conn := query.SelectPage(r.store.Items.List(), params.Filter.Matches, itemSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorItem, func(i store.Item) ItemNode {
		return r.itemNode(i, true)
	})
}

// Names lists counterparties as resolved nodes.
func (r *Resolver) Names(params NameListParams) query.Connector[NameNode] {
	conn := query.SelectPage(r.store.Names.List(), params.Filter.Matches, nameSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorName, func(n store.Name) NameNode {
		return NameNode{Typename: TypenameName, Name: n}
	})
}

// Invoices lists invoices as resolved nodes.
func (r *Resolver) Invoices(params InvoiceListParams) query.Connector[InvoiceNode] {
	conn := query.SelectPage(r.store.Invoices.List(), params.Filter.Matches, r.invoiceSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorInvoice, r.invoiceNode)
}

// StockLines lists stock lines as resolved nodes.
func (r *Resolver) StockLines(params StockLineListParams) query.Connector[StockLineNode] {
	conn := query.SelectPage(r.store.StockLines.List(), params.Filter.Matches, stockLineSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorStockLine, r.stockLineNode)
}

// Requisitions lists requisitions as resolved nodes.
func (r *Resolver) Requisitions(params RequisitionListParams) query.Connector[RequisitionNode] {
	conn := query.SelectPage(r.store.Requisitions.List(), params.Filter.Matches, r.requisitionSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorRequisition, r.requisitionNode)
}

// Stocktakes lists stocktakes as resolved nodes.
func (r *Resolver) Stocktakes(params StocktakeListParams) query.Connector[StocktakeNode] {
	conn := query.SelectPage(r.store.Stocktakes.List(), params.Filter.Matches, stocktakeSortMap(), params.Sort, params.Page)
	return mapConnector(conn, ConnectorStocktake, r.stocktakeNode)
}
