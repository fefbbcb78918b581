package api

import (
	"context"

	"github.com/invmock/invmock/pkg/graphql"
	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/store"
)

func (a *API) registerQueries(e *graphql.Executor) {
	e.Register("Query.items", a.items)
	e.Register("Query.item", a.item)
	e.Register("Query.names", a.names)
	e.Register("Query.name", a.name)
	e.Register("Query.invoices", a.invoices)
	e.Register("Query.invoice", a.invoice)
	e.Register("Query.invoiceByNumber", a.invoiceByNumber)
	e.Register("Query.stockLines", a.stockLines)
	e.Register("Query.stockLine", a.stockLine)
	e.Register("Query.requisitions", a.requisitions)
	e.Register("Query.requisition", a.requisition)
	e.Register("Query.stocktakes", a.stocktakes)
	e.Register("Query.stocktake", a.stocktake)
	e.Register("Query.invoiceCounts", a.invoiceCounts)
	e.Register("Query.stockCounts", a.stockCounts)
}

func (a *API) items(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.ItemListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.Items(params), nil
}

func (a *API) item(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.Item(argID(args)))
}

func (a *API) names(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.NameListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.Names(params), nil
}

func (a *API) name(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.Name(argID(args)))
}

func (a *API) invoices(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.InvoiceListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.Invoices(params), nil
}

func (a *API) invoice(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.Invoice(argID(args)))
}

func (a *API) invoiceByNumber(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params struct {
		InvoiceNumber int `json:"invoiceNumber"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return nodeOrError(a.resolver.InvoiceByNumber(params.InvoiceNumber))
}

func (a *API) stockLines(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.StockLineListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.StockLines(params), nil
}

func (a *API) stockLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.StockLine(argID(args)))
}

func (a *API) requisitions(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.RequisitionListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.Requisitions(params), nil
}

func (a *API) requisition(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.Requisition(argID(args)))
}

func (a *API) stocktakes(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params resolve.StocktakeListParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.resolver.Stocktakes(params), nil
}

func (a *API) stocktake(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return nodeOrError(a.resolver.Stocktake(argID(args)))
}

func (a *API) invoiceCounts(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params struct {
		Type           store.InvoiceType `json:"type"`
		TimezoneOffset int               `json:"timezoneOffset"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"__typename": "InvoiceCounts",
		"created":    a.stats.InvoiceCounts(params.Type, params.TimezoneOffset),
		"toBePicked": a.stats.ToBePickedCount(),
	}, nil
}

func (a *API) stockCounts(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var params struct {
		TimezoneOffset int `json:"timezoneOffset"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	return a.stats.StockCounts(params.TimezoneOffset), nil
}
