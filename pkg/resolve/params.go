package resolve

import (
	"github.com/invmock/invmock/pkg/query"
	"github.com/invmock/invmock/pkg/store"
)

// ItemFilter constrains an item listing. Absent fields mean no constraint;
// present fields are AND-combined.
type ItemFilter struct {
	Code *query.StringFilter `json:"code,omitempty"`
	Name *query.StringFilter `json:"name,omitempty"`
}

// Matches reports whether the item satisfies every present field.
func (f *ItemFilter) Matches(i store.Item) bool {
	if f == nil {
		return true
	}
	return f.Code.Matches(i.Code) && f.Name.Matches(i.Name)
}

// ItemListParams are the filter, sort, and page inputs of an item listing.
type ItemListParams struct {
	Filter *ItemFilter `json:"filter,omitempty"`
	Page   query.Page  `json:"page"`
	Sort   *query.Sort `json:"sort,omitempty"`
}

// NameFilter constrains a counterparty listing.
type NameFilter struct {
	Code       *query.StringFilter `json:"code,omitempty"`
	Name       *query.StringFilter `json:"name,omitempty"`
	IsCustomer *query.BoolFilter   `json:"isCustomer,omitempty"`
	IsSupplier *query.BoolFilter   `json:"isSupplier,omitempty"`
}

// Matches reports whether the counterparty satisfies every present field.
func (f *NameFilter) Matches(n store.Name) bool {
	if f == nil {
		return true
	}
	return f.Code.Matches(n.Code) &&
		f.Name.Matches(n.Name) &&
		f.IsCustomer.Matches(n.IsCustomer) &&
		f.IsSupplier.Matches(n.IsSupplier)
}

// NameListParams are the inputs of a counterparty listing.
type NameListParams struct {
	Filter *NameFilter `json:"filter,omitempty"`
	Page   query.Page  `json:"page"`
	Sort   *query.Sort `json:"sort,omitempty"`
}

// InvoiceFilter constrains an invoice listing.
type InvoiceFilter struct {
	Type    *query.EqualFilter[store.InvoiceType]   `json:"type,omitempty"`
	Status  *query.EqualFilter[store.InvoiceStatus] `json:"status,omitempty"`
	Comment *query.StringFilter                     `json:"comment,omitempty"`
}

// Matches reports whether the invoice satisfies every present field.
func (f *InvoiceFilter) Matches(i store.Invoice) bool {
	if f == nil {
		return true
	}
	return f.Type.Matches(i.Type) &&
		f.Status.Matches(i.Status) &&
		f.Comment.Matches(i.Comment)
}

// InvoiceListParams are the inputs of an invoice listing.
type InvoiceListParams struct {
	Filter *InvoiceFilter `json:"filter,omitempty"`
	Page   query.Page     `json:"page"`
	Sort   *query.Sort    `json:"sort,omitempty"`
}

// StockLineFilter constrains a stock line listing.
type StockLineFilter struct {
	ItemID *query.EqualFilter[string] `json:"itemId,omitempty"`
	Batch  *query.StringFilter        `json:"batch,omitempty"`
}

// Matches reports whether the stock line satisfies every present field.
func (f *StockLineFilter) Matches(sl store.StockLine) bool {
	if f == nil {
		return true
	}
	return f.ItemID.Matches(sl.ItemID) && f.Batch.Matches(sl.Batch)
}

// StockLineListParams are the inputs of a stock line listing.
type StockLineListParams struct {
	Filter *StockLineFilter `json:"filter,omitempty"`
	Page   query.Page       `json:"page"`
	Sort   *query.Sort      `json:"sort,omitempty"`
}

// RequisitionFilter constrains a requisition listing.
type RequisitionFilter struct {
	Type   *query.EqualFilter[store.RequisitionType]   `json:"type,omitempty"`
	Status *query.EqualFilter[store.RequisitionStatus] `json:"status,omitempty"`
}

// Matches reports whether the requisition satisfies every present field.
func (f *RequisitionFilter) Matches(r store.Requisition) bool {
	if f == nil {
		return true
	}
	return f.Type.Matches(r.Type) && f.Status.Matches(r.Status)
}

// RequisitionListParams are the inputs of a requisition listing.
type RequisitionListParams struct {
	Filter *RequisitionFilter `json:"filter,omitempty"`
	Page   query.Page         `json:"page"`
	Sort   *query.Sort        `json:"sort,omitempty"`
}

// StocktakeFilter constrains a stocktake listing.
type StocktakeFilter struct {
	Status *query.EqualFilter[store.StocktakeStatus] `json:"status,omitempty"`
}

// Matches reports whether the stocktake satisfies every present field.
func (f *StocktakeFilter) Matches(s store.Stocktake) bool {
	if f == nil {
		return true
	}
	return f.Status.Matches(s.Status)
}

// StocktakeListParams are the inputs of a stocktake listing.
type StocktakeListParams struct {
	Filter *StocktakeFilter `json:"filter,omitempty"`
	Page   query.Page       `json:"page"`
	Sort   *query.Sort      `json:"sort,omitempty"`
}
