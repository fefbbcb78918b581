package resolve

import (
	"fmt"

	"github.com/invmock/invmock/pkg/query"
	"github.com/invmock/invmock/pkg/store"
)

// Node type names used as the __typename discriminant in responses.
const (
	TypenameItem            = "ItemNode"
	TypenameLocation        = "LocationNode"
	TypenameName            = "NameNode"
	TypenameStockLine       = "StockLineNode"
	TypenameInvoice         = "InvoiceNode"
	TypenameInvoiceLine     = "InvoiceLineNode"
	TypenameRequisition     = "RequisitionNode"
	TypenameRequisitionLine = "RequisitionLineNode"
	TypenameStocktake       = "StocktakeNode"
	TypenameStocktakeLine   = "StocktakeLineNode"
	TypenameNotFound        = "RecordNotFound"
)

// Connector type names.
const (
	ConnectorItem            = "ItemConnector"
	ConnectorName            = "NameConnector"
	ConnectorLocation        = "LocationConnector"
	ConnectorStockLine       = "StockLineConnector"
	ConnectorInvoice         = "InvoiceConnector"
	ConnectorInvoiceLine     = "InvoiceLineConnector"
	ConnectorRequisition     = "RequisitionConnector"
	ConnectorRequisitionLine = "RequisitionLineConnector"
	ConnectorStocktake       = "StocktakeConnector"
	ConnectorStocktakeLine   = "StocktakeLineConnector"
)

// NotFoundNode marks a reference that failed to resolve inside a graph. It is
// embedded at the point of failure so the rest of the graph stays
// serializable.
type NotFoundNode struct {
	Typename    string `json:"__typename"`
	Description string `json:"description"`
}

// NewNotFoundNode builds the marker for a dangling reference.
func NewNotFoundNode(entity, id string) NotFoundNode {
	return NotFoundNode{
		Typename:    TypenameNotFound,
		Description: fmt.Sprintf("%s %q could not be found", entity, id),
	}
}

// NameNode is a resolved counterparty.
type NameNode struct {
	Typename string `json:"__typename"`
	store.Name
}

// LocationNode is a resolved location.
type LocationNode struct {
	Typename string `json:"__typename"`
	store.Location
}

// ItemNode is a resolved item. AvailableQuantity is derived from the item's
// stock lines (available packs times pack size, summed); AvailableBatches
// lists those stock lines with the item left shallow to keep the graph
// acyclic.
type ItemNode struct {
	Typename string `json:"__typename"`
	store.Item
	AvailableQuantity float64                         `json:"availableQuantity"`
	AvailableBatches  query.Connector[StockLineNode] `json:"availableBatches"`
}

// StockLineNode is a resolved stock line. Item is an ItemNode without batch
// expansion, or a NotFoundNode when the reference dangles. Location is a
// LocationNode, a NotFoundNode, or nil when the stock line has no location.
type StockLineNode struct {
	Typename string `json:"__typename"`
	store.StockLine
	Item     any `json:"item"`
	Location any `json:"location,omitempty"`
}

// InvoiceLineNode is a resolved invoice line. StockLine is nil for lines that
// do not reference a batch (inbound lines still at NEW).
type InvoiceLineNode struct {
	Typename string `json:"__typename"`
	store.InvoiceLine
	Item      any `json:"item"`
	StockLine any `json:"stockLine,omitempty"`
	Location  any `json:"location,omitempty"`
}

// InvoiceNode is a fully expanded shipment: counterparty substituted in place
// of its identifier and owned lines attached as a connector.
type InvoiceNode struct {
	Typename string `json:"__typename"`
	store.Invoice
	OtherPartyName string                            `json:"otherPartyName"`
	OtherParty     any                               `json:"otherParty"`
	Lines          query.Connector[InvoiceLineNode] `json:"lines"`
}

// RequisitionLineNode is a resolved requisition line.
type RequisitionLineNode struct {
	Typename string `json:"__typename"`
	store.RequisitionLine
	Item any `json:"item"`
}

// RequisitionNode is a fully expanded requisition.
type RequisitionNode struct {
	Typename string `json:"__typename"`
	store.Requisition
	OtherPartyName string                                `json:"otherPartyName"`
	OtherParty     any                                   `json:"otherParty"`
	Lines          query.Connector[RequisitionLineNode] `json:"lines"`
}

// StocktakeLineNode is a resolved stocktake line.
type StocktakeLineNode struct {
	Typename string `json:"__typename"`
	store.StocktakeLine
	Item any `json:"item"`
}

// StocktakeNode is a fully expanded stocktake.
type StocktakeNode struct {
	Typename string `json:"__typename"`
	store.Stocktake
	Lines query.Connector[StocktakeLineNode] `json:"lines"`
}
