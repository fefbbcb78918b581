package store

import "time"

// InvoiceType distinguishes goods arriving from goods leaving.
type InvoiceType string

// Invoice types.
const (
	InvoiceTypeInbound  InvoiceType = "INBOUND_SHIPMENT"
	InvoiceTypeOutbound InvoiceType = "OUTBOUND_SHIPMENT"
)

// InvoiceStatus is a stage in the shipment lifecycle. Statuses are ordered;
// an invoice only ever moves forward through them.
type InvoiceStatus string

// Invoice statuses in lifecycle order.
const (
	StatusNew       InvoiceStatus = "NEW"
	StatusAllocated InvoiceStatus = "ALLOCATED"
	StatusPicked    InvoiceStatus = "PICKED"
	StatusShipped   InvoiceStatus = "SHIPPED"
	StatusDelivered InvoiceStatus = "DELIVERED"
)

var statusRank = map[InvoiceStatus]int{
	StatusNew:       0,
	StatusAllocated: 1,
	StatusPicked:    2,
	StatusShipped:   3,
	StatusDelivered: 4,
}

// Rank returns the position of s in the lifecycle, or -1 for an unknown status.
func (s InvoiceStatus) Rank() int {
	r, ok := statusRank[s]
	if !ok {
		return -1
	}
	return r
}

// PastNew reports whether the status has advanced beyond NEW.
func (s InvoiceStatus) PastNew() bool {
	return s.Rank() > statusRank[StatusNew]
}

// RequisitionType distinguishes ordering documents by direction.
type RequisitionType string

// Requisition types.
const (
	RequisitionTypeSupplier RequisitionType = "SUPPLIER_REQUISITION"
	RequisitionTypeCustomer RequisitionType = "CUSTOMER_REQUISITION"
)

// RequisitionStatus is the lifecycle stage of a requisition.
type RequisitionStatus string

// Requisition statuses.
const (
	RequisitionStatusDraft     RequisitionStatus = "DRAFT"
	RequisitionStatusSent      RequisitionStatus = "SENT"
	RequisitionStatusFinalised RequisitionStatus = "FINALISED"
)

// StocktakeStatus is the lifecycle stage of a stocktake.
type StocktakeStatus string

// Stocktake statuses.
const (
	StocktakeStatusSuggested StocktakeStatus = "SUGGESTED"
	StocktakeStatusFinalised StocktakeStatus = "FINALISED"
)

// Item is a catalogue entry. Items are seeded once and never mutated.
type Item struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitName  string `json:"unitName"`
	IsVisible bool   `json:"isVisible"`
}

// RecordID implements Record.
func (i Item) RecordID() string { return i.ID }

// Location is a physical place stock can sit.
type Location struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	OnHold bool   `json:"onHold"`
}

// RecordID implements Record.
func (l Location) RecordID() string { return l.ID }

// Name is a counterparty: the customer or supplier on the other side of a
// shipment or requisition.
type Name struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	IsCustomer bool   `json:"isCustomer"`
	IsSupplier bool   `json:"isSupplier"`
}

// RecordID implements Record.
func (n Name) RecordID() string { return n.ID }

// StockLine is a batch of one item held in the store. AvailableNumberOfPacks
// counts unreserved packs, TotalNumberOfPacks counts physical packs; every
// mutation must leave 0 <= available <= total.
type StockLine struct {
	ID                     string    `json:"id"`
	ItemID                 string    `json:"itemId"`
	LocationID             string    `json:"locationId,omitempty"`
	StoreID                string    `json:"storeId"`
	Batch                  string    `json:"batch"`
	PackSize               int       `json:"packSize"`
	CostPricePerPack       float64   `json:"costPricePerPack"`
	SellPricePerPack       float64   `json:"sellPricePerPack"`
	ExpiryDate             time.Time `json:"expiryDate"`
	OnHold                 bool      `json:"onHold"`
	AvailableNumberOfPacks int       `json:"availableNumberOfPacks"`
	TotalNumberOfPacks     int       `json:"totalNumberOfPacks"`
}

// RecordID implements Record.
func (s StockLine) RecordID() string { return s.ID }

// Invoice is a shipment document, inbound or outbound. The *Datetime fields
// are stamped the first time the matching status is reached.
type Invoice struct {
	ID             string        `json:"id"`
	InvoiceNumber  int           `json:"invoiceNumber"`
	OtherPartyID   string        `json:"otherPartyId"`
	Type           InvoiceType   `json:"type"`
	Status         InvoiceStatus `json:"status"`
	Comment        string        `json:"comment,omitempty"`
	TheirReference string        `json:"theirReference,omitempty"`
	OnHold         bool          `json:"onHold"`
	EntryDatetime  time.Time     `json:"entryDatetime"`

	AllocatedDatetime *time.Time `json:"allocatedDatetime,omitempty"`
	PickedDatetime    *time.Time `json:"pickedDatetime,omitempty"`
	ShippedDatetime   *time.Time `json:"shippedDatetime,omitempty"`
	DeliveredDatetime *time.Time `json:"deliveredDatetime,omitempty"`
}

// RecordID implements Record.
func (i Invoice) RecordID() string { return i.ID }

// InvoiceLine is one item row on an invoice. Outbound lines reference the
// stock line being drawn down; inbound lines may reference the batch they
// created, or nothing while the invoice is still NEW.
type InvoiceLine struct {
	ID               string    `json:"id"`
	InvoiceID        string    `json:"invoiceId"`
	ItemID           string    `json:"itemId"`
	StockLineID      string    `json:"stockLineId,omitempty"`
	LocationID       string    `json:"locationId,omitempty"`
	ItemName         string    `json:"itemName"`
	ItemCode         string    `json:"itemCode"`
	ItemUnit         string    `json:"itemUnit"`
	Batch            string    `json:"batch,omitempty"`
	ExpiryDate       time.Time `json:"expiryDate"`
	NumberOfPacks    int       `json:"numberOfPacks"`
	PackSize         int       `json:"packSize"`
	CostPricePerPack float64   `json:"costPricePerPack"`
	SellPricePerPack float64   `json:"sellPricePerPack"`
}

// RecordID implements Record.
func (l InvoiceLine) RecordID() string { return l.ID }

// Requisition is an ordering document between two parties.
type Requisition struct {
	ID                string            `json:"id"`
	RequisitionNumber int               `json:"requisitionNumber"`
	OtherPartyID      string            `json:"otherPartyId"`
	StoreID           string            `json:"storeId"`
	Type              RequisitionType   `json:"type"`
	Status            RequisitionStatus `json:"status"`
	Comment           string            `json:"comment,omitempty"`
	OrderDate         time.Time         `json:"orderDate"`
}

// RecordID implements Record.
func (r Requisition) RecordID() string { return r.ID }

// RequisitionLine carries forecasting figures for one item on a requisition.
// The figures are stored exactly as supplied; this engine never computes them.
type RequisitionLine struct {
	ID                 string  `json:"id"`
	RequisitionID      string  `json:"requisitionId"`
	ItemID             string  `json:"itemId"`
	ItemName           string  `json:"itemName"`
	ItemCode           string  `json:"itemCode"`
	MonthlyConsumption float64 `json:"monthlyConsumption"`
	MonthsOfSupply     float64 `json:"monthsOfSupply"`
	RequestedQuantity  int     `json:"requestedQuantity"`
	SuppliedQuantity   int     `json:"suppliedQuantity"`
	ReceivedQuantity   int     `json:"receivedQuantity"`
}

// RecordID implements Record.
func (l RequisitionLine) RecordID() string { return l.ID }

// Stocktake is a physical-count exercise. Lines record what was counted; the
// engine produces no stock-ledger side effects from them.
type Stocktake struct {
	ID              string          `json:"id"`
	StocktakeNumber int             `json:"stocktakeNumber"`
	Status          StocktakeStatus `json:"status"`
	Description     string          `json:"description,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	CreatedDatetime time.Time       `json:"createdDatetime"`
}

// RecordID implements Record.
func (s Stocktake) RecordID() string { return s.ID }

// StocktakeLine is one counted batch within a stocktake.
type StocktakeLine struct {
	ID                    string `json:"id"`
	StocktakeID           string `json:"stocktakeId"`
	ItemID                string `json:"itemId"`
	Batch                 string `json:"batch,omitempty"`
	SnapshotNumberOfPacks int    `json:"snapshotNumberOfPacks"`
	SnapshotPackSize      int    `json:"snapshotPackSize"`
	CountedNumberOfPacks  int    `json:"countedNumberOfPacks"`
}

// RecordID implements Record.
func (l StocktakeLine) RecordID() string { return l.ID }
