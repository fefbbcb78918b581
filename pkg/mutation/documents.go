package mutation

import (
	"time"

	"github.com/invmock/invmock/internal/id"
	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/store"
)

// Requisition and stocktake documents are plain pass-throughs: validate the
// cross-references, write the record, re-resolve. They never touch the stock
// ledger.

// RequisitionInput creates an ordering document.
type RequisitionInput struct {
	ID           string                `json:"id,omitempty"`
	OtherPartyID string                `json:"otherPartyId"`
	Type         store.RequisitionType `json:"type"`
	Comment      string                `json:"comment,omitempty"`
	OrderDate    time.Time             `json:"orderDate,omitzero"`
}

// RequisitionUpdate patches an ordering document.
type RequisitionUpdate struct {
	ID      string                   `json:"id"`
	Status  *store.RequisitionStatus `json:"status,omitempty"`
	Comment *string                  `json:"comment,omitempty"`
}

// InsertRequisition creates a requisition at DRAFT.
func (e *Engine) InsertRequisition(input RequisitionInput) (resolve.RequisitionNode, error) {
	var node resolve.RequisitionNode
	err := e.store.WithLock(func() error {
		if input.ID == "" {
			input.ID = id.UUID()
		}
		if e.store.Requisitions.Has(input.ID) {
			return &store.AlreadyExistsError{Entity: "requisition", ID: input.ID}
		}
		if input.Type != store.RequisitionTypeSupplier && input.Type != store.RequisitionTypeCustomer {
			return &store.ValidationError{Field: "type", Message: "type must be a supplier or customer requisition"}
		}
		if _, err := e.store.Names.Get(input.OtherPartyID); err != nil {
			return err
		}

		orderDate := input.OrderDate
		if orderDate.IsZero() {
			orderDate = e.now()
		}
		req := store.Requisition{
			ID:                input.ID,
			RequisitionNumber: e.store.NextRequisitionNumber(),
			OtherPartyID:      input.OtherPartyID,
			Type:              input.Type,
			Status:            store.RequisitionStatusDraft,
			Comment:           input.Comment,
			OrderDate:         orderDate,
		}
		if err := e.store.Requisitions.Insert(req); err != nil {
			return err
		}
		e.log.Debug("requisition inserted", "id", req.ID, "type", req.Type)

		var err error
		node, err = e.resolver.Requisition(req.ID)
		return err
	})
	return node, err
}

// UpdateRequisition patches a requisition.
func (e *Engine) UpdateRequisition(upd RequisitionUpdate) (resolve.RequisitionNode, error) {
	var node resolve.RequisitionNode
	err := e.store.WithLock(func() error {
		req, err := e.store.Requisitions.Get(upd.ID)
		if err != nil {
			return err
		}
		if upd.Status != nil {
			req.Status = *upd.Status
		}
		if upd.Comment != nil {
			req.Comment = *upd.Comment
		}
		if _, err := e.store.Requisitions.Update(req); err != nil {
			return err
		}
		node, err = e.resolver.Requisition(req.ID)
		return err
	})
	return node, err
}

// DeleteRequisition removes a requisition and its lines. Only DRAFT
// requisitions are eligible.
func (e *Engine) DeleteRequisition(reqID string) error {
	return e.store.WithLock(func() error {
		req, err := e.store.Requisitions.Get(reqID)
		if err != nil {
			return err
		}
		if req.Status != store.RequisitionStatusDraft {
			return &NotEligibleForDeletionError{Entity: "requisition", ID: req.ID, Status: string(req.Status)}
		}
		for _, line := range e.store.RequisitionLinesByRequisition(req.ID) {
			if _, err := e.store.RequisitionLines.Remove(line.ID); err != nil {
				return err
			}
		}
		_, err = e.store.Requisitions.Remove(req.ID)
		return err
	})
}

// RequisitionLineInput creates one item row on a requisition. Forecasting
// figures are stored exactly as supplied.
type RequisitionLineInput struct {
	ID                 string  `json:"id,omitempty"`
	RequisitionID      string  `json:"requisitionId"`
	ItemID             string  `json:"itemId"`
	MonthlyConsumption float64 `json:"monthlyConsumption,omitempty"`
	MonthsOfSupply     float64 `json:"monthsOfSupply,omitempty"`
	RequestedQuantity  int     `json:"requestedQuantity,omitempty"`
	SuppliedQuantity   int     `json:"suppliedQuantity,omitempty"`
	ReceivedQuantity   int     `json:"receivedQuantity,omitempty"`
}

// RequisitionLineUpdate patches a requisition line.
type RequisitionLineUpdate struct {
	ID                string `json:"id"`
	RequestedQuantity *int   `json:"requestedQuantity,omitempty"`
	SuppliedQuantity  *int   `json:"suppliedQuantity,omitempty"`
	ReceivedQuantity  *int   `json:"receivedQuantity,omitempty"`
}

// InsertRequisitionLine adds a line to a requisition.
func (e *Engine) InsertRequisitionLine(input RequisitionLineInput) (resolve.RequisitionLineNode, error) {
	var node resolve.RequisitionLineNode
	err := e.store.WithLock(func() error {
		if input.ID == "" {
			input.ID = id.UUID()
		}
		if e.store.RequisitionLines.Has(input.ID) {
			return &store.AlreadyExistsError{Entity: "requisitionLine", ID: input.ID}
		}
		if _, err := e.store.Requisitions.Get(input.RequisitionID); err != nil {
			return err
		}
		item, err := e.store.Items.Get(input.ItemID)
		if err != nil {
			return err
		}

		line := store.RequisitionLine{
			ID:                 input.ID,
			RequisitionID:      input.RequisitionID,
			ItemID:             item.ID,
			ItemName:           item.Name,
			ItemCode:           item.Code,
			MonthlyConsumption: input.MonthlyConsumption,
			MonthsOfSupply:     input.MonthsOfSupply,
			RequestedQuantity:  input.RequestedQuantity,
			SuppliedQuantity:   input.SuppliedQuantity,
			ReceivedQuantity:   input.ReceivedQuantity,
		}
		if err := e.store.RequisitionLines.Insert(line); err != nil {
			return err
		}
		node = resolve.RequisitionLineNode{}
		reqNode, err := e.resolver.Requisition(line.RequisitionID)
		if err != nil {
			return err
		}
		for _, ln := range reqNode.Lines.Nodes {
			if ln.ID == line.ID {
				node = ln
			}
		}
		return nil
	})
	return node, err
}

// UpdateRequisitionLine patches a requisition line.
func (e *Engine) UpdateRequisitionLine(upd RequisitionLineUpdate) (resolve.RequisitionLineNode, error) {
	var node resolve.RequisitionLineNode
	err := e.store.WithLock(func() error {
		line, err := e.store.RequisitionLines.Get(upd.ID)
		if err != nil {
			return err
		}
		if upd.RequestedQuantity != nil {
			line.RequestedQuantity = *upd.RequestedQuantity
		}
		if upd.SuppliedQuantity != nil {
			line.SuppliedQuantity = *upd.SuppliedQuantity
		}
		if upd.ReceivedQuantity != nil {
			line.ReceivedQuantity = *upd.ReceivedQuantity
		}
		if _, err := e.store.RequisitionLines.Update(line); err != nil {
			return err
		}
		reqNode, err := e.resolver.Requisition(line.RequisitionID)
		if err != nil {
			return err
		}
		for _, ln := range reqNode.Lines.Nodes {
			if ln.ID == line.ID {
				node = ln
			}
		}
		return nil
	})
	return node, err
}

// DeleteRequisitionLine removes a requisition line.
func (e *Engine) DeleteRequisitionLine(lineID string) error {
	return e.store.WithLock(func() error {
		_, err := e.store.RequisitionLines.Remove(lineID)
		return err
	})
}

// StocktakeInput creates a physical-count exercise.
type StocktakeInput struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// StocktakeUpdate patches a stocktake.
type StocktakeUpdate struct {
	ID          string                 `json:"id"`
	Status      *store.StocktakeStatus `json:"status,omitempty"`
	Description *string                `json:"description,omitempty"`
	Comment     *string                `json:"comment,omitempty"`
}

// InsertStocktake creates a stocktake at SUGGESTED.
func (e *Engine) InsertStocktake(input StocktakeInput) (resolve.StocktakeNode, error) {
	var node resolve.StocktakeNode
	err := e.store.WithLock(func() error {
		if input.ID == "" {
			input.ID = id.UUID()
		}
		if e.store.Stocktakes.Has(input.ID) {
			return &store.AlreadyExistsError{Entity: "stocktake", ID: input.ID}
		}
		st := store.Stocktake{
			ID:              input.ID,
			StocktakeNumber: e.store.NextStocktakeNumber(),
			Status:          store.StocktakeStatusSuggested,
			Description:     input.Description,
			Comment:         input.Comment,
			CreatedDatetime: e.now(),
		}
		if err := e.store.Stocktakes.Insert(st); err != nil {
			return err
		}
		var err error
		node, err = e.resolver.Stocktake(st.ID)
		return err
	})
	return node, err
}

// UpdateStocktake patches a stocktake.
func (e *Engine) UpdateStocktake(upd StocktakeUpdate) (resolve.StocktakeNode, error) {
	var node resolve.StocktakeNode
	err := e.store.WithLock(func() error {
		st, err := e.store.Stocktakes.Get(upd.ID)
		if err != nil {
			return err
		}
		if upd.Status != nil {
			st.Status = *upd.Status
		}
		if upd.Description != nil {
			st.Description = *upd.Description
		}
		if upd.Comment != nil {
			st.Comment = *upd.Comment
		}
		if _, err := e.store.Stocktakes.Update(st); err != nil {
			return err
		}
		node, err = e.resolver.Stocktake(st.ID)
		return err
	})
	return node, err
}

// DeleteStocktake removes a stocktake and its lines. Finalised stocktakes are
// not eligible.
func (e *Engine) DeleteStocktake(stID string) error {
	return e.store.WithLock(func() error {
		st, err := e.store.Stocktakes.Get(stID)
		if err != nil {
			return err
		}
		if st.Status == store.StocktakeStatusFinalised {
			return &NotEligibleForDeletionError{Entity: "stocktake", ID: st.ID, Status: string(st.Status)}
		}
		for _, line := range e.store.StocktakeLinesByStocktake(st.ID) {
			if _, err := e.store.StocktakeLines.Remove(line.ID); err != nil {
				return err
			}
		}
		_, err = e.store.Stocktakes.Remove(st.ID)
		return err
	})
}

// StocktakeLineInput records one counted batch. The snapshot fields capture
// what the system believed at count time.
type StocktakeLineInput struct {
	ID                    string `json:"id,omitempty"`
	StocktakeID           string `json:"stocktakeId"`
	ItemID                string `json:"itemId"`
	Batch                 string `json:"batch,omitempty"`
	SnapshotNumberOfPacks int    `json:"snapshotNumberOfPacks"`
	SnapshotPackSize      int    `json:"snapshotPackSize"`
	CountedNumberOfPacks  int    `json:"countedNumberOfPacks"`
}

// StocktakeLineUpdate patches a stocktake line.
type StocktakeLineUpdate struct {
	ID                   string `json:"id"`
	CountedNumberOfPacks *int   `json:"countedNumberOfPacks,omitempty"`
}

// InsertStocktakeLine adds a counted batch to a stocktake.
func (e *Engine) InsertStocktakeLine(input StocktakeLineInput) (resolve.StocktakeLineNode, error) {
	var node resolve.StocktakeLineNode
	err := e.store.WithLock(func() error {
		if input.ID == "" {
			input.ID = id.UUID()
		}
		if e.store.StocktakeLines.Has(input.ID) {
			return &store.AlreadyExistsError{Entity: "stocktakeLine", ID: input.ID}
		}
		if _, err := e.store.Stocktakes.Get(input.StocktakeID); err != nil {
			return err
		}
		if _, err := e.store.Items.Get(input.ItemID); err != nil {
			return err
		}

		line := store.StocktakeLine{
			ID:                    input.ID,
			StocktakeID:           input.StocktakeID,
			ItemID:                input.ItemID,
			Batch:                 input.Batch,
			SnapshotNumberOfPacks: input.SnapshotNumberOfPacks,
			SnapshotPackSize:      input.SnapshotPackSize,
			CountedNumberOfPacks:  input.CountedNumberOfPacks,
		}
		if err := e.store.StocktakeLines.Insert(line); err != nil {
			return err
		}
		stNode, err := e.resolver.Stocktake(line.StocktakeID)
		if err != nil {
			return err
		}
		for _, ln := range stNode.Lines.Nodes {
			if ln.ID == line.ID {
				node = ln
			}
		}
		return nil
	})
	return node, err
}

// UpdateStocktakeLine patches a stocktake line.
func (e *Engine) UpdateStocktakeLine(upd StocktakeLineUpdate) (resolve.StocktakeLineNode, error) {
	var node resolve.StocktakeLineNode
	err := e.store.WithLock(func() error {
		line, err := e.store.StocktakeLines.Get(upd.ID)
		if err != nil {
			return err
		}
		if upd.CountedNumberOfPacks != nil {
			line.CountedNumberOfPacks = *upd.CountedNumberOfPacks
		}
		if _, err := e.store.StocktakeLines.Update(line); err != nil {
			return err
		}
		stNode, err := e.resolver.Stocktake(line.StocktakeID)
		if err != nil {
			return err
		}
		for _, ln := range stNode.Lines.Nodes {
			if ln.ID == line.ID {
				node = ln
			}
		}
		return nil
	})
	return node, err
}

// DeleteStocktakeLine removes a stocktake line.
func (e *Engine) DeleteStocktakeLine(lineID string) error {
	return e.store.WithLock(func() error {
		_, err := e.store.StocktakeLines.Remove(lineID)
		return err
	})
}
