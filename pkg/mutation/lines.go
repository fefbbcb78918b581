package mutation

import (
	"fmt"
	"time"

	"github.com/invmock/invmock/internal/id"
	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/store"
)

// InvoiceLineInput creates one item row on an invoice. Outbound lines must
// reference the stock line being drawn down. Inbound lines may leave
// StockLineID empty; past NEW the engine extends the matching batch or
// creates a new one.
type InvoiceLineInput struct {
	ID               string    `json:"id,omitempty"`
	InvoiceID        string    `json:"invoiceId"`
	ItemID           string    `json:"itemId"`
	StockLineID      string    `json:"stockLineId,omitempty"`
	LocationID       string    `json:"locationId,omitempty"`
	Batch            string    `json:"batch,omitempty"`
	ExpiryDate       time.Time `json:"expiryDate,omitzero"`
	NumberOfPacks    int       `json:"numberOfPacks"`
	PackSize         int       `json:"packSize"`
	CostPricePerPack float64   `json:"costPricePerPack,omitempty"`
	SellPricePerPack float64   `json:"sellPricePerPack,omitempty"`
}

// InvoiceLineUpdate patches a line. Changing NumberOfPacks applies the pack
// delta to the referenced stock line per the ledger rules.
type InvoiceLineUpdate struct {
	ID               string     `json:"id"`
	NumberOfPacks    *int       `json:"numberOfPacks,omitempty"`
	LocationID       *string    `json:"locationId,omitempty"`
	Batch            *string    `json:"batch,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	CostPricePerPack *float64   `json:"costPricePerPack,omitempty"`
	SellPricePerPack *float64   `json:"sellPricePerPack,omitempty"`
}

// InsertInvoiceLine adds a line to an invoice, applying its ledger effect to
// the referenced stock line when the invoice is past NEW.
func (e *Engine) InsertInvoiceLine(input InvoiceLineInput) (resolve.InvoiceLineNode, error) {
	var node resolve.InvoiceLineNode
	err := e.store.WithLock(func() error {
		j := store.NewJournal()
		line, err := e.insertLineLocked(j, input)
		if err != nil {
			j.Rollback()
			return err
		}
		node, err = e.resolver.InvoiceLine(line.ID)
		return err
	})
	return node, err
}

// UpdateInvoiceLine patches a line, moving the pack delta through the ledger.
func (e *Engine) UpdateInvoiceLine(upd InvoiceLineUpdate) (resolve.InvoiceLineNode, error) {
	var node resolve.InvoiceLineNode
	err := e.store.WithLock(func() error {
		j := store.NewJournal()
		line, err := e.updateLineLocked(j, upd)
		if err != nil {
			j.Rollback()
			return err
		}
		node, err = e.resolver.InvoiceLine(line.ID)
		return err
	})
	return node, err
}

// DeleteInvoiceLine removes a line, reversing its ledger effect.
func (e *Engine) DeleteInvoiceLine(lineID string) error {
	return e.store.WithLock(func() error {
		j := store.NewJournal()
		if _, err := e.deleteLineLocked(j, lineID); err != nil {
			j.Rollback()
			return err
		}
		return nil
	})
}

func (e *Engine) insertLineLocked(j *store.Journal, input InvoiceLineInput) (store.InvoiceLine, error) {
	var zero store.InvoiceLine

	if input.ID == "" {
		input.ID = id.UUID()
	}
	if e.store.InvoiceLines.Has(input.ID) {
		return zero, &store.AlreadyExistsError{Entity: "invoiceLine", ID: input.ID}
	}
	inv, err := e.store.Invoices.Get(input.InvoiceID)
	if err != nil {
		return zero, err
	}
	item, err := e.store.Items.Get(input.ItemID)
	if err != nil {
		return zero, err
	}

	line := store.InvoiceLine{
		ID:               input.ID,
		InvoiceID:        inv.ID,
		ItemID:           item.ID,
		StockLineID:      input.StockLineID,
		LocationID:       input.LocationID,
		ItemName:         item.Name,
		ItemCode:         item.Code,
		ItemUnit:         item.UnitName,
		Batch:            input.Batch,
		ExpiryDate:       input.ExpiryDate,
		NumberOfPacks:    input.NumberOfPacks,
		PackSize:         input.PackSize,
		CostPricePerPack: input.CostPricePerPack,
		SellPricePerPack: input.SellPricePerPack,
	}

	switch inv.Type {
	case store.InvoiceTypeOutbound:
		if line.StockLineID == "" {
			return zero, &store.ValidationError{Field: "stockLineId", Message: "outbound lines must reference a stock line"}
		}
		if !e.store.StockLines.Has(line.StockLineID) {
			return zero, &store.NotFoundError{Entity: "stockLine", ID: line.StockLineID}
		}
		if inv.Status.PastNew() {
			dTotal := 0
			if e.policy.TotalApplies(inv.Status) {
				dTotal = -line.NumberOfPacks
			}
			if err := e.applyStockDelta(j, line.StockLineID, -line.NumberOfPacks, dTotal); err != nil {
				return zero, err
			}
		}

	case store.InvoiceTypeInbound:
		if line.StockLineID == "" && inv.Status.PastNew() {
			// Goods have arrived without a target batch: extend a matching one
			// or create a new stock line.
			if match, ok := e.matchingBatch(item.ID, line.Batch); ok {
				line.StockLineID = match.ID
			} else {
				sl := store.StockLine{
					ID:                     id.UUID(),
					ItemID:                 item.ID,
					LocationID:             line.LocationID,
					Batch:                  line.Batch,
					PackSize:               line.PackSize,
					CostPricePerPack:       line.CostPricePerPack,
					SellPricePerPack:       line.SellPricePerPack,
					ExpiryDate:             line.ExpiryDate,
					AvailableNumberOfPacks: line.NumberOfPacks,
					TotalNumberOfPacks:     line.NumberOfPacks,
				}
				if err := e.store.StockLines.Insert(sl); err != nil {
					return zero, err
				}
				store.RecordInsert(j, e.store.StockLines, sl.ID)
				line.StockLineID = sl.ID
				break
			}
		}
		if line.StockLineID != "" {
			if !e.store.StockLines.Has(line.StockLineID) {
				return zero, &store.NotFoundError{Entity: "stockLine", ID: line.StockLineID}
			}
			if inv.Status.PastNew() {
				dTotal := 0
				if e.policy.TotalApplies(inv.Status) {
					dTotal = line.NumberOfPacks
				}
				if err := e.applyStockDelta(j, line.StockLineID, line.NumberOfPacks, dTotal); err != nil {
					return zero, err
				}
			}
		}
	}

	if err := e.store.InvoiceLines.Insert(line); err != nil {
		return zero, err
	}
	store.RecordInsert(j, e.store.InvoiceLines, line.ID)
	e.log.Debug("invoice line inserted", "id", line.ID, "invoice", inv.ID, "packs", line.NumberOfPacks)
	return line, nil
}

func (e *Engine) updateLineLocked(j *store.Journal, upd InvoiceLineUpdate) (store.InvoiceLine, error) {
	var zero store.InvoiceLine

	line, err := e.store.InvoiceLines.Get(upd.ID)
	if err != nil {
		return zero, err
	}
	inv, err := e.store.Invoices.Get(line.InvoiceID)
	if err != nil {
		return zero, err
	}

	if upd.NumberOfPacks != nil && line.StockLineID != "" {
		// delta is positive when packs were given back.
		delta := line.NumberOfPacks - *upd.NumberOfPacks
		if delta != 0 {
			dAvail, dTotal := delta, 0
			if inv.Type == store.InvoiceTypeInbound {
				dAvail = -delta
			}
			if e.policy.TotalApplies(inv.Status) {
				dTotal = dAvail
			}
			if err := e.applyStockDelta(j, line.StockLineID, dAvail, dTotal); err != nil {
				return zero, err
			}
		}
	}
	if upd.NumberOfPacks != nil {
		line.NumberOfPacks = *upd.NumberOfPacks
	}
	if upd.LocationID != nil {
		line.LocationID = *upd.LocationID
	}
	if upd.Batch != nil {
		line.Batch = *upd.Batch
	}
	if upd.ExpiryDate != nil {
		line.ExpiryDate = *upd.ExpiryDate
	}
	if upd.CostPricePerPack != nil {
		line.CostPricePerPack = *upd.CostPricePerPack
	}
	if upd.SellPricePerPack != nil {
		line.SellPricePerPack = *upd.SellPricePerPack
	}

	store.RecordUpdate(j, e.store.InvoiceLines, line.ID)
	if _, err := e.store.InvoiceLines.Update(line); err != nil {
		return zero, err
	}
	e.log.Debug("invoice line updated", "id", line.ID, "packs", line.NumberOfPacks)
	return line, nil
}

func (e *Engine) deleteLineLocked(j *store.Journal, lineID string) (store.InvoiceLine, error) {
	var zero store.InvoiceLine

	line, err := e.store.InvoiceLines.Get(lineID)
	if err != nil {
		return zero, err
	}
	inv, err := e.store.Invoices.Get(line.InvoiceID)
	if err != nil {
		return zero, err
	}

	if line.StockLineID != "" && inv.Status.PastNew() {
		dAvail := line.NumberOfPacks
		if inv.Type == store.InvoiceTypeInbound {
			dAvail = -line.NumberOfPacks
		}
		dTotal := 0
		if e.policy.TotalApplies(inv.Status) {
			dTotal = dAvail
		}
		if err := e.applyStockDelta(j, line.StockLineID, dAvail, dTotal); err != nil {
			return zero, err
		}
	}

	store.RecordRemove(j, e.store.InvoiceLines, line.ID)
	if _, err := e.store.InvoiceLines.Remove(line.ID); err != nil {
		return zero, err
	}
	e.log.Debug("invoice line deleted", "id", line.ID)
	return line, nil
}

// applyStockDelta adjusts one stock line's counts and enforces the ledger
// invariant 0 <= available <= total. A violation fails the whole mutation.
func (e *Engine) applyStockDelta(j *store.Journal, stockLineID string, dAvail, dTotal int) error {
	sl, err := e.store.StockLines.Get(stockLineID)
	if err != nil {
		return err
	}

	store.RecordUpdate(j, e.store.StockLines, sl.ID)
	sl.AvailableNumberOfPacks += dAvail
	sl.TotalNumberOfPacks += dTotal

	if sl.AvailableNumberOfPacks < 0 || sl.AvailableNumberOfPacks > sl.TotalNumberOfPacks {
		return &store.ValidationError{
			Field: "numberOfPacks",
			Message: fmt.Sprintf("stock line %q would hold %d available of %d total packs",
				sl.ID, sl.AvailableNumberOfPacks, sl.TotalNumberOfPacks),
		}
	}

	_, err = e.store.StockLines.Update(sl)
	return err
}

// matchingBatch finds an existing stock line for the item with the same batch
// label. Unlabelled arrivals never match an existing line.
func (e *Engine) matchingBatch(itemID, batch string) (store.StockLine, bool) {
	if batch == "" {
		return store.StockLine{}, false
	}
	return e.store.StockLines.Find(func(sl store.StockLine) bool {
		return sl.ItemID == itemID && sl.Batch == batch
	})
}
