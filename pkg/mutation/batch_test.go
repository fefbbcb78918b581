package mutation

import (
	"testing"

	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/store"
)

func TestBatchInvoiceOutcomesKeyedAndOrdered(t *testing.T) {
	s, e := ledgerFixture(t)

	res := e.BatchInvoice(BatchInvoiceInput{
		InsertInvoices: []InvoiceInput{
			{ID: "V1", OtherPartyID: "N1", Type: store.InvoiceTypeOutbound, Status: store.StatusAllocated},
		},
		InsertLines: []InvoiceLineInput{
			{ID: "L1", InvoiceID: "V1", ItemID: "I1", StockLineID: "S1", NumberOfPacks: 10, PackSize: 1},
			{ID: "L2", InvoiceID: "V1", ItemID: "missing", StockLineID: "S1", NumberOfPacks: 5, PackSize: 1},
			{ID: "L3", InvoiceID: "V1", ItemID: "I1", StockLineID: "S1", NumberOfPacks: 20, PackSize: 1},
		},
	})

	if len(res.InsertInvoices) != 1 || res.InsertInvoices[0].Err != nil {
		t.Fatalf("invoice insert outcome: %+v", res.InsertInvoices)
	}

	// One outcome per input, in input order, keyed by input id.
	if len(res.InsertLines) != 3 {
		t.Fatalf("line outcomes = %d, want 3", len(res.InsertLines))
	}
	for i, wantID := range []string{"L1", "L2", "L3"} {
		if res.InsertLines[i].ID != wantID {
			t.Errorf("outcome %d keyed %q, want %q", i, res.InsertLines[i].ID, wantID)
		}
	}
	if res.InsertLines[0].Err != nil || res.InsertLines[2].Err != nil {
		t.Error("valid lines must succeed despite the failing middle item")
	}
	if !store.IsNotFound(res.InsertLines[1].Err) {
		t.Errorf("middle outcome should carry NotFoundError, got %v", res.InsertLines[1].Err)
	}
	if _, ok := res.InsertLines[0].Node.(resolve.InvoiceLineNode); !ok {
		t.Errorf("success outcome should carry the resolved node, got %T", res.InsertLines[0].Node)
	}

	// Only the two valid lines hit the ledger.
	if avail, total := stockCounts(t, s, "S1"); avail != 70 || total != 70 {
		t.Errorf("stock after batch: %d/%d, want 70/70", avail, total)
	}
}

func TestBatchInvoiceDependencyOrder(t *testing.T) {
	s, e := ledgerFixture(t)

	if _, err := e.InsertInvoice(InvoiceInput{
		ID: "V0", OtherPartyID: "N1", Type: store.InvoiceTypeOutbound,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.InsertInvoiceLine(InvoiceLineInput{
		ID: "L0", InvoiceID: "V0", ItemID: "I1", StockLineID: "S1", NumberOfPacks: 5, PackSize: 1,
	}); err != nil {
		t.Fatal(err)
	}

	// A single request may create an invoice with lines and tear down an old
	// one. Line deletes must run before the old invoice's delete is attempted.
	res := e.BatchInvoice(BatchInvoiceInput{
		InsertInvoices: []InvoiceInput{
			{ID: "V1", OtherPartyID: "N1", Type: store.InvoiceTypeOutbound},
		},
		InsertLines: []InvoiceLineInput{
			{ID: "L1", InvoiceID: "V1", ItemID: "I1", StockLineID: "S1", NumberOfPacks: 3, PackSize: 1},
		},
		DeleteLines:    []string{"L0"},
		DeleteInvoices: []string{"V0"},
	})

	for _, out := range res.InsertLines {
		if out.Err != nil {
			t.Errorf("line insert on same-batch invoice failed: %v", out.Err)
		}
	}
	if res.DeleteInvoices[0].Err != nil {
		t.Errorf("invoice delete failed: %v", res.DeleteInvoices[0].Err)
	}
	if s.Invoices.Has("V0") || s.InvoiceLines.Has("L0") {
		t.Error("old invoice and line must be gone")
	}
	if !s.Invoices.Has("V1") || !s.InvoiceLines.Has("L1") {
		t.Error("new invoice and line must exist")
	}
}

func TestBatchStocktake(t *testing.T) {
	s, e := ledgerFixture(t)

	res := e.BatchStocktake(BatchStocktakeInput{
		InsertStocktakes: []StocktakeInput{{ID: "ST1", Description: "June count"}},
		InsertLines: []StocktakeLineInput{
			{ID: "SL1", StocktakeID: "ST1", ItemID: "I1", Batch: "B1", SnapshotNumberOfPacks: 100, SnapshotPackSize: 1, CountedNumberOfPacks: 98},
		},
	})

	if res.InsertStocktakes[0].Err != nil || res.InsertLines[0].Err != nil {
		t.Fatalf("batch stocktake failed: %+v", res)
	}
	st, err := s.Stocktakes.Get("ST1")
	if err != nil {
		t.Fatal(err)
	}
	if st.StocktakeNumber != 1 || st.Status != store.StocktakeStatusSuggested {
		t.Errorf("stocktake defaults wrong: %+v", st)
	}
	// Counting produces no ledger side effects.
	if avail, total := stockCounts(t, s, "S1"); avail != 100 || total != 100 {
		t.Errorf("stocktake must not touch stock: %d/%d", avail, total)
	}
}

func TestBatchRequisition(t *testing.T) {
	s, e := ledgerFixture(t)

	res := e.BatchRequisition(BatchRequisitionInput{
		InsertRequisitions: []RequisitionInput{
			{ID: "RQ1", OtherPartyID: "N1", Type: store.RequisitionTypeSupplier},
		},
		InsertLines: []RequisitionLineInput{
			{ID: "RL1", RequisitionID: "RQ1", ItemID: "I1", RequestedQuantity: 500, MonthlyConsumption: 120},
		},
	})

	if res.InsertRequisitions[0].Err != nil || res.InsertLines[0].Err != nil {
		t.Fatalf("batch requisition failed: %+v", res)
	}
	line, err := s.RequisitionLines.Get("RL1")
	if err != nil {
		t.Fatal(err)
	}
	if line.RequestedQuantity != 500 || line.MonthlyConsumption != 120 {
		t.Errorf("forecast figures must be stored as supplied: %+v", line)
	}
	if line.ItemName != "Ibuprofen" {
		t.Errorf("item name not copied onto line: %q", line.ItemName)
	}
}

func TestDeleteRequisitionEligibility(t *testing.T) {
	_, e := ledgerFixture(t)

	if _, err := e.InsertRequisition(RequisitionInput{
		ID: "RQ1", OtherPartyID: "N1", Type: store.RequisitionTypeSupplier,
	}); err != nil {
		t.Fatal(err)
	}
	sent := store.RequisitionStatusSent
	if _, err := e.UpdateRequisition(RequisitionUpdate{ID: "RQ1", Status: &sent}); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteRequisition("RQ1"); !IsNotEligibleForDeletion(err) {
		t.Fatalf("expected NotEligibleForDeletionError, got %v", err)
	}
}

func TestDeleteFinalisedStocktakeRejected(t *testing.T) {
	_, e := ledgerFixture(t)

	if _, err := e.InsertStocktake(StocktakeInput{ID: "ST1"}); err != nil {
		t.Fatal(err)
	}
	finalised := store.StocktakeStatusFinalised
	if _, err := e.UpdateStocktake(StocktakeUpdate{ID: "ST1", Status: &finalised}); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteStocktake("ST1"); !IsNotEligibleForDeletion(err) {
		t.Fatalf("expected NotEligibleForDeletionError, got %v", err)
	}
}
