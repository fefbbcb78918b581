package resolve

import (
	"reflect"
	"testing"
	"time"

	"github.com/invmock/invmock/pkg/query"
	"github.com/invmock/invmock/pkg/store"
)

func fixtureStore() *store.Store {
	s := store.New()

	_ = s.Items.Insert(store.Item{ID: "item1", Code: "a1", Name: "Amoxicillin", UnitName: "tablet", IsVisible: true})
	_ = s.Items.Insert(store.Item{ID: "item2", Code: "g1", Name: "Glucose 5%", UnitName: "bag", IsVisible: true})

	_ = s.Locations.Insert(store.Location{ID: "loc1", Code: "A01", Name: "Shelf A"})
	_ = s.Names.Insert(store.Name{ID: "name1", Code: "c1", Name: "Central Clinic", IsCustomer: true})

	_ = s.StockLines.Insert(store.StockLine{
		ID: "sl1", ItemID: "item1", LocationID: "loc1", Batch: "B100",
		PackSize: 10, AvailableNumberOfPacks: 4, TotalNumberOfPacks: 6,
	})
	_ = s.StockLines.Insert(store.StockLine{
		ID: "sl2", ItemID: "item1", Batch: "B200",
		PackSize: 5, AvailableNumberOfPacks: 2, TotalNumberOfPacks: 2,
	})

	_ = s.Invoices.Insert(store.Invoice{
		ID: "inv1", InvoiceNumber: 1, OtherPartyID: "name1",
		Type: store.InvoiceTypeOutbound, Status: store.StatusAllocated,
		EntryDatetime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	_ = s.InvoiceLines.Insert(store.InvoiceLine{
		ID: "line1", InvoiceID: "inv1", ItemID: "item1", StockLineID: "sl1",
		NumberOfPacks: 2, PackSize: 10,
	})

	return s
}

func TestItemResolution(t *testing.T) {
	r := New(fixtureStore())

	node, err := r.Item("item1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if node.Typename != TypenameItem {
		t.Errorf("typename = %q", node.Typename)
	}
	// 4*10 + 2*5 packs of units available.
	if node.AvailableQuantity != 50 {
		t.Errorf("availableQuantity = %v, want 50", node.AvailableQuantity)
	}
	if node.AvailableBatches.TotalCount != 2 {
		t.Errorf("availableBatches.totalCount = %d, want 2", node.AvailableBatches.TotalCount)
	}

	// Batches must carry shallow items only; no further batch expansion.
	batchItem, ok := node.AvailableBatches.Nodes[0].Item.(ItemNode)
	if !ok {
		t.Fatalf("batch item is %T, want ItemNode", node.AvailableBatches.Nodes[0].Item)
	}
	if len(batchItem.AvailableBatches.Nodes) != 0 {
		t.Error("nested item must not expand batches")
	}
}

func TestItemNotFound(t *testing.T) {
	r := New(fixtureStore())
	if _, err := r.Item("missing"); !store.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestInvoiceResolution(t *testing.T) {
	r := New(fixtureStore())

	node, err := r.Invoice("inv1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	party, ok := node.OtherParty.(NameNode)
	if !ok {
		t.Fatalf("otherParty is %T, want NameNode", node.OtherParty)
	}
	if party.Name.Name != "Central Clinic" || node.OtherPartyName != "Central Clinic" {
		t.Errorf("otherParty resolution wrong: %+v", party)
	}

	if node.Lines.TotalCount != 1 {
		t.Fatalf("lines.totalCount = %d, want 1", node.Lines.TotalCount)
	}
	line := node.Lines.Nodes[0]
	sl, ok := line.StockLine.(StockLineNode)
	if !ok {
		t.Fatalf("line stockLine is %T, want StockLineNode", line.StockLine)
	}
	if sl.Batch != "B100" {
		t.Errorf("stock line batch = %q", sl.Batch)
	}
	loc, ok := sl.Location.(LocationNode)
	if !ok || loc.Code != "A01" {
		t.Errorf("stock line location resolution wrong: %v", sl.Location)
	}
}

func TestDanglingReferenceBecomesNotFoundNode(t *testing.T) {
	s := fixtureStore()
	_ = s.InvoiceLines.Insert(store.InvoiceLine{
		ID: "bad", InvoiceID: "inv1", ItemID: "gone", StockLineID: "also-gone",
	})
	r := New(s)

	node, err := r.Invoice("inv1")
	if err != nil {
		t.Fatalf("read must not fail on a dangling line reference: %v", err)
	}

	var badLine *InvoiceLineNode
	for i := range node.Lines.Nodes {
		if node.Lines.Nodes[i].ID == "bad" {
			badLine = &node.Lines.Nodes[i]
		}
	}
	if badLine == nil {
		t.Fatal("line missing from graph")
	}

	nf, ok := badLine.Item.(NotFoundNode)
	if !ok {
		t.Fatalf("item is %T, want NotFoundNode", badLine.Item)
	}
	if nf.Typename != TypenameNotFound || nf.Description == "" {
		t.Errorf("not-found node malformed: %+v", nf)
	}
	if _, ok := badLine.StockLine.(NotFoundNode); !ok {
		t.Errorf("stockLine should be a NotFoundNode, got %T", badLine.StockLine)
	}
}

func TestResolutionIdempotence(t *testing.T) {
	r := New(fixtureStore())

	first, err := r.Invoice("inv1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Invoice("inv1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("resolving twice without a mutation must yield identical graphs")
	}
}

func TestListAndSingleReadsShareShapes(t *testing.T) {
	r := New(fixtureStore())

	single, _ := r.Invoice("inv1")
	list := r.Invoices(InvoiceListParams{Page: query.Page{First: 10}})

	if list.TotalCount != 1 {
		t.Fatalf("totalCount = %d", list.TotalCount)
	}
	if !reflect.DeepEqual(single, list.Nodes[0]) {
		t.Error("list node must equal the corresponding single read")
	}
}

func TestItemsListFilterSortPage(t *testing.T) {
	s := store.New()
	for _, it := range []store.Item{
		{ID: "i1", Name: "Glucose 5%"},
		{ID: "i2", Name: "Saline"},
		{ID: "i3", Name: "Glucose 10%"},
		{ID: "i4", Name: "Glucagon"},
		{ID: "i5", Name: "Gluten test kit"},
		{ID: "i6", Name: "Glucometer strips"},
		{ID: "i7", Name: "Glutamine"},
	} {
		_ = s.Items.Insert(it)
	}
	r := New(s)

	like := "glu"
	conn := r.Items(ItemListParams{
		Filter: &ItemFilter{Name: &query.StringFilter{Like: &like}},
		Page:   query.Page{First: 2, Offset: 1},
		Sort:   &query.Sort{Key: "name"},
	})

	if conn.TotalCount != 6 {
		t.Errorf("totalCount = %d, want 6", conn.TotalCount)
	}
	if len(conn.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(conn.Nodes))
	}
	// Name order: Glucagon, Glucometer strips, Glucose 10%, Glucose 5%, ...
	if conn.Nodes[0].Name != "Glucometer strips" || conn.Nodes[1].Name != "Glucose 10%" {
		t.Errorf("page contents wrong: %q, %q", conn.Nodes[0].Name, conn.Nodes[1].Name)
	}
}

func TestInvoiceListFilterByType(t *testing.T) {
	s := fixtureStore()
	_ = s.Invoices.Insert(store.Invoice{
		ID: "inv2", InvoiceNumber: 2, OtherPartyID: "name1",
		Type: store.InvoiceTypeInbound, Status: store.StatusNew,
	})
	r := New(s)

	outbound := store.InvoiceTypeOutbound
	conn := r.Invoices(InvoiceListParams{
		Filter: &InvoiceFilter{Type: &query.EqualFilter[store.InvoiceType]{EqualTo: &outbound}},
		Page:   query.Page{First: 10},
	})

	if conn.TotalCount != 1 || conn.Nodes[0].ID != "inv1" {
		t.Errorf("type filter wrong: %+v", conn)
	}
}

func TestInvoiceByNumber(t *testing.T) {
	r := New(fixtureStore())
	node, err := r.InvoiceByNumber(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.ID != "inv1" {
		t.Errorf("got %q", node.ID)
	}
}
