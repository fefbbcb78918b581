package query

import (
	"fmt"
	"testing"
	"time"
)

type row struct {
	id   string
	name string
	n    int
}

var rowSort = SortMap[row]{
	Default: "name",
	Keys: map[string]KeyFunc[row]{
		"name": func(r row) any { return r.name },
		"n":    func(r row) any { return r.n },
	},
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numeric strings compare numerically", "9", "10", -1},
		{"equal numeric strings", "2.5", "2.50", 0},
		{"mixed text stays textual", "9a", "10a", 1},
		{"case insensitive text", "Apple", "apple", 0},
		{"text ordering", "apple", "banana", -1},
		{"native ints", 3, 7, -1},
		{"int vs float", 3, 2.5, 1},
		{"empty string is text", "", "0", -1},
		{"numeric string vs number", "10", 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareTime(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	if Compare(early, late) != -1 || Compare(late, early) != 1 || Compare(early, early) != 0 {
		t.Error("time comparison broken")
	}
}

func TestStringFilter(t *testing.T) {
	eq := "Glucose"
	like := "glu"

	tests := []struct {
		name   string
		filter *StringFilter
		value  string
		want   bool
	}{
		{"nil filter matches", nil, "anything", true},
		{"empty filter matches", &StringFilter{}, "anything", true},
		{"equalTo case insensitive", &StringFilter{EqualTo: &eq}, "gLuCoSe", true},
		{"equalTo mismatch", &StringFilter{EqualTo: &eq}, "Glucose 5%", false},
		{"like substring", &StringFilter{Like: &like}, "Glucose 5%", true},
		{"like mismatch", &StringFilter{Like: &like}, "Saline", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.value); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestEqualFilter(t *testing.T) {
	v := "OUTBOUND_SHIPMENT"
	f := &EqualFilter[string]{EqualTo: &v}
	if !f.Matches("OUTBOUND_SHIPMENT") {
		t.Error("exact enum value should match")
	}
	if f.Matches("INBOUND_SHIPMENT") {
		t.Error("different enum value should not match")
	}
	var nilF *EqualFilter[string]
	if !nilF.Matches("anything") {
		t.Error("nil filter should match")
	}
}

func TestPaginationLaw(t *testing.T) {
	// nodes.length == min(first, max(0, N-offset)) and totalCount == N.
	for _, n := range []int{0, 1, 5, 20, 45} {
		items := make([]row, n)
		for i := range items {
			items[i] = row{id: fmt.Sprintf("r%02d", i), name: fmt.Sprintf("row %02d", i)}
		}
		for _, offset := range []int{0, 3, 20, 100} {
			for _, first := range []int{0, 1, 7, 50} {
				conn := SelectPage(items, nil, rowSort, nil, Page{Offset: offset, First: first})

				effFirst := first
				if effFirst <= 0 {
					effFirst = DefaultFirst
				}
				want := n - offset
				if want < 0 {
					want = 0
				}
				if want > effFirst {
					want = effFirst
				}

				if conn.TotalCount != n {
					t.Fatalf("n=%d offset=%d first=%d: totalCount = %d, want %d", n, offset, first, conn.TotalCount, n)
				}
				if len(conn.Nodes) != want {
					t.Fatalf("n=%d offset=%d first=%d: len(nodes) = %d, want %d", n, offset, first, len(conn.Nodes), want)
				}
			}
		}
	}
}

func TestSortStability(t *testing.T) {
	items := []row{
		{id: "first", name: "dup"},
		{id: "second", name: "dup"},
		{id: "third", name: "dup"},
		{id: "other", name: "aaa"},
	}

	conn := SelectPage(items, nil, rowSort, &Sort{Key: "name"}, Page{First: 10})

	if conn.Nodes[0].id != "other" {
		t.Fatalf("sort order wrong: %+v", conn.Nodes)
	}
	for i, want := range []string{"first", "second", "third"} {
		if conn.Nodes[i+1].id != want {
			t.Errorf("tied element %d = %q, want %q (insertion order must hold)", i, conn.Nodes[i+1].id, want)
		}
	}
}

func TestSortDescendingKeepsTieOrder(t *testing.T) {
	items := []row{
		{id: "a", n: 1},
		{id: "b", n: 2},
		{id: "c", n: 2},
	}

	SortBy(items, rowSort.Keys["n"], true)

	if items[0].id != "b" || items[1].id != "c" || items[2].id != "a" {
		t.Errorf("descending sort order wrong: %+v", items)
	}
}

func TestUnknownSortKeyFallsBack(t *testing.T) {
	items := []row{
		{id: "b", name: "banana"},
		{id: "a", name: "apple"},
	}

	conn := SelectPage(items, nil, rowSort, &Sort{Key: "no-such-key"}, Page{First: 10})

	if conn.Nodes[0].id != "a" {
		t.Errorf("fallback to default key failed: %+v", conn.Nodes)
	}
}

func TestFilterThenPageCounts(t *testing.T) {
	items := []row{
		{id: "1", name: "Glucose 5%"},
		{id: "2", name: "Saline"},
		{id: "3", name: "Glucose 10%"},
		{id: "4", name: "Glucagon"},
		{id: "5", name: "Water"},
	}
	pred := func(r row) bool { return len(r.name) > 0 && r.name[0] == 'G' }

	conn := SelectPage(items, pred, rowSort, &Sort{Key: "name"}, Page{Offset: 1, First: 1})

	if conn.TotalCount != 3 {
		t.Errorf("totalCount = %d, want 3 (after filter, before page)", conn.TotalCount)
	}
	if len(conn.Nodes) != 1 || conn.Nodes[0].name != "Glucose 10%" {
		t.Errorf("page contents wrong: %+v", conn.Nodes)
	}
}
