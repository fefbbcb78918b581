// Package integration drives the assembled server through its GraphQL
// endpoint, the way a browser client would.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/invmock/invmock/pkg/config"
	"github.com/invmock/invmock/pkg/engine"
	"github.com/invmock/invmock/pkg/graphql"
)

func newServer(t *testing.T) *engine.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Seed.RandomSeed = 1
	return engine.NewServer(cfg)
}

// gql posts one GraphQL request against the server's handler and decodes the
// response, failing the test on transport or resolver errors.
func gql(t *testing.T, s *engine.Server, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()

	body, err := json.Marshal(graphql.Request{Query: query, Variables: vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp graphql.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Errors, "graphql errors")
	return resp.Data.(map[string]interface{})
}

func TestItemSearchPagination(t *testing.T) {
	s := newServer(t)

	// The seed catalogue carries exactly five glucose-family items.
	data := gql(t, s, `
		query {
			items(
				filter: { name: { like: "glu" } }
				page: { first: 2, offset: 1 }
				sort: { key: "name" }
			) {
				totalCount
				nodes { name }
			}
		}`, nil)

	conn := data["items"].(map[string]interface{})
	require.Equal(t, float64(5), conn["totalCount"])

	nodes := conn["nodes"].([]interface{})
	require.Len(t, nodes, 2)
	require.Equal(t, "Glucometer test strips", nodes[0].(map[string]interface{})["name"])
	require.Equal(t, "Glucose 10%", nodes[1].(map[string]interface{})["name"])
}

func TestOutboundShipmentLifecycle(t *testing.T) {
	s := newServer(t)

	// Receive new stock through an inbound shipment so the batch counts are
	// known exactly.
	gql(t, s, `
		mutation {
			insertInvoice(input: { id: "in1", otherPartyId: "name-001", type: INBOUND_SHIPMENT, status: ALLOCATED }) {
				... on InvoiceNode { id }
			}
		}`, nil)

	data := gql(t, s, `
		mutation {
			insertInvoiceLine(input: {
				id: "inline1", invoiceId: "in1", itemId: "item-001",
				batch: "T100", numberOfPacks: 50, packSize: 10
			}) {
				... on InvoiceLineNode { id stockLineId }
			}
		}`, nil)
	line := data["insertInvoiceLine"].(map[string]interface{})
	stockLineID := line["stockLineId"].(string)
	require.NotEmpty(t, stockLineID)
	requireStockCounts(t, s, stockLineID, 50, 50)

	// Draw the batch down through an outbound shipment.
	gql(t, s, `
		mutation {
			insertInvoice(input: { id: "out1", otherPartyId: "name-002", type: OUTBOUND_SHIPMENT, status: ALLOCATED }) {
				... on InvoiceNode { id }
			}
		}`, nil)
	gql(t, s, `
		mutation ($input: InsertInvoiceLineInput!) {
			insertInvoiceLine(input: $input) { ... on InvoiceLineNode { id } }
		}`, map[string]interface{}{"input": map[string]interface{}{
		"id": "outline1", "invoiceId": "out1", "itemId": "item-001",
		"stockLineId": stockLineID, "numberOfPacks": 20, "packSize": 10,
	}})
	requireStockCounts(t, s, stockLineID, 30, 30)

	// Shrinking the line returns the difference to the batch.
	gql(t, s, `
		mutation {
			updateInvoiceLine(input: { id: "outline1", numberOfPacks: 10 }) {
				... on InvoiceLineNode { numberOfPacks }
			}
		}`, nil)
	requireStockCounts(t, s, stockLineID, 40, 40)

	// Removing the line reverses it entirely.
	gql(t, s, `
		mutation {
			deleteInvoiceLine(id: "outline1") { ... on DeleteResponse { id } }
		}`, nil)
	requireStockCounts(t, s, stockLineID, 50, 50)
}

func TestStatusAdvanceStampsTimestamps(t *testing.T) {
	s := newServer(t)

	gql(t, s, `
		mutation {
			insertInvoice(input: { id: "ship1", otherPartyId: "name-001", type: OUTBOUND_SHIPMENT }) {
				... on InvoiceNode { id status }
			}
		}`, nil)

	data := gql(t, s, `
		mutation {
			updateInvoice(input: { id: "ship1", status: PICKED }) {
				... on InvoiceNode { status allocatedDatetime pickedDatetime shippedDatetime }
			}
		}`, nil)

	inv := data["updateInvoice"].(map[string]interface{})
	require.Equal(t, "PICKED", inv["status"])
	// Jumping NEW to PICKED passes through ALLOCATED.
	require.NotEmpty(t, inv["allocatedDatetime"])
	require.NotEmpty(t, inv["pickedDatetime"])
	require.Nil(t, inv["shippedDatetime"])

	// Backward transitions surface as the InvalidTransition member.
	data = gql(t, s, `
		mutation {
			updateInvoice(input: { id: "ship1", status: NEW }) {
				__typename
				... on InvalidTransition { description }
			}
		}`, nil)
	res := data["updateInvoice"].(map[string]interface{})
	require.Equal(t, "InvalidTransition", res["__typename"])
}

func TestDeleteInvoiceCascade(t *testing.T) {
	s := newServer(t)

	gql(t, s, `
		mutation {
			insertInvoice(input: { id: "in2", otherPartyId: "name-001", type: INBOUND_SHIPMENT, status: ALLOCATED }) {
				... on InvoiceNode { id }
			}
		}`, nil)
	data := gql(t, s, `
		mutation {
			insertInvoiceLine(input: {
				id: "inline2", invoiceId: "in2", itemId: "item-002",
				batch: "T200", numberOfPacks: 10, packSize: 1
			}) {
				... on InvoiceLineNode { stockLineId }
			}
		}`, nil)
	stockLineID := data["insertInvoiceLine"].(map[string]interface{})["stockLineId"].(string)

	// An inbound past NEW is not eligible for deletion.
	data = gql(t, s, `
		mutation {
			deleteInvoice(id: "in2") {
				__typename
				... on NotEligibleForDeletion { description }
			}
		}`, nil)
	require.Equal(t, "NotEligibleForDeletion", data["deleteInvoice"].(map[string]interface{})["__typename"])
	requireStockCounts(t, s, stockLineID, 10, 10)
}

func TestResetDataRestoresSeed(t *testing.T) {
	s := newServer(t)

	before := gql(t, s, `query { items { totalCount } }`, nil)
	total := before["items"].(map[string]interface{})["totalCount"]

	gql(t, s, `
		mutation {
			insertStocktake(input: { id: "extra" }) { ... on StocktakeNode { id } }
		}`, nil)
	require.True(t, s.Store().Stocktakes.Has("extra"))

	data := gql(t, s, `mutation { resetData }`, nil)
	require.Equal(t, true, data["resetData"])
	require.False(t, s.Store().Stocktakes.Has("extra"))

	after := gql(t, s, `query { items { totalCount } }`, nil)
	require.Equal(t, total, after["items"].(map[string]interface{})["totalCount"])
}

func TestDashboardStatistics(t *testing.T) {
	s := newServer(t)

	gql(t, s, `
		mutation {
			insertInvoice(input: { id: "fresh", otherPartyId: "name-001", type: OUTBOUND_SHIPMENT }) {
				... on InvoiceNode { id }
			}
		}`, nil)

	data := gql(t, s, `
		query {
			invoiceCounts(type: OUTBOUND_SHIPMENT, timezoneOffset: 0) {
				created { today thisWeek }
				toBePicked
			}
			stockCounts(timezoneOffset: 0) { expired expiringSoon }
		}`, nil)

	counts := data["invoiceCounts"].(map[string]interface{})
	created := counts["created"].(map[string]interface{})
	// The invoice just inserted counts towards today and the week.
	require.GreaterOrEqual(t, created["today"].(float64), float64(1))
	require.GreaterOrEqual(t, created["thisWeek"].(float64), created["today"].(float64))
	require.GreaterOrEqual(t, counts["toBePicked"].(float64), float64(1))

	stock := data["stockCounts"].(map[string]interface{})
	require.GreaterOrEqual(t, stock["expired"].(float64), float64(0))
	require.GreaterOrEqual(t, stock["expiringSoon"].(float64), float64(0))
}

func requireStockCounts(t *testing.T, s *engine.Server, id string, available, total int) {
	t.Helper()
	sl, err := s.Store().StockLines.Get(id)
	require.NoError(t, err)
	require.Equal(t, available, sl.AvailableNumberOfPacks, "availableNumberOfPacks")
	require.Equal(t, total, sl.TotalNumberOfPacks, "totalNumberOfPacks")
}
