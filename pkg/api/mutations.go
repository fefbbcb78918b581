package api

import (
	"context"

	"github.com/invmock/invmock/pkg/graphql"
	"github.com/invmock/invmock/pkg/mutation"
)

func (a *API) registerMutations(e *graphql.Executor) {
	e.Register("Mutation.insertInvoice", a.insertInvoice)
	e.Register("Mutation.updateInvoice", a.updateInvoice)
	e.Register("Mutation.deleteInvoice", a.deleteInvoice)
	e.Register("Mutation.insertInvoiceLine", a.insertInvoiceLine)
	e.Register("Mutation.updateInvoiceLine", a.updateInvoiceLine)
	e.Register("Mutation.deleteInvoiceLine", a.deleteInvoiceLine)
	e.Register("Mutation.batchInvoice", a.batchInvoice)
	e.Register("Mutation.insertRequisition", a.insertRequisition)
	e.Register("Mutation.updateRequisition", a.updateRequisition)
	e.Register("Mutation.deleteRequisition", a.deleteRequisition)
	e.Register("Mutation.insertRequisitionLine", a.insertRequisitionLine)
	e.Register("Mutation.updateRequisitionLine", a.updateRequisitionLine)
	e.Register("Mutation.deleteRequisitionLine", a.deleteRequisitionLine)
	e.Register("Mutation.batchRequisition", a.batchRequisition)
	e.Register("Mutation.insertStocktake", a.insertStocktake)
	e.Register("Mutation.updateStocktake", a.updateStocktake)
	e.Register("Mutation.deleteStocktake", a.deleteStocktake)
	e.Register("Mutation.insertStocktakeLine", a.insertStocktakeLine)
	e.Register("Mutation.updateStocktakeLine", a.updateStocktakeLine)
	e.Register("Mutation.deleteStocktakeLine", a.deleteStocktakeLine)
	e.Register("Mutation.batchStocktake", a.batchStocktake)
	e.Register("Mutation.resetData", a.resetData)
}

func (a *API) insertInvoice(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.InvoiceInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertInvoice(input))
}

func (a *API) updateInvoice(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.InvoiceUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateInvoice(upd))
}

func (a *API) deleteInvoice(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteInvoice(id))
}

func (a *API) insertInvoiceLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.InvoiceLineInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertInvoiceLine(input))
}

func (a *API) updateInvoiceLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.InvoiceLineUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateInvoiceLine(upd))
}

func (a *API) deleteInvoiceLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteInvoiceLine(id))
}

func (a *API) batchInvoice(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.BatchInvoiceInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	res := a.engine.BatchInvoice(input)
	return map[string]interface{}{
		"__typename":     "BatchInvoiceResponse",
		"insertInvoices": outcomes(res.InsertInvoices),
		"updateInvoices": outcomes(res.UpdateInvoices),
		"deleteInvoices": deleteOutcomes(res.DeleteInvoices),
		"insertLines":    outcomes(res.InsertLines),
		"updateLines":    outcomes(res.UpdateLines),
		"deleteLines":    deleteOutcomes(res.DeleteLines),
	}, nil
}

func (a *API) insertRequisition(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.RequisitionInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertRequisition(input))
}

func (a *API) updateRequisition(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.RequisitionUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateRequisition(upd))
}

func (a *API) deleteRequisition(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteRequisition(id))
}

func (a *API) insertRequisitionLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.RequisitionLineInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertRequisitionLine(input))
}

func (a *API) updateRequisitionLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.RequisitionLineUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateRequisitionLine(upd))
}

func (a *API) deleteRequisitionLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteRequisitionLine(id))
}

func (a *API) batchRequisition(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.BatchRequisitionInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	res := a.engine.BatchRequisition(input)
	return map[string]interface{}{
		"__typename":         "BatchRequisitionResponse",
		"insertRequisitions": outcomes(res.InsertRequisitions),
		"updateRequisitions": outcomes(res.UpdateRequisitions),
		"deleteRequisitions": deleteOutcomes(res.DeleteRequisitions),
		"insertLines":        outcomes(res.InsertLines),
		"updateLines":        outcomes(res.UpdateLines),
		"deleteLines":        deleteOutcomes(res.DeleteLines),
	}, nil
}

func (a *API) insertStocktake(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.StocktakeInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertStocktake(input))
}

func (a *API) updateStocktake(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.StocktakeUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateStocktake(upd))
}

func (a *API) deleteStocktake(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteStocktake(id))
}

func (a *API) insertStocktakeLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.StocktakeLineInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.InsertStocktakeLine(input))
}

func (a *API) updateStocktakeLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var upd mutation.StocktakeLineUpdate
	if err := decodeInput(args, &upd); err != nil {
		return nil, err
	}
	return nodeOrError(a.engine.UpdateStocktakeLine(upd))
}

func (a *API) deleteStocktakeLine(_ context.Context, args map[string]interface{}) (interface{}, error) {
	id := argID(args)
	return deleteResponse(id, a.engine.DeleteStocktakeLine(id))
}

func (a *API) batchStocktake(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var input mutation.BatchStocktakeInput
	if err := decodeInput(args, &input); err != nil {
		return nil, err
	}
	res := a.engine.BatchStocktake(input)
	return map[string]interface{}{
		"__typename":       "BatchStocktakeResponse",
		"insertStocktakes": outcomes(res.InsertStocktakes),
		"updateStocktakes": outcomes(res.UpdateStocktakes),
		"deleteStocktakes": deleteOutcomes(res.DeleteStocktakes),
		"insertLines":      outcomes(res.InsertLines),
		"updateLines":      outcomes(res.UpdateLines),
		"deleteLines":      deleteOutcomes(res.DeleteLines),
	}, nil
}

// resetData discards every mutation and reseeds the store from the original
// configuration.
func (a *API) resetData(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	a.seedCfg.Apply(a.store, a.now())
	a.log.Info("store reset to seed data")
	return true, nil
}

// outcomes converts batch outcomes to ResponseWithId shapes, keeping input
// order.
func outcomes(items []mutation.Outcome) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		response := item.Node
		if item.Err != nil {
			response = errorNode(item.Err)
		}
		out = append(out, map[string]interface{}{
			"id":       item.ID,
			"response": response,
		})
	}
	return out
}

// deleteOutcomes is outcomes for delete operations, whose success carries
// only the deleted identifier.
func deleteOutcomes(items []mutation.Outcome) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		var response interface{}
		if item.Err != nil {
			response = errorNode(item.Err)
		} else {
			response = map[string]interface{}{"__typename": "DeleteResponse", "id": item.ID}
		}
		out = append(out, map[string]interface{}{
			"id":       item.ID,
			"response": response,
		})
	}
	return out
}
