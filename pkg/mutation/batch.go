package mutation

// Batch mutations run each sub-operation independently and report one outcome
// per input, keyed by the input's identifier and kept in input order. A
// failed item never blocks the rest of the batch, and each item keeps the
// usual per-mutation atomicity.

// Outcome is the per-item result of a batch sub-operation. Exactly one of
// Node and Err is set; a bare delete success carries only the ID.
type Outcome struct {
	ID   string `json:"id"`
	Node any    `json:"node,omitempty"`
	Err  error  `json:"-"`
}

// BatchInvoiceInput bundles parallel arrays of invoice and invoice line
// operations for one request.
type BatchInvoiceInput struct {
	InsertInvoices []InvoiceInput      `json:"insertInvoices,omitempty"`
	UpdateInvoices []InvoiceUpdate     `json:"updateInvoices,omitempty"`
	DeleteInvoices []string            `json:"deleteInvoices,omitempty"`
	InsertLines    []InvoiceLineInput  `json:"insertLines,omitempty"`
	UpdateLines    []InvoiceLineUpdate `json:"updateLines,omitempty"`
	DeleteLines    []string            `json:"deleteLines,omitempty"`
}

// BatchInvoiceResult mirrors BatchInvoiceInput with one outcome per input.
type BatchInvoiceResult struct {
	InsertInvoices []Outcome `json:"insertInvoices,omitempty"`
	UpdateInvoices []Outcome `json:"updateInvoices,omitempty"`
	DeleteInvoices []Outcome `json:"deleteInvoices,omitempty"`
	InsertLines    []Outcome `json:"insertLines,omitempty"`
	UpdateLines    []Outcome `json:"updateLines,omitempty"`
	DeleteLines    []Outcome `json:"deleteLines,omitempty"`
}

// BatchInvoice applies invoice and line operations in dependency order:
// invoice inserts first so new lines can land on them, line deletes before
// invoice updates, invoice deletes last.
func (e *Engine) BatchInvoice(input BatchInvoiceInput) BatchInvoiceResult {
	var res BatchInvoiceResult

	for _, in := range input.InsertInvoices {
		node, err := e.InsertInvoice(in)
		res.InsertInvoices = append(res.InsertInvoices, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.InsertLines {
		node, err := e.InsertInvoiceLine(in)
		res.InsertLines = append(res.InsertLines, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.UpdateLines {
		node, err := e.UpdateInvoiceLine(in)
		res.UpdateLines = append(res.UpdateLines, outcome(in.ID, node, err, in.ID))
	}
	for _, lineID := range input.DeleteLines {
		err := e.DeleteInvoiceLine(lineID)
		res.DeleteLines = append(res.DeleteLines, outcome(lineID, nil, err, lineID))
	}
	for _, in := range input.UpdateInvoices {
		node, err := e.UpdateInvoice(in)
		res.UpdateInvoices = append(res.UpdateInvoices, outcome(in.ID, node, err, in.ID))
	}
	for _, invoiceID := range input.DeleteInvoices {
		err := e.DeleteInvoice(invoiceID)
		res.DeleteInvoices = append(res.DeleteInvoices, outcome(invoiceID, nil, err, invoiceID))
	}
	return res
}

// BatchStocktakeInput bundles stocktake and stocktake line operations.
type BatchStocktakeInput struct {
	InsertStocktakes []StocktakeInput      `json:"insertStocktakes,omitempty"`
	UpdateStocktakes []StocktakeUpdate     `json:"updateStocktakes,omitempty"`
	DeleteStocktakes []string              `json:"deleteStocktakes,omitempty"`
	InsertLines      []StocktakeLineInput  `json:"insertLines,omitempty"`
	UpdateLines      []StocktakeLineUpdate `json:"updateLines,omitempty"`
	DeleteLines      []string              `json:"deleteLines,omitempty"`
}

// BatchStocktakeResult mirrors BatchStocktakeInput with one outcome per input.
type BatchStocktakeResult struct {
	InsertStocktakes []Outcome `json:"insertStocktakes,omitempty"`
	UpdateStocktakes []Outcome `json:"updateStocktakes,omitempty"`
	DeleteStocktakes []Outcome `json:"deleteStocktakes,omitempty"`
	InsertLines      []Outcome `json:"insertLines,omitempty"`
	UpdateLines      []Outcome `json:"updateLines,omitempty"`
	DeleteLines      []Outcome `json:"deleteLines,omitempty"`
}

// BatchStocktake applies stocktake and line operations in dependency order.
func (e *Engine) BatchStocktake(input BatchStocktakeInput) BatchStocktakeResult {
	var res BatchStocktakeResult

	for _, in := range input.InsertStocktakes {
		node, err := e.InsertStocktake(in)
		res.InsertStocktakes = append(res.InsertStocktakes, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.InsertLines {
		node, err := e.InsertStocktakeLine(in)
		res.InsertLines = append(res.InsertLines, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.UpdateLines {
		node, err := e.UpdateStocktakeLine(in)
		res.UpdateLines = append(res.UpdateLines, outcome(in.ID, node, err, in.ID))
	}
	for _, lineID := range input.DeleteLines {
		err := e.DeleteStocktakeLine(lineID)
		res.DeleteLines = append(res.DeleteLines, outcome(lineID, nil, err, lineID))
	}
	for _, in := range input.UpdateStocktakes {
		node, err := e.UpdateStocktake(in)
		res.UpdateStocktakes = append(res.UpdateStocktakes, outcome(in.ID, node, err, in.ID))
	}
	for _, stID := range input.DeleteStocktakes {
		err := e.DeleteStocktake(stID)
		res.DeleteStocktakes = append(res.DeleteStocktakes, outcome(stID, nil, err, stID))
	}
	return res
}

// BatchRequisitionInput bundles requisition and requisition line operations.
type BatchRequisitionInput struct {
	InsertRequisitions []RequisitionInput      `json:"insertRequisitions,omitempty"`
	UpdateRequisitions []RequisitionUpdate     `json:"updateRequisitions,omitempty"`
	DeleteRequisitions []string                `json:"deleteRequisitions,omitempty"`
	InsertLines        []RequisitionLineInput  `json:"insertLines,omitempty"`
	UpdateLines        []RequisitionLineUpdate `json:"updateLines,omitempty"`
	DeleteLines        []string                `json:"deleteLines,omitempty"`
}

// BatchRequisitionResult mirrors BatchRequisitionInput with one outcome per
// input.
type BatchRequisitionResult struct {
	InsertRequisitions []Outcome `json:"insertRequisitions,omitempty"`
	UpdateRequisitions []Outcome `json:"updateRequisitions,omitempty"`
	DeleteRequisitions []Outcome `json:"deleteRequisitions,omitempty"`
	InsertLines        []Outcome `json:"insertLines,omitempty"`
	UpdateLines        []Outcome `json:"updateLines,omitempty"`
	DeleteLines        []Outcome `json:"deleteLines,omitempty"`
}

// BatchRequisition applies requisition and line operations in dependency
// order.
func (e *Engine) BatchRequisition(input BatchRequisitionInput) BatchRequisitionResult {
	var res BatchRequisitionResult

	for _, in := range input.InsertRequisitions {
		node, err := e.InsertRequisition(in)
		res.InsertRequisitions = append(res.InsertRequisitions, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.InsertLines {
		node, err := e.InsertRequisitionLine(in)
		res.InsertLines = append(res.InsertLines, outcome(node.ID, node, err, in.ID))
	}
	for _, in := range input.UpdateLines {
		node, err := e.UpdateRequisitionLine(in)
		res.UpdateLines = append(res.UpdateLines, outcome(in.ID, node, err, in.ID))
	}
	for _, lineID := range input.DeleteLines {
		err := e.DeleteRequisitionLine(lineID)
		res.DeleteLines = append(res.DeleteLines, outcome(lineID, nil, err, lineID))
	}
	for _, in := range input.UpdateRequisitions {
		node, err := e.UpdateRequisition(in)
		res.UpdateRequisitions = append(res.UpdateRequisitions, outcome(in.ID, node, err, in.ID))
	}
	for _, reqID := range input.DeleteRequisitions {
		err := e.DeleteRequisition(reqID)
		res.DeleteRequisitions = append(res.DeleteRequisitions, outcome(reqID, nil, err, reqID))
	}
	return res
}

// outcome keys a result by the identifier produced by the operation, falling
// back to the input identifier when the operation failed before assigning
// one.
func outcome(resultID string, node any, err error, inputID string) Outcome {
	if err != nil {
		return Outcome{ID: inputID, Err: err}
	}
	return Outcome{ID: resultID, Node: node}
}
