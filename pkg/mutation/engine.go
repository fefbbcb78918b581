// Package mutation implements the write side of the engine: document
// lifecycle transitions and the stock-quantity ledger that invoice line
// mutations drive.
//
// Every operation runs under the store-wide mutation lock with a rollback
// journal, so a failed step leaves the store exactly as it was before the
// call. Successful results are re-resolved through the graph resolver so
// callers always see the same node shapes as reads.
package mutation

import (
	"io"
	"log/slog"
	"time"

	"github.com/invmock/invmock/internal/id"
	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/store"
)

// Engine applies mutations against one store.
type Engine struct {
	store    *store.Store
	resolver *resolve.Resolver
	policy   Policy
	log      *slog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the default ledger policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a mutation engine over the given store.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		resolver: resolve.New(s),
		policy:   DefaultPolicy(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InvoiceInput creates a shipment document. An empty ID is replaced with a
// generated one; an empty Status means NEW.
type InvoiceInput struct {
	ID             string              `json:"id,omitempty"`
	OtherPartyID   string              `json:"otherPartyId"`
	Type           store.InvoiceType   `json:"type"`
	Status         store.InvoiceStatus `json:"status,omitempty"`
	Comment        string              `json:"comment,omitempty"`
	TheirReference string              `json:"theirReference,omitempty"`
	OnHold         bool                `json:"onHold,omitempty"`
}

// InvoiceUpdate patches a shipment document. Nil fields are left unchanged.
type InvoiceUpdate struct {
	ID             string               `json:"id"`
	Status         *store.InvoiceStatus `json:"status,omitempty"`
	OtherPartyID   *string              `json:"otherPartyId,omitempty"`
	Comment        *string              `json:"comment,omitempty"`
	TheirReference *string              `json:"theirReference,omitempty"`
	OnHold         *bool                `json:"onHold,omitempty"`
}

// InsertInvoice creates an invoice and returns it resolved.
func (e *Engine) InsertInvoice(input InvoiceInput) (resolve.InvoiceNode, error) {
	var node resolve.InvoiceNode
	err := e.store.WithLock(func() error {
		if input.ID == "" {
			input.ID = id.UUID()
		}
		if e.store.Invoices.Has(input.ID) {
			return &store.AlreadyExistsError{Entity: "invoice", ID: input.ID}
		}
		if input.Type != store.InvoiceTypeInbound && input.Type != store.InvoiceTypeOutbound {
			return &store.ValidationError{Field: "type", Message: "type must be an inbound or outbound shipment"}
		}
		if _, err := e.store.Names.Get(input.OtherPartyID); err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = store.StatusNew
		}
		if status.Rank() < 0 {
			return &store.ValidationError{Field: "status", Message: "unknown invoice status " + string(status)}
		}

		inv := store.Invoice{
			ID:             input.ID,
			InvoiceNumber:  e.store.NextInvoiceNumber(),
			OtherPartyID:   input.OtherPartyID,
			Type:           input.Type,
			Status:         status,
			Comment:        input.Comment,
			TheirReference: input.TheirReference,
			OnHold:         input.OnHold,
			EntryDatetime:  e.now(),
		}
		e.stampStatusTimes(&inv)

		if err := e.store.Invoices.Insert(inv); err != nil {
			return err
		}
		e.log.Debug("invoice inserted", "id", inv.ID, "type", inv.Type, "status", inv.Status)

		var err error
		node, err = e.resolver.Invoice(inv.ID)
		return err
	})
	return node, err
}

// UpdateInvoice patches an invoice. Status changes must move forward through
// the lifecycle; each newly reached status gets its timestamp stamped once.
func (e *Engine) UpdateInvoice(upd InvoiceUpdate) (resolve.InvoiceNode, error) {
	var node resolve.InvoiceNode
	err := e.store.WithLock(func() error {
		inv, err := e.store.Invoices.Get(upd.ID)
		if err != nil {
			return err
		}

		if upd.Status != nil && *upd.Status != inv.Status {
			next := *upd.Status
			if next.Rank() < 0 {
				return &store.ValidationError{Field: "status", Message: "unknown invoice status " + string(next)}
			}
			if next.Rank() < inv.Status.Rank() {
				return &InvalidTransitionError{From: inv.Status, To: next}
			}
			inv.Status = next
			e.stampStatusTimes(&inv)
		}
		if upd.OtherPartyID != nil {
			if _, err := e.store.Names.Get(*upd.OtherPartyID); err != nil {
				return err
			}
			inv.OtherPartyID = *upd.OtherPartyID
		}
		if upd.Comment != nil {
			inv.Comment = *upd.Comment
		}
		if upd.TheirReference != nil {
			inv.TheirReference = *upd.TheirReference
		}
		if upd.OnHold != nil {
			inv.OnHold = *upd.OnHold
		}

		if _, err := e.store.Invoices.Update(inv); err != nil {
			return err
		}
		e.log.Debug("invoice updated", "id", inv.ID, "status", inv.Status)

		node, err = e.resolver.Invoice(inv.ID)
		return err
	})
	return node, err
}

// DeleteInvoice removes an invoice and all of its lines, reversing each
// line's ledger effect. Inbound invoices may only be deleted at NEW; outbound
// at NEW or ALLOCATED.
func (e *Engine) DeleteInvoice(invoiceID string) error {
	return e.store.WithLock(func() error {
		inv, err := e.store.Invoices.Get(invoiceID)
		if err != nil {
			return err
		}
		if !deleteEligible(inv) {
			return &NotEligibleForDeletionError{Entity: "invoice", ID: inv.ID, Status: string(inv.Status)}
		}

		j := store.NewJournal()
		for _, line := range e.store.InvoiceLinesByInvoice(inv.ID) {
			if _, err := e.deleteLineLocked(j, line.ID); err != nil {
				j.Rollback()
				return err
			}
		}
		store.RecordRemove(j, e.store.Invoices, inv.ID)
		if _, err := e.store.Invoices.Remove(inv.ID); err != nil {
			j.Rollback()
			return err
		}
		e.log.Debug("invoice deleted", "id", inv.ID)
		return nil
	})
}

func deleteEligible(inv store.Invoice) bool {
	switch inv.Type {
	case store.InvoiceTypeInbound:
		return inv.Status == store.StatusNew
	case store.InvoiceTypeOutbound:
		return inv.Status == store.StatusNew || inv.Status == store.StatusAllocated
	}
	return false
}

// stampStatusTimes records the first arrival at each status up to the
// invoice's current one. A jump from NEW to PICKED passes through ALLOCATED,
// so both get stamped.
func (e *Engine) stampStatusTimes(inv *store.Invoice) {
	now := e.now()
	rank := inv.Status.Rank()
	if rank >= store.StatusAllocated.Rank() && inv.AllocatedDatetime == nil {
		inv.AllocatedDatetime = &now
	}
	if rank >= store.StatusPicked.Rank() && inv.PickedDatetime == nil {
		inv.PickedDatetime = &now
	}
	if rank >= store.StatusShipped.Rank() && inv.ShippedDatetime == nil {
		inv.ShippedDatetime = &now
	}
	if rank >= store.StatusDelivered.Rank() && inv.DeliveredDatetime == nil {
		inv.DeliveredDatetime = &now
	}
}
