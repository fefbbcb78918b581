package mutation

import "github.com/invmock/invmock/pkg/store"

// TotalPacksBoundary selects the lifecycle point at which a ledger adjustment
// reaches a stock line's totalNumberOfPacks. availableNumberOfPacks always
// moves once the invoice is past NEW; whether total moves with it or waits
// until the goods are physically handled differs between deployments, so it
// is a policy knob rather than a constant.
type TotalPacksBoundary string

// Boundary values.
const (
	// BoundaryPastNew moves total at the same point as available.
	BoundaryPastNew TotalPacksBoundary = "pastNew"
	// BoundaryPicked moves total only once the invoice reaches PICKED.
	BoundaryPicked TotalPacksBoundary = "picked"
)

// Policy carries the per-deployment ledger knobs.
type Policy struct {
	TotalPacks TotalPacksBoundary `json:"totalPacks" yaml:"totalPacks"`
}

// DefaultPolicy moves total and available at the same boundary.
func DefaultPolicy() Policy {
	return Policy{TotalPacks: BoundaryPastNew}
}

// TotalApplies reports whether a ledger effect reaches totalNumberOfPacks at
// the given invoice status.
func (p Policy) TotalApplies(s store.InvoiceStatus) bool {
	if p.TotalPacks == BoundaryPicked {
		return s.Rank() >= store.StatusPicked.Rank()
	}
	return s.PastNew()
}
