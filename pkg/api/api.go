// Package api wires the query, resolver, mutation, and statistics engines
// onto the GraphQL executor. Each handler decodes its arguments into typed
// inputs, calls the engine, and converts domain errors into the typed error
// nodes of the response unions.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/invmock/invmock/pkg/graphql"
	"github.com/invmock/invmock/pkg/mutation"
	"github.com/invmock/invmock/pkg/resolve"
	"github.com/invmock/invmock/pkg/seed"
	"github.com/invmock/invmock/pkg/stats"
	"github.com/invmock/invmock/pkg/store"
)

// API exposes the engines as GraphQL field resolvers.
type API struct {
	store    *store.Store
	resolver *resolve.Resolver
	engine   *mutation.Engine
	stats    *stats.Aggregator
	seedCfg  seed.Config
	log      *slog.Logger
	now      func() time.Time
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the API's logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) { a.log = log }
}

// WithClock overrides the time source used when reseeding.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

// New assembles the API over one store.
func New(s *store.Store, engine *mutation.Engine, agg *stats.Aggregator, seedCfg seed.Config, opts ...Option) *API {
	a := &API{
		store:    s,
		resolver: resolve.New(s),
		engine:   engine,
		stats:    agg,
		seedCfg:  seedCfg,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register binds every query and mutation field onto the executor.
func (a *API) Register(e *graphql.Executor) {
	a.registerQueries(e)
	a.registerMutations(e)
}

// decodeArgs converts loosely typed argument maps into typed inputs through
// the JSON encoding, so the wire and the internal types always agree.
func decodeArgs(args map[string]interface{}, into interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

// decodeInput decodes the conventional single "input" argument.
func decodeInput(args map[string]interface{}, into interface{}) error {
	raw, err := json.Marshal(args["input"])
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func argID(args map[string]interface{}) string {
	id, _ := args["id"].(string)
	return id
}

// errorNode converts a domain error into the typed error node of the
// response unions. Unknown errors surface as InputError.
func errorNode(err error) map[string]interface{} {
	switch {
	case store.IsNotFound(err):
		return map[string]interface{}{
			"__typename":  "RecordNotFound",
			"description": err.Error(),
		}
	case store.IsAlreadyExists(err):
		return map[string]interface{}{
			"__typename":  "RecordAlreadyExist",
			"description": err.Error(),
		}
	case mutation.IsInvalidTransition(err):
		return map[string]interface{}{
			"__typename":  "InvalidTransition",
			"description": err.Error(),
		}
	case mutation.IsNotEligibleForDeletion(err):
		return map[string]interface{}{
			"__typename":  "NotEligibleForDeletion",
			"description": err.Error(),
		}
	}

	node := map[string]interface{}{
		"__typename":  "InputError",
		"description": err.Error(),
	}
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		node["field"] = verr.Field
	}
	return node
}

// nodeOrError returns the resolved node on success and the matching error
// node on failure, so response unions never surface transport errors for
// recoverable conditions.
func nodeOrError(node interface{}, err error) (interface{}, error) {
	if err != nil {
		return errorNode(err), nil
	}
	return node, nil
}

func deleteResponse(id string, err error) (interface{}, error) {
	if err != nil {
		return errorNode(err), nil
	}
	return map[string]interface{}{"__typename": "DeleteResponse", "id": id}, nil
}
