package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
)

// FieldFunc resolves one top-level field. It receives the field's arguments
// with variables substituted and returns data to be projected through the
// request's selection set.
type FieldFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Executor executes GraphQL operations against registered field resolvers.
type Executor struct {
	schema *Schema
	fields map[string]FieldFunc // "Query.items" -> resolver
	log    *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(log *slog.Logger) ExecutorOption {
	return func(e *Executor) { e.log = log }
}

// NewExecutor creates an executor for the given schema.
func NewExecutor(schema *Schema, opts ...ExecutorOption) *Executor {
	e := &Executor{
		schema: schema,
		fields: make(map[string]FieldFunc),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register binds a resolver to a field path such as "Query.items" or
// "Mutation.insertInvoice".
func (e *Executor) Register(path string, fn FieldFunc) {
	e.fields[path] = fn
}

// Execute runs a GraphQL request and returns a response.
func (e *Executor) Execute(ctx context.Context, req *Request) *Response {
	if req == nil || req.Query == "" {
		return &Response{Errors: []Error{{Message: "query is required"}}}
	}

	doc, err := e.parseQuery(req.Query)
	if err != nil {
		return &Response{Errors: []Error{{Message: err.Error()}}}
	}

	var op *ast.OperationDefinition
	for _, opDef := range doc.Operations {
		if req.OperationName == "" || opDef.Name == req.OperationName {
			op = opDef
			break
		}
	}
	if op == nil {
		if req.OperationName != "" {
			return &Response{Errors: []Error{{Message: fmt.Sprintf("operation %q not found", req.OperationName)}}}
		}
		return &Response{Errors: []Error{{Message: "no operation found in query"}}}
	}

	var opType string
	switch op.Operation {
	case ast.Query:
		opType = "Query"
	case ast.Mutation:
		opType = "Mutation"
	default:
		return &Response{Errors: []Error{{Message: "unsupported operation type"}}}
	}

	data, errs := e.executeRoot(ctx, doc, opType, op.SelectionSet, req.Variables)
	resp := &Response{Data: data}
	resp.Errors = errs
	return resp
}

// parseQuery parses and validates a query against the schema.
func (e *Executor) parseQuery(query string) (*ast.QueryDocument, error) {
	doc, parseErr := gqlparser.LoadQuery(e.schema.AST(), query)
	if parseErr != nil {
		if len(parseErr) > 0 {
			return nil, fmt.Errorf("parse error: %s", parseErr[0].Message)
		}
		return nil, fmt.Errorf("parse error")
	}
	if validationErrs := validator.Validate(e.schema.AST(), doc); len(validationErrs) > 0 {
		return nil, fmt.Errorf("validation error: %s", validationErrs[0].Message)
	}
	return doc, nil
}

// executeRoot resolves each top-level field and projects the result through
// the field's selection set.
func (e *Executor) executeRoot(ctx context.Context, doc *ast.QueryDocument, opType string, selections ast.SelectionSet, variables map[string]interface{}) (map[string]interface{}, []Error) {
	result := make(map[string]interface{})
	var errs []Error

	for _, sel := range expandSelections(doc, selections) {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}

		if field.Name == "__typename" {
			result[alias] = opType
			continue
		}

		path := opType + "." + field.Name
		fn, ok := e.fields[path]
		if !ok {
			errs = append(errs, Error{
				Message: fmt.Sprintf("no resolver registered for %s", path),
				Path:    []interface{}{alias},
			})
			result[alias] = nil
			continue
		}

		args := e.extractArguments(field, variables)
		value, err := fn(ctx, args)
		if err != nil {
			e.log.Debug("field resolution failed", "path", path, "error", err)
			errs = append(errs, Error{Message: err.Error(), Path: []interface{}{alias}})
			result[alias] = nil
			continue
		}

		var fieldType *ast.Definition
		if def := e.schema.GetField(opType, field.Name); def != nil {
			fieldType = e.schema.GetType(def.Type.Name())
		}
		result[alias] = e.project(doc, field.SelectionSet, fieldType, toJSONValue(value))
	}

	return result, errs
}

// project filters resolved data down to the requested selection set,
// applying aliases and resolving fragments against the data's __typename.
func (e *Executor) project(doc *ast.QueryDocument, selections ast.SelectionSet, typ *ast.Definition, data interface{}) interface{} {
	if len(selections) == 0 || data == nil {
		return data
	}

	switch v := data.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = e.project(doc, selections, typ, elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{})
		e.projectInto(doc, selections, typ, v, out)
		return out
	default:
		return data
	}
}

func (e *Executor) projectInto(doc *ast.QueryDocument, selections ast.SelectionSet, typ *ast.Definition, src, out map[string]interface{}) {
	concrete := e.concreteType(typ, src)

	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			alias := s.Alias
			if alias == "" {
				alias = s.Name
			}

			if s.Name == "__typename" {
				out[alias] = e.typename(concrete, src)
				continue
			}

			raw, ok := src[s.Name]
			if !ok {
				out[alias] = nil
				continue
			}
			if len(s.SelectionSet) == 0 {
				out[alias] = raw
				continue
			}

			var childType *ast.Definition
			if concrete != nil {
				if def := fieldDef(concrete, s.Name); def != nil {
					childType = e.schema.GetType(def.Type.Name())
				}
			}
			out[alias] = e.project(doc, s.SelectionSet, childType, raw)

		case *ast.InlineFragment:
			if e.fragmentApplies(s.TypeCondition, concrete, src) {
				e.projectInto(doc, s.SelectionSet, typ, src, out)
			}

		case *ast.FragmentSpread:
			frag := doc.Fragments.ForName(s.Name)
			if frag != nil && e.fragmentApplies(frag.TypeCondition, concrete, src) {
				e.projectInto(doc, frag.SelectionSet, typ, src, out)
			}
		}
	}
}

// concreteType narrows an abstract type to the data's actual type using the
// __typename discriminant.
func (e *Executor) concreteType(typ *ast.Definition, src map[string]interface{}) *ast.Definition {
	if typ == nil {
		return nil
	}
	if typ.Kind != ast.Union && typ.Kind != ast.Interface {
		return typ
	}
	if name, ok := src["__typename"].(string); ok {
		if def := e.schema.GetType(name); def != nil {
			return def
		}
	}
	return typ
}

func (e *Executor) typename(concrete *ast.Definition, src map[string]interface{}) interface{} {
	if name, ok := src["__typename"].(string); ok {
		return name
	}
	if concrete != nil {
		return concrete.Name
	}
	return nil
}

// fragmentApplies reports whether a fragment's type condition matches the
// data being projected.
func (e *Executor) fragmentApplies(condition string, typ *ast.Definition, src map[string]interface{}) bool {
	if condition == "" {
		return true
	}
	actual, ok := src["__typename"].(string)
	if !ok && typ != nil {
		actual = typ.Name
	}
	if condition == actual {
		return true
	}
	return e.schema.UnionHas(condition, actual)
}

func fieldDef(typ *ast.Definition, name string) *ast.FieldDefinition {
	for _, field := range typ.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// expandSelections flattens fragment spreads and inline fragments at the
// operation root, where no type condition can exclude them.
func expandSelections(doc *ast.QueryDocument, selections ast.SelectionSet) ast.SelectionSet {
	var expanded ast.SelectionSet
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			expanded = append(expanded, s)
		case *ast.FragmentSpread:
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				expanded = append(expanded, expandSelections(doc, frag.SelectionSet)...)
			}
		case *ast.InlineFragment:
			expanded = append(expanded, expandSelections(doc, s.SelectionSet)...)
		}
	}
	return expanded
}

// extractArguments materializes a field's arguments with variables applied.
func (e *Executor) extractArguments(field *ast.Field, variables map[string]interface{}) map[string]interface{} {
	args := make(map[string]interface{})
	for _, arg := range field.Arguments {
		args[arg.Name] = e.resolveValue(arg.Value, variables)
	}
	return args
}

// resolveValue resolves an AST value to a Go value.
func (e *Executor) resolveValue(value *ast.Value, variables map[string]interface{}) interface{} {
	if value == nil {
		return nil
	}

	switch value.Kind {
	case ast.Variable:
		if variables != nil {
			return variables[value.Raw]
		}
		return nil
	case ast.IntValue:
		var n int64
		_, _ = fmt.Sscanf(value.Raw, "%d", &n)
		return n
	case ast.FloatValue:
		var f float64
		_, _ = fmt.Sscanf(value.Raw, "%f", &f)
		return f
	case ast.StringValue, ast.BlockValue:
		return value.Raw
	case ast.BooleanValue:
		return value.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.EnumValue:
		return value.Raw
	case ast.ListValue:
		var list []interface{}
		for _, child := range value.Children {
			list = append(list, e.resolveValue(child.Value, variables))
		}
		return list
	case ast.ObjectValue:
		obj := make(map[string]interface{})
		for _, child := range value.Children {
			obj[child.Name] = e.resolveValue(child.Value, variables)
		}
		return obj
	default:
		return value.Raw
	}
}

// toJSONValue normalizes resolver output to maps, slices, and scalars so the
// projector sees the same shapes the wire encoding would carry.
func toJSONValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
