// Package docstore exposes collection-scoped CRUD over a document database.
//
// Documents are loosely typed maps keyed by camelCase field names. Backends differ in
// how they persist them but share the contract of Store: a missing document yields
// ErrNotFound and every other failure is reported as ErrUnavailable.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when the document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps network, auth and driver failures.
	ErrUnavailable = errors.New("document store unavailable")
)

// Direction orders List results.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Op is a comparison operator usable in a Filter.
type Op string

const (
	OpEqual        Op = "=="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
)

// Filter restricts List to documents whose field compares true against Value.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query describes a List call. Zero values mean no filter, natural order and no limit.
type Query struct {
	Where     []Filter
	OrderBy   string
	Direction Direction
	Limit     int
}

// Document is a stored record together with its store-assigned id.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store is implemented by every backend.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string, q Query) ([]Document, error)
	Create(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	// Update writes data under id, creating the document when absent. With merge the
	// fields not present in data are preserved; without it the document is replaced.
	Update(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateQuery(q Query) error {
	if q.OrderBy != "" && !fieldPattern.MatchString(q.OrderBy) {
		return fmt.Errorf("invalid order field %q", q.OrderBy)
	}
	for _, f := range q.Where {
		if !fieldPattern.MatchString(f.Field) {
			return fmt.Errorf("invalid filter field %q", f.Field)
		}
		switch f.Op {
		case OpEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		default:
			return fmt.Errorf("unsupported operator %q", f.Op)
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("negative limit %d", q.Limit)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
