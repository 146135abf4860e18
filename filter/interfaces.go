// Package filter selects Helix records with expr-lang expressions.
//
// A record is any value that encodes to a JSON object, usually an entry of
// a response's Data. Its fields are exposed to the expression under their
// JSON names:
//
//	viewer_count > 1000 and lower(language) == "en"
//	hasTag("English") and daysSince(started_at) < 1
package filter

import "context"

// Filter is a compiled filter expression
type Filter interface {
	// Match reports whether record satisfies the expression.
	Match(record any) (bool, error)

	// Expression returns the source expression
	Expression() string
}

// Compiler compiles filter expressions
type Compiler interface {
	Compile(expression string) (Filter, error)
}

// CachingCompiler is a Compiler that keeps compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator runs a filter over a set of records.
type Evaluator[T any] interface {
	Evaluate(ctx context.Context, f Filter, records []T) ([]T, error)
}
