package filter

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/shurizzle/twitch-api2/types"
)

// exprFilter implements Filter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[Filter](size)
		}
	}
}

// WithCustomFunctions adds helper functions available to expressions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[Filter]
}

// Compile compiles an expression into a filter. The expression must
// evaluate to a boolean.
func (c *exprCompiler) Compile(expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // record fields are only known at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Match evaluates the filter against a record
func (f *exprFilter) Match(record any) (bool, error) {
	env, err := recordEnvironment(record, f.helpers)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Index: -1, Reason: "record is not an object", Err: err}
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Index: -1, Reason: "failed to run expression", Err: err}
	}
	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expression, Index: -1, Reason: fmt.Sprintf("expression returned %T, not bool", result)}
	}
	return matched, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers. Helix timestamps are RFC3339 strings.
	funcs["daysSince"] = func(ts string) int {
		t := types.Timestamp(ts).Time()
		if t.IsZero() {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["hoursSince"] = func(ts string) int {
		t := types.Timestamp(ts).Time()
		if t.IsZero() {
			return -1
		}
		return int(time.Since(t).Hours())
	}
	funcs["parseTime"] = func(ts string) time.Time {
		return types.Timestamp(ts).Time()
	}
	funcs["now"] = time.Now

	// String helpers, case-insensitive
	funcs["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	// Replaced per record in recordEnvironment.
	funcs["hasTag"] = func(string) bool { return false }

	return funcs
}

// recordEnvironment exposes the JSON fields of record next to the helper
// functions. Helpers win on a name clash.
func recordEnvironment(record any, helpers map[string]any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	env := make(map[string]any, len(fields)+len(helpers))
	maps.Copy(env, fields)
	maps.Copy(env, helpers)
	env["hasTag"] = createHasTagFunc(fields["tags"])
	return env, nil
}

func createHasTagFunc(raw any) func(string) bool {
	list, _ := raw.([]any)
	tags := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			tags = append(tags, strings.ToLower(s))
		}
	}
	return func(tag string) bool {
		return slices.Contains(tags, strings.ToLower(tag))
	}
}
