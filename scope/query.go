package scope

import "github.com/expr-lang/expr"

// Query evaluates an expr-lang expression against v. Members of an object
// become variables; any other value is bound to the variable data.
//
//	v.Query(`filter(items, .price > 10)`)
func (v Value) Query(expression string) (Value, error) {
	env := v.Env()

	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return Value{}, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return Value{}, err
	}

	return FromNative(out)
}

// Env returns v as an expression environment. See [Value.Query].
func (v Value) Env() map[string]any {
	if m, ok := v.Native().(map[string]any); ok {
		return m
	}

	return map[string]any{"data": v.Native()}
}
