package reports

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// DefaultLowStockRule is used when LOW_STOCK_RULE is not set.
const DefaultLowStockRule = "on_hand <= threshold"

// LowStockRule is a compiled predicate deciding whether a balance
// counts as low stock. The expression sees two variables:
//
//	on_hand   - current balance in base units
//	threshold - effective threshold (reorder point override or global)
//
// The rule is compiled once at startup; a bad expression fails fast.
//
// The rule only narrows the report. Candidates are pre-selected by the
// storage layer with on_hand <= threshold, and the rule filters those
// rows; an expression matching balances above the threshold has no
// rows to match.
type LowStockRule struct {
	expr string
	prg  cel.Program
}

// CompileLowStockRule compiles a CEL expression into a low-stock rule.
func CompileLowStockRule(expr string) (*LowStockRule, error) {
	env, err := cel.NewEnv(
		cel.Variable("on_hand", cel.DoubleType),
		cel.Variable("threshold", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("low stock rule env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("compile low stock rule %q: %w", expr, iss.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("low stock rule %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program low stock rule %q: %w", expr, err)
	}

	return &LowStockRule{expr: expr, prg: prg}, nil
}

// MustCompileLowStockRule compiles or panics. For the default rule and
// tests only.
func MustCompileLowStockRule(expr string) *LowStockRule {
	r, err := CompileLowStockRule(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// Eval applies the rule to one balance.
func (r *LowStockRule) Eval(onHand, threshold float64) (bool, error) {
	out, _, err := r.prg.Eval(map[string]any{
		"on_hand":   onHand,
		"threshold": threshold,
	})
	if err != nil {
		return false, fmt.Errorf("eval low stock rule %q: %w", r.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("low stock rule %q returned %T, want bool", r.expr, out.Value())
	}
	return b, nil
}

// String returns the source expression.
func (r *LowStockRule) String() string { return r.expr }
