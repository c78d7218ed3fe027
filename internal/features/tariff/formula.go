package tariff

import (
	"context"
	"fmt"

	"go-dernek/pkg/utils"

	"github.com/d5/tengo/v2"
)

// CompileFormula checks a pricing script without running it.
func CompileFormula(formula string, base float64) error {
	script := tengo.NewScript([]byte(formula))
	if err := script.Add("taban", base); err != nil {
		return err
	}
	if err := script.Add("uye", map[string]interface{}{}); err != nil {
		return err
	}
	_, err := script.Compile()
	return err
}

// EvaluateFormula runs a pricing script against a member document.
// The script sees the flat amount as `taban` and the member as `uye`,
// and must assign the final price to `tutar`.
func EvaluateFormula(ctx context.Context, formula string, base float64, memberDoc map[string]interface{}) (float64, error) {
	if formula == "" {
		return utils.Round2(base), nil
	}

	script := tengo.NewScript([]byte(formula))

	if err := script.Add("taban", base); err != nil {
		return 0, fmt.Errorf("failed to bind taban: %w", err)
	}
	if err := script.Add("uye", memberDoc); err != nil {
		return 0, fmt.Errorf("failed to bind uye: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return 0, fmt.Errorf("failed to compile formula: %w", err)
	}

	if err := compiled.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("failed to run formula: %w", err)
	}

	result := compiled.Get("tutar")
	if result == nil || result.IsUndefined() {
		return 0, fmt.Errorf("formula did not assign tutar")
	}

	amount := result.Float()
	if amount < 0 {
		return 0, fmt.Errorf("formula produced a negative amount: %v", amount)
	}
	return utils.Round2(amount), nil
}
