package ledger

import (
	"github.com/shopspring/decimal"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
)

// unitDef describes a unit of measure: the base unit it converts to
// and the integer factor of base units per one input unit.
type unitDef struct {
	Base   string
	Factor int64
}

// unitTable is the fixed conversion table. Count units convert down to
// PCS; weight and volume units are their own base.
var unitTable = map[string]unitDef{
	"PCS":   {Base: "PCS", Factor: 1},
	"DOZEN": {Base: "PCS", Factor: 12},
	"GROSS": {Base: "PCS", Factor: 144},
	"KG":    {Base: "KG", Factor: 1},
	"LTR":   {Base: "LTR", Factor: 1},
}

// KnownUnit reports whether unit is in the conversion table.
func KnownUnit(unit string) bool {
	_, ok := unitTable[unit]
	return ok
}

// Conversion is the result of converting an input (qty, unit, cost)
// triple into the product's base unit.
//
// Invariant: QtyBase.Decimal() * UnitCostBase == qty * unitCost ==
// ValueTotal. ValueTotal is computed from the input pair, so the
// equality holds exactly even when the division for UnitCostBase does
// not terminate at display precision.
type Conversion struct {
	QtyBase      types.Quantity
	UnitBase     string
	UnitCostBase types.Money
	ValueTotal   types.Money
}

// Convert translates qty in unit into the product's base unit.
// unit must be convertible to baseUnit, otherwise VALIDATION_ERROR.
func Convert(qty types.Quantity, unit, baseUnit string, unitCost types.Money) (Conversion, error) {
	def, ok := unitTable[unit]
	if !ok {
		return Conversion{}, apperror.NewValidation("unknown unit").
			WithDetail("field", "unit").
			WithDetail("value", unit)
	}
	if def.Base != baseUnit {
		return Conversion{}, apperror.NewValidation("unit is not convertible to the product base unit").
			WithDetail("unit", unit).
			WithDetail("base_unit", baseUnit)
	}

	return Conversion{
		QtyBase:      qty.MulInt(def.Factor),
		UnitBase:     def.Base,
		UnitCostBase: unitCost.Div(decimal.NewFromInt(def.Factor)),
		ValueTotal:   qty.Decimal().Mul(unitCost),
	}, nil
}
