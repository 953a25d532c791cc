package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unidades canónicas de stock.
const (
	Gram       = "g"
	Kilogram   = "kg"
	Milliliter = "ml"
	Liter      = "l"
	Piece      = "pz"
)

// aliases mapea las variantes que aparecen en recetas e inventario
// (español, plurales, abreviaturas) a su unidad canónica.
var aliases = map[string]string{
	"g": Gram, "gr": Gram, "grs": Gram, "gramo": Gram, "gramos": Gram,
	"kg": Kilogram, "kgs": Kilogram, "kilo": Kilogram, "kilos": Kilogram,
	"kilogramo": Kilogram, "kilogramos": Kilogram,
	"ml": Milliliter, "mililitro": Milliliter, "mililitros": Milliliter,
	"l": Liter, "lt": Liter, "lts": Liter, "litro": Liter, "litros": Liter,
	"pz": Piece, "pza": Piece, "pzas": Piece, "pieza": Piece, "piezas": Piece,
	"unidad": Piece, "unidades": Piece, "u": Piece,
}

// factors contiene solo los pares de conversión que el dominio necesita:
// gramos↔kilogramos y mililitros↔litros (factor 1000).
var factors = map[string]map[string]decimal.Decimal{
	Gram:       {Kilogram: decimal.New(1, -3)}, // 0.001
	Kilogram:   {Gram: decimal.New(1000, 0)},
	Milliliter: {Liter: decimal.New(1, -3)},
	Liter:      {Milliliter: decimal.New(1000, 0)},
}

// Normalize lleva una unidad declarada a su forma canónica.
// Unidades desconocidas se devuelven en minúsculas sin espacios, tal cual.
func Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	if canonical, ok := aliases[u]; ok {
		return canonical
	}
	return u
}

// Convert convierte una cantidad de una unidad a otra. El segundo valor indica
// si el par está en la tabla de conversión; si no, devuelve la cantidad intacta.
func Convert(quantity decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	f := Normalize(from)
	t := Normalize(to)
	if f == t {
		return quantity, true
	}
	if factor, ok := factors[f][t]; ok {
		return quantity.Mul(factor), true
	}
	return quantity, false
}

// Cost calcula el costo de una cantidad declarada en receta contra el costo
// unitario del insumo en su unidad de stock.
//
// Si las unidades normalizan a la misma, o el par no está en la tabla de
// conversión, el costo cae a cantidad * costo unitario (1:1). Este fallback
// permisivo es parte del contrato: unidades mal declaradas producen costos
// silenciosamente incorrectos en lugar de un error.
func Cost(quantity decimal.Decimal, recipeUnit, stockUnit string, unitCost decimal.Decimal) decimal.Decimal {
	converted, _ := Convert(quantity, recipeUnit, stockUnit)
	return converted.Mul(unitCost)
}
