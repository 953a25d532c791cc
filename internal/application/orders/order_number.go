package orders

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// GenerateOrderNumber construye el número legible de una orden:
// prefijo de la tienda + fecha AAMMDD + sufijo pseudoaleatorio de 3 dígitos,
// p.ej. "CEN-250307-042" para "Central Kitchen" el 2025-03-07.
//
// No se garantiza unicidad: la probabilidad de colisión se acepta como baja
// y un número duplicado no es un error duro.
func GenerateOrderNumber(store *entity.Store, now time.Time) string {
	prefix := store.Prefix
	if prefix == "" {
		prefix = derivePrefix(store.Name)
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, now.Format("060102"), rand.Intn(1000))
}

// derivePrefix toma las primeras tres letras del nombre de la tienda.
func derivePrefix(name string) string {
	var b strings.Builder
	letters := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			letters++
			if letters == 3 {
				break
			}
		}
	}
	if letters == 0 {
		return "ORD"
	}
	return b.String()
}
