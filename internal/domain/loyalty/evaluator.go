package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// RewardCycle: cada cuántas ventas por canal se ofrece una recompensa.
const RewardCycle = 5

// pointsRate: puntos de lealtad por unidad monetaria del total de la orden.
var pointsRate = decimal.New(1, -1) // 0.10

// RewardOption es un artículo de cortesía que el operador puede agregar a la
// orden como línea de precio cero cuando la venta califica.
type RewardOption struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// DefaultRewards catálogo fijo de recompensas ofrecidas al calificar.
var DefaultRewards = []RewardOption{
	{SKU: "PROMO-BEBIDA", Name: "Bebida de la casa"},
	{SKU: "PROMO-POSTRE", Name: "Postre del día"},
	{SKU: "PROMO-GUARNICION", Name: "Guarnición extra"},
}

// QualifiesForReward decide si la venta que está por cerrarse califica para
// recompensa en su canal: la evaluación ocurre ANTES de confirmar la orden,
// con el contador como quedaría después de esta venta. Califica la 5ª, 10ª,
// 15ª... venta del canal. No muta estado, solo predice; el contador lo
// incrementa una llamada separada al finalizar la venta.
func QualifiesForReward(c *entity.Customer, channel string) bool {
	if c == nil {
		return false
	}
	count := c.PickupSalesCount
	if channel == entity.OrderTypeDelivery {
		count = c.DeliverySalesCount
	}
	return (count+1)%RewardCycle == 0
}

// PointsForTotal calcula los puntos de lealtad por el total de una orden:
// floor(total * 0.10). Totales negativos o cero no otorgan puntos.
func PointsForTotal(total decimal.Decimal) int64 {
	points := total.Mul(pointsRate).Floor().IntPart()
	if points < 0 {
		return 0
	}
	return points
}
