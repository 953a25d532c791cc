package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/loyalty"
)

// Califica exactamente cuando (contador+1) % 5 == 0: la venta por cerrarse
// sería la 5ª, 10ª, 15ª... del canal.
func TestQualifiesForReward_Cadencia(t *testing.T) {
	for count := int64(0); count < 12; count++ {
		c := &entity.Customer{PickupSalesCount: count}
		want := (count+1)%5 == 0
		got := loyalty.QualifiesForReward(c, entity.OrderTypePickup)
		assert.Equal(t, want, got, "contador pickup = %d", count)
	}
}

// Los contadores por canal son independientes: calificar en delivery no
// depende del contador de pickup ni al revés.
func TestQualifiesForReward_CanalesIndependientes(t *testing.T) {
	c := &entity.Customer{PickupSalesCount: 4, DeliverySalesCount: 7}

	assert.True(t, loyalty.QualifiesForReward(c, entity.OrderTypePickup),
		"quinta venta pickup debe calificar")
	assert.False(t, loyalty.QualifiesForReward(c, entity.OrderTypeDelivery),
		"octava venta delivery no debe calificar")

	c = &entity.Customer{PickupSalesCount: 2, DeliverySalesCount: 9}
	assert.False(t, loyalty.QualifiesForReward(c, entity.OrderTypePickup))
	assert.True(t, loyalty.QualifiesForReward(c, entity.OrderTypeDelivery),
		"décima venta delivery debe calificar")
}

func TestQualifiesForReward_ClienteNil(t *testing.T) {
	assert.False(t, loyalty.QualifiesForReward(nil, entity.OrderTypePickup))
}

// floor(total * 0.10): 259.90 → 25 puntos; montos menores a 10 no otorgan.
func TestPointsForTotal(t *testing.T) {
	cases := []struct {
		total string
		want  int64
	}{
		{"259.90", 25},
		{"100", 10},
		{"99.99", 9},
		{"9.99", 0},
		{"0", 0},
		{"-50", 0},
	}
	for _, tc := range cases {
		total, _ := decimal.NewFromString(tc.total)
		assert.Equal(t, tc.want, loyalty.PointsForTotal(total), "total %s", tc.total)
	}
}

func TestDefaultRewards_CatalogoFijo(t *testing.T) {
	assert.NotEmpty(t, loyalty.DefaultRewards)
	for _, r := range loyalty.DefaultRewards {
		assert.NotEmpty(t, r.SKU)
		assert.NotEmpty(t, r.Name)
	}
}
