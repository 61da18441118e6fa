package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
)

func price(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func corte() models.Service {
	return models.Service{ID: 1, Name: "Corte clásico", Price: price(25000)}
}

func TestCartStartsWithPrincipal(t *testing.T) {
	cart := NewCart(corte())

	require.Equal(t, 1, cart.Len())
	li := cart.Items()[0]
	assert.True(t, li.Principal)
	assert.Equal(t, KindService, li.Kind)
	assert.Equal(t, 1, li.Quantity)
	assert.True(t, li.UnitPrice.Equal(price(25000)))
}

func TestCartPrincipalCannotBeRemoved(t *testing.T) {
	cart := NewCart(corte())

	err := cart.Remove(KindService, 1)
	assert.True(t, httperr.IsBusiness(err, "principal_item"))

	err = cart.Decrement(KindService, 1)
	assert.True(t, httperr.IsBusiness(err, "principal_item"))

	assert.Equal(t, 1, cart.Len())
}

func TestCartMergesQuantities(t *testing.T) {
	cart := NewCart(corte())
	barba := models.Service{ID: 2, Name: "Barba", Price: price(10000)}

	require.NoError(t, cart.AddService(barba, 1))
	require.NoError(t, cart.AddService(barba, 2))

	require.Equal(t, 2, cart.Len())
	var found *LineItem
	for _, li := range cart.Items() {
		if li.RefID == 2 {
			l := li
			found = &l
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 3, found.Quantity)
	assert.True(t, found.Subtotal().Equal(price(30000)))
}

func TestCartRespectsProductStock(t *testing.T) {
	cart := NewCart(corte())
	cera := models.Product{ID: 9, Name: "Cera", Price: price(8000), Stock: 3}

	require.NoError(t, cart.AddProduct(cera, 2))

	// 2 en el carrito + 2 pedidos > 3 en stock.
	err := cart.AddProduct(cera, 2)
	assert.True(t, httperr.IsBusiness(err, "insufficient_stock"))

	require.NoError(t, cart.AddProduct(cera, 1))
	assert.Equal(t, 2, cart.Len())
}

func TestCartDecrementRemovesAtZero(t *testing.T) {
	cart := NewCart(corte())
	gel := models.Product{ID: 5, Name: "Gel", Price: price(6000), Stock: 10}

	require.NoError(t, cart.AddProduct(gel, 1))
	require.NoError(t, cart.Decrement(KindProduct, 5))

	assert.Equal(t, 1, cart.Len())
	err := cart.Decrement(KindProduct, 5)
	assert.True(t, httperr.IsBusiness(err, "item_not_found"))
}

func TestTotalsWithLoyaltyBonus(t *testing.T) {
	cart := NewCart(corte())
	require.NoError(t, cart.AddService(models.Service{ID: 2, Name: "Barba", Price: price(10000)}, 1))
	require.NoError(t, cart.AddProduct(models.Product{ID: 9, Name: "Cera", Price: price(5000), Stock: 10}, 1))

	totals := cart.Totals(decimal.NewFromInt(10), true)

	assert.True(t, totals.Subtotal.Equal(price(40000)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Discount.Equal(price(15000)), "discount %s", totals.Discount)
	assert.True(t, totals.Total.Equal(price(25000)), "total %s", totals.Total)
	// La comisión sale del subtotal bruto, no del total con descuento.
	assert.True(t, totals.Commission.Equal(price(4000)), "commission %s", totals.Commission)
}

func TestTotalsWithoutBonus(t *testing.T) {
	cart := NewCart(corte())

	totals := cart.Totals(decimal.NewFromInt(50), false)

	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(price(25000)))
	assert.True(t, totals.Commission.Equal(price(12500)))
}

func TestTotalsDiscountClampsToSubtotal(t *testing.T) {
	cheap := models.Service{ID: 3, Name: "Retoque", Price: price(10000)}
	cart := NewCart(cheap)

	totals := cart.Totals(decimal.Zero, true)

	assert.True(t, totals.Discount.Equal(price(10000)))
	assert.True(t, totals.Total.IsZero())
	assert.False(t, totals.Total.IsNegative())
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentCash))
	assert.True(t, ValidPaymentMethod(PaymentTransfer))
	assert.True(t, ValidPaymentMethod(PaymentCredit))
	assert.False(t, ValidPaymentMethod("bitcoin"))
	assert.False(t, ValidPaymentMethod(""))
}
