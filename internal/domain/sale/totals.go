package sale

import "github.com/shopspring/decimal"

// FixedLoyaltyDiscount es el monto fijo del bono de fidelidad (corte gratis).
var FixedLoyaltyDiscount = decimal.NewFromInt(15000)

// PaymentMethod válidos para una venta.
const (
	PaymentCash     = "efectivo"
	PaymentTransfer = "transferencia"
	PaymentCredit   = "fiado"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

type Totals struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Commission decimal.Decimal
}

// Totals calcula la venta. La comisión siempre sale del subtotal bruto; el
// descuento de fidelidad se recorta al subtotal para nunca dejar un total
// negativo.
func (c *Cart) Totals(commissionRate decimal.Decimal, bonusEligible bool) Totals {
	subtotal := decimal.Zero
	for _, li := range c.lines {
		subtotal = subtotal.Add(li.Subtotal())
	}

	discount := decimal.Zero
	if bonusEligible {
		discount = FixedLoyaltyDiscount
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	commission := subtotal.
		Mul(commissionRate).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return Totals{
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      total,
		Commission: commission,
	}
}
