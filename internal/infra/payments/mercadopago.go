package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Gateway registra pagos por transferencia en Mercado Pago. Sin access token
// queda deshabilitada y la venta se guarda sin referencia de proveedor.
type Gateway struct {
	client payment.Client
}

func NewGateway(accessToken string) (*Gateway, error) {
	if accessToken == "" {
		log.Info().Msg("mercado pago gateway disabled (no access token)")
		return &Gateway{}, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Gateway{client: payment.NewClient(cfg)}, nil
}

func (g *Gateway) Enabled() bool {
	return g != nil && g.client != nil
}

// RegisterTransfer crea el pago y devuelve el id del proveedor. El recibo de
// la venta viaja como referencia externa para conciliar después.
func (g *Gateway) RegisterTransfer(
	ctx context.Context,
	amount decimal.Decimal,
	receipt string,
	description string,
) (string, error) {

	if !g.Enabled() {
		return "", nil
	}

	amt, _ := amount.Float64()

	resp, err := g.client.Create(ctx, payment.Request{
		TransactionAmount: amt,
		Description:       description,
		PaymentMethodID:   "pse",
		ExternalReference: receipt,
	})
	if err != nil {
		return "", err
	}

	log.Info().
		Int("provider_payment_id", resp.ID).
		Str("status", resp.Status).
		Msg("mercado pago payment registered")

	return fmt.Sprintf("%d", resp.ID), nil
}
