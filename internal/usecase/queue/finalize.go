package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	saleDomain "github.com/corteexpress/barberia-api/internal/domain/sale"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

// PaymentGateway registra el pago externo cuando el método lo requiere.
type PaymentGateway interface {
	Enabled() bool
	RegisterTransfer(
		ctx context.Context,
		amount decimal.Decimal,
		receipt string,
		description string,
	) (string, error)
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FinalizeItemInput struct {
	ID       uint
	Cantidad int
}

type FinalizeInput struct {
	MetodoPago     string
	Notas          string
	ServiciosExtra []FinalizeItemInput
	Productos      []FinalizeItemInput
}

type FinalizeOutput struct {
	Sale *models.Sale

	// Warning no bloquea: el fiado se registra como venta pendiente de
	// cobro y se avisa al barbero.
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

type Finalize struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	gateway  PaymentGateway
}

func NewFinalize(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	gateway PaymentGateway,
) *Finalize {
	return &Finalize{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		gateway:  gateway,
	}
}

// Execute cierra la cita en servicio registrando la venta completa en una
// sola transacción. No hay ventas parciales: cualquier fallo deja cita y
// stock intactos.
func (uc *Finalize) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	in FinalizeInput,
) (*FinalizeOutput, error) {

	if !saleDomain.ValidPaymentMethod(in.MetodoPago) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// Solo la cita actualmente en servicio puede finalizar; se corta acá,
	// antes de armar el carrito o tocar la pasarela.
	if err := domain.CanFinalize(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarberByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Carrito: servicio principal + extras + productos
	// --------------------------------------------------

	cart := saleDomain.NewCart(ap.Service)

	for _, extra := range in.ServiciosExtra {
		svc, err := uc.repo.GetService(ctx, barbershopID, extra.ID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if err := cart.AddService(*svc, extra.Cantidad); err != nil {
			return nil, err
		}
	}

	stock := make(map[uint]int, len(in.Productos))
	for _, item := range in.Productos {
		product, err := uc.repo.GetProduct(ctx, barbershopID, item.ID)
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		if err := cart.AddProduct(*product, item.Cantidad); err != nil {
			return nil, err
		}
		stock[product.ID] += item.Cantidad
	}

	// --------------------------------------------------
	// Bono de fidelidad: marca en la cita + créditos del cliente
	// --------------------------------------------------

	bonusEligible := false
	if ap.LoyaltyBonus {
		client, err := uc.repo.GetClientByID(ctx, ap.ClientID)
		if err != nil {
			return nil, err
		}
		bonusEligible = client.FreeCutCredits > 0
	}

	totals := cart.Totals(barber.CommissionRate, bonusEligible)

	// --------------------------------------------------
	// Cierre de la cita + venta
	// --------------------------------------------------

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Finalize(ap, now); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		Receipt:       uuid.NewString(),
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		ClientID:      ap.ClientID,
		AppointmentID: ap.ID,
		PaymentMethod: in.MetodoPago,
		Notes:         in.Notas,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Commission:    totals.Commission,
		BonusApplied:  bonusEligible,
	}

	for _, li := range cart.Items() {
		sale.Items = append(sale.Items, models.SaleItem{
			Kind:      string(li.Kind),
			RefID:     li.RefID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Subtotal:  li.Subtotal(),
			Principal: li.Principal,
		})
	}

	if err := uc.repo.CreateSaleAndComplete(ctx, ap, sale, stock, bonusEligible); err != nil {
		return nil, err
	}

	// La pasarela corre después del commit: si la venta no entra, no se
	// registra ningún pago en el proveedor. Un fallo acá no bloquea el
	// cierre; la venta queda sin referencia y se concilia a mano.
	if in.MetodoPago == saleDomain.PaymentTransfer && uc.gateway != nil && uc.gateway.Enabled() {
		providerID, err := uc.gateway.RegisterTransfer(
			ctx,
			totals.Total,
			sale.Receipt,
			"Venta "+shop.Name,
		)
		if err != nil {
			log.Warn().Err(err).Str("receipt", sale.Receipt).Msg("payment gateway failed")
		} else {
			sale.ProviderPaymentID = providerID
			if err := uc.repo.SetSaleProviderPayment(ctx, sale.ID, providerID); err != nil {
				log.Warn().Err(err).Str("receipt", sale.Receipt).Msg("failed to store provider payment id")
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "sale_finalized",
		Entity:       "sale",
		EntityID:     &sale.ID,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"total":          totals.Total,
			"payment_method": in.MetodoPago,
		},
	})
	uc.notifier.AppointmentChanged(ctx, barberID, ap.ID, "finalized")

	out := &FinalizeOutput{Sale: sale}
	if in.MetodoPago == saleDomain.PaymentCredit {
		out.Warning = "Venta registrada como fiado: queda pendiente de cobro."
	}

	return out, nil
}
