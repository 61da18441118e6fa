package dto

import (
	"github.com/shopspring/decimal"

	"github.com/corteexpress/barberia-api/internal/models"
)

type SaleItemDTO struct {
	Kind      string          `json:"kind"`
	RefID     uint            `json:"ref_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Principal bool            `json:"principal"`
}

type SaleDTO struct {
	Receipt       string          `json:"receipt"`
	AppointmentID uint            `json:"appointment_id"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Commission    decimal.Decimal `json:"commission"`
	BonusApplied  bool            `json:"bonus_applied"`
	Items         []SaleItemDTO   `json:"items"`
}

func NewSaleDTO(s models.Sale) SaleDTO {
	items := make([]SaleItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemDTO{
			Kind:      it.Kind,
			RefID:     it.RefID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Principal: it.Principal,
		})
	}

	return SaleDTO{
		Receipt:       s.Receipt,
		AppointmentID: s.AppointmentID,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		Commission:    s.Commission,
		BonusApplied:  s.BonusApplied,
		Items:         items,
	}
}
