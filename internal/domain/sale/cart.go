package sale

import (
	"github.com/shopspring/decimal"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
)

type Kind string

const (
	KindService Kind = "service"
	KindProduct Kind = "product"
)

type LineItem struct {
	Kind      Kind
	RefID     uint
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal

	// El servicio reservado en la cita: no removible, cantidad mínima 1.
	Principal bool
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart arma la venta de una cita: siempre nace con el servicio principal y
// admite servicios extra y productos con merge de cantidades.
type Cart struct {
	lines []LineItem
}

// NewCart crea el carrito con el servicio reservado como item principal.
func NewCart(principal models.Service) *Cart {
	return &Cart{
		lines: []LineItem{{
			Kind:      KindService,
			RefID:     principal.ID,
			Name:      principal.Name,
			Quantity:  1,
			UnitPrice: principal.Price,
			Principal: true,
		}},
	}
}

// AddService suma un servicio extra; si ya está en el carrito solo acumula
// cantidad.
func (c *Cart) AddService(svc models.Service, quantity int) error {
	if quantity < 1 {
		return httperr.ErrBusiness("invalid_quantity")
	}

	if li := c.find(KindService, svc.ID); li != nil {
		li.Quantity += quantity
		return nil
	}

	c.lines = append(c.lines, LineItem{
		Kind:      KindService,
		RefID:     svc.ID,
		Name:      svc.Name,
		Quantity:  quantity,
		UnitPrice: svc.Price,
	})
	return nil
}

// AddProduct suma un producto sin superar el stock conocido.
func (c *Cart) AddProduct(p models.Product, quantity int) error {
	if quantity < 1 {
		return httperr.ErrBusiness("invalid_quantity")
	}

	current := 0
	if li := c.find(KindProduct, p.ID); li != nil {
		current = li.Quantity
	}
	if current+quantity > p.Stock {
		return httperr.ErrBusiness("insufficient_stock")
	}

	if li := c.find(KindProduct, p.ID); li != nil {
		li.Quantity += quantity
		return nil
	}

	c.lines = append(c.lines, LineItem{
		Kind:      KindProduct,
		RefID:     p.ID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.Price,
	})
	return nil
}

// Remove quita un item completo. El principal nunca se remueve.
func (c *Cart) Remove(kind Kind, refID uint) error {
	for i := range c.lines {
		if c.lines[i].Kind != kind || c.lines[i].RefID != refID {
			continue
		}
		if c.lines[i].Principal {
			return httperr.ErrBusiness("principal_item")
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	return httperr.ErrBusiness("item_not_found")
}

// Decrement resta una unidad; llegar a cero remueve el item. Bajar el
// principal de 1 es un error sin mutación.
func (c *Cart) Decrement(kind Kind, refID uint) error {
	for i := range c.lines {
		if c.lines[i].Kind != kind || c.lines[i].RefID != refID {
			continue
		}
		if c.lines[i].Principal && c.lines[i].Quantity <= 1 {
			return httperr.ErrBusiness("principal_item")
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return nil
	}
	return httperr.ErrBusiness("item_not_found")
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) find(kind Kind, refID uint) *LineItem {
	for i := range c.lines {
		if c.lines[i].Kind == kind && c.lines[i].RefID == refID {
			return &c.lines[i]
		}
	}
	return nil
}
