package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
)

const rule = "================================"

// Renderer arma el recibo de texto de una venta ya persistida.
// La configuración de la tienda se inyecta; no se lee de ningún estado global.
type Renderer struct {
	Settings entity.StoreSettings
	Location *time.Location // nil = hora local del servidor
}

func NewRenderer(settings entity.StoreSettings) *Renderer {
	return &Renderer{Settings: settings}
}

// Render retorna el recibo. customerName vacío omite la línea de cliente.
func (r *Renderer) Render(sale *entity.Sale, customerName string) string {
	money := r.Settings.FormatMoney
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", r.Settings.CompanyName)
	line(rule)
	line("RECIBO DE VENDA")
	line(rule)
	line("Venda #: %s", sale.ShortID())
	line("Data: %s", sale.CreatedAt.In(loc).Format("02/01/2006 15:04:05"))
	if customerName != "" {
		line("Cliente: %s", customerName)
	}
	line("Pagamento: %s", strings.ToUpper(string(sale.PaymentMethod)))
	line(rule)

	for i, item := range sale.Items {
		name := item.ProductName
		if name == "" {
			name = "Produto"
		}
		line("%d. %s", i+1, name)
		line("   %dx %s = %s", item.Quantity, money(item.UnitPrice), money(item.TotalPrice))
		if item.DiscountPercentage.IsPositive() {
			line("   Desconto: %s%%", item.DiscountPercentage.String())
		}
	}

	line(rule)
	line("Subtotal: %s", money(sale.Subtotal()))
	if sale.DiscountAmount.IsPositive() {
		line("Desconto: -%s", money(sale.DiscountAmount))
	}
	if sale.TaxAmount.IsPositive() {
		line("IVA (%s%%): %s", r.Settings.TaxRate.String(), money(sale.TaxAmount))
	}
	line("TOTAL: %s", money(sale.TotalAmount))

	if sale.Notes != nil && strings.TrimSpace(*sale.Notes) != "" {
		line(rule)
		line("Notas:")
		line("%s", *sale.Notes)
	}

	line(rule)
	line("%s", r.Settings.ReceiptFooter)
	return b.String()
}

// FileName es el nombre sugerido para descargar el recibo
func FileName(sale *entity.Sale) string {
	return "recibo-" + sale.ShortID() + ".txt"
}
