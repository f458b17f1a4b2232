package request

// ListSalesRequest filtra el historial de ventas. Fechas en formato YYYY-MM-DD,
// rango [from, to] inclusivo por día.
type ListSalesRequest struct {
	From          string `form:"from"`
	To            string `form:"to"`
	PaymentMethod string `form:"payment_method"`
	Limit         int    `form:"limit"`
}
