package request

// CustomerRequest crea o reemplaza los datos de un cliente.
// Campos de contacto vacíos se guardan como NULL.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
