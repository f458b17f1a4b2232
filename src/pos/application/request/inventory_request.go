package request

// AdjustStockRequest reemplaza el stock de un producto
type AdjustStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// UpdateSettingRequest actualiza una clave de configuración
type UpdateSettingRequest struct {
	Value string `json:"value"`
}
