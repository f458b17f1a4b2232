package entity

import "strings"

// Role es el papel del operador autenticado
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleViewer  Role = "viewer"
)

// Capability es una operación protegida del PDV
type Capability string

const (
	CapViewProducts    Capability = "view_products"
	CapProcessSales    Capability = "process_sales"
	CapManageProducts  Capability = "manage_products"
	CapViewReports     Capability = "view_reports"
	CapManageCustomers Capability = "manage_customers"
	CapManageSettings  Capability = "manage_settings"
	CapExportReports   Capability = "export_reports"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapViewProducts:    true,
		CapProcessSales:    true,
		CapManageProducts:  true,
		CapViewReports:     true,
		CapManageCustomers: true,
		CapManageSettings:  true,
		CapExportReports:   true,
	},
	RoleCashier: {
		CapViewProducts:    true,
		CapProcessSales:    true,
		CapManageProducts:  true,
		CapViewReports:     true,
		CapManageCustomers: true,
	},
	RoleViewer: {
		CapViewProducts: true,
	},
}

// ParseRole normaliza el papel recibido; un valor desconocido no tiene capacidades
func ParseRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// Can evalúa si el papel tiene la capacidad pedida
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}
