package port

import "context"

// SettingsRepository persiste la configuración clave/valor de la tienda
type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
}
