package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
)

// SettingsPostgresRepository persiste la tabla settings (key, value)
type SettingsPostgresRepository struct {
	db *sql.DB
}

func NewSettingsPostgresRepository(db *sql.DB) *SettingsPostgresRepository {
	return &SettingsPostgresRepository{db: db}
}

var _ port.SettingsRepository = (*SettingsPostgresRepository)(nil)

// All retorna todas las configuraciones guardadas
func (r *SettingsPostgresRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("error querying settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("error scanning setting: %w", err)
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return values, nil
}

// Upsert crea o actualiza una configuración
func (r *SettingsPostgresRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("error saving setting %s: %w", key, err)
	}
	return nil
}
