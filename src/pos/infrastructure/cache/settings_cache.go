package cache

import (
	"context"
	"log"
	"sync"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
)

// SettingsCache mantiene en memoria la configuración de la tienda.
// Arranca con los valores por defecto hasta el primer Load.
type SettingsCache struct {
	repo     port.SettingsRepository
	settings entity.StoreSettings
	mu       sync.RWMutex
}

// NewSettingsCache crea el cache con los valores por defecto
func NewSettingsCache(repo port.SettingsRepository) *SettingsCache {
	return &SettingsCache{
		repo:     repo,
		settings: entity.DefaultStoreSettings(),
	}
}

// Load lee todas las configuraciones del repositorio y reemplaza el snapshot.
// Si falla se conserva el snapshot anterior.
func (c *SettingsCache) Load(ctx context.Context) error {
	log.Println("🔄 Loading store settings into cache...")

	values, err := c.repo.All(ctx)
	if err != nil {
		log.Printf("⚠️  Warning: Could not load store settings: %v", err)
		return err
	}

	settings := entity.StoreSettingsFromMap(values)

	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()

	log.Printf("✅ Loaded %d store settings (currency=%s, tax=%s%%)",
		len(values), settings.Currency, settings.TaxRate.String())
	return nil
}

// Get retorna una copia de la configuración vigente
func (c *SettingsCache) Get() entity.StoreSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Update valida y persiste una clave y luego recarga el snapshot
func (c *SettingsCache) Update(ctx context.Context, key, value string) (entity.StoreSettings, error) {
	if err := entity.ValidateSetting(key, value); err != nil {
		return entity.StoreSettings{}, err
	}
	if err := c.repo.Upsert(ctx, key, value); err != nil {
		return entity.StoreSettings{}, err
	}
	if err := c.Load(ctx); err != nil {
		return entity.StoreSettings{}, err
	}
	return c.Get(), nil
}
