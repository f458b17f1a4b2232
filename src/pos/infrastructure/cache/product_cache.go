package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	DefaultProductCacheTTL = 30 * time.Second
	DefaultProductPrefix   = "pos:product:"
)

// ProductCache es un decorador read-through sobre ProductRepository.
// Solo FindByID pasa por Redis; toda escritura de stock invalida la entrada.
// Si Redis falla se degrada al repositorio sin cortar la venta.
type ProductCache struct {
	next   port.ProductRepository
	client *redis.Client
	ttl    time.Duration
	prefix string

	hits   int64
	misses int64
}

type ProductCacheOption func(*ProductCache)

// WithProductTTL fija la expiración de las entradas; valores <= 0 se ignoran
func WithProductTTL(ttl time.Duration) ProductCacheOption {
	return func(c *ProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithProductPrefix(prefix string) ProductCacheOption {
	return func(c *ProductCache) { c.prefix = prefix }
}

// NewProductCache envuelve el repositorio con cache en Redis
func NewProductCache(next port.ProductRepository, client *redis.Client, opts ...ProductCacheOption) *ProductCache {
	c := &ProductCache{
		next:   next,
		client: client,
		ttl:    DefaultProductCacheTTL,
		prefix: DefaultProductPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ port.ProductRepository  = (*ProductCache)(nil)
	_ port.ProductInvalidator = (*ProductCache)(nil)
)

func (c *ProductCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}

// FindByID consulta Redis y, en miss, el repositorio subyacente
func (c *ProductCache) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	val, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == nil {
		var p entity.Product
		if jsonErr := json.Unmarshal(val, &p); jsonErr == nil {
			atomic.AddInt64(&c.hits, 1)
			return &p, nil
		}
	} else if err != redis.Nil {
		log.Printf("⚠️  Redis unavailable for product %s: %v", id, err)
	}
	atomic.AddInt64(&c.misses, 1)

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
			log.Printf("⚠️  Could not cache product %s: %v", id, err)
		}
	}
	return p, nil
}

func (c *ProductCache) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	return c.next.Search(ctx, term)
}

func (c *ProductCache) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return c.next.ListLowStock(ctx)
}

func (c *ProductCache) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	err := c.next.DecrementStock(ctx, id, quantity)
	c.Invalidate(ctx, id)
	return err
}

func (c *ProductCache) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	err := c.next.SetStock(ctx, id, stock)
	c.Invalidate(ctx, id)
	return err
}

// Invalidate elimina las entradas de los productos indicados
func (c *ProductCache) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️  Could not invalidate %d cached products: %v", len(keys), err)
	}
}

// Stats retorna aciertos y fallos del cache
func (c *ProductCache) Stats() map[string]interface{} {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	stats := map[string]interface{}{
		"hits":   hits,
		"misses": misses,
	}
	if total := hits + misses; total > 0 {
		stats["hit_rate"] = fmt.Sprintf("%.2f", float64(hits)/float64(total))
	}
	return stats
}
