package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store es un almacén en memoria para desarrollo sin base de datos.
// No tiene transacciones: no implementa port.SaleCommitter.
// Cada repositorio es una vista sobre el mismo estado y el mismo lock.
type Store struct {
	mu        sync.RWMutex
	products  map[uuid.UUID]entity.Product
	sales     map[uuid.UUID]entity.Sale
	customers map[uuid.UUID]entity.Customer
	settings  map[string]string
}

type (
	ProductRepository  struct{ s *Store }
	SaleRepository     struct{ s *Store }
	CustomerRepository struct{ s *Store }
	SettingsRepository struct{ s *Store }
)

var (
	_ port.ProductRepository  = (*ProductRepository)(nil)
	_ port.SaleRepository     = (*SaleRepository)(nil)
	_ port.CustomerRepository = (*CustomerRepository)(nil)
	_ port.SettingsRepository = (*SettingsRepository)(nil)
)

func (s *Store) Products() *ProductRepository   { return &ProductRepository{s: s} }
func (s *Store) Sales() *SaleRepository         { return &SaleRepository{s: s} }
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }
func (s *Store) Settings() *SettingsRepository  { return &SettingsRepository{s: s} }

func NewStore() *Store {
	return &Store{
		products:  make(map[uuid.UUID]entity.Product),
		sales:     make(map[uuid.UUID]entity.Sale),
		customers: make(map[uuid.UUID]entity.Customer),
		settings:  make(map[string]string),
	}
}

// NewSeeded crea un almacén con el catálogo de demostración del PDV
func NewSeeded() *Store {
	s := NewStore()
	demo := []struct {
		name     string
		price    string
		stock    int
		category string
	}{
		{"Coca-Cola 350ml", "2.50", 50, "Bebidas"},
		{"Pão Francês", "0.50", 100, "Padaria"},
		{"Leite Integral 1L", "4.20", 30, "Laticínios"},
		{"Arroz 5kg", "25.90", 20, "Grãos"},
		{"Feijão Preto 1kg", "8.50", 15, "Grãos"},
	}
	minStock := 10
	for _, p := range demo {
		s.PutProduct(entity.Product{
			ID:       uuid.New(),
			Name:     p.name,
			Price:    decimal.RequireFromString(p.price),
			Stock:    p.stock,
			Category: p.category,
			MinStock: &minStock,
		})
	}
	return s
}

// PutProduct agrega o reemplaza un producto
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	s.products[p.ID] = p
}

// PutCustomer agrega o reemplaza un cliente
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

func (r *ProductRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, entity.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Search(_ context.Context, term string) ([]*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Product
	for _, p := range s.products {
		if p.Matches(term) {
			p := p
			out = append(out, &p)
		}
	}
	sortProducts(out)
	return out, nil
}

func (r *ProductRepository) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Product
	for _, p := range s.products {
		if p.IsLowStock() {
			p := p
			out = append(out, &p)
		}
	}
	sortProducts(out)
	return out, nil
}

func sortProducts(products []*entity.Product) {
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
}

// DecrementStock es un compare-and-swap bajo el lock del almacén
func (r *ProductRepository) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return entity.ErrProductNotFound
	}
	if p.Stock < quantity {
		return entity.NewLineError(id, p.Name, entity.ErrInsufficientStock)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return nil
}

func (r *ProductRepository) SetStock(_ context.Context, id uuid.UUID, stock int) error {
	s := r.s
	if stock < 0 {
		return entity.ErrInvalidStockValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return entity.ErrProductNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return nil
}

// Create guarda una copia de la venta; los nombres de producto se conservan del snapshot
func (r *SaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sale
	stored.Items = append([]entity.SaleItem(nil), sale.Items...)
	s.sales[sale.ID] = stored
	return nil
}

func (r *SaleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales[id]
	if !ok {
		return nil, entity.ErrSaleNotFound
	}
	sale.Items = append([]entity.SaleItem(nil), sale.Items...)
	return &sale, nil
}

func (r *SaleRepository) List(_ context.Context, filter port.SaleFilter) ([]*entity.Sale, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Sale
	for _, sale := range s.sales {
		if filter.From != nil && sale.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !sale.CreatedAt.Before(*filter.To) {
			continue
		}
		if filter.PaymentMethod != nil && sale.PaymentMethod != *filter.PaymentMethod {
			continue
		}
		sale := sale
		sale.Items = append([]entity.SaleItem(nil), sale.Items...)
		out = append(out, &sale)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *SettingsRepository) All(_ context.Context) (map[string]string, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		values[k] = v
	}
	return values, nil
}

func (r *SettingsRepository) Upsert(_ context.Context, key, value string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, entity.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) Search(_ context.Context, term string) ([]*entity.Customer, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if c.Matches(term) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CustomerRepository) Create(_ context.Context, customer *entity.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) Update(_ context.Context, customer *entity.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.ID]; !ok {
		return entity.ErrCustomerNotFound
	}
	s.customers[customer.ID] = *customer
	return nil
}
