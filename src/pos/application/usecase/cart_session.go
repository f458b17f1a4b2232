package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/application/response"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsProvider entrega la configuración vigente de la tienda
type SettingsProvider interface {
	Get() entity.StoreSettings
}

type cartSession struct {
	mu        sync.Mutex // protege cart
	cart      *entity.Cart
	cashierID uuid.UUID
	lastSeen  time.Time // protegido por CartSessionUseCase.mu
}

// CartSessionUseCase mantiene en memoria un carrito por sesión de caja.
// Cada carrito tiene su propio lock; el mapa de sesiones tiene otro.
type CartSessionUseCase struct {
	products port.ProductRepository
	submit   *SubmitSaleUseCase
	settings SettingsProvider
	metrics  *metrics.SaleMetrics
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*cartSession
}

// NewCartSessionUseCase crea el gestor de sesiones. ttl <= 0 desactiva la expiración.
func NewCartSessionUseCase(
	products port.ProductRepository,
	submit *SubmitSaleUseCase,
	settings SettingsProvider,
	saleMetrics *metrics.SaleMetrics,
	ttl time.Duration,
) *CartSessionUseCase {
	return &CartSessionUseCase{
		products: products,
		submit:   submit,
		settings: settings,
		metrics:  saleMetrics,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*cartSession),
	}
}

// Open crea un carrito vacío para el operador
func (uc *CartSessionUseCase) Open(cashierID uuid.UUID) uuid.UUID {
	id := uuid.New()

	uc.mu.Lock()
	uc.sessions[id] = &cartSession{cart: entity.NewCart(), cashierID: cashierID, lastSeen: uc.now()}
	open := len(uc.sessions)
	uc.mu.Unlock()

	uc.metrics.SetOpenCarts(open)
	log.Printf("🛒 Cart %s opened by cashier %s", id, cashierID)
	return id
}

// Close descarta el carrito. Cerrar una sesión inexistente no es error.
func (uc *CartSessionUseCase) Close(id uuid.UUID) {
	uc.mu.Lock()
	delete(uc.sessions, id)
	open := len(uc.sessions)
	uc.mu.Unlock()

	uc.metrics.SetOpenCarts(open)
}

// withSession ejecuta fn con el carrito bloqueado
func (uc *CartSessionUseCase) withSession(id uuid.UUID, fn func(s *cartSession) error) error {
	uc.mu.Lock()
	s, ok := uc.sessions[id]
	if ok {
		s.lastSeen = uc.now()
	}
	uc.mu.Unlock()
	if !ok {
		return entity.ErrCartNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Get retorna las líneas y los totales con la tasa de la tienda y un descuento fijo opcional
func (uc *CartSessionUseCase) Get(id uuid.UUID, aggregateDiscount decimal.Decimal) (*response.CartResponse, error) {
	var resp *response.CartResponse
	err := uc.withSession(id, func(s *cartSession) error {
		var err error
		resp, err = uc.toResponse(id, s.cart, aggregateDiscount)
		return err
	})
	return resp, err
}

// AddItem carga el producto con su stock vigente y lo agrega al carrito
func (uc *CartSessionUseCase) AddItem(ctx context.Context, id uuid.UUID, req request.AddCartItemRequest) (*response.CartResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := uc.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	return uc.mutate(id, func(cart *entity.Cart) error {
		return cart.AddItem(*product, quantity)
	})
}

func (uc *CartSessionUseCase) SetQuantity(id, productID uuid.UUID, quantity int) (*response.CartResponse, error) {
	return uc.mutate(id, func(cart *entity.Cart) error {
		return cart.SetQuantity(productID, quantity)
	})
}

func (uc *CartSessionUseCase) RemoveItem(id, productID uuid.UUID) (*response.CartResponse, error) {
	return uc.mutate(id, func(cart *entity.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

func (uc *CartSessionUseCase) SetDiscount(id, productID uuid.UUID, percent decimal.Decimal) (*response.CartResponse, error) {
	return uc.mutate(id, func(cart *entity.Cart) error {
		return cart.SetDiscount(productID, percent)
	})
}

func (uc *CartSessionUseCase) mutate(id uuid.UUID, fn func(cart *entity.Cart) error) (*response.CartResponse, error) {
	var resp *response.CartResponse
	err := uc.withSession(id, func(s *cartSession) error {
		if err := fn(s.cart); err != nil {
			return err
		}
		var err error
		resp, err = uc.toResponse(id, s.cart, decimal.Zero)
		return err
	})
	return resp, err
}

// Checkout envía el carrito como venta con la tasa de impuesto de la tienda.
// Solo tras una venta confirmada se vacía el carrito; la sesión sigue abierta
// para la próxima venta. cashierID nil usa el operador que abrió la sesión.
func (uc *CartSessionUseCase) Checkout(ctx context.Context, id, cashierID uuid.UUID, req request.CheckoutRequest) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.withSession(id, func(s *cartSession) error {
		if cashierID == uuid.Nil {
			cashierID = s.cashierID
		}
		var err error
		sale, err = uc.submit.Execute(ctx, s.cart, SubmitSaleInput{
			PaymentMethod:  req.PaymentMethod,
			DiscountAmount: req.DiscountAmount,
			TaxRate:        uc.settings.Get().TaxRate,
			CashierID:      cashierID,
			CustomerID:     req.CustomerID,
			Notes:          req.Notes,
		})
		if err != nil {
			return err
		}
		s.cart.Clear()
		return nil
	})
	return sale, err
}

// Validate revisa el carrito como lo haría Checkout pero acumula todas las
// violaciones. El stock de cada línea se relee del repositorio.
func (uc *CartSessionUseCase) Validate(ctx context.Context, id uuid.UUID, paymentMethod string, aggregateDiscount decimal.Decimal) (*response.CartValidationResponse, error) {
	var lines []entity.CartLine
	if err := uc.withSession(id, func(s *cartSession) error {
		lines = s.cart.Lines()
		return nil
	}); err != nil {
		return nil, err
	}

	var violations entity.ValidationErrors
	current := make([]entity.CartLine, 0, len(lines))
	for _, line := range lines {
		product, err := uc.products.FindByID(ctx, line.Product.ID)
		switch {
		case errors.Is(err, entity.ErrProductNotFound):
			violations = append(violations, entity.NewLineError(line.Product.ID, line.Product.Name, err))
		case err != nil:
			return nil, err
		default:
			line.Product.Stock = product.Stock
		}
		current = append(current, line)
	}

	var all entity.ValidationErrors
	if errors.As(entity.ValidateSaleAll(current, paymentMethod, aggregateDiscount, uc.settings.Get().TaxRate), &all) {
		violations = append(violations, all...)
	}

	resp := &response.CartValidationResponse{
		CartID:     id,
		Valid:      len(violations) == 0,
		Violations: make([]response.CartViolation, 0, len(violations)),
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, toViolation(v))
	}
	return resp, nil
}

func toViolation(err error) response.CartViolation {
	var lineErr *entity.LineError
	if !errors.As(err, &lineErr) {
		return response.CartViolation{Error: err.Error()}
	}
	productID := lineErr.ProductID
	return response.CartViolation{
		Error:       lineErr.Err.Error(),
		ProductID:   &productID,
		ProductName: lineErr.ProductName,
	}
}

// PurgeIdle elimina las sesiones sin actividad por más del TTL y retorna cuántas eliminó
func (uc *CartSessionUseCase) PurgeIdle() int {
	if uc.ttl <= 0 {
		return 0
	}
	cutoff := uc.now().Add(-uc.ttl)

	uc.mu.Lock()
	purged := 0
	for id, s := range uc.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(uc.sessions, id)
			purged++
		}
	}
	open := len(uc.sessions)
	uc.mu.Unlock()

	uc.metrics.SetOpenCarts(open)
	if purged > 0 {
		log.Printf("🧹 Purged %d idle cart sessions", purged)
	}
	return purged
}

// RunJanitor purga sesiones inactivas cada intervalo hasta que ctx termine
func (uc *CartSessionUseCase) RunJanitor(ctx context.Context, interval time.Duration) {
	if uc.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.PurgeIdle()
		}
	}
}

func (uc *CartSessionUseCase) toResponse(id uuid.UUID, cart *entity.Cart, aggregateDiscount decimal.Decimal) (*response.CartResponse, error) {
	settings := uc.settings.Get()
	lines := cart.Lines()

	totals, err := entity.CalculateTotals(lines, settings.TaxRate, aggregateDiscount)
	if err != nil {
		return nil, err
	}

	linesResp := make([]response.CartLineResponse, 0, len(lines))
	for _, line := range lines {
		linesResp = append(linesResp, response.CartLineResponse{
			ProductID:       line.Product.ID,
			ProductName:     line.Product.Name,
			UnitPrice:       line.Product.Price,
			Quantity:        line.Quantity,
			AvailableStock:  line.Product.Stock,
			DiscountPercent: line.DiscountPercent,
			LineTotal:       entity.LineTotal(line),
			LineNet:         entity.LineNet(line),
		})
	}

	return &response.CartResponse{
		CartID:         id,
		Lines:          linesResp,
		ItemCount:      cart.ItemCount(),
		TaxRate:        settings.TaxRate,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		GrandTotal:     totals.GrandTotal,
		Display: response.CartDisplay{
			Subtotal:       settings.FormatMoney(totals.Subtotal),
			TaxAmount:      settings.FormatMoney(totals.TaxAmount),
			DiscountAmount: settings.FormatMoney(totals.DiscountAmount),
			GrandTotal:     settings.FormatMoney(totals.GrandTotal),
		},
	}, nil
}
