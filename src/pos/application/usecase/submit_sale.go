package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/metrics"
	"github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/telemetry"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SubmitSaleInput son los datos de caja que acompañan al carrito
type SubmitSaleInput struct {
	PaymentMethod  string
	DiscountAmount decimal.Decimal
	TaxRate        decimal.Decimal
	CashierID      uuid.UUID
	CustomerID     *uuid.UUID
	Notes          string
}

// SubmitSaleUseCase convierte un carrito validado en una venta persistida
// y descuenta el stock de cada línea.
type SubmitSaleUseCase struct {
	sales    port.SaleRepository
	products port.ProductRepository
	metrics  *metrics.SaleMetrics
}

// NewSubmitSaleUseCase crea una nueva instancia del caso de uso
func NewSubmitSaleUseCase(
	sales port.SaleRepository,
	products port.ProductRepository,
	saleMetrics *metrics.SaleMetrics,
) *SubmitSaleUseCase {
	return &SubmitSaleUseCase{
		sales:    sales,
		products: products,
		metrics:  saleMetrics,
	}
}

// Execute valida, calcula totales y persiste la venta. No vacía el carrito:
// eso le corresponde al llamador una vez que la venta quedó confirmada.
//
// Si el repositorio de ventas implementa port.SaleCommitter, venta, items y
// stock se escriben en una sola transacción. Si no, se persiste la venta y
// luego se descuenta línea por línea; un fallo en ese punto se reporta como
// *entity.PartialCommitError.
func (uc *SubmitSaleUseCase) Execute(ctx context.Context, cart *entity.Cart, input SubmitSaleInput) (sale *entity.Sale, err error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "sale.submit")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, metrics.Outcome(err))
		}
		span.End()
		uc.metrics.ObserveSubmission(sale, err, time.Since(start).Seconds())
	}()

	lines := cart.Lines()
	log.Printf("🛒 Sale submission - Lines: %d, Payment: %q", len(lines), input.PaymentMethod)

	// 1. Validar; ninguna escritura si falla
	if err := entity.ValidateSale(lines, input.PaymentMethod, input.DiscountAmount, input.TaxRate); err != nil {
		log.Printf("❌ Sale rejected: %v", err)
		return nil, err
	}
	paymentMethod, _ := entity.ParsePaymentMethod(input.PaymentMethod)

	// 2. Totales y snapshot de items
	totals, err := entity.CalculateTotals(lines, input.TaxRate, input.DiscountAmount)
	if err != nil {
		return nil, err
	}
	sale, err = entity.NewSale(input.CashierID, input.CustomerID, paymentMethod, lines, totals, input.Notes)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("sale.id", sale.ID.String()),
		attribute.Int("sale.items", sale.TotalItems()),
		attribute.String("sale.payment_method", string(paymentMethod)),
		attribute.String("sale.total", sale.TotalAmount.String()),
	)

	// 3-4. Escrituras: desde aquí no se cancela
	writeCtx := context.WithoutCancel(ctx)

	if committer, ok := uc.sales.(port.SaleCommitter); ok {
		if err := uc.commitAtomically(writeCtx, committer, sale); err != nil {
			return nil, err
		}
	} else if err := uc.commitSequentially(writeCtx, sale); err != nil {
		return nil, err
	}

	log.Printf("✅ Sale created: ID=%s, Items=%d, Total=%s", sale.ID, sale.TotalItems(), sale.TotalAmount.StringFixed(2))
	return sale, nil
}

func (uc *SubmitSaleUseCase) commitAtomically(ctx context.Context, committer port.SaleCommitter, sale *entity.Sale) error {
	log.Printf("💾 Committing sale %s with %d items in one transaction...", sale.ID, sale.TotalItems())

	err := committer.CommitSale(ctx, sale)
	if invalidator, ok := uc.products.(port.ProductInvalidator); ok {
		invalidator.Invalidate(ctx, saleProductIDs(sale)...)
	}
	if err == nil {
		return nil
	}

	if errors.Is(err, entity.ErrInsufficientStock) {
		log.Printf("❌ Stock changed before commit, sale rolled back: %v", err)
		return err
	}
	log.Printf("❌ Sale persistence failed, rolled back: %v", err)
	return fmt.Errorf("%w: %w", entity.ErrPersistenceFailure, err)
}

func (uc *SubmitSaleUseCase) commitSequentially(ctx context.Context, sale *entity.Sale) error {
	log.Printf("💾 Creating sale %s with %d items...", sale.ID, sale.TotalItems())

	if err := uc.sales.Create(ctx, sale); err != nil {
		log.Printf("❌ Sale persistence failed, no stock touched: %v", err)
		return fmt.Errorf("%w: %w", entity.ErrPersistenceFailure, err)
	}

	applied := make([]entity.StockDecrement, 0, len(sale.Items))
	for _, item := range sale.Items {
		if err := uc.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			// CRÍTICO: la venta ya existe; se reporta para reconciliación manual
			log.Printf("⚠️ CRITICAL: Sale %s persisted but stock decrement failed for %s (%d applied): %v",
				sale.ID, item.ProductID, len(applied), err)
			return &entity.PartialCommitError{
				SaleID:          sale.ID,
				Applied:         applied,
				FailedProductID: item.ProductID,
				Err:             err,
			}
		}
		applied = append(applied, entity.StockDecrement{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return nil
}

func saleProductIDs(sale *entity.Sale) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(sale.Items))
	for _, item := range sale.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
