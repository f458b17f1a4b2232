package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// Carrito
	ErrStockExceeded   = errors.New("quantity exceeds available stock")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100 percent")
	ErrItemNotInCart   = errors.New("product is not in the cart")
	ErrInvalidTaxRate  = errors.New("tax rate must be between 0 and 100")

	// Validación de venta
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrNegativeDiscount     = errors.New("discount_amount must be greater than or equal to 0")
	ErrInvalidQuantity      = errors.New("quantity must be greater than 0")
	ErrInvalidPrice         = errors.New("price must be greater than or equal to 0")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrCashierRequired      = errors.New("cashier_id is required")

	// Persistencia
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrPartialCommit      = errors.New("sale persisted but stock update incomplete")

	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCartNotFound     = errors.New("cart session not found")

	ErrForbidden         = errors.New("operation not allowed for role")
	ErrUnknownSetting    = errors.New("unknown setting key")
	ErrInvalidSetting    = errors.New("invalid setting value")
	ErrInvalidStockValue = errors.New("stock must be greater than or equal to 0")

	ErrCustomerNameRequired = errors.New("customer name is required")
)

// LineError asocia un error de dominio a un producto concreto del carrito
type LineError struct {
	ProductID   uuid.UUID
	ProductName string
	Err         error
}

func NewLineError(productID uuid.UUID, productName string, err error) *LineError {
	return &LineError{ProductID: productID, ProductName: productName, Err: err}
}

func (e *LineError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.ProductName, e.ProductID)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.ProductID)
}

func (e *LineError) Unwrap() error { return e.Err }

// ValidationErrors acumula todas las violaciones de una venta, en orden de detección
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap permite errors.Is/As sobre cualquiera de los errores acumulados
func (v ValidationErrors) Unwrap() []error { return v }

// StockDecrement describe un descuento de stock ya aplicado
type StockDecrement struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// PartialCommitError indica que la venta quedó persistida pero el stock no se
// descontó por completo. Requiere reconciliación manual.
type PartialCommitError struct {
	SaleID          uuid.UUID
	Applied         []StockDecrement
	FailedProductID uuid.UUID
	Err             error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%s: sale %s, %d stock decrements applied, failed on product %s: %v",
		ErrPartialCommit, e.SaleID, len(e.Applied), e.FailedProductID, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

func (e *PartialCommitError) Is(target error) bool { return target == ErrPartialCommit }
