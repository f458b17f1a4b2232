package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	usecase.ErrInvalidDate,
	entity.ErrEmptyCart,
	entity.ErrMissingPaymentMethod,
	entity.ErrNegativeDiscount,
	entity.ErrInvalidQuantity,
	entity.ErrInvalidPrice,
	entity.ErrCashierRequired,
	entity.ErrStockExceeded,
	entity.ErrInvalidDiscount,
	entity.ErrInvalidTaxRate,
	entity.ErrUnknownSetting,
	entity.ErrInvalidSetting,
	entity.ErrInvalidStockValue,
	entity.ErrCustomerNameRequired,
}

var notFoundErrors = []error{
	entity.ErrCartNotFound,
	entity.ErrItemNotInCart,
	entity.ErrProductNotFound,
	entity.ErrSaleNotFound,
	entity.ErrCustomerNotFound,
}

// statusFor traduce un error de dominio a su código HTTP.
// El orden importa: un commit parcial envuelve el error del producto que falló.
func statusFor(err error) int {
	var partial *entity.PartialCommitError
	switch {
	case errors.As(err, &partial):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrPersistenceFailure):
		return http.StatusInternalServerError
	case errors.Is(err, entity.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError escribe {"error","details"} con el código que corresponde al error
func respondError(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s: %v", message, err)
	}

	body := gin.H{
		"error":   message,
		"details": err.Error(),
	}

	var partial *entity.PartialCommitError
	if errors.As(err, &partial) {
		// Venta guardada con stock incompleto: el operador debe reconciliar
		body["sale_id"] = partial.SaleID
		body["applied"] = partial.Applied
		body["failed_product_id"] = partial.FailedProductID
	}

	var lineErr *entity.LineError
	if errors.As(err, &lineErr) {
		body["product_id"] = lineErr.ProductID
	}

	ctx.JSON(status, body)
}

// badRequest responde 400 por un body o parámetro mal formado
func badRequest(ctx *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, body)
}
