package controller

import (
	"log"
	"net/http"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartController maneja los carritos de caja y el cierre de la venta
type CartController struct {
	cartUC    *usecase.CartSessionUseCase
	historyUC *usecase.SalesHistoryUseCase
}

func NewCartController(cartUC *usecase.CartSessionUseCase, historyUC *usecase.SalesHistoryUseCase) *CartController {
	return &CartController{cartUC: cartUC, historyUC: historyUC}
}

// RegisterRoutes registra las rutas del controlador
func (c *CartController) RegisterRoutes(router *gin.RouterGroup) {
	carts := router.Group("/carts", middleware.RequireCapability(entity.CapProcessSales))
	{
		carts.POST("", c.Open)
		carts.GET("/:id", c.Get)
		carts.GET("/:id/validate", c.Validate)
		carts.DELETE("/:id", c.Close)
		carts.POST("/:id/items", c.AddItem)
		carts.PUT("/:id/items/:product_id", c.SetQuantity)
		carts.DELETE("/:id/items/:product_id", c.RemoveItem)
		carts.PUT("/:id/items/:product_id/discount", c.SetDiscount)
		carts.POST("/:id/checkout", c.Checkout)
	}

	log.Println("Rutas Cart disponibles:")
	log.Println("  POST   /api/v1/carts")
	log.Println("  GET    /api/v1/carts/:id?discount_amount=")
	log.Println("  GET    /api/v1/carts/:id/validate?payment_method=&discount_amount=")
	log.Println("  DELETE /api/v1/carts/:id")
	log.Println("  POST   /api/v1/carts/:id/items")
	log.Println("  PUT    /api/v1/carts/:id/items/:product_id")
	log.Println("  DELETE /api/v1/carts/:id/items/:product_id")
	log.Println("  PUT    /api/v1/carts/:id/items/:product_id/discount")
	log.Println("  POST   /api/v1/carts/:id/checkout  ⭐ (POS Sale)")
}

// cartID lee el id de carrito del path; responde 400 si no es UUID
func cartID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		badRequest(ctx, "Invalid "+param+" format", err)
		return uuid.Nil, false
	}
	return id, true
}

func (c *CartController) Open(ctx *gin.Context) {
	id := c.cartUC.Open(middleware.CurrentUserID(ctx))
	resp, err := c.cartUC.Get(id, decimal.Zero)
	if err != nil {
		respondError(ctx, "Error opening cart", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Get muestra el carrito; discount_amount permite previsualizar el total con descuento fijo
func (c *CartController) Get(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}

	discount, ok := discountQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.cartUC.Get(id, discount)
	if err != nil {
		respondError(ctx, "Error loading cart", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Validate lista todas las violaciones que tendría el checkout con esos parámetros
func (c *CartController) Validate(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}
	discount, ok := discountQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.cartUC.Validate(ctx.Request.Context(), id, ctx.Query("payment_method"), discount)
	if err != nil {
		respondError(ctx, "Error validating cart", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// discountQuery lee discount_amount (default 0); responde 400 si no es decimal
func discountQuery(ctx *gin.Context) (decimal.Decimal, bool) {
	raw := ctx.Query("discount_amount")
	if raw == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		badRequest(ctx, "Invalid discount_amount", err)
		return decimal.Zero, false
	}
	return d, true
}

func (c *CartController) Close(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}
	c.cartUC.Close(id)
	ctx.Status(http.StatusNoContent)
}

func (c *CartController) AddItem(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}

	var req request.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	resp, err := c.cartUC.AddItem(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, "Error adding item to cart", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *CartController) SetQuantity(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}
	productID, ok := cartID(ctx, "product_id")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	resp, err := c.cartUC.SetQuantity(id, productID, *req.Quantity)
	if err != nil {
		respondError(ctx, "Error updating quantity", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *CartController) RemoveItem(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}
	productID, ok := cartID(ctx, "product_id")
	if !ok {
		return
	}

	resp, err := c.cartUC.RemoveItem(id, productID)
	if err != nil {
		respondError(ctx, "Error removing item", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *CartController) SetDiscount(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}
	productID, ok := cartID(ctx, "product_id")
	if !ok {
		return
	}

	var req request.SetDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	resp, err := c.cartUC.SetDiscount(id, productID, req.DiscountPercent)
	if err != nil {
		respondError(ctx, "Error applying discount", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Checkout confirma la venta y responde con el recibo estructurado
func (c *CartController) Checkout(ctx *gin.Context) {
	id, ok := cartID(ctx, "id")
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	sale, err := c.cartUC.Checkout(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), req)
	if err != nil {
		respondError(ctx, "Error processing sale", err)
		return
	}

	resp, err := c.historyUC.GetResponse(ctx.Request.Context(), sale.ID)
	if err != nil {
		// La venta ya está confirmada; se responde sin nombre de cliente
		log.Printf("⚠️  Could not reload sale %s: %v", sale.ID, err)
		resp = usecase.ToSaleResponse(sale, "")
	}
	ctx.JSON(http.StatusCreated, resp)
}
