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
)

// ProductController expone la búsqueda de productos y el ajuste de inventario
type ProductController struct {
	inventoryUC *usecase.InventoryUseCase
}

func NewProductController(inventoryUC *usecase.InventoryUseCase) *ProductController {
	return &ProductController{inventoryUC: inventoryUC}
}

// RegisterRoutes registra las rutas del controlador
func (c *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", middleware.RequireCapability(entity.CapViewProducts), c.Search)
		products.GET("/low-stock", middleware.RequireCapability(entity.CapViewProducts), c.LowStock)
		products.PUT("/:id/stock", middleware.RequireCapability(entity.CapManageProducts), c.AdjustStock)
	}

	log.Println("Rutas Product disponibles:")
	log.Println("  GET    /api/v1/products?q=")
	log.Println("  GET    /api/v1/products/low-stock")
	log.Println("  PUT    /api/v1/products/:id/stock")
}

// Search busca por nombre, categoría o código de barras
func (c *ProductController) Search(ctx *gin.Context) {
	products, err := c.inventoryUC.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, "Error searching products", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":       products,
		"total_count": len(products),
	})
}

func (c *ProductController) LowStock(ctx *gin.Context) {
	products, err := c.inventoryUC.LowStock(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Error listing low stock products", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":       products,
		"total_count": len(products),
	})
}

func (c *ProductController) AdjustStock(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid product id format", err)
		return
	}

	var req request.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	product, err := c.inventoryUC.AdjustStock(ctx.Request.Context(), productID, *req.Stock)
	if err != nil {
		respondError(ctx, "Error adjusting stock", err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}
