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

// CustomerController expone el selector de clientes y el alta/edición del CRM
type CustomerController struct {
	customersUC *usecase.CustomersUseCase
}

func NewCustomerController(customersUC *usecase.CustomersUseCase) *CustomerController {
	return &CustomerController{customersUC: customersUC}
}

func (c *CustomerController) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		// Seleccionar cliente es parte de la venta
		customers.GET("", middleware.RequireCapability(entity.CapProcessSales), c.List)
		customers.POST("", middleware.RequireCapability(entity.CapManageCustomers), c.Create)
		customers.PUT("/:id", middleware.RequireCapability(entity.CapManageCustomers), c.Update)
	}

	log.Println("Rutas Customer disponibles:")
	log.Println("  GET    /api/v1/customers?q=")
	log.Println("  POST   /api/v1/customers")
	log.Println("  PUT    /api/v1/customers/:id")
}

// List busca por nombre, email o teléfono
func (c *CustomerController) List(ctx *gin.Context) {
	customers, err := c.customersUC.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, "Error listing customers", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":       customers,
		"total_count": len(customers),
	})
}

func (c *CustomerController) Create(ctx *gin.Context) {
	var req request.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	customer, err := c.customersUC.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, "Error creating customer", err)
		return
	}
	ctx.JSON(http.StatusCreated, customer)
}

func (c *CustomerController) Update(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid customer id format", err)
		return
	}

	var req request.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	customer, err := c.customersUC.Update(ctx.Request.Context(), customerID, req)
	if err != nil {
		respondError(ctx, "Error updating customer", err)
		return
	}
	ctx.JSON(http.StatusOK, customer)
}
