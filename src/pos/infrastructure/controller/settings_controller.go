package controller

import (
	"log"
	"net/http"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/cache"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// SettingsController expone la configuración de la tienda
type SettingsController struct {
	settings *cache.SettingsCache
}

func NewSettingsController(settings *cache.SettingsCache) *SettingsController {
	return &SettingsController{settings: settings}
}

// RegisterRoutes registra las rutas del controlador
func (c *SettingsController) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("", c.Get)
		settings.PUT("/:key", middleware.RequireCapability(entity.CapManageSettings), c.Update)
	}

	log.Println("Rutas Settings disponibles:")
	log.Println("  GET    /api/v1/settings")
	log.Println("  PUT    /api/v1/settings/:key")
}

// Get es de lectura para cualquier papel: el PDV necesita moneda e impuesto
func (c *SettingsController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.settings.Get())
}

func (c *SettingsController) Update(ctx *gin.Context) {
	var req request.UpdateSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	settings, err := c.settings.Update(ctx.Request.Context(), ctx.Param("key"), req.Value)
	if err != nil {
		respondError(ctx, "Error updating setting", err)
		return
	}
	log.Printf("⚙️  Setting %s updated by %s", ctx.Param("key"), middleware.CurrentUserID(ctx))
	ctx.JSON(http.StatusOK, settings)
}
