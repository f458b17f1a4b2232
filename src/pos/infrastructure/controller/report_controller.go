package controller

import (
	"log"
	"net/http"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// ReportController maneja las peticiones HTTP para reportes
type ReportController struct {
	dailyReportUC *usecase.DailyReportUseCase
}

// NewReportController crea una nueva instancia del controlador
func NewReportController(dailyReportUC *usecase.DailyReportUseCase) *ReportController {
	return &ReportController{
		dailyReportUC: dailyReportUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports", middleware.RequireCapability(entity.CapViewReports))
	{
		reports.GET("/daily", c.DailyReport)
	}

	log.Println("Rutas Report disponibles:")
	log.Println("  GET    /api/v1/reports/daily?date=YYYY-MM-DD")
}

// DailyReport maneja el reporte diario de ventas. Sin fecha = hoy.
func (c *ReportController) DailyReport(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	resp, err := c.dailyReportUC.Execute(ctx.Request.Context(), date)
	if err != nil {
		respondError(ctx, "Error generating daily report", err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
