package controller

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleController expone el historial de ventas, el recibo y el export CSV
type SaleController struct {
	historyUC *usecase.SalesHistoryUseCase
	receiptUC *usecase.SaleReceiptUseCase
	exportUC  *usecase.ExportSalesCSVUseCase
	now       func() time.Time
}

func NewSaleController(
	historyUC *usecase.SalesHistoryUseCase,
	receiptUC *usecase.SaleReceiptUseCase,
	exportUC *usecase.ExportSalesCSVUseCase,
) *SaleController {
	return &SaleController{
		historyUC: historyUC,
		receiptUC: receiptUC,
		exportUC:  exportUC,
		now:       time.Now,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SaleController) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/sales", middleware.RequireCapability(entity.CapViewReports))
	{
		sales.GET("", c.List)
		sales.GET("/export.csv", middleware.RequireCapability(entity.CapExportReports), c.ExportCSV)
		sales.GET("/:id", c.Get)
		sales.GET("/:id/receipt", c.Receipt)
	}

	log.Println("Rutas Sale disponibles:")
	log.Println("  GET    /api/v1/sales?from=YYYY-MM-DD&to=YYYY-MM-DD&payment_method=&limit=")
	log.Println("  GET    /api/v1/sales/export.csv?period=")
	log.Println("  GET    /api/v1/sales/:id")
	log.Println("  GET    /api/v1/sales/:id/receipt")
}

func (c *SaleController) List(ctx *gin.Context) {
	var req request.ListSalesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	items, err := c.historyUC.List(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, "Error listing sales", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": len(items),
	})
}

func (c *SaleController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid sale id format", err)
		return
	}

	resp, err := c.historyUC.GetResponse(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error loading sale", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Receipt descarga el recibo de texto de la venta
func (c *SaleController) Receipt(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid sale id format", err)
		return
	}

	text, fileName, err := c.receiptUC.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error generating receipt", err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// ExportCSV genera el CSV completo antes de responder, así un error no deja un archivo a medias
func (c *SaleController) ExportCSV(ctx *gin.Context) {
	var req request.ListSalesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	var buf bytes.Buffer
	rows, err := c.exportUC.Execute(ctx.Request.Context(), &buf, req)
	if err != nil {
		respondError(ctx, "Error exporting sales", err)
		return
	}

	fileName := usecase.ExportFileName(ctx.Query("period"), c.now())
	log.Printf("📄 Exported %d sales to %s", rows, fileName)

	ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
