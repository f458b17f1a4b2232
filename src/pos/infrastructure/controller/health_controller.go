package controller

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController informa el estado del servicio y de su almacenamiento
type HealthController struct {
	db      *sql.DB // nil = almacenamiento en memoria
	version string
}

func NewHealthController(db *sql.DB, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// RegisterRoutes registra /health en la raíz y en el grupo versionado
func (c *HealthController) RegisterRoutes(root *gin.Engine, v1 *gin.RouterGroup) {
	root.GET("/health", c.Health)
	v1.GET("/health", c.Health)
}

func (c *HealthController) Health(ctx *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"version": c.version,
		"storage": "memory",
	}
	if c.db == nil {
		ctx.JSON(http.StatusOK, body)
		return
	}

	body["storage"] = "postgres"
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := c.db.PingContext(pingCtx); err != nil {
		body["status"] = "degraded"
		body["details"] = err.Error()
		ctx.JSON(http.StatusServiceUnavailable, body)
		return
	}
	ctx.JSON(http.StatusOK, body)
}
