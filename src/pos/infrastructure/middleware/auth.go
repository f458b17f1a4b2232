package middleware

import (
	"log"
	"net/http"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Claves del contexto gin
const (
	UserIDKey = "pos_user_id"
	RoleKey   = "pos_role"

	UserIDHeader = "X-User-ID"
	RoleHeader   = "X-User-Role"
)

// Identity lee la identidad del operador que el gateway deja en los headers.
// Sin identidad válida la petición no sigue.
func Identity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rawID := ctx.GetHeader(UserIDHeader)
		if rawID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": UserIDHeader + " header is required",
			})
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid " + UserIDHeader + " format",
			})
			return
		}

		role := entity.ParseRole(ctx.GetHeader(RoleHeader))
		if !role.IsValid() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unknown role",
				"details": string(role),
			})
			return
		}

		ctx.Set(UserIDKey, userID)
		ctx.Set(RoleKey, role)
		ctx.Next()
	}
}

// RequireCapability corta con 403 si el papel no tiene la capacidad
func RequireCapability(capability entity.Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := CurrentRole(ctx)
		if !role.Can(capability) {
			log.Printf("⛔ Role %q denied %s on %s", role, capability, ctx.FullPath())
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   entity.ErrForbidden.Error(),
				"details": string(capability),
			})
			return
		}
		ctx.Next()
	}
}

// CurrentUserID retorna el operador autenticado (uuid.Nil si no pasó por Identity)
func CurrentUserID(ctx *gin.Context) uuid.UUID {
	if v, ok := ctx.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func CurrentRole(ctx *gin.Context) entity.Role {
	if v, ok := ctx.Get(RoleKey); ok {
		if role, ok := v.(entity.Role); ok {
			return role
		}
	}
	return ""
}
