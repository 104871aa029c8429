package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentalops/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Logger *zap.Logger
	// Enforce disables the check when false. Development requests without a token
	// carry no claims and would otherwise be refused.
	Enforce bool
}

// RequirePermission creates middleware that requires permission in the caller's token
func RequirePermission(cfg PermissionConfig, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enforce {
			c.Next()
			return
		}

		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasPermission(permission) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Permission denied",
					zap.String("user_id", GetJWTUserID(c)),
					zap.String("required", permission),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Missing permission "+permission, GetRequestID(c)))
			return
		}
		c.Next()
	}
}
