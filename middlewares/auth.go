package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexandru1c/refeelv2/pkg/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserResolver maps a verified subject to users.id.
type UserResolver interface {
	Resolve(ctx context.Context, id *identity.Identity) (uint, error)
}

// ใช้ตรวจ token แล้วใส่ userId ลง context ให้ controller
func AuthMiddleware(v identity.Verifier, users UserResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		id, err := v.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		userID, err := users.Resolve(c.Request.Context(), id)
		if err != nil {
			log.Error("resolve user failed", zap.String("subject", id.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "temporarily unavailable"})
			return
		}

		c.Set("userId", userID)
		c.Set("subject", id.Subject)
		c.Next()
	}
}
