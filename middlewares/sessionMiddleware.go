package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/momoa-tech/hardware_backend/appctx"
)

// SessionMiddleware lifts the caller identity asserted by the auth gateway
// into the request context. Credential validation happens upstream; the
// identifiers are opaque here.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if userId := c.Request.Header.Get("X-User-Id"); userId != "" {
			ctx = appctx.Set(ctx, appctx.ContextKeyUserId, userId)
		}
		if userName := c.Request.Header.Get("X-User-Name"); userName != "" {
			ctx = appctx.Set(ctx, appctx.ContextKeyUserName, userName)
		}
		if token := c.Request.Header.Get("token"); token != "" {
			ctx = appctx.Set(ctx, appctx.ContextKeyToken, token)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
