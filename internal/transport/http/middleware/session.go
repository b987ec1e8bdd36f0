package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"holistay/internal/session"
	resp "holistay/internal/transport/http/response"
)

// 会话解析结果在 context 里的键
const (
	KeyUserID    = "userId"
	KeyUserEmail = "userEmail"
	KeyRole      = "role"
)

// Session 从 cookie 解析身份。解析不出就保持匿名继续，
// 各页面/接口自己决定匿名怎么处理。
func Session(r *session.Resolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(cookieName)
		if err == nil {
			if ident, role, ok := r.Resolve(c.Request.Context(), tok); ok {
				c.Set(KeyUserID, ident.ID)
				c.Set(KeyUserEmail, ident.Email)
				c.Set(KeyRole, role)
			}
		}
		c.Next()
	}
}

// RequireUser JSON 接口的登录门槛
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyUserID) == "" {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "não autenticado"))
			return
		}
		c.Next()
	}
}
