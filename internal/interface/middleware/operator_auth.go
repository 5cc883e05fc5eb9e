package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/pkg/helpers"
	"github.com/oksasatya/digital-user-report/pkg/response"
)

const CtxOperatorKey = "operator"

// OperatorAuth requires a valid operator token, read from the Authorization
// bearer header or the access_token cookie. A nil manager disables the check.
func OperatorAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	if jwt == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxOperatorKey, claims.Operator)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie("access_token"); err == nil {
		return tok
	}
	return ""
}
