package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/auth"
	"github.com/maplepath/api/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
}

// TokenParser validates a bearer token issued by this service.
type TokenParser interface {
	Parse(raw string) (*auth.Principal, error)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, raw, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}

func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Header("WWW-Authenticate", "Bearer")
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "missing bearer token")
			return
		}

		p, err := tokens.Parse(raw)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Could not validate credentials")
			return
		}

		c.Set(CtxUserID, p.UserID)
		c.Set(CtxEmail, p.Email)
		c.Set(CtxRole, string(p.Role))
		c.Next()
	}
}
