package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/response"
)

// CtxUserIDKey is where the gate stores the resolved identity id. Handlers
// must read it from here and never re-derive identity from request fields.
const CtxUserIDKey = "userID"

// Auth gates protected routes behind a valid token from the Authorization
// header (Bearer scheme). Verification is stateless and cryptographic only;
// there is no session store to consult. A missing header and an
// invalid/expired token both end in 401, with distinct messages.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "no token, authorization denied", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		userID, err := jwt.Verify(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "token is not valid", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
