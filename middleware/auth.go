package middleware

import (
	"net/http"
	"strings"

	"clearheadspace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by FirebaseAuthMiddleware.
const (
	CtxUserUID   = "userUID"
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
)

// FirebaseAuthMiddleware verifies the Firebase ID token from the
// Authorization header and stores the caller's identity on the context.
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			zap.L().Warn("Firebase token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)

		c.Set(CtxUserUID, token.UID)
		c.Set(CtxUserEmail, email)
		c.Set(CtxUserName, name)
		c.Next()
	}
}
