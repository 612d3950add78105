package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated mutating requests get redirected,
// carrying the original URI in ?next= so the client can come back.
const LoginPath = "/auth/login"

// RequireAuth annotates the context with the actor's userID. Anonymous
// requests get a 302 to the login flow instead of a 401; after
// authenticating, the caller retries the URL carried in ?next=.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorFromRequest(c)
		if !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuth annotates the context when a valid token is present and
// stays silent otherwise. Read-only views use it for the "following"
// flag.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := actorFromRequest(c); ok {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

// actorFromRequest pulls the JWT from the Authorization header or the
// token cookie and returns the subject claim.
func actorFromRequest(c *gin.Context) (string, bool) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		tokenString = parts[1]
	} else if cookie, err := c.Cookie("token"); err == nil {
		tokenString = cookie
	}
	if tokenString == "" {
		return "", false
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
