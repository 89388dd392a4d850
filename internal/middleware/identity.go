package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"opslink/internal/config"
	"opslink/internal/domain"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyPlan   = "plan"

	// AnonymousUser identifies callers without a token. They run on the
	// configured default plan with a fresh usage record.
	AnonymousUser = "anonymous"
)

// IdentityClaims are the token claims this service understands.
type IdentityClaims struct {
	Plan string `json:"plan"`
	jwt.RegisteredClaims
}

// Identity resolves the caller from an optional Bearer token to a user id
// and plan. A missing or invalid token degrades to the anonymous user on the
// default plan rather than rejecting the request; credential management is an
// external collaborator's concern.
func Identity(cfg config.JWTConfig, defaultPlan domain.PlanName) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := AnonymousUser
		plan := string(defaultPlan)

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := parseToken(token, cfg); err == nil {
				if claims.Subject != "" {
					userID = claims.Subject
				}
				if claims.Plan != "" {
					plan = claims.Plan
				}
			}
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyPlan, plan)
		c.Next()
	}
}

func parseToken(token string, cfg config.JWTConfig) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// GetUserID extracts the resolved user id from the Gin context.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return AnonymousUser
}

// GetPlan extracts the resolved plan name from the Gin context.
func GetPlan(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyPlan); ok {
		if p, ok := v.(string); ok {
			return p
		}
	}
	return ""
}
