// Package identity resolves the calling user from a bearer token into an
// explicit Actor value. Workflow code never reads authentication state
// implicitly; the boundary layer resolves the actor once and passes it down.
package identity

import (
	"net/http"
	"strings"

	"jobcore/backend/internal/apperr"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Actor is the resolved caller identity.
type Actor struct {
	Subject string
	Email   string
}

type Provider struct {
	secret []byte
}

func NewProvider(secret string) *Provider {
	return &Provider{secret: []byte(secret)}
}

// ParseActor validates the token signature and expiry and extracts the
// subject and email claims. A token without a subject is rejected: an
// unattributed actor must surface as an authentication failure, not as an
// empty attribution downstream.
func (p *Provider) ParseActor(tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.CodeUnauthenticated, "unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, apperr.Wrap(apperr.CodeUnauthenticated, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, apperr.New(apperr.CodeUnauthenticated, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Actor{}, apperr.New(apperr.CodeUnauthenticated, "token carries no subject")
	}
	email, _ := claims["email"].(string)

	return Actor{Subject: sub, Email: email}, nil
}

const actorContextKey = "identity.actor"

// Middleware extracts the bearer token, resolves the actor and stores it in
// the gin context. Requests without a valid token are rejected.
func (p *Provider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		actor, err := p.ParseActor(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the actor stored by Middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	return actor, ok
}
