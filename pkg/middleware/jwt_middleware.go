package middleware

import (
	"context"
	"strconv"
	"strings"

	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type identityCtxKey struct{}

// TokenVerifier turns a bearer token into a verified identity.
type TokenVerifier interface {
	ValidateToken(tokenString string) (utils.Identity, error)
}

// Authenticate verifies the bearer token and attaches the identity to both the
// gin context and the request context.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, err)
			return
		}

		identity, err := tokens.ValidateToken(raw)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, utils.ErrMissingOrMalformedToken)
			return
		}
		if err := CheckRole(identity, roles...); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireSameSubject rejects requests whose numeric path parameter is not the caller's account id.
func RequireSameSubject(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abort(c, utils.ErrMissingOrMalformedToken)
			return
		}
		if err := CheckSameSubject(identity, c.Param(param)); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

func ParseBearer(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", utils.ErrMissingOrMalformedToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", utils.ErrMissingOrMalformedToken
	}
	return token, nil
}

func CheckRole(identity utils.Identity, allowed ...string) error {
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return utils.ErrForbiddenRole
}

func CheckSameSubject(identity utils.Identity, raw string) error {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || uint(id) != identity.AccountID {
		return utils.ErrForbiddenOwner
	}
	return nil
}

func IdentityFrom(c *gin.Context) (utils.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return utils.Identity{}, false
	}
	identity, ok := v.(utils.Identity)
	return identity, ok
}

func WithIdentity(ctx context.Context, identity utils.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (utils.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(utils.Identity)
	return identity, ok
}

func abort(c *gin.Context, err error) {
	utils.HandleServiceError(c, err)
	c.Abort()
}
