package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"server/internal/domain"
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID       string
	Name     string
	Role     domain.UserRole
	Verified bool
}

// TokenClaims is the JWT payload issued at login.
type TokenClaims struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

type actorKey struct{}

const tokenIssuer = "sahayog-api"

// SignJWT issues a signed token for the given account.
func SignJWT(secret string, user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Name:     user.Name,
		Role:     string(user.Role),
		Verified: user.Verified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyJWT parses and validates a token, returning its claims.
func VerifyJWT(secret, token string) (*TokenClaims, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return &claims, nil
}

// AuthJWT authenticates the request and places the actor in the context.
// Unverified NGO accounts are blocked; they may log in but cannot act
// before an administrator approves them.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			claims, err := VerifyJWT(secret, parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			actor := Actor{
				ID:       claims.Subject,
				Name:     claims.Name,
				Role:     domain.UserRole(claims.Role),
				Verified: claims.Verified,
			}
			if actor.Role == domain.UserRoleNGO && !actor.Verified {
				http.Error(w, "account pending admin approval", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// RequireRole rejects requests whose actor does not carry the given role.
func RequireRole(role domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "missing user context", http.StatusUnauthorized)
				return
			}
			if actor.Role != role {
				http.Error(w, "insufficient role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithActor attaches an actor to the context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
