package transport

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/models"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

const identityKey = "identity"

// AdminTokenIdentityID is the identity given to requests authenticated by x-admin-token.
const AdminTokenIdentityID = "admin-token"

// Identity is the authenticated caller of a request.
type Identity struct {
	ID       string
	Role     models.Role
	Username string
}

type Claims struct {
	jwt.RegisteredClaims
	ID       string      `json:"id"`
	Role     models.Role `json:"role"`
	Username string      `json:"username,omitempty"`
}

// TokenIssuer signs and checks HS256 session tokens.
type TokenIssuer struct {
	secret     []byte
	ttl        time.Duration
	adminToken string
	now        func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, adminToken string) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		ttl:        ttl,
		adminToken: adminToken,
		now:        time.Now,
	}
}

func (t *TokenIssuer) Issue(id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		ID:       id.ID,
		Role:     id.Role,
		Username: id.Username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) Parse(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return &Identity{ID: claims.ID, Role: claims.Role, Username: claims.Username}, nil
}

func (t *TokenIssuer) adminTokenMatches(header string) bool {
	return t.adminToken != "" && subtle.ConstantTimeCompare([]byte(header), []byte(t.adminToken)) == 1
}

// RequireRole rejects requests without a token (401) or with an invalid token or a
// different role (403). Admin routes also accept the static x-admin-token header.
func (t *TokenIssuer) RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role == models.RoleAdmin {
			if header := c.GetHeader("x-admin-token"); header != "" {
				if !t.adminTokenMatches(header) {
					logging.Log.Warnf("AUTH: invalid admin token on %s", c.Request.URL.Path)
					c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "invalid admin token"})
					return
				}
				c.Set(identityKey, &Identity{ID: AdminTokenIdentityID, Role: models.RoleAdmin})
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logging.Log.Warnf("AUTH: unauthenticated access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "access token required"})
			return
		}
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization header format"})
			return
		}

		identity, err := t.Parse(tokenStr)
		if err != nil {
			logging.Log.Warnf("AUTH: rejected token on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "invalid or expired token"})
			return
		}
		if identity.Role != role {
			logging.Log.Warnf("AUTH: %s with role %s denied %s", identity.ID, identity.Role, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: fmt.Sprintf("%s access required", role)})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireRole, or nil.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*Identity)
	return identity
}
