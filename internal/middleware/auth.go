package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"smartbook/internal/config"
	ierr "smartbook/internal/errors"
	"smartbook/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Context keys set by RequireRole
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextTenantID = "tenantID"
)

const accessTokenCookie = "access_token"

// Claims carried by staff access tokens; Subject is the user ID
type Claims struct {
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies staff access tokens
type Authenticator struct {
	secret        []byte
	ttl           time.Duration
	secureCookies bool
}

// NewAuthenticator builds an Authenticator. secureCookies switches the token
// cookie to SameSite=None; Secure for cross-origin deployments.
func NewAuthenticator(cfg config.AuthConfig, secureCookies bool) *Authenticator {
	return &Authenticator{
		secret:        []byte(cfg.JWTSecret),
		ttl:           cfg.TokenTTL,
		secureCookies: secureCookies,
	}
}

// IssueToken signs a token for the user, valid for the configured TTL.
func (a *Authenticator) IssueToken(userID, tenantID uuid.UUID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.ttl)

	claims := Claims{
		Role:     role,
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies the signature and expiry of a token.
func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err == nil && !token.Valid {
		err = jwt.ErrTokenUnverifiable
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ierr.NewError("token subject is not a user id").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthorized)
	}
	if _, err := uuid.Parse(claims.TenantID); err != nil {
		return nil, ierr.NewError("token carries no tenant").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthorized)
	}
	return claims, nil
}

// SetTokenCookie stores the access token as an HttpOnly cookie
func (a *Authenticator) SetTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(accessTokenCookie, token, int(a.ttl.Seconds()), "/", "", a.secureCookies, true)
}

// ClearTokenCookie removes the access token cookie
func (a *Authenticator) ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(accessTokenCookie, "", -1, "/", "", a.secureCookies, true)
}

func (a *Authenticator) sameSite() http.SameSite {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	if a.secureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// RequireRole validates the access token and checks the user's role is one of
// allowedRoles. An empty list admits any authenticated user.
func (a *Authenticator) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try cookie first, fallback to Authorization header
		tokenString, cookieErr := c.Cookie(accessTokenCookie)
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" || token == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = token
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, ierr.DisplayMessage(err)))
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextTenantID, uuid.MustParse(claims.TenantID))

		c.Next()
	}
}

// TenantID returns the tenant of the authenticated user
func TenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextTenantID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// UserID returns the authenticated user's ID, or "" outside RequireRole
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
