package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/controller"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderInternalKey = "X-Internal-Key"
	HeaderRequestID   = "X-Request-ID"
)

// SessionResolver turns an opaque session token into claims by asking the
// account API. It is used when no local JWT secret is configured.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*utils.TokenClaims, error)
}

type Options struct {
	JWTSecret   string
	InternalKey string
	CookieName  string
}

type Middleware struct {
	resolver SessionResolver
	cache    cache.Cache
	opts     Options
}

func NewMiddleware(resolver SessionResolver, c cache.Cache, opts Options) *Middleware {
	if opts.CookieName == "" {
		opts.CookieName = "token"
	}
	return &Middleware{resolver: resolver, cache: c, opts: opts}
}

// AuthMiddleware requires a session token in the Authorization header, the
// session cookie, or (for websocket upgrades) the token query parameter.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := m.extractToken(c)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "Oturum bulunamadı")
			}

			ctx := c.Request().Context()
			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(ctx, token)
				if err != nil {
					logger.Warn("Middleware:AuthMiddleware:Blacklist", "error", err)
				}
				if blacklisted {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Oturum sonlandırılmış")
				}
			}

			claims, err := m.claims(ctx, token)
			if err != nil {
				if errors.Is(err, utils.ErrExpiredToken) {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrTokenExpired, "Oturum süresi doldu")
				}
				logger.Info("Middleware:AuthMiddleware:Rejected", "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Geçersiz oturum")
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextToken, token)
			return next(c)
		}
	}
}

func (m *Middleware) claims(ctx context.Context, token string) (*utils.TokenClaims, error) {
	if m.opts.JWTSecret != "" {
		return utils.ValidateAndParseToken(token, m.opts.JWTSecret)
	}
	if m.resolver == nil {
		return nil, utils.ErrInvalidToken
	}
	return m.resolver.ResolveSession(ctx, token)
}

func (m *Middleware) extractToken(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if token := utils.GetTokenFromHeader(header); token != "" {
			return token, nil
		}
		return "", utils.ErrInvalidToken
	}
	if cookie, err := c.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if strings.EqualFold(c.Request().Header.Get(echo.HeaderUpgrade), "websocket") {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
	}
	return "", utils.ErrMissingToken
}

// InternalKeyMiddleware guards service-to-service routes. With no key
// configured every request is refused.
func (m *Middleware) InternalKeyMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderInternalKey)
			want := m.opts.InternalKey
			if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// RequestLogger tags each request with an id and logs it on completion.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = utils.GenerateID()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("HTTP:Request",
				"request_id", requestID,
				"method", req.Method,
				"path", c.Path(),
				"uri", req.RequestURI,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			)
			return nil
		}
	}
}

// GetUserID returns the authenticated user's id set by AuthMiddleware.
func GetUserID(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil || claims.UserID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// GetToken returns the raw session token set by AuthMiddleware.
func GetToken(c echo.Context) string {
	token, _ := c.Get(constants.ContextToken).(string)
	return token
}
