package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/infrastructure/auth"
	"github.com/telops/backend/internal/infrastructure/logger"
	"github.com/telops/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ActorKey      = "actor"
	ClaimsKey     = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; when set, revoked JTIs are rejected
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// Auth validates the bearer token, rejects revoked tokens and attaches the
// authenticated identity.Actor to the request.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			code, message := tokenErrorCode(err)
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open on blacklist lookup errors to keep the API available
				if cfg.Logger != nil {
					cfg.Logger.Error("Token blacklist check failed",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if blacklisted {
				abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
				return
			}
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "TOKEN_INVALID", "Invalid token")
			return
		}

		actor := identity.Actor{
			ID:       userID,
			Username: claims.Username,
			Role:     claims.GetRole(),
		}
		c.Set(ActorKey, actor)
		c.Set(ClaimsKey, claims)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActor returns the authenticated actor attached by Auth.
// The second return is false when the request is unauthenticated.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	if !ok || actor.IsZero() {
		return identity.Actor{}, false
	}
	return actor, true
}

// GetClaims returns the validated token claims attached by Auth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func tokenErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "TOKEN_EXPIRED", "Token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		return "TOKEN_INVALID", "Invalid token type"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "TOKEN_INVALID", "Token is not yet valid"
	default:
		return "TOKEN_INVALID", "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
