package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"soulink-backend/infrastructure/config"
	"soulink-backend/pkg/auth"
	"soulink-backend/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Authenticate resolves the authenticated subject and stores it in the
// request context. The check runs before any input validation: a request
// with no usable subject is rejected with 401 immediately.
//
// Two trust paths exist:
//   - Lambda: the API Gateway JWT authorizer has already validated the
//     token; the Lambda entrypoint copies the claims into X-User-* headers
//     and marks the request with X-API-Gateway-Authorized.
//   - Local server: an HS256 bearer token is validated here with the
//     configured secret and the sub claim becomes the subject.
//
// The header path is honored only inside Lambda, where the entrypoint has
// scrubbed and re-derived the headers. The plain HTTP server has no gateway
// in front, so there anyone could set them.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewTokenBucketLimiter(100, time.Minute)
	userLimiter := auth.NewTokenBucketLimiter(200, time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ipLimiter.Allow(clientIP(r)) {
				common.RespondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			var userID, email string

			if cfg.IsLambdaEnvironment() && r.Header.Get("X-API-Gateway-Authorized") == "true" {
				userID = r.Header.Get("X-User-ID")
				email = r.Header.Get("X-User-Email")
			} else {
				claims, err := validateBearerToken(r, cfg.JWTSecret)
				if err != nil {
					logger.Debug("Token validation failed",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
				} else {
					userID, _ = claims.GetSubject()
					email, _ = claims["email"].(string)
				}
			}

			if userID == "" {
				common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !userLimiter.Allow(userID) {
				common.RespondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			ctx := common.WithUserID(r.Context(), userID)
			if email != "" {
				ctx = common.WithUserEmail(ctx, email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateBearerToken parses and validates an HS256 bearer token.
func validateBearerToken(r *http.Request, secret string) (jwt.MapClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fmt.Errorf("invalid authorization header format")
	}
	if secret == "" {
		return nil, fmt.Errorf("no signing secret configured")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// clientIP extracts the client IP address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
