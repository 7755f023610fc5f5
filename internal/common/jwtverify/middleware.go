package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
	commonhttp "github.com/AlibekovAA/stride/internal/common/http"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/observability/metrics"
)

type Claims struct {
	UserID string
	Name   string
	JTI    string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

const bearerPrefix = "Bearer "

func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			traceID := commonhttp.TraceIDFromContext(ctx)

			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
				log.WithFields(ctx, logger.Fields{
					"path":   r.URL.Path,
					"action": "jwt_missing",
				}).Warn("jwt auth failed: missing or invalid authorization header")
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, traceID)
				return
			}

			metrics.JWTValidationsTotal.Inc()
			claims, err := parseToken(strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix)), secretBytes)
			if err != nil {
				metrics.JWTValidationsFailed.Inc()
				log.WithFields(ctx, logger.Fields{
					"path":   r.URL.Path,
					"action": "jwt_invalid",
				}).Warnf("jwt auth failed: %v", err)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "invalid token", nil, traceID)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

func ParseToken(tokenString string, secret []byte) (Claims, error) {
	return parseToken(tokenString, secret)
}

func parseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, commonerrors.ErrInvalidTokenSigningMethod
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, commonerrors.ErrInvalidTokenSigningMethod) {
			return Claims{}, commonerrors.ErrInvalidTokenSigningMethod
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}
	name, _ := mapClaims["usr"].(string)
	jti, _ := mapClaims["jti"].(string)

	return Claims{
		UserID: sub,
		Name:   name,
		JTI:    jti,
	}, nil
}
