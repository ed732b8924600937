package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	"gitlab.com/codbbit.net/internal/core/ports/secondary"
	"gitlab.com/codbbit.net/internal/domain"
)

type contextKey string

const authPayloadKey contextKey = "authPayload"

type MiddlewareProvider struct {
	jwtProvider primary.JWTService
	userPort    secondary.UserPort
}

func NewMiddleware(jwtProvider primary.JWTService, userPort secondary.UserPort) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtProvider: jwtProvider,
		userPort:    userPort,
	}
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		valid, err := m.jwtProvider.VerifyTokenHMAC(r.Context(), tokenString, jwt.SigningMethodHS256.Name)
		if err != nil || !valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		payload, err := m.jwtProvider.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authPayloadKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly guards the authoring endpoints. It must run inside
// JWTMiddleware.
func (m *MiddlewareProvider) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := UserIDFromContext(r.Context())
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		user, err := m.userPort.Get(r.Context(), userID)
		if err != nil || user == nil || !user.IsAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func AuthPayloadFromContext(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(authPayloadKey).(domain.AuthPayload)
	return payload, ok
}

var errMissingAuthPayload = errors.New("missing auth payload")

func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	payload, ok := AuthPayloadFromContext(ctx)
	if !ok {
		return uuid.Nil, errMissingAuthPayload
	}
	return uuid.Parse(payload.UserID)
}
