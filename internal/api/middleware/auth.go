package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	// HeaderUserID и HeaderUserRole проставляет вышестоящий auth-шлюз;
	// сервис доверяет им и не несёт собственного состояния сессий
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth извлекает идентичность вызывающего из доверенных заголовков
// и кладет её в контекст запроса. Запросы без корректных заголовков
// получают 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"отсутствует или некорректен `+HeaderUserID+`"}`, http.StatusUnauthorized)
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if role != domain.RoleOwner && role != domain.RoleUser {
			role = domain.RoleUser
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста
// По умолчанию USER
func GetUserRole(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(userRoleKey).(domain.Role); ok {
		return role
	}
	return domain.RoleUser
}
