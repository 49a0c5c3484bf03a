package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	// RoleAdmin роль оператора: управление слотами, статусами и переносами
	RoleAdmin = "admin"
)

// Auth читает идентичность, проставленную API gateway. Пользователь не обязателен:
// гость бронирует без учётной записи. Некорректный X-User-ID отклоняется.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if raw := r.Header.Get(headerUserID); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				handlers.RespondUnauthorized(w, "некорректный X-User-ID")
				return
			}
			ctx = context.WithValue(ctx, userIDKey, userID)
		}

		if role := strings.ToLower(strings.TrimSpace(r.Header.Get(headerUserRole))); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только запросы с ролью admin
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); !ok {
			handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
			return
		}
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, "доступ запрещен")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsAdmin возвращает true для запроса оператора
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(userRoleKey).(string)
	_, hasUser := GetUserID(ctx)
	return hasUser && role == RoleAdmin
}
