package api

import (
	"context"
	"net/http"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireUser resolves the X-User-Email header to a stored user and
// rejects the request when the header is missing, the user is unknown,
// or no access token has been stored for them yet.
func (h *Handler) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-User-Email")
		if email == "" {
			http.Error(w, "X-User-Email header is required", http.StatusUnauthorized)
			return
		}

		user, err := h.users.GetUserByEmail(email)
		if err != nil {
			http.Error(w, "user not found, login first", http.StatusUnauthorized)
			return
		}
		if user.AccessToken == "" {
			http.Error(w, "session expired, login again", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
