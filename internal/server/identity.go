package server

import (
	"net/http"
	"time"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/handler"
	"github.com/osse101/QRHunt_Go/internal/logger"
)

// IdentityMiddleware turns the identity headers set by the upstream gateway
// into a domain.Identity on the request context. Requests without X-User-ID
// pass through anonymously; handlers that need a caller reject them.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		id := domain.Identity{
			UserID: userID,
			Email:  r.Header.Get(HeaderUserEmail),
		}
		if raw := r.Header.Get(HeaderUserExpires); raw != "" {
			expires, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				logger.FromContext(r.Context()).Warn(LogMsgBadIdentity, "header", HeaderUserExpires, "error", err)
				http.Error(w, ErrMsgBadIdentity, http.StatusBadRequest)
				return
			}
			id.ExpiresAt = expires
		}

		ctx := handler.WithIdentity(r.Context(), id)
		ctx = logger.WithUserID(ctx, id.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
