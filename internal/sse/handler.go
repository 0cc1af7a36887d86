package sse

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/logger"
)

// IdentityFunc extracts the authenticated caller from a request context
type IdentityFunc func(ctx context.Context) (domain.Identity, bool)

// Handler streams the caller's redemption outcomes and directory changes
// @Summary Live event stream
// @Description Server-sent events: the caller's own redemption outcomes and new members
// @Tags events
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {string} string
// @Router /api/v1/events [get]
func Handler(hub *Hub, identify IdentityFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identify(r.Context())
		if !ok || !caller.Valid(time.Now()) {
			http.Error(w, ErrMsgSignInRequired, http.StatusUnauthorized)
			return
		}

		rc := http.NewResponseController(w)
		w.Header().Set("Content-Type", ContentTypeEventStream)
		w.Header().Set("Cache-Control", CacheControlNoCache)
		w.Header().Set("Connection", ConnectionKeepAlive)
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgStreamUnsupported, "error", err)
			return
		}

		log := logger.FromContext(r.Context())
		client := hub.Register(caller.UserID)
		log.Info(LogMsgClientConnected, "client_id", client.ID)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return rc.Flush() == nil
		}

		if !write(newEvent(EventTypeConnected, map[string]string{"client_id": client.ID}, "")) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.Events:
				if !ok {
					return
				}
				if !write(evt) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
