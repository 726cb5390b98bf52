package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teacherpoli/backoffice/core/bonus"
)

var heartbeatInterval = 15 * time.Second

// streamCatalogEvents forwards catalog change notifications as server-sent events
// until the client goes away. Events carry no data: clients re-fetch /v1/bonuses.
func (api *bonusApi) streamCatalogEvents(ctx echo.Context) error {
	// coalesce bursts: one pending notification is enough to trigger a re-read
	updates := make(chan struct{}, 1)
	sub := api.svc.Subscribe(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	defer sub.Unsubscribe()

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			w.Flush()
		case <-updates:
			_, _ = fmt.Fprintf(w, "event: %s\ndata: {}\n\n", bonus.EventCatalogUpdated)
			w.Flush()
		}
	}
}
