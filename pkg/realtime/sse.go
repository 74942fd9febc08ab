package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coachlab/notification-service/pkg/helper"
)

// ErrStreamingUnsupported response writer cannot flush
var ErrStreamingUnsupported = errors.New("streaming unsupported")

// ServeSSE write queued messages of channel as server-sent events until ctx is done or channel is closed.
// Heartbeat comment is written every heartbeat interval to keep proxies from closing idle stream
func ServeSSE(ctx context.Context, w http.ResponseWriter, ch *Channel, heartbeat time.Duration) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}

	header := w.Header()
	header.Set(helper.HeaderContentType, helper.HeaderMIMETextEventStream)
	header.Set(helper.HeaderCacheControl, "no-cache")
	header.Set(helper.HeaderConnection, "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ch.Done():
			return nil

		case msg := <-ch.Messages():
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return err
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}
