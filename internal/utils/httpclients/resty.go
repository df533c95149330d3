package httpclients

import (
	"context"
	"time"

	"github.com/nomadreads/nomadreads-server/internal/infrastructure/logger"
	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"

	"resty.dev/v3"
)

type httpClientStartsAt struct{}

// NewClient returns a resty client that logs every call at debug level.
// Request and response bodies are not logged because they carry prompts and keys.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), httpClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(httpClientStartsAt{}).(time.Time)

		event := log.Debug().
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.
				Str("method", raw.Method).
				Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
