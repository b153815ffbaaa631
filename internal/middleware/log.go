package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/otel"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c, span := otel.Tracer.Start(
			r.Context(),
			"middleware Logging",
			trace.WithAttributes(
				attribute.String(log.KEY_REQUEST_ID, requestId),
				attribute.String(log.KEY_REQUEST_METHOD, r.Method),
				attribute.String(log.KEY_REQUEST_URL, r.URL.String()),
			),
		)
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KEY_TAG, "Logging").
			Str(log.KEY_REQUEST_ID, requestId).
			Str(log.KEY_REQUEST_METHOD, r.Method).
			Str(log.KEY_REQUEST_URL, r.URL.String()).
			Logger()

		logger.Trace().Msg("attaching request value to context")
		c = logger.WithContext(c)
		r = r.WithContext(c)

		next.ServeHTTP(w, r)
	})
}
