// Package payment runs a short-lived local listener that catches the
// payment gateway's return redirect after the user completes a gateway
// checkout in the browser.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/relove-market/storefront/internal/config"
	"github.com/relove-market/storefront/internal/constants"
	inHttp "github.com/relove-market/storefront/internal/http"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/middleware"
	"github.com/relove-market/storefront/internal/otel"
)

const responseCodeSuccess = "00"

// Result is the gateway's verdict carried on the return redirect.
type Result struct {
	TransactionRef string
	ResponseCode   string
	Success        bool
}

// WaitForReturn serves /payment/return on the configured local address
// until one redirect arrives or the context is done. Superfluous hits
// after the first are answered but ignored.
func WaitForReturn(c context.Context, cfg config.Payment) (Result, error) {
	c, span := otel.Tracer.Start(c, "WaitForReturn")
	defer span.End()

	addr := fmt.Sprintf("%s:%d", cfg.ReturnHost, cfg.ReturnPort)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_APP_NAME, constants.APP_PAYMENT_LISTENER).
		Str(log.KEY_TAG, "WaitForReturn").
		Str("addr", addr).
		Logger()

	results := make(chan Result, 1)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_PAYMENT_LISTENER),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.HandleFunc("/payment/return", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		result := Result{
			TransactionRef: query.Get("vnp_TxnRef"),
			ResponseCode:   query.Get("vnp_ResponseCode"),
		}
		result.Success = result.ResponseCode == responseCodeSuccess

		message := "payment failed, you can close this window"
		if result.Success {
			message = "payment confirmed, you can close this window"
		}
		inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
			"status":  "ok",
			"message": message,
		})

		select {
		case results <- result:
		default:
		}
	}).Methods(http.MethodGet)

	logger = logger.With().Str(log.KEY_PROCESS, "starting listener").Logger()
	logger.Info().Msg("starting payment return listener")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return c },
	}
	serveErrs := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed shutting down payment return listener")
		}
	}()
	logger.Info().Msg("started payment return listener")

	select {
	case result := <-results:
		logger.Info().
			Bool("success", result.Success).
			Str("transactionRef", result.TransactionRef).
			Msg("received payment return")
		return result, nil
	case err := <-serveErrs:
		err = fmt.Errorf("failed serving payment return listener with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	case <-c.Done():
		err := fmt.Errorf("cancelled waiting for payment return with error=%w", c.Err())
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	}
}
