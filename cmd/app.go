package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/relove-market/storefront/internal/api"
	"github.com/relove-market/storefront/internal/cart"
	"github.com/relove-market/storefront/internal/catalog"
	"github.com/relove-market/storefront/internal/checkout"
	"github.com/relove-market/storefront/internal/config"
	"github.com/relove-market/storefront/internal/constants"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/otel"
	"github.com/relove-market/storefront/internal/session"
)

// app is the application root: it owns the single cart store and catalog
// controller instance and hands them to whichever command runs. The
// bearer token is picked up from STOREFRONT_TOKEN so a login survives
// across process invocations.
type app struct {
	cfg      *config.Config
	session  *session.Session
	client   *api.Client
	cart     *cart.Store
	catalog  *catalog.Controller
	checkout checkout.Service
	shutdown func(context.Context)
}

func newApp(c context.Context) (*app, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "newApp").
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.APP_STOREFRONT)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KEY_PROCESS, "init otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_STOREFRONT, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized otel sdk")

	sess := session.New()
	if token := os.Getenv("STOREFRONT_TOKEN"); token != "" {
		sess.SetToken(token, os.Getenv("STOREFRONT_EMAIL"))
	}

	client := api.NewClient(
		cfg.Api.BaseUrl,
		time.Duration(cfg.Api.TimeoutSeconds)*time.Second,
		sess,
	)
	cartStore := cart.NewStore()

	return &app{
		cfg:      cfg,
		session:  sess,
		client:   client,
		cart:     cartStore,
		catalog:  catalog.NewController(client, cfg.Catalog.PageSize, cfg.Catalog.Sort),
		checkout: checkout.NewService(cartStore, client),
		shutdown: func(c context.Context) {
			logger := zerolog.Ctx(c)
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				logger.Error().Err(err).Msg("failed shutting down otel")
			}
		},
	}, nil
}
