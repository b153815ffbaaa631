package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/relove-market/storefront/internal/constants"
	"github.com/relove-market/storefront/internal/log"
)

func Start() {
	logger := log.InitLogger(logFilePath()).
		With().
		Str(log.KEY_APP_NAME, constants.APP_STOREFRONT).
		Str(log.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Client for the relove secondhand-clothing marketplace",
	}
	rootCmd.AddCommand(
		newShopCommand(),
		newAccountCommand(),
		newSellCommand(),
		newOrdersCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}

func logFilePath() string {
	if path := os.Getenv("STOREFRONT_LOG_FILE"); path != "" {
		return path
	}
	return "/tmp/storefront.log"
}
