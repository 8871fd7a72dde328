// payloadctl converts storefront documents and maintains the payment method catalog
// from the command line, using the same configuration file as the service.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shopbridge/payment-payload-service/internal/config"
	"github.com/shopbridge/payment-payload-service/internal/logging"
)

var Version = "dev"

type cli struct {
	configFile string
	envFile    string
	conf       *config.Application
	logger     logging.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: logging.NoCtx()}

	rootCmd := &cobra.Command{
		Use:           "payloadctl",
		Short:         "Payment payload tooling",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfiguration()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&c.envFile, "env", ".env", "optional file with environment overrides for secrets")

	rootCmd.AddCommand(c.convertCmd())
	rootCmd.AddCommand(c.syncMethodsCmd())
	rootCmd.AddCommand(c.listMethodsCmd())

	return rootCmd
}

func (c *cli) loadConfiguration() error {
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", c.envFile, err)
	}

	conf, err := config.LoadConfiguration(c.configFile, func(format string, v ...interface{}) {
		c.logger.Error(format, v...)
	})
	if err != nil {
		return err
	}

	logging.SetSeverity(conf.Logging.Severity)
	logging.SetupLibraryLogging(conf.Logging.Severity, conf.Logging.Style == config.Json)

	c.conf = conf
	return nil
}
