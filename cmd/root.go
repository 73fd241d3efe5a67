package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/partminder/app"
	"github.com/kilianp07/partminder/config"
	"github.com/kilianp07/partminder/infra/logger"
)

var (
	cfgPath   string
	storePath string
)

var rootCmd = &cobra.Command{
	Use:           "partminder",
	Short:         "Track motorcycle spare parts and tell when they are due",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "partminder.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "override the store path")
}

// Execute runs the CLI. SIGINT and SIGTERM cancel any pending prompt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	svc, logg, err := newService(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeService(svc, logg)
	return svc.Run(cmd.Context())
}

// loadConfig reads the configuration file and applies the --store override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if storePath != "" {
		cfg.Store.Conf["path"] = storePath
	}
	return cfg, nil
}

func newService(ctx context.Context, cmd *cobra.Command) (*app.Service, logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logg, err := logger.FromConfig(cfg.Logging, cmd.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	logg.Debugw("starting", map[string]any{"session": logger.Session(), "store": cfg.Store.Type})
	svc, err := app.New(ctx, cfg, app.Options{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Log: logg,
	})
	if err != nil {
		return nil, nil, err
	}
	logg.Debugw("part store loaded", map[string]any{
		"parts":   svc.Book().Len(),
		"skipped": len(svc.Book().Skipped()),
	})
	return svc, logg, nil
}

func closeService(svc *app.Service, logg logger.Logger) {
	if err := svc.Close(); err != nil {
		logg.Errorf("service close: %v", err)
	}
}
