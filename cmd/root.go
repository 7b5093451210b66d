package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/config/data"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"github.com/coffeelab/coffeelab/internal/view"
)

const appName = config.AppName

var (
	version = "0.1.0"
	commit  = "dev"

	coffeelabFlags *data.Flags
	rootCmd        = &cobra.Command{
		Use:          appName,
		Short:        "A terminal back-office for the coffeelab shop",
		Long:         `coffeelab is a terminal UI to follow orders, bills and stock of a coffee shop.`,
		RunE:         run,
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s)\n", appName, version, commit)
		},
	}
)

func init() {
	coffeelabFlags = config.NewFlags()
	initCoffeelabFlags()
	rootCmd.AddCommand(versionCmd, newListCmd(), newHealthCmd())
}

func initCoffeelabFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(coffeelabFlags.APIURL, "api-url", "", "Back-office API base URL")
	pf.StringVar(coffeelabFlags.APITimeout, "api-timeout", "", "API request timeout, e.g. 10s")
	pf.StringVarP(coffeelabFlags.LogLevel, "logLevel", "l", "", "Log level (debug, info, warn, error)")
	pf.StringVar(coffeelabFlags.LogFile, "logFile", "", "Log file path")

	rootCmd.Flags().Float32VarP(coffeelabFlags.RefreshRate, "refresh", "r", 0, "Refresh rate in seconds")
	rootCmd.Flags().IntVar(coffeelabFlags.PageSize, "page-size", 0, "Rows per page")
	rootCmd.Flags().StringVarP(coffeelabFlags.Command, "command", "c", "", "Startup view, e.g. orders or stock")
	rootCmd.Flags().BoolVar(coffeelabFlags.ReadOnly, "readonly", false, "Enable read-only mode")
	rootCmd.Flags().BoolVar(coffeelabFlags.Write, "write", false, "Enable write mode (overrides readonly)")
	rootCmd.Flags().BoolVar(coffeelabFlags.Headless, "headless", false, "Hide the header")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file then applies the flags.
func loadConfig() (*config.Config, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return nil, fmt.Errorf("failed to initialize log location: %w", err)
	}

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(coffeelabFlags); err != nil {
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}

	return cfg, nil
}

// newClient builds the API client without requiring the API to be up.
func newClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*client.APIClient, error) {
	cc, err := cfg.Settings().ClientConfig()
	if err != nil {
		return nil, err
	}
	c, err := client.InitConnection(ctx, &cc, log)
	if errors.Is(err, client.ErrNoConnection) {
		log.Warn("api unreachable", zap.String(slogs.Endpoint, cc.BaseURL))
		return client.NewAPIClient(&cc, log)
	}

	return c, err
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_ = cfg.Save(false)

	logger, err := slogs.New(cfg.Settings().LogConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Close() }()
	logger.Info("starting", zap.String("version", version), zap.String(slogs.Path, cfg.Path()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	apiClient, err := newClient(ctx, cfg, logger.Logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	factory := dao.NewFactory(apiClient, cfg.Settings().RefreshDuration(), logger.Logger)

	app := view.NewApp(cfg, factory, logger.Logger, version)
	if err := app.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	if err := app.Run(); err != nil {
		logger.Error("app terminated", zap.Error(err))
		return err
	}

	return nil
}
