package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coffeelab/coffeelab/internal/client"
)

const healthTimeout = 5 * time.Second

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the back-office API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cc, err := cfg.Settings().ClientConfig()
			if err != nil {
				return err
			}
			c, err := client.NewAPIClient(&cc, zap.NewNop())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			return checkHealth(ctx, cmd.OutOrStdout(), c)
		},
	}
}

func checkHealth(ctx context.Context, w io.Writer, c *client.APIClient) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	start := time.Now()
	env, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "%s: unreachable\n", c.Config().BaseURL)
		return err
	}
	status := env.Get("status").String()
	if status == "" {
		status = "ok"
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", c.Config().BaseURL, status, time.Since(start).Round(time.Millisecond))

	if info, err := c.Info(ctx); err == nil {
		fmt.Fprintf(w, "server: %s %s\n", info.Get("name").String(), info.Get("version").String())
	}

	return nil
}
