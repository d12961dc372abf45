package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mr-romero/desmos-code-hub/internal/api"
	"github.com/mr-romero/desmos-code-hub/internal/llm"
	"github.com/mr-romero/desmos-code-hub/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authoring HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8787", "Listen address")
	serveCmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (default: any)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = ":8787"
	}
	origins, _ := cmd.Flags().GetStringSlice("cors-origins")

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			logger.Warn("no LLM credential configured; analyze requests will be rejected",
				zap.Error(err))
		}
	}

	server := api.NewServer(cfg, s.EventRepo(), logger)
	server.CORSOrigins = origins

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", zap.String("addr", addr), zap.String("db", dbPath))
	return server.ListenAndServe(ctx, addr)
}
