package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/interviewgen/internal/interview"
	"github.com/abhisek/interviewgen/internal/llm"
	"github.com/abhisek/interviewgen/internal/logging"
	"github.com/abhisek/interviewgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		srvCfg, err := server.ConfigFromEnv()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			srvCfg.Addr = addr
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			srvCfg.LogLevel = lvl
		}

		logger, err := logging.New(srvCfg.LogLevel, srvCfg.LogFormat)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		llmCfg, err := llm.ConfigFromEnv()
		if err != nil {
			return err
		}
		gen, err := newGenerator(ctx, llmCfg, logger)
		if err != nil {
			return err
		}
		if gen == nil {
			logger.Warn("LLM credential not configured; generation requests will fail",
				zap.String("provider", llmCfg.Provider))
		}

		gin.SetMode(gin.ReleaseMode)
		srv := server.New(srvCfg, server.NewHandler(llmCfg, gen, logger), logger)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// newGenerator builds the generator for cfg. It returns nil without error
// when the selected provider only lacks its credential, so the server can
// still start and report that per request. Any other configuration error,
// such as an unknown provider, is returned.
func newGenerator(ctx context.Context, cfg llm.Config, logger *zap.Logger) (*interview.Generator, error) {
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid LLM configuration: %w", err)
	}
	provider, err := llm.NewProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	return interview.NewGenerator(provider, interview.Config{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}), nil
}
