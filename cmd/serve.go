package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haldis/replybot/internal/cache"
	"github.com/haldis/replybot/internal/config"
	"github.com/haldis/replybot/internal/llm"
	"github.com/haldis/replybot/internal/relay"
	"github.com/haldis/replybot/internal/server"
	"github.com/haldis/replybot/internal/slack"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook relay server",
	Long:  `Starts the relay: resolves the bot identity, then serves the Slack events webhook and health endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)

		// Create the generation backend.
		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.OllamaHost)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}
		generator := llm.NewGenerator(provider, cfg.Model)

		// Resolve the bot's own identity before accepting any request.
		// Without it, self-message suppression cannot work.
		slackClient := slack.NewClient(cfg.SlackToken)
		startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		selfID, err := slackClient.ResolveBotIdentity(startupCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("resolving bot identity: %w", err)
		}
		logger.Info("bot identity resolved", "user_id", selfID)

		responseCache, err := cache.New(cfg.CacheSize)
		if err != nil {
			return fmt.Errorf("creating cache: %w", err)
		}

		pipeline := relay.New(relay.Options{
			Verifier:          slack.NewVerifier(cfg.SigningSecret, time.Duration(cfg.ReplayWindowSecs)*time.Second),
			Messenger:         slackClient,
			Generator:         generator,
			Cache:             responseCache,
			SelfID:            selfID,
			GenerationTimeout: time.Duration(cfg.GenerationTimeoutSecs) * time.Second,
			Logger:            logger,
		})

		srv := server.New(server.Config{Port: cfg.Port}, pipeline)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "replybot v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", provider.Name(), cfg.Model)
		fmt.Fprintf(os.Stderr, "  Bot user: %s\n", selfID)

		err = srv.Start()

		// Let in-flight generate-and-deliver tasks finish before exiting.
		pipeline.Wait()

		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured listen port")
	rootCmd.AddCommand(serveCmd)
}
