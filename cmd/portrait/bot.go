package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/aretw0/portrait/pkg/adapters/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Connects to Telegram with BOT_TOKEN and answers updates by long polling.
With --http the JSON API and /metrics are served on the configured address,
sharing sessions with the bot.`,
	Run: func(cmd *cobra.Command, args []string) {
		withHTTP, _ := cmd.Flags().GetBool("http")

		cfg, logger, err := loadConfig(cmd)
		exitOnError("invalid configuration", err)
		exitOnError("invalid configuration", cfg.ValidateBot())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		exitOnError("failed to start", err)
		defer a.Close()

		api, err := tgbotapi.NewBotAPI(cfg.BotToken)
		exitOnError("failed to connect to Telegram", err)
		logger.Info("authorized on Telegram", "username", api.Self.UserName)

		if withHTTP {
			srv := newHTTPServer(a, cfg.HTTPAddr)
			go func() {
				logger.Info("HTTP server listening", "address", cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server failed", "err", err)
				}
			}()
			defer shutdownHTTP(srv, logger)
		}

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := api.GetUpdatesChan(u)
		go func() {
			<-ctx.Done()
			api.StopReceivingUpdates()
		}()

		bot := telegram.New(api, a.sessions,
			telegram.WithLogger(logger),
			telegram.WithTexts(a.engine.Texts()),
			telegram.WithLinks(a.links()),
		)
		if err := bot.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("bot stopped", "err", err)
			os.Exit(1)
		}
		logger.Info("bot stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.Flags().Bool("http", false, "Also serve the HTTP API and metrics")
}
