package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdvornichenko/birthday"
	"github.com/kdvornichenko/birthday/internal/config"
	"github.com/kdvornichenko/birthday/internal/logging"
	"github.com/kdvornichenko/birthday/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RSVP HTTP server",
	Long:  `Starts the RSVP backend, exposing the session and submission API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		logger := logging.New(cfg.LogLevel)

		app, err := birthday.New(cfg, birthday.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing invite: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if cfg.BotToken == "" || cfg.ChatID == "" {
			logger.Warn("telegram is not configured, submissions will fail until INVITE_BOT_TOKEN and INVITE_CHAT_ID are set")
		}

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: app.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(birthday.Version)
			fmt.Printf("Starting Invite Server on %s\n", srv.Addr)
			fmt.Printf("Questionnaire language: %s\n", app.Schema().Lang)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Invite Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides INVITE_ADDR)")
}
