package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/samchinmaya/querydesk/internal/config"
	"github.com/samchinmaya/querydesk/internal/directory"
	"github.com/samchinmaya/querydesk/internal/drafter"
	"github.com/samchinmaya/querydesk/internal/mailer"
	"github.com/samchinmaya/querydesk/internal/pipeline"
	"github.com/samchinmaya/querydesk/internal/store"
	"github.com/samchinmaya/querydesk/internal/webhook"
	"github.com/samchinmaya/querydesk/internal/whatsapp"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Directory load is the one synchronous startup cost; it
			// stays off the message hot path from here on.
			records, err := directory.LoadXLSX(cfg.Directory.Path)
			if err != nil {
				return fmt.Errorf("loading client directory: %w", err)
			}
			dir := directory.New(records)
			log.Info().Int("clients", dir.Len()).Str("path", cfg.Directory.Path).Msg("client directory loaded")

			db, err := store.Open(cfg.Store.Path, log)
			if err != nil {
				return err
			}
			defer db.Close()

			mail, err := mailer.NewGmail(ctx, cfg.Email.CredentialsPath, cfg.Email.TokenPath, log)
			if err != nil {
				return fmt.Errorf("initializing mailer: %w", err)
			}

			orch := pipeline.New(
				store.NewConversationStore(db),
				whatsapp.NewClient(cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.BaseURL),
				drafter.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint),
				mail,
				dir,
				cfg.WhatsApp.BusinessNumber,
				cfg.Email.FallbackTo,
				log,
			)

			handler := webhook.NewHandler(orch, dir, cfg.Directory.Path, cfg.WhatsApp.VerifyToken, log)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:           webhook.NewRouter(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Int("port", cfg.Server.Port).Msg("webhook server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override the configured port")
	return cmd
}
