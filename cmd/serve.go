package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabdash/internal/panel"
	"github.com/KaramelBytes/tabdash/internal/ui"
)

var (
	srvAddr        string
	srvMaxUploadMB int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return errors.New("no configuration loaded")
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = srvAddr
		}
		if cmd.Flags().Changed("max-upload-mb") {
			if srvMaxUploadMB < 0 {
				return fmt.Errorf("invalid --max-upload-mb: %d", srvMaxUploadMB)
			}
			cfg.MaxUploadMB = srvMaxUploadMB
		}
		delim, err := cfg.Delimiter()
		if err != nil {
			return err
		}
		secret := cfg.SessionSecret
		if secret == "" {
			secret, err = randomSecret()
			if err != nil {
				return err
			}
			warnf("session_secret is not set; sessions will not survive a restart")
		}

		logger := newLogger(os.Stderr, cfg, debug)
		srv := ui.NewServer(ui.Config{
			Addr:           cfg.Addr,
			SessionSecret:  secret,
			SessionTTL:     time.Duration(cfg.SessionTTLMin) * time.Minute,
			MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
			Delimiter:      delim,
			Panel: panel.Options{
				PreviewRows:   cfg.PreviewRows,
				HistogramBins: cfg.HistogramBins,
			},
			Logger: logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", ":8501", "listen address (overrides config)")
	serveCmd.Flags().IntVar(&srvMaxUploadMB, "max-upload-mb", 0, "upload size limit in MB, 0 for none (overrides config)")
}
