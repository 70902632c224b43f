package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/georgeb3/zoom-recording-downloader/internal/config"
	"github.com/georgeb3/zoom-recording-downloader/internal/downloader"
	"github.com/georgeb3/zoom-recording-downloader/internal/logging"
	"github.com/georgeb3/zoom-recording-downloader/internal/manifest"
	"github.com/georgeb3/zoom-recording-downloader/internal/zoom"
)

func newDownloadCmd() *cobra.Command {
	var (
		configPath string
		outputDir  string
		userID     string
		monthsBack int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download all cloud recordings not yet on disk",
		Long: `Scan the account's cloud recordings month by month, going back the
configured number of months, and download every recording file that is not
yet recorded in the manifest.

Credentials come from a Server-to-Server OAuth app: set ZOOM_ACCOUNT_ID,
ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET (or put them in the config file).
Individual failed downloads are logged and retried on the next run; only
authentication and manifest-write failures abort a run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("user") {
				cfg.UserID = userID
			}
			if cmd.Flags().Changed("months") {
				cfg.MonthsBack = monthsBack
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := logging.New(level)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runDownload(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory to save recordings into")
	cmd.Flags().StringVar(&userID, "user", "me", "user whose recordings to list ('me' = account owner)")
	cmd.Flags().IntVar(&monthsBack, "months", 24, "how many months to look back")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runDownload(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, err := manifest.Load(filepath.Join(cfg.OutputDir, "manifest.json"), logger)
	if err != nil {
		return err
	}

	tokens := zoom.NewTokenProvider(cfg.AccountID, cfg.ClientID, cfg.ClientSecret)
	invoker := zoom.NewInvoker(tokens, logger)

	catalog := zoom.NewCatalogClient(invoker, logger)
	catalog.PageSize = cfg.PageSize
	catalog.PagePause = cfg.RequestPause()

	orch := downloader.New(catalog, invoker, store, cfg.OutputDir, cfg.UserID, cfg.MonthsBack, logger)
	orch.FilePause = cfg.RequestPause()

	sum, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	fmt.Printf("Done. Files seen: %d, newly downloaded: %d, skipped: %d, failed: %d\n",
		sum.FilesSeen, sum.Downloaded, sum.Skipped, sum.Failed)
	fmt.Printf("Output folder: %s\n", cfg.OutputDir)
	return nil
}
