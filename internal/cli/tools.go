package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/lostfound/internal/config"
	"github.com/five82/lostfound/internal/devserver"
	"github.com/five82/lostfound/internal/logging"
	"github.com/five82/lostfound/internal/logtail"
)

func newDevserverCmd(opts *globalOptions) *cobra.Command {
	var addr string
	var assetPath string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory Catalogue Service for local development",
		Long: `Starts a Catalogue Service with the same HTTP contract as the real one.

Images are kept in memory and compared with a perceptual hash, so results
are only meaningful for near-identical photos. Upload, listing and delete
are limited to loopback clients.`,
		Example: `  # Serve on the client's default address
  lostfound devserver

  # Serve on another port
  lostfound devserver --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), opts.debug)
			srv := devserver.New(assetPath, logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5001", "address to listen on")
	cmd.Flags().StringVar(&assetPath, "asset-path", "/static/uploads", "URL path assets are served under")

	return cmd
}

func newLogsCmd(opts *globalOptions) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the lostfound log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Filtering needs the whole file; the tail is cut afterwards.
			limit := lines
			if level != "" {
				limit = 0
			}
			all, err := logtail.Read(cfg.LogPath(), limit)
			if err != nil {
				return err
			}
			if level != "" {
				var threshold slog.Level
				if err := threshold.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
					return fmt.Errorf("invalid level %q: %w", level, err)
				}
				all = logtail.FilterLevel(all, threshold)
			}
			if lines > 0 && len(all) > lines {
				all = all[len(all)-lines:]
			}

			w := cmd.OutOrStdout()
			for _, line := range all {
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level: debug, info, warn or error")

	return cmd
}
