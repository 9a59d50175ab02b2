package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/lostfound/internal/app"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	prefsPath  string
	apiBase    string
	debug      bool
}

func (g *globalOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIBase:    g.apiBase,
		Debug:      g.debug,
	}
}

func (g *globalOptions) runtime() (*app.Runtime, error) {
	return app.Setup(g.appOptions())
}

// NewRootCmd returns the lostfound command tree. Without a subcommand it
// opens the terminal UI on the Search page.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "lostfound",
		Short: "Lost-and-found image catalogue client",
		Long: `lostfound looks up lost items by photo and catalogues found ones.

Run without a command to open the terminal UI. The Search page compares an
image against the catalogue; the Admin page uploads found items and manages
the listing.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/lostfound/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/lostfound/prefs.toml)")
	flags.StringVar(&opts.apiBase, "api", "", "Catalogue Service address, overrides config and LOSTFOUND_API_BASE")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newAdminCmd(opts))
	cmd.AddCommand(newFindCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newDevserverCmd(opts))
	cmd.AddCommand(newLogsCmd(opts))

	return cmd
}

func newAdminCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Open the terminal UI on the Admin page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appOpts := opts.appOptions()
			appOpts.Admin = true
			return app.Run(cmd.Context(), appOpts)
		},
	}
}
