package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the command context and reachable from every
// subcommand through loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Pseudoloc generates pseudo-localized resource files",
		Long: `Pseudoloc generates pseudo-localized copies of resource files (ResX, JSON,
YAML, TOML) so untranslated, truncated or concatenated strings stand out
before real translations exist. Format placeholders such as {0} are kept
intact.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $PSEUDOLOC_CONFIG, ./.pseudoloc.toml, ~/.config/pseudoloc/config.toml)")

	root.AddCommand(c.localizeCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.transformsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
