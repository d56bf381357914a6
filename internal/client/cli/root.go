package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultDBPath    = "vidtube-client.db"
)

// RootCommand собирает дерево команд клиента
func (c *Cli) RootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "vidtube",
		Short:         "vidtube account client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.opts.ServerSet = cmd.Flags().Changed("server") || os.Getenv("VIDTUBE_SERVER") != ""
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ServerURL, "server", envOr("VIDTUBE_SERVER", defaultServerURL), "Server URL (env VIDTUBE_SERVER)")
	flags.StringVar(&c.opts.DBPath, "db", envOr("VIDTUBE_DB", defaultDBPath), "Path to local session database (env VIDTUBE_DB)")
	flags.StringVar(&c.passwords.FromFile, "password-file", "", "Path to file containing password")
	flags.StringVar(&c.passwords.FromArgs, "password", "", "Password (not recommended, use "+PasswordEnv+" or --password-file)")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.refreshCommand(),
		c.whoamiCommand(),
		c.passwdCommand(),
		c.statusCommand(),
	)

	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
