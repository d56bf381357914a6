package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication and server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd.Context(), func(svc AuthService) error {
				st, err := svc.Status(cmd.Context())
				if err != nil {
					return err
				}

				c.io.Println("=== Authentication Status ===")
				if st.Session == nil {
					c.io.Println("Status: Not authenticated")
					c.io.Println("Run 'vidtube login' to authenticate.")
				} else {
					expiresAt := time.Unix(st.Session.ExpiresAt, 0)

					c.io.Println("Status: Authenticated")
					c.io.Printf("Username: %s\n", st.Session.Username)
					c.io.Printf("Server: %s\n", st.Session.ServerURL)
					c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
					if !st.Session.AccessExpired(time.Now()) {
						c.io.Printf("Time remaining: %s\n", time.Until(expiresAt).Round(time.Second))
					} else {
						// refresh токен обычно еще жив, команды обновят пару сами
						c.io.Println("⚠️  Access token has expired, it will be refreshed on next request.")
					}
				}

				c.io.Println()
				c.io.Println("=== Server ===")
				if st.ServerError != nil {
					c.io.Printf("Server: unavailable (%v)\n", st.ServerError)
					return nil
				}
				c.io.Printf("Server: %s, storage %s, version %s\n", st.Server.Status, st.Server.Storage, st.Server.Version)
				return nil
			})
		},
	}
}
