package cli

import (
	"github.com/spf13/cobra"
)

func (c *Cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.io.Println("=== Logout ===")

			return c.withService(cmd.Context(), func(svc AuthService) error {
				serverNotified, err := svc.Logout(cmd.Context())
				if err != nil {
					return err
				}

				if !serverNotified {
					c.io.Println("⚠️  Server did not confirm logout.")
				}
				c.io.Println("✓ Logout successful!")
				c.io.Println("Your local session has been deleted.")
				return nil
			})
		},
	}
}
