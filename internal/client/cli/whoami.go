package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd.Context(), func(svc AuthService) error {
				user, err := svc.WhoAmI(cmd.Context())
				if err != nil {
					return err
				}

				c.io.Printf("ID:         %s\n", user.ID)
				c.io.Printf("Username:   %s\n", user.Username)
				c.io.Printf("Email:      %s\n", user.Email)
				if user.FullName != "" {
					c.io.Printf("Full name:  %s\n", user.FullName)
				}
				c.io.Printf("Registered: %s\n", user.CreatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
}
