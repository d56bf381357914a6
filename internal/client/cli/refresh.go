package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd.Context(), func(svc AuthService) error {
				authData, err := svc.Refresh(cmd.Context())
				if err != nil {
					return err
				}

				c.io.Println("✓ Tokens refreshed")
				c.io.Printf("Access token expires: %s\n", time.Unix(authData.ExpiresAt, 0).Format(time.RFC3339))
				return nil
			})
		},
	}
}
