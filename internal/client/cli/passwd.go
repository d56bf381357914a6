package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func (c *Cli) passwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Всегда интерактивно: VIDTUBE_PASSWORD относится к login
			oldPassword, err := c.readPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := c.readPassword("New password (min 8 chars): ")
			if err != nil {
				return err
			}
			confirm, err := c.readPassword("Confirm new password: ")
			if err != nil {
				return err
			}
			if newPassword != confirm {
				return errors.New("passwords do not match")
			}

			return c.withService(cmd.Context(), func(svc AuthService) error {
				if err := svc.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
					return err
				}
				c.io.Println("✓ Password changed")
				return nil
			})
		},
	}
}
