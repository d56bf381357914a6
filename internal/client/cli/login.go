package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username|email]",
		Short: "Login to server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Println("=== Login ===")

			var login string
			if len(args) == 1 {
				login = args[0]
			}
			login, err := c.readRequired(login, "Username or email: ", "username")
			if err != nil {
				return err
			}

			password, _, err := c.getPassword("Password: ")
			if err != nil {
				return err
			}

			return c.withService(cmd.Context(), func(svc AuthService) error {
				authData, err := svc.Login(cmd.Context(), login, password)
				if err != nil {
					return err
				}

				c.io.Println("✓ Login successful!")
				c.io.Printf("Username: %s\n", authData.Username)
				c.io.Printf("Access token expires: %s\n", time.Unix(authData.ExpiresAt, 0).Format(time.RFC3339))
				return nil
			})
		},
	}
}
