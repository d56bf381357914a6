package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/iudanet/vidtube/internal/client/auth"
)

func (c *Cli) registerCommand() *cobra.Command {
	var in auth.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.io.Println("=== Registration ===")

			var err error
			if in.Username, err = c.readRequired(in.Username, "Username: ", "username"); err != nil {
				return err
			}
			if in.Email, err = c.readRequired(in.Email, "Email: ", "email"); err != nil {
				return err
			}

			password, interactive, err := c.getPassword("Password (min 8 chars): ")
			if err != nil {
				return err
			}
			if interactive {
				confirm, err := c.readPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if password != confirm {
					return errors.New("passwords do not match")
				}
			}
			in.Password = password

			return c.withService(cmd.Context(), func(svc AuthService) error {
				user, err := svc.Register(cmd.Context(), in)
				if err != nil {
					return err
				}

				c.io.Println("✓ Registration successful!")
				c.io.Printf("User ID: %s\n", user.ID)
				c.io.Printf("Username: %s\n", user.Username)
				c.io.Println()
				c.io.Println("Please run 'vidtube login' to start using the service.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "Username (3-32 chars, letters, digits, underscore)")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Email")
	cmd.Flags().StringVar(&in.FullName, "full-name", "", "Display name")

	return cmd
}
