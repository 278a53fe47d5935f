package main

import (
	"github.com/spf13/cobra"

	"snapvote/internal/auth"
	"snapvote/internal/config"
)

func newAdminCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative helpers",
	}

	cmd.AddCommand(newAdminSetPasswordCmd())
	return cmd
}

// newAdminSetPasswordCmd hashes a reset password and stores it in config.
// A server restarted with this config requires the password for reset.
func newAdminSetPasswordCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set-password <password>",
		Short: "Set the admin reset password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}

			var path string
			if global {
				path, err = config.GlobalPath()
			} else {
				path, err = config.ProjectPath()
			}
			if err != nil {
				return err
			}

			if err := config.SetKey(path, "admin_password_hash", hash); err != nil {
				return err
			}
			return writePlain("admin password set in %s\n", path)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write to global config (~/.snapvote.toml)")
	return cmd
}
