package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snapvote/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "snapvote",
		Short: "Snapvote is an anonymous image gallery with one-vote-per-session ranking",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newUploadCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newVoteCmd(cfg, &jsonOutput),
		newVotedCmd(cfg, &jsonOutput),
		newLeaderboardCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newSessionCmd(cfg, &jsonOutput),
		newResetCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
		newAdminCmd(cfg),
	)

	return cmd
}
