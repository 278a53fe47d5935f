package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
)

const sessionIDEnvKey = "SNAPVOTE_SESSION_ID"

// localSessionID returns this machine's persistent voting session id,
// minting and saving one on first use. The env var overrides the file
// so scripts can act as a distinct voter.
func localSessionID() (string, error) {
	if id := strings.TrimSpace(os.Getenv(sessionIDEnvKey)); id != "" {
		return id, nil
	}

	path, err := sessionFilePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}

func sessionFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "snapvote", "session"), nil
}

func newSessionCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the local voting session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the local session id",
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := localSessionID()
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(api.SessionResponse{SessionID: id})
				}
				return writePlain("%s\n", id)
			},
		},
		&cobra.Command{
			Use:   "new",
			Short: "Discard the local session id and mint a fresh one",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := sessionFilePath()
				if err != nil {
					return err
				}
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
				id, err := localSessionID()
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(api.SessionResponse{SessionID: id})
				}
				return writePlain("%s\n", id)
			},
		},
	)

	return cmd
}
