package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
	"snapvote/internal/models"
)

func newUploadCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var name string
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload one or more images",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := uploadEntries(args, name, manifestPath)
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				var uploaded []models.ImageRecord
				for _, entry := range entries {
					file, err := os.Open(entry.Path)
					if err != nil {
						return err
					}
					record, err := client.Upload(cmd.Context(), entry.Name, filepath.Base(entry.Path), file)
					file.Close()
					if err != nil {
						return fmt.Errorf("upload %s: %w", entry.Path, err)
					}
					uploaded = append(uploaded, record)
				}

				if *jsonOutput {
					return writeJSON(uploaded)
				}
				return writeImageList(uploaded)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (single file only)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML manifest of images to upload")
	return cmd
}

func uploadEntries(args []string, name, manifestPath string) ([]manifestEntry, error) {
	if manifestPath != "" {
		if len(args) > 0 || name != "" {
			return nil, fmt.Errorf("--manifest cannot be combined with file arguments or --name")
		}
		return loadManifest(manifestPath)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("at least one file or --manifest is required")
	}
	if name != "" && len(args) > 1 {
		return nil, fmt.Errorf("--name applies to a single file upload")
	}

	entries := make([]manifestEntry, 0, len(args))
	for _, arg := range args {
		entries = append(entries, manifestEntry{Path: arg, Name: name})
	}
	return entries, nil
}
