package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"snapvote/internal/blobstore"
	"snapvote/internal/config"
	"snapvote/internal/gallery"
	"snapvote/internal/server"
	"snapvote/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the snapvote API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			blobs, err := blobstore.NewLocalDir(cfg.BlobRoot())
			if err != nil {
				return err
			}

			service, err := gallery.New(st, blobs, logger)
			if err != nil {
				return err
			}

			srv := server.New(addr, service, st, server.Options{
				MaxUploadBytes:     cfg.Uploads.MaxUploadBytes,
				MultipartMaxMemory: cfg.Uploads.MultipartMaxMemory,
				AllowedMediaTypes:  cfg.Uploads.AllowedMediaTypes,
				LeaderboardSize:    cfg.LeaderboardSize,
				AdminPasswordHash:  cfg.AdminPasswordHash,
				DBPath:             cfg.DBPath,
				BlobRoot:           cfg.BlobRoot(),
			}, logger)
			return srv.ListenAndServe()
		},
	}
}
