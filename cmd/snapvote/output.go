package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"snapvote/internal/api"
	"snapvote/internal/format"
	"snapvote/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeImageList(images []models.ImageRecord) error {
	for _, image := range images {
		if err := writePlain("%s\n", formatImageLine(image)); err != nil {
			return err
		}
	}
	return nil
}

func writeImageDetail(image models.ImageRecord) error {
	_ = writePlain("id: %s\n", image.ID)
	_ = writePlain("display_name: %s\n", image.DisplayName)
	_ = writePlain("upvotes: %d\n", image.Upvotes)
	_ = writePlain("size: %s\n", humanize.IBytes(uint64(image.SizeBytes)))
	return writePlain("created_at: %s\n", formatTime(image.CreatedAt))
}

func writeLeaderboard(entries []api.LeaderboardEntry) error {
	if len(entries) == 0 {
		return writePlain("no images yet\n")
	}
	for _, entry := range entries {
		if err := writePlain("%2d. %s (%d votes) [%s]\n", entry.Rank, entry.DisplayName, entry.Votes, entry.ID); err != nil {
			return err
		}
	}
	return nil
}

func formatImageLine(image models.ImageRecord) string {
	return fmt.Sprintf("%s [%d votes] [%s] - %s", image.ID, image.Upvotes, humanize.IBytes(uint64(image.SizeBytes)), image.DisplayName)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
