package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// uploadManifest is a YAML file describing a batch of images to upload.
//
//	images:
//	  - path: photos/cat.png
//	    name: Cat
//	  - path: photos/dog.png
type uploadManifest struct {
	Images []manifestEntry `yaml:"images"`
}

type manifestEntry struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// loadManifest parses the manifest and resolves relative image paths
// against the manifest's own directory.
func loadManifest(path string) ([]manifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest uploadManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(manifest.Images) == 0 {
		return nil, fmt.Errorf("manifest %s lists no images", path)
	}

	base := filepath.Dir(path)
	entries := make([]manifestEntry, 0, len(manifest.Images))
	for i, entry := range manifest.Images {
		if strings.TrimSpace(entry.Path) == "" {
			return nil, fmt.Errorf("manifest %s: entry %d has no path", path, i+1)
		}
		if !filepath.IsAbs(entry.Path) {
			entry.Path = filepath.Join(base, entry.Path)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
