package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const tmpDirName = "tmp"

// LocalDir stores blob bytes as one flat file per image id.
type LocalDir struct {
	root string
}

// NewLocalDir creates a local blob store rooted at root.
func NewLocalDir(root string) (*LocalDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, tmpDirName), 0o755); err != nil {
		return nil, err
	}
	return &LocalDir{root: abs}, nil
}

// Put streams bytes into a temp file and renames it into place. An id
// that already has a blob is rejected with ErrDuplicateID.
func (d *LocalDir) Put(ctx context.Context, id string, r io.Reader) (int64, error) {
	if d == nil {
		return 0, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return 0, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dst, err := d.pathFromID(id)
	if err != nil {
		return 0, err
	}

	if _, err := os.Stat(dst); err == nil {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Join(d.root, tmpDirName), "put-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return 0, err
	}
	return n, nil
}

// Open returns a reader for the blob stored under id.
func (d *LocalDir) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if d == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.pathFromID(id)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return f, err
}

// Clear removes every stored blob. The root stays usable afterwards.
func (d *LocalDir) Clear(ctx context.Context) error {
	if d == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(d.root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() == tmpDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(d.root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (d *LocalDir) pathFromID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("blob id is required")
	}
	clean := filepath.Clean(id)
	if clean != id || clean == "." || clean == tmpDirName ||
		strings.ContainsAny(id, `/\`) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid blob id")
	}
	return filepath.Join(d.root, clean), nil
}

var _ BlobStore = (*LocalDir)(nil)
