package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v5"
)

// Local stores payloads as flat files under a root directory.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed and returns the store.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage root %q", root)
	}

	return &Local{root: root}, nil
}

// Put writes the payload to a new file named by a fresh UUID.
func (s *Local) Put(_ context.Context, data []byte, _ string) (string, error) {
	locator := filepath.Join(s.root, gutils.UUID7())
	if err := os.WriteFile(locator, data, 0o600); err != nil {
		return "", errors.Wrapf(err, "write payload %q", locator)
	}

	return locator, nil
}

// IsAlive reports whether the root directory is still accessible.
func (s *Local) IsAlive(_ context.Context) bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}
