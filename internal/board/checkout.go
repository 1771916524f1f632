package board

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// EnsureCheckout returns dir if it already holds a checkout, cloning url
// into it otherwise. An existing checkout is never refreshed: staleness is
// accepted, and CI jobs that need a fresh tree wipe the work directory
// before invoking the harness.
func EnsureCheckout(ctx context.Context, r Runner, url, dir string) (string, error) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		slog.Debug("checkout already present", "dir", dir)
		return dir, nil
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("prepare checkout parent: %w", err)
	}

	slog.Info("cloning", "url", url, "dir", dir)
	if out, err := r.Run(ctx, "", "git", "clone", "--depth", "1", url, dir); err != nil {
		return "", fmt.Errorf("clone %s: %w\n%s", url, err, out)
	}
	return dir, nil
}
