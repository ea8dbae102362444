package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Local stores resume files on the local filesystem under a root directory.
// Files are organized per owner; locators are paths relative to the root.
type Local struct {
	root   string
	logger *zap.Logger
}

// NewLocal creates a disk-backed store rooted at the given directory.
func NewLocal(root string, logger *zap.Logger) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Local{root: root, logger: logger}, nil
}

// Put writes content under a collision-free per-owner path and returns the
// locator.
func (l *Local) Put(ctx context.Context, ownerID uuid.UUID, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	locator := filepath.Join(
		ownerID.String(),
		fmt.Sprintf("resume_%s_%s.%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8], ext),
	)

	fullPath := filepath.Join(l.root, locator)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}

	l.logger.Info("resume stored",
		zap.String("locator", locator),
		zap.Int("bytes", len(content)))

	return locator, nil
}

// Get reads the bytes for a previously stored locator.
func (l *Local) Get(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := l.resolve(locator)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", locator, err)
	}
	return content, nil
}

// Delete removes a stored file. Returns false when the file did not exist.
func (l *Local) Delete(ctx context.Context, locator string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fullPath, err := l.resolve(locator)
	if err != nil {
		return false, err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete resume file %s: %w", locator, err)
	}
	return true, nil
}

// resolve joins the locator to the root and rejects traversal outside it.
func (l *Local) resolve(locator string) (string, error) {
	fullPath := filepath.Join(l.root, filepath.Clean("/"+locator))
	if !strings.HasPrefix(fullPath, filepath.Clean(l.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid locator: %s", locator)
	}
	return fullPath, nil
}
