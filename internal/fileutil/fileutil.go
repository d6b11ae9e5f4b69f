package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"ticketsweep/internal/logging"
)

// FolderSize walks dir recursively and sums the sizes of regular files.
// Unreadable files or subtrees are skipped and logged, so the total can
// undercount rather than fail the caller.
func FolderSize(dir string, logger *slog.Logger) (uint64, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("stat folder %s: %w", dir, err)
	}

	var total uint64
	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable path during size scan",
				logging.String("path", path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn("skipping file with unreadable size",
				logging.String("path", path), logging.Error(err))
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	if walkErr != nil {
		return total, fmt.Errorf("walk folder %s: %w", dir, walkErr)
	}
	return total, nil
}

// MoveDir relocates a directory, preserving its name semantics: rename when
// source and target share a filesystem, recursive copy plus remove when the
// rename fails with EXDEV.
func MoveDir(source, target string) error {
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("target %s already exists", target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat target %s: %w", target, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create target parent: %w", err)
	}

	if err := os.Rename(source, target); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := copyTree(source, target); err != nil {
				return fmt.Errorf("copy across devices: %w", err)
			}
			if err := os.RemoveAll(source); err != nil {
				return fmt.Errorf("remove source after copy: %w", err)
			}
			return nil
		}
		return fmt.Errorf("move directory: %w", err)
	}
	return nil
}

func copyTree(source, target string) error {
	return filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(target, rel)

		switch {
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(dest, info.Mode().Perm())
		case entry.Type().IsRegular():
			return copyFileContents(path, dest)
		default:
			// Sockets, fifos, and symlinks are not expected inside backup
			// folders; skip rather than fail mid-copy.
			return nil
		}
	})
}

func copyFileContents(sourcePath, targetPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dest, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return fmt.Errorf("copy data: %w", err)
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		return fmt.Errorf("sync destination: %w", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}
