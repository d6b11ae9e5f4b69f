package mover

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"ticketsweep/internal/fileutil"
	"ticketsweep/internal/logging"
	"ticketsweep/internal/scanner"
	"ticketsweep/internal/ticket"
)

const lockFileName = ".ticketsweep.lock"

// Failure records one folder that could not be moved.
type Failure struct {
	Ticket ticket.ID
	Folder string
	Err    error
}

// Summary reports what a batch move actually did.
type Summary struct {
	// Moved lists folder names now present in the deletion location.
	Moved []string
	// Skipped lists ticket ids with no matching folder left in the source.
	Skipped []ticket.ID
	Failed  []Failure
}

// Mover moves ticket folders from the backups location to deletion staging.
type Mover struct {
	source string
	dest   string
	logger *slog.Logger
}

// New constructs a Mover for the given source and destination directories.
func New(source, dest string, logger *slog.Logger) *Mover {
	return &Mover{
		source: source,
		dest:   dest,
		logger: logging.NewComponentLogger(logger, "mover"),
	}
}

// MoveToDeletion relocates every folder matching one of ids into the
// deletion location, folder by folder. A file lock in the destination keeps
// two concurrent sweeps from interleaving; everything past the lock is
// best-effort and reflected in the Summary rather than an error.
func (m *Mover) MoveToDeletion(ctx context.Context, ids []ticket.ID) (Summary, error) {
	logger := logging.WithContext(ctx, m.logger)

	if err := os.MkdirAll(m.dest, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create deletion location: %w", err)
	}

	lock := flock.New(filepath.Join(m.dest, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("another sweep is already moving folders into %s", m.dest)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release sweep lock", logging.Error(err))
		}
	}()

	var summary Summary
	for _, id := range ids {
		matches, err := scanner.MatchFolders(m.source, id)
		if err != nil {
			logger.Error("cannot list source for ticket, skipping",
				logging.String("ticket", id.String()), logging.Error(err))
			summary.Failed = append(summary.Failed, Failure{Ticket: id, Err: err})
			continue
		}
		if len(matches) == 0 {
			logger.Info("no folder left for ticket, nothing to move",
				logging.String("ticket", id.String()))
			summary.Skipped = append(summary.Skipped, id)
			continue
		}
		for _, folder := range matches {
			source := filepath.Join(m.source, folder)
			target := filepath.Join(m.dest, folder)
			if err := fileutil.MoveDir(source, target); err != nil {
				logger.Error("move failed, continuing with remaining folders",
					logging.String("ticket", id.String()),
					logging.String("folder", folder),
					logging.Error(err))
				summary.Failed = append(summary.Failed, Failure{Ticket: id, Folder: folder, Err: err})
				continue
			}
			logger.Info("folder moved to deletion staging",
				logging.String("ticket", id.String()),
				logging.String("folder", folder))
			summary.Moved = append(summary.Moved, folder)
		}
	}
	return summary, nil
}
