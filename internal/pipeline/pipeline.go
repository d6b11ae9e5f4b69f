package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ticketsweep/internal/config"
	"ticketsweep/internal/fileutil"
	"ticketsweep/internal/logging"
	"ticketsweep/internal/retention"
	"ticketsweep/internal/scanner"
	"ticketsweep/internal/services"
	"ticketsweep/internal/services/servicenow"
	"ticketsweep/internal/ticket"
)

// MetadataClient is the remote lookup surface the pipeline needs.
type MetadataClient interface {
	FetchTicket(ctx context.Context, id ticket.ID) (servicenow.Facts, error)
}

// ProgressFunc receives one tick per completed ticket, successful or dropped.
type ProgressFunc func(completed, total int)

// Options configures an Evaluator.
type Options struct {
	Config   *config.Config
	Client   MetadataClient
	Policy   retention.Policy
	Logger   *slog.Logger
	Progress ProgressFunc
	// Now overrides the clock (tests). Defaults to the policy zone clock.
	Now func() time.Time
}

// Evaluator runs evaluation cycles over the configured backups location.
type Evaluator struct {
	cfg      *config.Config
	client   MetadataClient
	policy   retention.Policy
	logger   *slog.Logger
	progress ProgressFunc
	now      func() time.Time
}

// New constructs an Evaluator.
func New(opts Options) *Evaluator {
	now := opts.Now
	if now == nil {
		now = opts.Policy.Now
	}
	return &Evaluator{
		cfg:      opts.Config,
		client:   opts.Client,
		policy:   opts.Policy,
		logger:   logging.NewComponentLogger(opts.Logger, "pipeline"),
		progress: opts.Progress,
		now:      now,
	}
}

// Evaluate scans the backups location and evaluates every discovered ticket
// concurrently. Per-ticket failures are absorbed and logged; only the initial
// directory scan can fail the cycle. The returned records are in completion
// order and the slice is never mutated afterwards.
func (e *Evaluator) Evaluate(ctx context.Context) ([]ticket.Record, error) {
	ctx = services.WithCycleID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, e.logger)

	ids, err := scanner.Scan(e.cfg.BackupsLocation)
	if err != nil {
		return nil, err
	}
	total := len(ids)
	logger.Info("evaluation cycle started",
		logging.String("backups_location", e.cfg.BackupsLocation),
		logging.Int("tickets", total))
	if total == 0 {
		return nil, nil
	}

	workers := e.cfg.Pipeline.Workers
	if workers <= 0 || workers > total {
		workers = total
	}
	sem := make(chan struct{}, workers)
	outcomes := make(chan *ticket.Record)

	for _, id := range ids {
		go func(id ticket.ID) {
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes <- e.evaluateOne(services.WithTicket(ctx, id.String()), id)
		}(id)
	}

	// Single collector: every goroutine reports exactly once, so reading
	// total outcomes is the fan-in barrier.
	records := make([]ticket.Record, 0, total)
	for completed := 1; completed <= total; completed++ {
		if record := <-outcomes; record != nil {
			records = append(records, *record)
		}
		if e.progress != nil {
			e.progress(completed, total)
		}
	}

	logger.Info("evaluation cycle finished",
		logging.Int("resolved", len(records)),
		logging.Int("dropped", total-len(records)))
	return records, nil
}

// evaluateOne resolves the folder, measures it, fetches remote facts, and
// applies the retention policy. A nil return means the ticket was dropped.
func (e *Evaluator) evaluateOne(ctx context.Context, id ticket.ID) *ticket.Record {
	logger := logging.WithContext(ctx, e.logger)

	folder, err := scanner.ResolveFolder(e.cfg.BackupsLocation, id)
	if err != nil {
		if errors.Is(err, services.ErrAmbiguous) {
			logger.Warn("multiple folders match ticket, dropping from cycle", logging.Error(err))
		} else {
			logger.Warn("folder resolution failed, dropping from cycle", logging.Error(err))
		}
		return nil
	}

	size, err := fileutil.FolderSize(filepath.Join(e.cfg.BackupsLocation, folder), logger)
	if err != nil {
		logger.Warn("folder size scan incomplete", logging.String("folder", folder), logging.Error(err))
	}

	facts, err := e.client.FetchTicket(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			logger.Warn("no remote ticket, dropping from cycle")
		} else {
			logger.Warn("remote lookup failed, dropping from cycle", logging.Error(err))
		}
		return nil
	}

	return &ticket.Record{
		ID:               id,
		RemoteID:         facts.RemoteID,
		ClosedAt:         facts.ClosedAt,
		ClosedBy:         facts.ClosedBy,
		HasRetentionHold: facts.HasRetentionHold,
		FolderSizeBytes:  size,
		ReadyForDeletion: e.policy.Ready(facts.ClosedAt, facts.HasRetentionHold, e.now()),
		DeepLink:         facts.DeepLink,
	}
}
