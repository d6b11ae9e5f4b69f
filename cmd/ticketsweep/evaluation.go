package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticketsweep/internal/pipeline"
	"ticketsweep/internal/retention"
	"ticketsweep/internal/services/servicenow"
	"ticketsweep/internal/ticket"
)

// runEvaluation wires credentials, the remote client, and the pipeline
// together for one cycle, returning records sorted by ticket id.
func (c *commandContext) runEvaluation(cmd *cobra.Command, showProgress bool) ([]ticket.Record, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()

	creds, err := c.resolveCredentials(cmd)
	if err != nil {
		return nil, err
	}
	policy, err := retention.NewPolicy(cfg.Retention)
	if err != nil {
		return nil, err
	}

	client := servicenow.NewClient(servicenow.Options{
		Instance:    cfg.Instance,
		Credentials: creds,
		HoldTag:     cfg.Retention.HoldTag,
		Location:    policy.Location,
		Timeout:     time.Duration(cfg.ServiceNow.RequestTimeout) * time.Second,
		Logger:      logger,
	})
	if err := client.CheckAuth(cmd.Context()); err != nil {
		return nil, err
	}

	var progressFn pipeline.ProgressFunc
	stopProgress := func() {}
	if showProgress && isTerminalWriter(os.Stderr) {
		progressFn, stopProgress = newProgressFunc(cmd.ErrOrStderr())
	}

	evaluator := pipeline.New(pipeline.Options{
		Config:   cfg,
		Client:   client,
		Policy:   policy,
		Logger:   logger,
		Progress: progressFn,
	})
	records, err := evaluator.Evaluate(cmd.Context())
	stopProgress()
	if err != nil {
		return nil, err
	}

	sortRecords(records)
	return records, nil
}
