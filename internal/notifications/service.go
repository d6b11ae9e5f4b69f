package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ticketsweep/internal/config"
)

const userAgent = "ticketsweep/0.1.0"

// Service defines the notification surface the CLI commands use.
type Service interface {
	NotifySweepCompleted(ctx context.Context, moved, skipped, failed int) error
	NotifyEvaluationCompleted(ctx context.Context, resolved, ready int) error
	NotifyError(ctx context.Context, err error, detail string) error
}

// NewService builds a notification service backed by ntfy when configured.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifySweepCompleted(ctx context.Context, moved, skipped, failed int) error {
	data := payload{
		title:   "ticketsweep - Sweep Completed",
		message: fmt.Sprintf("Moved %d folder(s) to deletion staging (%d skipped, %d failed)", moved, skipped, failed),
		tags:    []string{"ticketsweep", "sweep"},
	}
	if failed > 0 {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyEvaluationCompleted(ctx context.Context, resolved, ready int) error {
	data := payload{
		title:   "ticketsweep - Evaluation Completed",
		message: fmt.Sprintf("Resolved %d ticket(s), %d ready for deletion", resolved, ready),
		tags:    []string{"ticketsweep", "report"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, detail string) error {
	message := strings.TrimSpace(detail)
	if err != nil {
		if message != "" {
			message = fmt.Sprintf("%s: %v", message, err)
		} else {
			message = err.Error()
		}
	}
	data := payload{
		title:    "ticketsweep - Error",
		message:  message,
		tags:     []string{"ticketsweep", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifySweepCompleted(context.Context, int, int, int) error { return nil }
func (noopService) NotifyEvaluationCompleted(context.Context, int, int) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error          { return nil }
