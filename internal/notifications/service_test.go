package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ticketsweep/internal/config"
)

func TestNewServiceWithoutTopicIsNoop(t *testing.T) {
	cfg := config.Default()
	service := NewService(&cfg)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.NotifySweepCompleted(context.Background(), 1, 0, 0); err != nil {
		t.Fatalf("noop notify returned error: %v", err)
	}
}

func TestNotifySweepCompleted(t *testing.T) {
	var gotTitle, gotBody, gotPriority string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	service := NewService(&cfg)

	if err := service.NotifySweepCompleted(context.Background(), 3, 1, 0); err != nil {
		t.Fatalf("NotifySweepCompleted returned error: %v", err)
	}
	if !strings.Contains(gotTitle, "Sweep Completed") {
		t.Fatalf("title = %q", gotTitle)
	}
	if !strings.Contains(gotBody, "Moved 3 folder(s)") {
		t.Fatalf("body = %q", gotBody)
	}
	if gotPriority != "" {
		t.Fatalf("priority = %q, want default for clean sweep", gotPriority)
	}

	if err := service.NotifySweepCompleted(context.Background(), 0, 0, 2); err != nil {
		t.Fatal(err)
	}
	if gotPriority != "high" {
		t.Fatalf("priority = %q, want high when moves failed", gotPriority)
	}
}

func TestSendSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	service := NewService(&cfg)

	err := service.NotifyError(context.Background(), nil, "sweep failed")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
