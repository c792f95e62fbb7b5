package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHubRejectsAfterClose(t *testing.T) {
	h := NewLiveReloadHub(nil)
	h.Close()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livereload", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHubStreamsBroadcasts(t *testing.T) {
	h := NewLiveReloadHub(nil)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/livereload", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the client to register before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.Broadcast("build-123")
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, ": connected") {
		t.Errorf("missing connect comment: %q", body)
	}
	if !strings.Contains(body, `data: {"build":"build-123"}`) {
		t.Errorf("broadcast not delivered: %q", body)
	}
	if h.ClientCount() != 0 {
		t.Errorf("client must be deregistered on disconnect")
	}
}

func TestHubReplaysLastBuildToNewClients(t *testing.T) {
	h := NewLiveReloadHub(nil)
	defer h.Close()
	h.Broadcast("build-7")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/livereload", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if !strings.Contains(rec.Body.String(), `data: {"build":"build-7"}`) {
		t.Errorf("new client must see the last build event: %q", rec.Body.String())
	}
}

func TestBroadcastToleratesSlowClients(t *testing.T) {
	h := NewLiveReloadHub(nil)
	defer h.Close()

	// Register a client directly and never drain its channel.
	h.mu.Lock()
	c := &lrClient{id: h.nextID, ch: make(chan string, 1), done: make(chan struct{})}
	h.nextID++
	h.clients[c.id] = c
	h.mu.Unlock()

	for i := 0; i < 10; i++ {
		h.Broadcast("build-n") // must not block
	}
}
