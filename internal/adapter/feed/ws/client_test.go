package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dyls123/RustStatsExporter/internal/adapter/stats/inmemory"
	"github.com/Dyls123/RustStatsExporter/internal/app/ingest"
)

func TestRun_ReceivesFramesOverTheWire(t *testing.T) {
	store := inmemory.NewStore()
	dispatcher := &Dispatcher{
		Events: ingest.UseCase{Store: store, Dedup: inmemory.NewDedup()},
	}

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		frame := `{"type":"gather","data":{"actor_id":4,"item":"stone","amount":50}}`
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return
		}
		// Hold the connection open until the client hangs up.
		conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &Client{
		URL:            "ws" + strings.TrimPrefix(srv.URL, "http"),
		Dispatcher:     dispatcher,
		ReconnectDelay: 50 * time.Millisecond,
	}
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.CounterValue(4, "gather.stone") != 50 {
		select {
		case <-deadline:
			t.Fatalf("frame never arrived, gather.stone = %v", store.CounterValue(4, "gather.stone"))
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestRun_StopsWhenServerIsUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c := &Client{
		URL:            "ws://127.0.0.1:1/feed",
		Dispatcher:     &Dispatcher{Events: ingest.UseCase{Store: inmemory.NewStore(), Dedup: inmemory.NewDedup()}},
		ReconnectDelay: 20 * time.Millisecond,
	}
	if err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
}
