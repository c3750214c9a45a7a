// Package ws consumes the host's event feed. The host pushes gameplay events
// and periodic actor-state frames over a single websocket; this client keeps
// the connection alive and hands every frame to the dispatcher.
package ws

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const defaultReconnectDelay = 5 * time.Second

type Client struct {
	URL            string
	Dispatcher     *Dispatcher
	Logger         *log.Logger
	ReconnectDelay time.Duration
}

// Run dials the feed and reads frames until ctx is cancelled. A dropped
// connection is rejoined after ReconnectDelay; dispatch errors are logged and
// never tear the connection down.
func (c *Client) Run(ctx context.Context) error {
	delay := c.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}
	for {
		if err := c.readLoop(ctx); err != nil && c.Logger != nil {
			c.Logger.Printf("feed: connection lost: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock the pending read when the caller shuts down.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if err := c.Dispatcher.Dispatch(raw); err != nil && c.Logger != nil {
			c.Logger.Printf("feed: drop frame: %v", err)
		}
	}
}
