// watch - terminal tail of a running lookstill session.
// Connects to the dashboard's state stream and prints one line per update.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lookstill/lookstill/pkg/web"
)

func main() {
	addr := flag.String("addr", "localhost:8089", "Dashboard host:port")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := watch(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
}

func watch(ctx context.Context, addr string) error {
	url := fmt.Sprintf("ws://%s/ws/state", addr)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer conn.Close()

	// Unblock the read loop when the context is canceled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Printf("watching %s\n", url)
	for {
		var state web.State
		if err := conn.ReadJSON(&state); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		printState(state)
	}
}

func printState(s web.State) {
	switch s.Phase {
	case "calibrating":
		fmt.Printf("[%s] calibrating step=%d direction=%s threshold=%d\n",
			timestamp(), s.Step, s.Direction, s.PupilThreshold)
	case "playing":
		fmt.Printf("[%s] playing radius=%.0f threshold=%d\n",
			timestamp(), s.Radius, s.PupilThreshold)
	case "won":
		fmt.Printf("[%s] won\n", timestamp())
	default:
		data, _ := json.Marshal(s)
		fmt.Printf("[%s] %s\n", timestamp(), data)
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
