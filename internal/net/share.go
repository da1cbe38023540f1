package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PaintBoard/internal/document"
)

const writeWait = 10 * time.Second

// Hub pushes the host's current painting to every connected viewer. Each
// frame is a complete painting document, so a slow viewer only ever needs
// the newest one.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	latest  []byte
	viewers map[*websocket.Conn]chan []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		viewers: make(map[*websocket.Conn]chan []byte),
	}
}

// Publish replaces the current painting and fans it out.
func (h *Hub) Publish(p document.Painting) error {
	data, err := document.Marshal(p)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.latest = data
	for _, ch := range h.viewers {
		offer(ch, data)
	}
	h.mu.Unlock()
	return nil
}

// offer puts data into a one-slot channel, replacing anything unsent.
func offer(ch chan []byte, data []byte) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- data:
	default:
	}
}

func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Handler serves /ws for viewers and /painting.json for one-off fetches.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/painting.json", h.servePainting)
	return mux
}

func (h *Hub) servePainting(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	data := h.latest
	h.mu.RUnlock()
	if data == nil {
		http.Error(w, "no painting yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("[SHARE] upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	ch := make(chan []byte, 1)

	h.mu.Lock()
	h.viewers[conn] = ch
	if h.latest != nil {
		ch <- h.latest
	}
	h.mu.Unlock()
	slog.Info("[SHARE] viewer connected", "remote", conn.RemoteAddr().String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Viewers never send; reading only notices the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.mu.Lock()
		delete(h.viewers, conn)
		h.mu.Unlock()
		conn.Close()
		slog.Info("[SHARE] viewer disconnected", "remote", conn.RemoteAddr().String())
	}()

	for {
		select {
		case <-done:
			return
		case data := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Warn("[SHARE] write failed", "remote", conn.RemoteAddr().String(), "err", err)
				return
			}
		}
	}
}

// Serve runs the hub on port until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	slog.Info("[SHARE] host server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Follow connects to a host at addr and calls onPainting for every document
// it pushes. Malformed frames are logged and skipped. It returns when the
// connection ends or ctx is cancelled.
func Follow(ctx context.Context, addr string, onPainting func(document.Painting)) error {
	url := "ws://" + addr + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read from %s: %w", addr, err)
		}
		p, err := document.Parse(data)
		if err != nil {
			slog.Warn("[SHARE] skipping malformed frame", "from", addr, "err", err)
			continue
		}
		onPainting(p)
	}
}
