package net

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"PaintBoard/internal/document"
	"PaintBoard/internal/state"
)

func paintingWith(t *testing.T, title string, kinds ...state.Kind) document.Painting {
	t.Helper()
	s := state.NewScene(700, 450, "#1a1a2e")
	for _, k := range kinds {
		sh, err := state.NewShape(k, state.Point{X: 50, Y: 50}, "red")
		require.NoError(t, err)
		s.Add(sh)
	}
	return document.New(title, s.Encode(), time.Now())
}

func TestFollowReceivesPublishedPaintings(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	addr := strings.TrimPrefix(srv.URL, "http://")

	require.NoError(t, hub.Publish(paintingWith(t, "first", state.KindCircle)))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan document.Painting, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Follow(ctx, addr, func(p document.Painting) { got <- p })
	}()

	select {
	case p := <-got:
		require.Equal(t, "first", p.Title)
		require.Equal(t, state.Tally{Circle: 1}, p.Tally())
	case <-time.After(5 * time.Second):
		t.Fatal("no initial painting")
	}
	require.Equal(t, 1, hub.ViewerCount())

	require.NoError(t, hub.Publish(paintingWith(t, "second", state.KindTriangle, state.KindTriangle)))
	select {
	case p := <-got:
		require.Equal(t, "second", p.Title)
		require.Equal(t, state.Tally{Triangle: 2}, p.Tally())
	case <-time.After(5 * time.Second):
		t.Fatal("no update")
	}

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestServePainting(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/painting.json")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, hub.Publish(paintingWith(t, "served", state.KindRectangle)))
	resp, err = http.Get(srv.URL + "/painting.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	p, err := document.Parse(body)
	require.NoError(t, err)
	require.Equal(t, "served", p.Title)
}

func TestFollowDialError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := Follow(ctx, "127.0.0.1:1", func(document.Painting) {})
	require.Error(t, err)
}

func TestShareLinks(t *testing.T) {
	t.Parallel()
	link := ShareLink("192.168.1.4", 8888)
	require.Equal(t, "paintboard://192.168.1.4:8888", link)
	require.True(t, IsShareLink(link))

	addr, err := ParseShareLink(link + "/")
	require.NoError(t, err)
	require.Equal(t, "192.168.1.4:8888", addr)

	for _, bad := range []string{"http://x:1", "paintboard://", "paintboard://host", "paintboard://:80", "paintboard://h:99999"} {
		_, err := ParseShareLink(bad)
		require.Error(t, err, bad)
	}
}
