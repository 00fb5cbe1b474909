package rtdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventPut(t *testing.T) {
	event, ok := parseEvent("put", `{"path":"/","data":{"k1":{"title":"Messi Account"}}}`)

	require.True(t, ok)
	assert.Equal(t, "put", event.Type)
	assert.Equal(t, "/", event.Path)
	assert.JSONEq(t, `{"k1":{"title":"Messi Account"}}`, string(event.Data))
}

func TestParseEventPatch(t *testing.T) {
	event, ok := parseEvent("patch", `{"path":"/k1","data":{"stockOut":true}}`)

	require.True(t, ok)
	assert.Equal(t, "patch", event.Type)
	assert.Equal(t, "/k1", event.Path)
}

func TestParseEventKeepAliveIgnored(t *testing.T) {
	_, ok := parseEvent("keep-alive", "null")
	assert.False(t, ok)
}

func TestParseEventMalformedIgnored(t *testing.T) {
	_, ok := parseEvent("put", "{not json")
	assert.False(t, ok)
}

func TestParseEventServerClose(t *testing.T) {
	event, ok := parseEvent("auth_revoked", "credential is no longer valid")
	require.True(t, ok)
	assert.Equal(t, "auth_revoked", event.Type)
}

func TestStreamDeliversEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "/products.json", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		fmt.Fprint(w, "event: put\n")
		fmt.Fprint(w, `data: {"path":"/","data":{"k1":{"title":"Messi Account"}}}`+"\n\n")
		flusher.Flush()
		fmt.Fprint(w, "event: keep-alive\ndata: null\n\n")
		flusher.Flush()
		fmt.Fprint(w, "event: patch\n")
		fmt.Fprint(w, `data: {"path":"/k1","data":{"stockOut":true}}`+"\n\n")
		flusher.Flush()

		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streamer := NewChangeStreamer(server.URL, "products", nil)
	events := streamer.Stream(ctx)

	first := receiveEvent(t, events)
	assert.Equal(t, "put", first.Type)
	assert.Equal(t, "/", first.Path)

	second := receiveEvent(t, events)
	assert.Equal(t, "patch", second.Type)
	assert.Equal(t, "/k1", second.Path)

	cancel()
	assertClosed(t, events)
}

func receiveEvent(t *testing.T, events <-chan ChangeEvent) ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "stream closed early")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return ChangeEvent{}
	}
}

func assertClosed(t *testing.T, events <-chan ChangeEvent) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream channel never closed")
		}
	}
}
