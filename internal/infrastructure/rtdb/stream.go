// Package rtdb implements the subscribe side of the Realtime Database
// collaborator over its REST streaming protocol. The admin SDK covers reads
// and writes; change notification only exists as a server-sent event stream
// on the REST surface, so that part is hand-wired here.
package rtdb

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"idstore/pkg/logger"
)

// ChangeEvent is one server-sent event from the database stream. Type is
// "put" or "patch"; Path and Data follow the wire payload.
type ChangeEvent struct {
	Type string
	Path string
	Data json.RawMessage
}

type ChangeStreamer struct {
	streamURL string
	tokens    oauth2.TokenSource
	client    *http.Client
	retryWait time.Duration
}

// NewChangeStreamer watches path (e.g. "products") under databaseURL.
// tokens may be nil when the database rules allow unauthenticated reads.
func NewChangeStreamer(databaseURL, path string, tokens oauth2.TokenSource) *ChangeStreamer {
	return &ChangeStreamer{
		streamURL: strings.TrimSuffix(databaseURL, "/") + "/" + strings.Trim(path, "/") + ".json",
		tokens:    tokens,
		client:    &http.Client{},
		retryWait: 5 * time.Second,
	}
}

// Stream opens the event stream and keeps it open for the life of ctx,
// reopening it after transport errors. The server replays the full current
// value as the first put on every (re)connect, so consumers always start
// from a complete snapshot. The channel closes when ctx is done.
func (s *ChangeStreamer) Stream(ctx context.Context) <-chan ChangeEvent {
	out := make(chan ChangeEvent)

	go func() {
		defer close(out)
		for {
			if err := s.consume(ctx, out); err != nil && ctx.Err() == nil {
				logger.Warn("Database stream interrupted: %v", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.retryWait):
			}
		}
	}()

	return out
}

func (s *ChangeStreamer) consume(ctx context.Context, out chan<- ChangeEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.streamURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	if s.tokens != nil {
		token, err := s.tokens.Token()
		if err != nil {
			return fmt.Errorf("stream token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream status %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var eventType, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			event, ok := parseEvent(eventType, data)
			eventType, data = "", ""
			if !ok {
				continue
			}
			if event.Type == "cancel" || event.Type == "auth_revoked" {
				return fmt.Errorf("stream closed by server: %s", event.Type)
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return ctx.Err()
			}
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("stream ended")
}

func parseEvent(eventType, data string) (ChangeEvent, bool) {
	switch eventType {
	case "put", "patch":
		var payload struct {
			Path string          `json:"path"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			logger.Warn("Malformed stream payload: %v", err)
			return ChangeEvent{}, false
		}
		return ChangeEvent{Type: eventType, Path: payload.Path, Data: payload.Data}, true
	case "keep-alive", "":
		return ChangeEvent{}, false
	default:
		return ChangeEvent{Type: eventType}, true
	}
}
