package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"votd-tui/internal/bible"
)

// Update statuses pushed on /check_update.
const (
	StatusUpToDate        = "Up-to-date"
	StatusUpdateAvailable = "Update Available"
)

type UpdateInfo struct {
	Status        string `json:"status"`
	LocalVersion  string `json:"local_version"`
	GithubVersion string `json:"github_version"`
}

func (u UpdateInfo) Available() bool { return u.Status == StatusUpdateAvailable }

// socketMessage is the union of everything the backend pushes.
type socketMessage struct {
	Error    string   `json:"error"`
	Citation string   `json:"citation"`
	Passage  string   `json:"passage"`
	Images   []string `json:"images"`
	Version  string   `json:"version"`

	Status        string `json:"status"`
	LocalVersion  string `json:"local_version"`
	GithubVersion string `json:"github_version"`
}

// SocketSource reads the verse of the day from the backend's WebSocket
// endpoint. Each call opens a connection, reads one message and closes it.
type SocketSource struct {
	baseURL string
	dialer  *websocket.Dialer
}

func NewSocketSource(baseURL string) *SocketSource {
	return &SocketSource{
		baseURL: WebSocketURL(baseURL),
		dialer:  websocket.DefaultDialer,
	}
}

// WebSocketURL rewrites an http(s) base URL to ws(s).
func WebSocketURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

func (s *SocketSource) Name() string { return "socket" }

func (s *SocketSource) VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	msg, err := s.readOne(ctx, "/votd_ws")
	if err != nil {
		return nil, err
	}
	if msg.Error != "" {
		return nil, &ServerError{Message: msg.Error}
	}

	v := bible.VerseOfDay{
		Citation: msg.Citation,
		Passage:  msg.Passage,
		Images:   msg.Images,
		Version:  msg.Version,
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v.Normalize()
	return &v, nil
}

func (s *SocketSource) Verse(ctx context.Context, ref bible.VerseRef) (*bible.Passage, error) {
	return nil, ErrUnsupported
}

// CheckUpdate asks the backend whether a newer release exists.
func (s *SocketSource) CheckUpdate(ctx context.Context) (*UpdateInfo, error) {
	msg, err := s.readOne(ctx, "/check_update")
	if err != nil {
		return nil, err
	}
	if msg.Error != "" {
		return nil, &ServerError{Message: msg.Error}
	}
	if msg.Status == "" {
		return nil, fmt.Errorf("%w: missing status", ErrMalformed)
	}
	return &UpdateInfo{
		Status:        msg.Status,
		LocalVersion:  msg.LocalVersion,
		GithubVersion: msg.GithubVersion,
	}, nil
}

func (s *SocketSource) readOne(ctx context.Context, path string) (*socketMessage, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", path, err)
	}
	defer conn.Close()

	// Unblock the read when the caller gives up.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	_, data, err := conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var msg socketMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &msg, nil
}
