package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"votd-tui/internal/bible"
)

// DefaultEndpoint is where the local backend listens.
const DefaultEndpoint = "http://localhost:8777"

// RemoteSource talks to the local backend over plain HTTP.
type RemoteSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteSource(baseURL string, httpClient *http.Client) *RemoteSource {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RemoteSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (s *RemoteSource) Name() string { return "remote" }

func (s *RemoteSource) VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	var v bible.VerseOfDay
	if err := s.getJSON(ctx, s.baseURL+"/api/verse-of-the-day", &v); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v.Normalize()
	return &v, nil
}

// versePayload is what /api/verse returns.
type versePayload struct {
	Citation string `json:"citation"`
	Passage  string `json:"passage"`
	Version  string `json:"version"`
}

func (s *RemoteSource) Verse(ctx context.Context, ref bible.VerseRef) (*bible.Passage, error) {
	params := url.Values{}
	params.Set("ref", ref.String())

	var p versePayload
	if err := s.getJSON(ctx, s.baseURL+"/api/verse?"+params.Encode(), &p); err != nil {
		return nil, err
	}
	if p.Passage == "" {
		return nil, fmt.Errorf("%w: empty passage for %s", ErrMalformed, ref)
	}
	return &bible.Passage{Ref: ref, Text: p.Passage, Version: p.Version}, nil
}

func (s *RemoteSource) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
