package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"votd-tui/internal/bible"
)

const bollsBaseURL = "https://bolls.life"

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// BollsSource looks verses up in the public bolls.life API. Book ids follow the
// order of the canon table.
type BollsSource struct {
	baseURL     string
	translation string
	canon       *bible.Canon
	httpClient  *http.Client
}

type bollsVerse struct {
	PK      int    `json:"pk"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
	Book    int    `json:"book,omitempty"`
	Chapter int    `json:"chapter,omitempty"`
}

func NewBollsSource(translation string, canon *bible.Canon, httpClient *http.Client) *BollsSource {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &BollsSource{
		baseURL:     bollsBaseURL,
		translation: translation,
		canon:       canon,
		httpClient:  httpClient,
	}
}

func (s *BollsSource) Name() string { return "bolls" }

func (s *BollsSource) VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	return nil, ErrUnsupported
}

func (s *BollsSource) Verse(ctx context.Context, ref bible.VerseRef) (*bible.Passage, error) {
	bookID, err := s.bookID(ref.Book)
	if err != nil {
		return nil, err
	}
	verse, err := strconv.Atoi(ref.Verse)
	if err != nil {
		return nil, fmt.Errorf("%w: verse %q is not a number", bible.ErrBadRef, ref.Verse)
	}

	url := fmt.Sprintf("%s/get-verse/%s/%d/%d/%d/", s.baseURL, s.translation, bookID, ref.Chapter, verse)
	var v bollsVerse
	if err := s.get(ctx, url, &v); err != nil {
		return nil, err
	}
	if v.Text == "" {
		return nil, fmt.Errorf("%w: empty text for %s", ErrMalformed, ref)
	}

	return &bible.Passage{
		Ref:     ref,
		Text:    stripHTMLTags(v.Text),
		Version: s.translation,
	}, nil
}

func (s *BollsSource) Verses(ctx context.Context, book string, chapter int) ([]string, error) {
	bookID, err := s.bookID(book)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/get-text/%s/%d/%d/", s.baseURL, s.translation, bookID, chapter)
	var verses []bollsVerse
	if err := s.get(ctx, url, &verses); err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(verses))
	for _, v := range verses {
		labels = append(labels, strconv.Itoa(v.Verse))
	}
	return labels, nil
}

func (s *BollsSource) bookID(name string) (int, error) {
	i := s.canon.Index(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", bible.ErrUnknownBook, name)
	}
	return i + 1, nil
}

func (s *BollsSource) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s", &StatusError{Code: resp.StatusCode, Status: resp.Status}, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func stripHTMLTags(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}
