// Package youversion scrapes the daily verse from bible.com.
package youversion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"votd-tui/internal/bible"
)

const (
	SiteURL = "https://www.bible.com"
	PageURL = SiteURL + "/en/verse-of-the-day"
)

var (
	ErrNoVerse = errors.New("no verse found in page")

	citationVersionRe = regexp.MustCompile(`^(.*?)\s*\(([^()]+)\)$`)
)

type Client struct {
	pageURL    string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{pageURL: PageURL, httpClient: httpClient}
}

// WithPageURL returns a copy of c that scrapes url instead of bible.com.
func (c *Client) WithPageURL(url string) *Client {
	cp := *c
	cp.pageURL = url
	return &cp
}

func (c *Client) Fetch(ctx context.Context) (*bible.VerseOfDay, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (votd-tui)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", c.pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", c.pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return Parse(body)
}

type nextData struct {
	Props struct {
		PageProps struct {
			Verses []struct {
				Content   string `json:"content"`
				Reference struct {
					Human string `json:"human"`
				} `json:"reference"`
			} `json:"verses"`
			VersionData struct {
				Abbreviation string `json:"abbreviation"`
			} `json:"versionData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Parse extracts the verse of the day from the page HTML. The embedded
// __NEXT_DATA__ JSON is preferred; older markup is read from the DOM.
func Parse(page []byte) (*bible.VerseOfDay, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	v, err := fromNextData(doc)
	if err != nil {
		v, err = fromMarkup(doc)
		if err != nil {
			return nil, err
		}
	}

	v.Images = images(doc)
	v.Normalize()
	return v, nil
}

func fromNextData(doc *html.Node) (*bible.VerseOfDay, error) {
	script := find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" && attr(n, "id") == "__NEXT_DATA__"
	})
	if script == nil {
		return nil, ErrNoVerse
	}

	var data nextData
	if err := json.Unmarshal([]byte(text(script)), &data); err != nil {
		return nil, fmt.Errorf("decoding __NEXT_DATA__: %w", err)
	}

	pp := data.Props.PageProps
	if len(pp.Verses) == 0 || pp.Verses[0].Content == "" {
		return nil, ErrNoVerse
	}

	return &bible.VerseOfDay{
		Citation: pp.Verses[0].Reference.Human,
		Passage:  flatten(pp.Verses[0].Content),
		Version:  pp.VersionData.Abbreviation,
	}, nil
}

func fromMarkup(doc *html.Node) (*bible.VerseOfDay, error) {
	passage := find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" && hasClasses(n, "text-text-light", "w-full", "no-underline")
	})
	citation := find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "p" && hasClasses(n, "text-gray-25")
	})
	if passage == nil {
		return nil, ErrNoVerse
	}

	v := &bible.VerseOfDay{Passage: flatten(text(passage))}
	if citation != nil {
		v.Citation, v.Version = splitCitation(strings.TrimSpace(text(citation)))
	}
	return v, nil
}

// splitCitation turns "John 3:16 (NIV)" into "John 3:16", "NIV".
func splitCitation(s string) (citation, version string) {
	if m := citationVersionRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return s, ""
}

// images collects <a class="block ..."><img src=...> sources, made absolute.
func images(doc *html.Node) []string {
	out := []string{}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" || !strings.HasPrefix(attr(n, "class"), "block") {
			return
		}
		img := n.FirstChild
		if img == nil || img.Type != html.ElementNode || img.Data != "img" {
			return
		}
		src := attr(img, "src")
		if src == "" {
			return
		}
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			src = SiteURL + src
		}
		out = append(out, src)
	})
	return out
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, want ...string) bool {
	have := strings.Fields(attr(n, "class"))
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func text(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
