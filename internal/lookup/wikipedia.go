// Package lookup implements the article lookup adapter: given an
// airline name it returns best-effort free text describing the entity,
// or a not-found result.
//
// The adapter talks to the MediaWiki API in two steps: an opensearch
// query to resolve the name to an article title, then an extracts query
// for the article's plain-text introduction.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JinojiLock/Airlines/internal/cache"
	"github.com/JinojiLock/Airlines/internal/model"
	"github.com/JinojiLock/Airlines/internal/util"
	"github.com/JinojiLock/Airlines/internal/worker"
)

// Summary is the outcome of looking up one name.
type Summary struct {
	Found   bool   // whether any article matched the name
	Title   string // resolved article title
	URL     string // canonical article URL
	Extract string // plain-text introduction, possibly empty
}

// Client looks up articles against a MediaWiki API endpoint.
type Client struct {
	httpClient   *http.Client
	apiBase      string
	userAgent    string
	maxBytes     int64
	searchLimit  int
	htmlFallback bool

	limiter *worker.Limiter
	cache   cache.Cache // nil disables caching
	robots  *util.RobotsChecker
}

// NewClient builds a lookup client from config. store may be nil to
// disable caching.
func NewClient(cfg *model.Config, store cache.Cache, limiter *worker.Limiter) *Client {
	maxRedirects := cfg.HTTP.MaxRedirects
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		apiBase:      cfg.Lookup.APIBase,
		userAgent:    cfg.HTTP.UserAgent,
		maxBytes:     cfg.HTTP.MaxBodyBytes,
		searchLimit:  cfg.Lookup.SearchLimit,
		htmlFallback: cfg.Lookup.HTMLFallback,
		limiter:      limiter,
		cache:        store,
		robots:       util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
	}
}

// Lookup resolves name to an article and returns its introduction text.
// A missing article is not an error: the Summary reports Found=false.
func (c *Client) Lookup(ctx context.Context, name string) (*Summary, error) {
	title, articleURL, err := c.search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	if title == "" {
		return &Summary{Found: false}, nil
	}

	extract, err := c.extract(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", title, err)
	}

	if extract == "" && c.htmlFallback && articleURL != "" {
		// Some articles have no API extract; pull the lead paragraphs
		// from the page itself.
		if text, err := c.fallbackExtract(ctx, articleURL); err == nil {
			extract = text
		}
	}

	return &Summary{
		Found:   true,
		Title:   title,
		URL:     articleURL,
		Extract: extract,
	}, nil
}

// search runs an opensearch query and returns the first hit's title and
// URL, or empty strings when nothing matched.
func (c *Client) search(ctx context.Context, name string) (title, articleURL string, err error) {
	params := url.Values{
		"action": {"opensearch"},
		"search": {name},
		"limit":  {strconv.Itoa(c.searchLimit)},
		"format": {"json"},
	}

	body, err := c.get(ctx, c.apiBase+"?"+params.Encode())
	if err != nil {
		return "", "", err
	}

	// Opensearch responds with a 4-element array:
	// [query, [titles...], [descriptions...], [urls...]]
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return "", "", fmt.Errorf("parse opensearch response: %w", err)
	}
	if len(parts) < 2 {
		return "", "", nil
	}

	var titles []string
	if err := json.Unmarshal(parts[1], &titles); err != nil {
		return "", "", fmt.Errorf("parse opensearch titles: %w", err)
	}
	if len(titles) == 0 {
		return "", "", nil
	}
	title = titles[0]

	if len(parts) >= 4 {
		var urls []string
		if err := json.Unmarshal(parts[3], &urls); err == nil && len(urls) > 0 {
			articleURL = urls[0]
		}
	}

	return title, articleURL, nil
}

// extract fetches the plain-text introduction of the titled article.
func (c *Client) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"titles":      {title},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"format":      {"json"},
	}

	body, err := c.get(ctx, c.apiBase+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	var parsed struct {
		Query struct {
			Pages map[string]struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse extract response: %w", err)
	}

	for _, page := range parsed.Query.Pages {
		return page.Extract, nil
	}
	return "", nil
}

// fallbackExtract fetches the article page and pulls its lead-section
// text, honoring robots.txt for the host.
func (c *Client) fallbackExtract(ctx context.Context, articleURL string) (string, error) {
	allowed, crawlDelay, err := c.robots.CanFetch(ctx, articleURL)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows %s", articleURL)
	}
	if crawlDelay > 0 {
		if host, err := url.Parse(articleURL); err == nil {
			c.limiter.SetHostRate(host.Host, 1/crawlDelay.Seconds(), 1)
		}
	}

	body, err := c.get(ctx, articleURL)
	if err != nil {
		return "", err
	}

	return leadText(string(body)), nil
}
