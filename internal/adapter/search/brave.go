package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// DefaultTimeout bounds each web search call. It is enforced here, not
// assumed from the provider's default.
const DefaultTimeout = 3 * time.Second

// BraveClient implements port.WebSearchProvider using the Brave Search API.
type BraveClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewBraveClient creates a Brave Search client with the given per-call timeout.
func NewBraveClient(apiKey string, timeout time.Duration) *BraveClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BraveClient{
		baseURL:    "https://api.search.brave.com",
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Search issues a single web search query and returns the decoded results.
// Results whose URLs do not parse to a hostname are skipped.
func (b *BraveClient) Search(ctx context.Context, query string, count int) ([]domain.WebResult, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	endpoint := fmt.Sprintf(
		"%s/res/v1/web/search?q=%s&count=%d&offset=0&text_decorations=false&search_lang=en&result_filter=web",
		b.baseURL, url.QueryEscape(query), count,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: brave search: %v", port.ErrProviderUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: brave search: %v", port.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: brave API error (%d): %s", port.ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var decoded struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: brave search decode: %v", port.ErrProviderUnavailable, err)
	}

	results := make([]domain.WebResult, 0, len(decoded.Web.Results))
	for _, r := range decoded.Web.Results {
		host, ok := hostOf(r.URL)
		if !ok {
			continue
		}
		title := r.Title
		if title == "" {
			title = "No title"
		}
		snippet := r.Description
		if snippet == "" {
			snippet = "No description"
		}
		results = append(results, domain.WebResult{
			Title:   title,
			Link:    r.URL,
			Snippet: snippet,
			Domain:  host,
		})
	}
	return results, nil
}

func hostOf(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}
