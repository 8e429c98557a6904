package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/common"
)

// notionVersion pins the API revision; data source queries require the
// 2025-09 surface.
const notionVersion = "2025-09-03"

// pageSize is the maximum Notion allows per paginated request.
const pageSize = 100

// APIError is a non-2xx answer from the Notion API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Filter narrows a data source query. Only the title filter is needed here.
type Filter struct {
	Property string      `json:"property"`
	Title    *TextFilter `json:"title,omitempty"`
}

// TextFilter matches text property values.
type TextFilter struct {
	Equals string `json:"equals,omitempty"`
}

// TitleEquals builds a filter matching pages whose title property equals
// name.
func TitleEquals(property, name string) *Filter {
	return &Filter{Property: property, Title: &TextFilter{Equals: name}}
}

// Client talks to the Notion REST API. Responses for listing calls are
// memoized in the injected cache for the duration of a run.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *Cache
	retryOpts  common.RetryOptions
}

// NewClient builds a client from the config. The bearer token rides on an
// oauth2 static token transport. A nil cache gets a fresh private one.
func NewClient(ctx context.Context, cfg Config, cache *Cache) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewCache()
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient.Timeout = timeout

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cache:      cache,
		retryOpts:  common.RetryOptions{MaxAttempts: cfg.MaxRetries + 1},
	}, nil
}

// Cache exposes the client's response cache.
func (c *Client) Cache() *Cache {
	return c.cache
}

// GetAllPages fetches every page of a data source, following cursors.
// Results are cached per data source for the run.
func (c *Client) GetAllPages(ctx context.Context, dataSourceID string) ([]Page, error) {
	key := cacheKey("get_all_pages", map[string]string{"data_source_id": dataSourceID})
	if cached, ok := c.cache.Get(key); ok {
		slog.Debug("Notion cache hit", "key", key)
		return cached.([]Page), nil
	}
	slog.Debug("Notion cache miss", "key", key)

	var pages []Page
	cursor := ""
	for {
		body := map[string]any{"page_size": pageSize}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		data, err := c.doRequest(ctx, http.MethodPost, "data_sources/"+dataSourceID+"/query", nil, body)
		if err != nil {
			return nil, err
		}

		var result QueryResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse query response: %w", err)
		}

		pages = append(pages, result.Results...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	c.cache.Set(key, pages)
	slog.Debug("cached data source pages", "key", key, "count", len(pages))
	return pages, nil
}

// QueryFiltered runs a single filtered query against a data source. Results
// are cached per data source and filter.
func (c *Client) QueryFiltered(ctx context.Context, dataSourceID string, filter *Filter) (*QueryResult, error) {
	filterKey := "no_filter"
	if filter != nil {
		encoded, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		filterKey = string(encoded)
	}

	key := cacheKey("query_pages_filtered", map[string]string{
		"data_source_id": dataSourceID,
		"filter":         filterKey,
	})
	if cached, ok := c.cache.Get(key); ok {
		slog.Debug("Notion cache hit", "key", key)
		return cached.(*QueryResult), nil
	}
	slog.Debug("Notion cache miss", "key", key)

	body := map[string]any{}
	if filter != nil {
		body["filter"] = filter
	}

	data, err := c.doRequest(ctx, http.MethodPost, "data_sources/"+dataSourceID+"/query", nil, body)
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	c.cache.Set(key, &result)
	return &result, nil
}

// GetChildBlocks fetches all children of a block or page, following cursors.
// Results are cached per block for the run.
func (c *Client) GetChildBlocks(ctx context.Context, blockID string) ([]Block, error) {
	key := cacheKey("get_inner_page_blocks", map[string]string{"page_id": blockID})
	if cached, ok := c.cache.Get(key); ok {
		slog.Debug("Notion cache hit", "key", key)
		return cached.([]Block), nil
	}
	slog.Debug("Notion cache miss", "key", key)

	var blocks []Block
	cursor := ""
	for {
		query := url.Values{"page_size": {fmt.Sprint(pageSize)}}
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}

		data, err := c.doRequest(ctx, http.MethodGet, "blocks/"+blockID+"/children", query, nil)
		if err != nil {
			return nil, err
		}

		var result struct {
			Results    []Block `json:"results"`
			HasMore    bool    `json:"has_more"`
			NextCursor string  `json:"next_cursor"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse block list: %w", err)
		}

		blocks = append(blocks, result.Results...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	c.cache.Set(key, blocks)
	slog.Debug("cached child blocks", "key", key, "count", len(blocks))
	return blocks, nil
}

// ListComments fetches the comments attached to a block or page.
func (c *Client) ListComments(ctx context.Context, blockID string) ([]Comment, error) {
	query := url.Values{"block_id": {blockID}}

	data, err := c.doRequest(ctx, http.MethodGet, "comments", query, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []Comment `json:"results"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse comment list: %w", err)
	}
	return result.Results, nil
}

// GetPage retrieves one page with its properties.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "pages/"+pageID, nil, nil)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &page, nil
}

// CreatePage creates a page with properties and content blocks.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "pages", nil, req)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse created page: %w", err)
	}
	return &page, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	var data []byte
	err := common.WithRetry(ctx, func() error {
		var callErr error
		data, callErr = c.attempt(ctx, method, endpoint, payload)
		return callErr
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}

		var parsed struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
			apiErr.Code = parsed.Code
			apiErr.Message = parsed.Message
		}

		return nil, &common.RetryableError{
			Err:       apiErr,
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	return data, nil
}
