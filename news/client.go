// Package news fetches sports headlines from NewsAPI. It is a display-only
// collaborator: the core never depends on it succeeding, and a client without
// an API key serves a canned placeholder article instead of failing.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://newsapi.org"

// DefaultCount is how many articles Latest returns when count is not positive.
const DefaultCount = 5

// Article is one formatted news record.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Cache interface for HTTP response caching with ETag support
type Cache interface {
	Read(key string, ttl time.Duration) (body []byte, etag string, ok bool)
	Write(key string, body []byte, etag string)
	ETag(key string) string
}

type Client struct {
	http    *http.Client
	baseURL *url.URL
	apiKey  string

	cache Cache // optional; nil means no cache
	ttl   time.Duration
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) { c.cache, c.ttl = cache, ttl }
}

// New builds a client. An empty apiKey is allowed and puts the client in
// placeholder mode: Latest returns Placeholder instead of calling out.
func New(apiKey string, opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
		apiKey:  apiKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// apiArticle mirrors the NewsAPI wire format.
type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

type apiResponse struct {
	Articles []apiArticle `json:"articles"`
}

// Latest returns up to count recent articles for a sport, newest first.
// Callers that want graceful degradation fall back to Placeholder on error.
func (c *Client) Latest(ctx context.Context, sport string, count int) ([]Article, error) {
	if count <= 0 {
		count = DefaultCount
	}
	if sport == "" {
		sport = "sports"
	}
	if c.apiKey == "" {
		return Placeholder(sport), nil
	}

	var resp apiResponse
	if err := c.doJSON(ctx, "/v2/everything", map[string]string{
		"q":        sport,
		"language": "en",
		"sortBy":   "publishedAt",
	}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Articles) > count {
		resp.Articles = resp.Articles[:count]
	}
	articles := make([]Article, len(resp.Articles))
	for i, a := range resp.Articles {
		articles[i] = formatArticle(a)
	}
	return articles, nil
}

// Placeholder is the canned article served when no API key is configured or a
// fetch failed; UIs render it like any other article.
func Placeholder(sport string) []Article {
	return []Article{{
		Title:       "SportsPal Daily Update",
		Description: fmt.Sprintf("Stay updated with the latest %s news. Our news service will provide real-time updates when an API key is configured.", sport),
		URL:         "",
		ImageURL:    "",
		PublishedAt: time.Now(),
	}}
}

func formatArticle(a apiArticle) Article {
	article := Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.URLToImage,
	}
	if article.Title == "" {
		article.Title = "No title"
	}
	if article.Description == "" {
		article.Description = "No description"
	}
	published, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		published = time.Now()
	}
	article.PublishedAt = published
	return article
}

func (c *Client) newReq(ctx context.Context, p string, q map[string]string) (*http.Request, string, error) {
	u := *c.baseURL
	u.Path = p
	qq := u.Query()
	for k, v := range q {
		qq.Set(k, v)
	}
	u.RawQuery = qq.Encode()

	// The API key stays out of the cache key so rotating it keeps the cache.
	cacheKey := u.String()
	qq.Set("apiKey", c.apiKey)
	u.RawQuery = qq.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	return req, cacheKey, nil
}

func (c *Client) doJSON(ctx context.Context, p string, q map[string]string, out any) error {
	req, cacheKey, err := c.newReq(ctx, p, q)
	if err != nil {
		return err
	}

	// cache read (fresh)
	if c.cache != nil {
		if body, _, ok := c.cache.Read(cacheKey, c.ttl); ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
		}
		// try revalidate via If-None-Match
		if etag := c.cache.ETag(cacheKey); etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusNotModified: // 304 revalidate
		if c.cache != nil {
			if body, _, ok := c.cache.Read(cacheKey, 0); ok {
				return json.Unmarshal(body, out)
			}
		}
		return fmt.Errorf("304 but no cached body for %s", cacheKey)
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
		if c.cache != nil {
			c.cache.Write(cacheKey, body, resp.Header.Get("ETag"))
		}
		return nil
	default:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %s: %s", p, resp.Status, string(b))
	}
}
