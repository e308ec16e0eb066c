// Package googlebooks resolves catalog books from the Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

var volumeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

type Config struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	RPS        int
	MaxRetries int
	Timeout    time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RPS)), 1),
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
	}
}

// volume matches the fields of a volumes/{id} response we read.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		Description         string   `json:"description"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

func (v volume) isbn() string {
	var isbn10 string
	for _, id := range v.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// Resolve fetches the volume volumeID. A malformed id is rejected with
// apperr.ErrInvalidArgument before any request; every other failure wraps
// apperr.ErrUpstream.
func (c *Client) Resolve(ctx context.Context, volumeID string) (book.Book, error) {
	if !volumeIDPattern.MatchString(volumeID) {
		return book.Book{}, fmt.Errorf("%w: malformed volume id %q", apperr.ErrInvalidArgument, volumeID)
	}
	u := c.baseURL + "/" + url.PathEscape(volumeID)
	if c.apiKey != "" {
		u += "?key=" + url.QueryEscape(c.apiKey)
	}

	var v volume
	if err := c.get(ctx, u, &v); err != nil {
		return book.Book{}, fmt.Errorf("%w: volume %s: %v", apperr.ErrUpstream, volumeID, err)
	}
	if strings.TrimSpace(v.VolumeInfo.Title) == "" {
		return book.Book{}, fmt.Errorf("%w: volume %s has no title", apperr.ErrUpstream, volumeID)
	}

	return book.Book{
		ID:          volumeID,
		ISBN:        v.isbn(),
		Title:       v.VolumeInfo.Title,
		Author:      strings.Join(v.VolumeInfo.Authors, ", "),
		Description: v.VolumeInfo.Description,
		ImagePath:   v.VolumeInfo.ImageLinks.Thumbnail,
	}, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			wait := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, url string, target any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode volume: %w", err)
	}
	return false, nil
}
