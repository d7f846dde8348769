// Package fetch downloads reading texts published over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vytor/wordflash/internal/logger"
)

// MaxTextBytes bounds a downloaded text.
const MaxTextBytes = 16 << 20

// TextFetcher downloads a plain-text document.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

var _ TextFetcher = (*Client)(nil)

func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.Default().WithPrefix("fetch"),
	}
}

// FetchText downloads url and returns its body as text. Only text/* bodies
// that are valid UTF-8 are accepted.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("fetch").WithField("url", url)

	log.Debug("fetching text")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch text: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("text request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || !strings.HasPrefix(mediaType, "text/") {
			return "", fmt.Errorf("fetch %s: unsupported content type %q", url, ct)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxTextBytes+1))
	if err != nil {
		log.Error("failed to read body: %v", err)
		return "", err
	}
	if len(body) > MaxTextBytes {
		return "", fmt.Errorf("fetch %s: text larger than %d bytes", url, MaxTextBytes)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("fetch %s: text is not valid UTF-8", url)
	}

	log.Info("fetched %d bytes", len(body))
	return strings.TrimPrefix(string(body), "\ufeff"), nil
}
