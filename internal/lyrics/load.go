package lyrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxDocumentBytes bounds a fetched subtitle document.
const maxDocumentBytes = 8 << 20

// Load fetches a subtitle document from a local path or an http(s) URL.
func Load(ctx context.Context, location string) (string, error) {
	if isURL(location) {
		return fetch(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return "", fmt.Errorf("read subtitles: %w", err)
	}
	return string(data), nil
}

// LoadSegments fetches and parses a subtitle document in one step.
func LoadSegments(ctx context.Context, location string) ([]Segment, []*BlockError, error) {
	doc, err := Load(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	segments, skipped := Parse(doc)
	return segments, skipped, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build subtitle request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch subtitles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch subtitles: %s returned %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("read subtitle response: %w", err)
	}
	return string(data), nil
}
