// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // picsum serves JPEG by default
	_ "image/png"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/webp" // picsum serves WebP for .webp URLs
)

// DefaultImageBaseURL is the random image service used by PicsumSource.
const DefaultImageBaseURL = "https://picsum.photos"

// DefaultFetchTimeout bounds a single image request.
const DefaultFetchTimeout = 30 * time.Second

// ImageSource produces images for grid cells.
type ImageSource interface {
	Fetch(ctx context.Context, width, height int) (*gg.ImageBuf, error)
}

// PicsumSource fetches random images over HTTP from a Lorem Picsum
// compatible service: GET {BaseURL}/{width}/{height}.jpg?random=<n>.
type PicsumSource struct {
	BaseURL string
	Client  *http.Client

	// Nonce returns the cache-busting value; nil uses math/rand/v2.
	Nonce func() uint64
}

var _ ImageSource = (*PicsumSource)(nil)

// NewPicsumSource returns a source for baseURL (DefaultImageBaseURL when
// empty) whose requests time out after timeout (DefaultFetchTimeout when zero).
func NewPicsumSource(baseURL string, timeout time.Duration) *PicsumSource {
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &PicsumSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// URL returns a fresh request URL for an image of the given size.
func (s *PicsumSource) URL(width, height int) string {
	nonce := rand.Uint64
	if s.Nonce != nil {
		nonce = s.Nonce
	}
	return fmt.Sprintf("%s/%d/%d.jpg?random=%d", strings.TrimRight(s.BaseURL, "/"), width, height, nonce())
}

// Fetch downloads and decodes one random image.
func (s *PicsumSource) Fetch(ctx context.Context, width, height int) (*gg.ImageBuf, error) {
	url := s.URL(width, height)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageFetch, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrImageFetch, url, resp.StatusCode)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrImageFetch, url, err)
	}
	Logger().Debug("image fetched", "url", url, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return gg.ImageBufFromImage(img), nil
}
