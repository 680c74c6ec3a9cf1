package utils

import (
	"context"

	"squad-extractor/internal/types"
)

// PageFetcher retrieves page bodies with either the HTTP client or the headless browser
type PageFetcher struct {
	config        *types.Config
	httpClient    *HTTPClient
	browserClient *BrowserClient
}

// NewPageFetcher creates a fetcher; UseHeadlessBrowser selects the browser
func NewPageFetcher(config *types.Config, logger types.Logger) *PageFetcher {
	return &PageFetcher{
		config:        config,
		httpClient:    NewHTTPClient(config, logger),
		browserClient: NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page
func (f *PageFetcher) GetPageContent(ctx context.Context, url string) (string, error) {
	if f.config.UseHeadlessBrowser {
		return f.browserClient.GetPageContent(ctx, url)
	}

	body, err := f.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close cleans up resources
func (f *PageFetcher) Close() {
	if f.httpClient != nil {
		f.httpClient.Close()
	}
}
