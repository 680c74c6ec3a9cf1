package utils

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"squad-extractor/internal/types"
)

// BrowserClient provides headless browser functionality
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// GetPageContent retrieves the rendered HTML of a page using a headless browser
func (b *BrowserClient) GetPageContent(ctx context.Context, url string) (string, error) {
	// Route chromedp's own logging to debug level
	browserCtx, cancel := chromedp.NewContext(ctx,
		chromedp.WithLogf(b.logger.Debugf),
		chromedp.WithErrorf(b.logger.Debugf),
	)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	b.logger.Debugf("Successfully retrieved page content from %s (%d bytes)", url, len(html))
	return html, nil
}
