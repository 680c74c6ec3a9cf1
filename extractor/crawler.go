package extractor

import (
	"context"
	"time"

	"squad-extractor/internal/types"

	"golang.org/x/sync/errgroup"
)

// PageFetcher retrieves page bodies
type PageFetcher interface {
	GetPageContent(ctx context.Context, url string) (string, error)
}

// Crawler walks a tournament's pages level by level.
//
// Every page of a level is fetched and extracted before the next level
// starts, so all tournament pages register their teams before any player
// page resolves its senior national team.
type Crawler struct {
	config    *types.Config
	logger    types.Logger
	extractor *Extractor
	fetcher   PageFetcher
}

// NewCrawler creates a crawler that fetches with fetcher and extracts with extractor
func NewCrawler(config *types.Config, logger types.Logger, extractor *Extractor, fetcher PageFetcher) *Crawler {
	return &Crawler{
		config:    config,
		logger:    logger,
		extractor: extractor,
		fetcher:   fetcher,
	}
}

type pageOutcome struct {
	url    string
	result *types.ExtractionResult
	err    error
}

// Crawl extracts seedURL and every page reachable through follow-up links.
// Page failures are collected in the result; only context cancellation stops the crawl.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*types.CrawlResult, error) {
	startTime := time.Now()
	c.logger.Infof("Starting crawl from %s", seedURL)

	result := &types.CrawlResult{}
	visited := newVisitedSet(c.config.ExpectedPages)
	visited.Add(seedURL)

	frontier := []string{seedURL}
	for level := 1; len(frontier) > 0; level++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if c.config.MaxPages > 0 {
			remaining := c.config.MaxPages - result.Pages
			if remaining <= 0 {
				c.logger.Infof("Page limit %d reached, %d pages left unvisited", c.config.MaxPages, len(frontier))
				break
			}
			if len(frontier) > remaining {
				frontier = frontier[:remaining]
			}
		}

		c.logger.Infof("Level %d: processing %d pages", level, len(frontier))
		outcomes := c.processLevel(ctx, frontier)
		result.Pages += len(outcomes)

		var next []string
		for _, outcome := range outcomes {
			if outcome.err != nil {
				if types.IsOutOfScope(outcome.err) {
					c.logger.Debugf("Skipping %s: %v", outcome.url, outcome.err)
				} else {
					c.logger.Warnf("Failed to extract %s: %v", outcome.url, outcome.err)
				}
				result.Failures = append(result.Failures, types.PageFailure{URL: outcome.url, Error: outcome.err.Error()})
				continue
			}

			if outcome.result.Record != nil {
				result.Players = append(result.Players, *outcome.result.Record)
			}
			result.Teams = append(result.Teams, outcome.result.Teams...)
			for _, link := range outcome.result.FollowUps {
				if visited.Add(link) {
					next = append(next, link)
				}
			}
		}
		frontier = next
	}

	c.logger.Infof("Crawl completed in %v: %d pages, %d players, %d failures, %d known teams, %d unique URLs",
		time.Since(startTime), result.Pages, len(result.Players), len(result.Failures),
		c.extractor.KnownTeams().Len(), visited.Len())
	return result, ctx.Err()
}

// processLevel fetches and extracts urls with bounded concurrency.
// Outcomes keep the order of urls.
func (c *Crawler) processLevel(ctx context.Context, urls []string) []pageOutcome {
	outcomes := make([]pageOutcome, len(urls))

	var g errgroup.Group
	g.SetLimit(max(1, c.config.MaxConcurrentRequests))
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			outcomes[i] = c.processPage(ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (c *Crawler) processPage(ctx context.Context, url string) pageOutcome {
	pageStartTime := time.Now()

	html, err := c.fetcher.GetPageContent(ctx, url)
	if err != nil {
		return pageOutcome{url: url, err: err}
	}

	result, err := c.extractor.Extract(html, url)
	if err != nil {
		return pageOutcome{url: url, err: err}
	}

	c.logger.Debugf("Page %s (%s) processed in %v", url, result.Kind, time.Since(pageStartTime))
	return pageOutcome{url: url, result: result}
}
