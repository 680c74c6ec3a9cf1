// Command squad-extractor crawls tournament, team and player pages of the
// encyclopedia and writes the extracted player records.
//
// Usage:
//
//	squad-extractor crawl --seed https://ru.wikipedia.org/wiki/Чемпионат_мира_по_футболу_2018 --output players.json
//	squad-extractor crawl --seed <url> --format csv --policy exclusion --max-pages 200
//	squad-extractor extract --url https://ru.wikipedia.org/wiki/Неймар
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"squad-extractor/extractor"
	"squad-extractor/internal/types"
	"squad-extractor/utils"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	verbose       bool
	requestDelay  time.Duration
	maxRetries    int
	timeout       time.Duration
	maxConcurrent int
	useBrowser    bool
	policy        string
}

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var flags globalFlags
	root := &cobra.Command{
		Use:           "squad-extractor",
		Short:         "Extract football player records from tournament pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.verbose, "verbose", false, "Enable verbose logging")
	pf.DurationVar(&flags.requestDelay, "delay", 1*time.Second, "Delay between requests")
	pf.IntVar(&flags.maxRetries, "retries", 3, "Maximum retry attempts")
	pf.DurationVar(&flags.timeout, "timeout", 30*time.Second, "Request timeout")
	pf.IntVar(&flags.maxConcurrent, "concurrent", 5, "Maximum concurrent requests")
	pf.BoolVar(&flags.useBrowser, "browser", false, "Use headless browser for script-rendered pages")
	pf.StringVar(&flags.policy, "policy", string(types.PolicyRegistry), "Senior team policy (registry, exclusion)")

	root.AddCommand(crawlCmd(&flags))
	root.AddCommand(extractCmd(&flags))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup builds the logger and the configuration: defaults, then environment, then flags
func setup(cmd *cobra.Command, flags *globalFlags) (*logrus.Logger, *types.Config, error) {
	logger := utils.NewLogger(flags.verbose)

	config := types.DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		return nil, nil, err
	}

	changed := cmd.Flags().Changed
	if changed("delay") {
		config.RequestDelay = flags.requestDelay
	}
	if changed("retries") {
		config.MaxRetries = flags.maxRetries
	}
	if changed("timeout") {
		config.Timeout = flags.timeout
	}
	if changed("concurrent") {
		config.MaxConcurrentRequests = flags.maxConcurrent
	}
	if changed("browser") {
		config.UseHeadlessBrowser = flags.useBrowser
	}
	if changed("policy") {
		policy, err := types.ParseSeniorTeamPolicy(flags.policy)
		if err != nil {
			return nil, nil, err
		}
		config.SeniorTeamPolicy = policy
	}

	return logger, config, nil
}

func crawlCmd(flags *globalFlags) *cobra.Command {
	var (
		seed     string
		output   string
		format   string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl a tournament page and extract every player of its squads",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, config, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-pages") {
				config.MaxPages = maxPages
			}
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown output format %q", format)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fetcher := utils.NewPageFetcher(config, logger)
			defer fetcher.Close()

			ext := extractor.NewExtractor(config, logger, nil)
			crawler := extractor.NewCrawler(config, logger, ext, fetcher)

			result, err := crawler.Crawl(ctx, seed)
			if err != nil {
				logger.Warnf("Crawl interrupted: %v; writing partial results", err)
			}

			if err := writeResult(logger, result, output, format); err != nil {
				return err
			}

			logger.Infof("Total pages processed: %d", result.Pages)
			logger.Infof("Players extracted: %d", len(result.Players))
			logger.Infof("Pages skipped or failed: %d", len(result.Failures))
			return err
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "Tournament page URL to start from")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, csv)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Stop after this many pages (0 = unlimited)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func extractCmd(flags *globalFlags) *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a single page and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, config, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), config.Timeout*time.Duration(config.MaxRetries+1))
			defer cancel()

			fetcher := utils.NewPageFetcher(config, logger)
			defer fetcher.Close()

			html, err := fetcher.GetPageContent(ctx, pageURL)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", pageURL, err)
			}

			result, err := extractor.NewExtractor(config, logger, nil).Extract(html, pageURL)
			if err != nil {
				return err
			}

			jsonData, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL to extract")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func writeResult(logger *logrus.Logger, result *types.CrawlResult, output, format string) error {
	if output == "" {
		if format == "csv" {
			return extractor.WriteCSV(os.Stdout, result.Players)
		}
		jsonData, err := json.MarshalIndent(result.Players, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	var err error
	if format == "csv" {
		err = extractor.WriteCSVFile(output, result.Players)
	} else {
		err = extractor.WriteJSON(output, result.Players)
	}
	if err != nil {
		return err
	}
	logger.Infof("Results written to: %s", output)
	return nil
}
