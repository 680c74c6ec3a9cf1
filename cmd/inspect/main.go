// Command inspect prints what the extractor sees on a page: its marker,
// the page kind, heading anchors and the first row of every table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/joho/godotenv"
	"squad-extractor/adapters"
	"squad-extractor/extractor"
	"squad-extractor/internal/types"
	"squad-extractor/utils"
)

func main() {
	_ = godotenv.Load()

	pageURL := flag.String("url", "", "Page URL to inspect")
	browser := flag.Bool("browser", false, "Use headless browser to fetch the page")
	flag.Parse()
	if *pageURL == "" {
		log.Fatal("--url flag is required")
	}

	config := types.DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		log.Fatal(err)
	}
	config.UseHeadlessBrowser = config.UseHeadlessBrowser || *browser
	logger := utils.NewLogger(true)

	fetcher := utils.NewPageFetcher(config, logger)
	defer fetcher.Close()

	html, err := fetcher.GetPageContent(context.Background(), *pageURL)
	if err != nil {
		log.Fatalf("Failed to get page: %v", err)
	}

	doc, err := adapters.ParseHTML(html)
	if err != nil {
		log.Fatalf("Failed to parse HTML: %v", err)
	}

	fmt.Println("=== Classification ===")
	marker, ok := adapters.ReadMarker(doc)
	if !ok {
		fmt.Println("No marker found")
	} else {
		kind, _, _ := extractor.NewExtractor(config, logger, nil).Classify(doc)
		fmt.Printf("Marker: %q\nKind: %s\n", marker, kind)
	}

	fmt.Println("\n=== Headings ===")
	doc.Find("h2 [id], h3 [id], h4 [id]").Each(func(i int, s *goquery.Selection) {
		fmt.Printf("  %d: id='%s', text='%s'\n", i+1, s.AttrOr("id", ""), strings.TrimSpace(s.Text()))
	})

	fmt.Println("\n=== Tables ===")
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		first := s.Find("tr").First()
		var cells []string
		first.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, strings.Join(strings.Fields(c.Text()), " "))
		})
		fmt.Printf("  %d: class='%s', rows=%d, first row=%q\n", i+1, s.AttrOr("class", ""), s.Find("tr").Length(), cells)
	})

	fmt.Println("\n=== Infobox labels ===")
	doc.Find(adapters.MarkerSelector).First().Find("tr > th").Each(func(i int, s *goquery.Selection) {
		label := adapters.TrimToLastAlphabetic(strings.TrimSpace(s.Text()))
		if label != "" {
			fmt.Printf("  %d: %s\n", i+1, label)
		}
	})
}
