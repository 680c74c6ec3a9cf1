package adapters

import (
	"strings"

	"squad-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// Squad section ids, oldest spellings last. A page may carry several of them.
var squadHeadings = []string{
	"Текущий_состав",
	"Текущий_состав_сборной",
	"Состав",
	"Состав_сборной",
	"Недавние_вызовы",
}

const squadTable = "table.wikitable"

// TeamAdapter extracts player pages from a national team roster page
type TeamAdapter struct {
	*BaseAdapter
}

// NewTeamAdapter creates a new team adapter
func NewTeamAdapter(config *types.Config, logger types.Logger) *TeamAdapter {
	return &TeamAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// Kind returns the page kind
func (t *TeamAdapter) Kind() types.PageKind {
	return types.PageTeam
}

// Matches reports whether the marker names a national team
func (t *TeamAdapter) Matches(marker string) bool {
	return strings.Contains(marker, "Сборная страны по футболу")
}

// Extract emits the player pages of every squad table on the page
func (t *TeamAdapter) Extract(ctx types.Context, doc *goquery.Document, pageURL string) (*types.ExtractionResult, error) {
	root, err := SiteRoot(pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	for _, heading := range t.FindHeadings(doc, squadHeadings) {
		table := t.FindNext(doc, heading, squadTable)
		if table.Length() == 0 {
			continue
		}
		links = append(links, t.extractSquadLinks(table, root)...)
	}

	links = RemoveDuplicateURLs(links)
	t.logger.Debugf("Team page %s lists %d players", pageURL, len(links))

	return &types.ExtractionResult{Kind: types.PageTeam, FollowUps: links}, nil
}

// extractSquadLinks reads the player link from the third cell of each squad row.
// Rows with fewer than two cells separate squad groups and are skipped.
//
// Squad tables list shirt number, position and player in that order. Rows
// that span the table ("Вратари", "Защитники") have a single cell and are
// dropped silently. A row with two cells lost its player column to a rowspan
// or an editing slip, which is worth a debug line.
func (t *TeamAdapter) extractSquadLinks(table *goquery.Selection, root string) []string {
	var links []string

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}

		// Group separator rows
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		if cells.Length() < 3 {
			t.logger.Debugf("Squad row %d has no player cell", i)
			return
		}

		// Player name cell; only its first link is the player
		href, exists := cells.Eq(2).Find("a").First().Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			t.logger.Debugf("Squad row %d has no player link", i)
			return
		}
		links = append(links, ResolveLink(root, href))
	})

	return links
}
