package adapters

import (
	"fmt"
	"strings"

	"squad-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// Section listing the teams that qualified for the final tournament
const qualifiedTeamsHeading = "Квалифицировались_в_финальный_турнир"

const qualifiedTeamsTable = "table.standard.sortable"

// TournamentAdapter extracts the team directory of a tournament overview page
type TournamentAdapter struct {
	*BaseAdapter
}

// NewTournamentAdapter creates a new tournament adapter
func NewTournamentAdapter(config *types.Config, logger types.Logger) *TournamentAdapter {
	return &TournamentAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// Kind returns the page kind
func (t *TournamentAdapter) Kind() types.PageKind {
	return types.PageTournament
}

// Matches reports whether the marker names a national-team competition
func (t *TournamentAdapter) Matches(marker string) bool {
	return strings.Contains(marker, "Соревнование футбольных сборных")
}

// Extract emits the team pages of the qualified teams table and records every
// team title in ctx.KnownTeams.
func (t *TournamentAdapter) Extract(ctx types.Context, doc *goquery.Document, pageURL string) (*types.ExtractionResult, error) {
	root, err := SiteRoot(pageURL)
	if err != nil {
		return nil, err
	}

	teams := t.ExtractTeams(doc, root)

	result := &types.ExtractionResult{Kind: types.PageTournament, Teams: teams}
	for _, team := range teams {
		if ctx.KnownTeams != nil && ctx.KnownTeams.Add(team.CanonicalTitle) {
			t.logger.Debugf("Registered senior team %q", team.CanonicalTitle)
		}
		result.FollowUps = append(result.FollowUps, team.PageURL)
	}
	result.FollowUps = RemoveDuplicateURLs(result.FollowUps)

	t.logger.Debugf("Tournament page %s lists %d teams", pageURL, len(teams))
	return result, nil
}

// ExtractTeams reads one TeamReference per data row of the qualified teams table.
// The team link is the last link of the first cell; a flag icon link may precede it.
//
// The table is located by its section heading rather than by class alone,
// since group tables further down the page share the same classes. The
// link's title attribute is the team's canonical page title. It is what
// player infoboxes link to, so it is the form registered as a known team.
func (t *TournamentAdapter) ExtractTeams(doc *goquery.Document, root string) []types.TeamReference {
	heading := doc.Find(fmt.Sprintf(`[id=%q]`, qualifiedTeamsHeading)).First()
	if heading.Length() == 0 {
		t.logger.Debugf("No qualified teams section found")
		return nil
	}

	table := t.FindNext(doc, heading, qualifiedTeamsTable)
	if table.Length() == 0 {
		t.logger.Debugf("No qualified teams table after section heading")
		return nil
	}

	var teams []types.TeamReference
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// Skip the header row
		if i == 0 {
			return
		}

		// First data cell holds the flag and team links
		links := row.Find("td").First().Find("a")
		if links.Length() == 0 {
			t.logger.Debugf("Skipping qualified teams row %d without a link", i)
			return
		}

		// Flag icons link to the flag file, so the team is the last link
		link := links.Last()
		href, exists := link.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			t.logger.Debugf("Skipping qualified teams row %d without href", i)
			return
		}

		teams = append(teams, types.TeamReference{
			DisplayName:    cellText(link),
			CanonicalTitle: strings.TrimSpace(link.AttrOr("title", "")),
			PageURL:        ResolveLink(root, href),
		})
	})

	return teams
}
