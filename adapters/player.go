package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"squad-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

const (
	athleteNameSelector = "div.ts_Спортсмен_имя"
	flagTitleMarker     = "Флаг"
	referenceSelector   = "span.reference-text"
	totalsTableSelector = "table.wikitable"
)

// PlayerAdapter builds a PlayerRecord from a player biography page.
//
// Extraction runs in fixed stages: biography scan, club career rows,
// national career rows with senior team resolution, then the optional
// totals tables. Each stage only adds to the record; totals are merged
// with max so they never lower a figure.
type PlayerAdapter struct {
	*BaseAdapter
}

// NewPlayerAdapter creates a new player adapter
func NewPlayerAdapter(config *types.Config, logger types.Logger) *PlayerAdapter {
	return &PlayerAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
	}
}

// Kind returns the page kind
func (p *PlayerAdapter) Kind() types.PageKind {
	return types.PagePlayer
}

// Matches reports whether the marker names a football player
func (p *PlayerAdapter) Matches(marker string) bool {
	return strings.Contains(marker, "Футболист")
}

// Extract returns the player record of the page; it emits no follow-up links
func (p *PlayerAdapter) Extract(ctx types.Context, doc *goquery.Document, pageURL string) (*types.ExtractionResult, error) {
	record, err := p.ExtractPlayer(ctx, doc, pageURL)
	if err != nil {
		return nil, err
	}
	return &types.ExtractionResult{Kind: types.PagePlayer, Record: record}, nil
}

// ExtractPlayer runs all extraction stages. Any failure aborts the whole
// record; no partial record is returned.
//
// The stages run in a fixed order because each one depends on the previous:
//
//  1. The biography scan walks the infobox once. Besides the name, birth date,
//     height, position and club, it records the row indices of the club and
//     national career labels, which bound the career rows.
//  2. Club career rows are summed between the two labels. Goal figures are
//     split into scored or conceded by the position read in stage 1.
//  3. National career rows after the national label are filtered to senior
//     team candidates, and the configured policy picks one. Its row sets the
//     national counters. A player with no senior team fails here.
//  4. Totals tables in the article body run last. Their figures only ever
//     raise the infobox sums, so they need the sums from stages 2 and 3.
func (p *PlayerAdapter) ExtractPlayer(ctx types.Context, doc *goquery.Document, pageURL string) (*types.PlayerRecord, error) {
	infobox := doc.Find(MarkerSelector).First()
	if infobox.Length() == 0 {
		return nil, types.ErrUnrecognizedPage
	}

	scan := &playerScan{
		record:        &types.PlayerRecord{URL: pageURL},
		rows:          infobox.Find("tr"),
		clubStart:     -1,
		nationalStart: -1,
	}

	// Stage 1: biography fields and career label positions
	if err := p.scanBiography(scan); err != nil {
		return nil, fmt.Errorf("biography of %s: %w", pageURL, err)
	}
	// Stage 2: club career sums
	p.accumulateClubCareer(scan)
	// Stage 3: senior national team
	if err := p.resolveNationalTeam(ctx, scan); err != nil {
		return nil, fmt.Errorf("national career of %s: %w", pageURL, err)
	}
	// Stage 4: article totals tables
	for _, totals := range totalsTables {
		p.applyTotals(doc, scan.record, totals)
	}

	return scan.record, nil
}

// playerScan is the working state of one player extraction
type playerScan struct {
	record        *types.PlayerRecord
	rows          *goquery.Selection
	clubStart     int // row index of the club career label, -1 if absent
	nationalStart int // row index of the national career label, -1 if absent
}

// nationalEnd is where the club career rows stop
func (s *playerScan) nationalEnd() int {
	if s.nationalStart < 0 {
		return s.rows.Length()
	}
	return s.nationalStart
}

// labelRule handles an infobox row whose label matches pattern
type labelRule struct {
	pattern *regexp.Regexp
	apply   func(scan *playerScan, row *goquery.Selection, index int) error
}

// wordLabel matches a label as a whole word, tolerating trailing text ("Рост (см)")
func wordLabel(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + strings.Join(words, "|") + `)(?:[^\p{L}]|$)`)
}

// Rules are tried in order; the first match handles the row.
var biographyRules = []labelRule{
	{wordLabel("Родился", "Родилась"), readBirthDate},
	{wordLabel("Рост"), readHeight},
	{wordLabel("Позиция", "Амплуа"), readPosition},
	{wordLabel("Клуб"), readClub},
	{wordLabel("Клубная карьера"), func(scan *playerScan, _ *goquery.Selection, index int) error {
		scan.clubStart = index
		return nil
	}},
	{wordLabel("Национальная сборная"), func(scan *playerScan, _ *goquery.Selection, index int) error {
		scan.nationalStart = index
		return nil
	}},
}

func (p *PlayerAdapter) scanBiography(scan *playerScan) error {
	nameFound := false

	for i := range scan.rows.Nodes {
		row := scan.rows.Eq(i)

		if !nameFound {
			if block := row.Find(athleteNameSelector).First(); block.Length() > 0 {
				scan.record.Name = splitAthleteName(cellText(block))
				nameFound = true
				continue
			}
		}

		label := row.Find("th").First()
		if label.Length() == 0 {
			continue
		}
		text := TrimToLastAlphabetic(cellText(label))

		for _, rule := range biographyRules {
			if !rule.pattern.MatchString(text) {
				continue
			}
			if err := rule.apply(scan, row, i); err != nil {
				return err
			}
			break
		}
	}

	return nil
}

// splitAthleteName returns the name surname-first. With more than two tokens
// the first two form the given name and the rest the surname.
func splitAthleteName(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) > 2 {
		tokens = []string{tokens[0] + " " + tokens[1], strings.Join(tokens[2:], " ")}
	}

	name := make([]string, len(tokens))
	for i, token := range tokens {
		name[len(tokens)-1-i] = token
	}
	return name
}

// readBirthDate reads the "day month" and "year" links of the birth row
func readBirthDate(scan *playerScan, row *goquery.Selection, _ int) error {
	links := row.Find("span.nowrap").First().Find("a")
	if links.Length() < 2 {
		return fmt.Errorf("%w: birth date needs day-month and year links", types.ErrMalformedField)
	}

	dayMonth := strings.Fields(cellText(links.Eq(0)))
	if len(dayMonth) != 2 {
		return fmt.Errorf("%w: birth date %q", types.ErrMalformedField, cellText(links.Eq(0)))
	}

	ts, text, err := ParseBirthDate(dayMonth[0], dayMonth[1], cellText(links.Eq(1)))
	if err != nil {
		return err
	}
	scan.record.BirthTimestamp = &ts
	scan.record.BirthDateText = text
	return nil
}

// readHeight reads the third text line of the row, which holds the value in
// source-formatted markup; compact markup falls back to the value cell.
func readHeight(scan *playerScan, row *goquery.Selection, _ int) error {
	text := cellText(row.Find("td").First())
	if lines := strings.Split(cellText(row), "\n"); len(lines) > 2 {
		text = lines[2]
	}

	height, err := ParseHeight(text)
	if err != nil {
		return err
	}
	scan.record.HeightCm = height
	return nil
}

func readPosition(scan *playerScan, row *goquery.Selection, _ int) error {
	scan.record.Position = cellText(row.Find("td").First())
	return nil
}

// readClub reads the club span, which excludes linked-data annotations
func readClub(scan *playerScan, row *goquery.Selection, _ int) error {
	club := row.Find("span.no-wikidata").First()
	if club.Length() == 0 {
		club = row.Find("td").First()
	}
	scan.record.CurrentClub = cellText(club)
	return nil
}

// rowPredicate decides whether a career row still belongs to its table.
// The first row failing it ends the table.
type rowPredicate func(cells *goquery.Selection) bool

func clubRowValid(cells *goquery.Selection) bool {
	return cells.Length() == 3
}

// nationalRowValid also stops at footnote rows under the table
func nationalRowValid(cells *goquery.Selection) bool {
	return cells.Length() == 3 && cells.Last().Find(referenceSelector).Length() == 0
}

// careerRows calls fn with each row cell set in [start, end) until valid fails
func careerRows(rows *goquery.Selection, start, end int, valid rowPredicate, fn func(cells *goquery.Selection)) {
	for i := start; i < end; i++ {
		cells := rows.Eq(i).Find("td")
		if !valid(cells) {
			return
		}
		fn(cells)
	}
}

func (p *PlayerAdapter) accumulateClubCareer(scan *playerScan) {
	if scan.clubStart < 0 {
		p.logger.Debugf("No club career section for %s", scan.record.URL)
		return
	}

	careerRows(scan.rows, scan.clubStart+1, scan.nationalEnd(), clubRowValid, func(cells *goquery.Selection) {
		row := ParseCareerCell(cellText(cells.Last()))
		scan.record.ClubCaps += careerMatches(row)
		scan.record.AddGoals(careerGoals(row))
	})
}

// nationalCandidate is a national career row that passed marker filtering
type nationalCandidate struct {
	title   string
	display string
	matches int
	goals   int
}

func (p *PlayerAdapter) collectNationalCandidates(scan *playerScan) []nationalCandidate {
	if scan.nationalStart < 0 {
		return nil
	}

	var candidates []nationalCandidate
	careerRows(scan.rows, scan.nationalStart+1, scan.rows.Length(), nationalRowValid, func(cells *goquery.Selection) {
		links := cells.Eq(1).Find("a")
		if links.Length() == 0 {
			return
		}
		link := links.Last()
		title := strings.TrimSpace(link.AttrOr("title", ""))
		display := cellText(link)

		// Parenthesized titles mark disambiguated non-senior variants
		if title == "" || strings.Contains(title, flagTitleMarker) ||
			strings.Contains(title, "(") || strings.Contains(display, "(") {
			p.logger.Debugf("Rejected national career row %q", title)
			return
		}

		row := ParseCareerCell(cellText(cells.Last()))
		candidates = append(candidates, nationalCandidate{
			title:   title,
			display: display,
			matches: careerMatches(row),
			goals:   careerGoals(row),
		})
	})

	return candidates
}

func (p *PlayerAdapter) resolveNationalTeam(ctx types.Context, scan *playerScan) error {
	candidates := p.collectNationalCandidates(scan)

	policy := p.policy(ctx)
	selectSenior, ok := seniorTeamSelectors[policy]
	if !ok {
		return fmt.Errorf("unknown senior team policy %q", policy)
	}

	senior, found := selectSenior(candidates, ctx.KnownTeams)
	if !found {
		return fmt.Errorf("%w (%d candidate rows, policy %s)", types.ErrNoSeniorNationalTeam, len(candidates), policy)
	}

	record := scan.record
	record.NationalTeam = senior.title
	record.NationalCaps = senior.matches
	if record.IsGoalkeeper() {
		record.NationalConceded = senior.goals
	} else {
		record.NationalScored = senior.goals
	}
	p.logger.Debugf("Senior team of %s is %q", record.URL, senior.title)
	return nil
}

func (p *PlayerAdapter) policy(ctx types.Context) types.SeniorTeamPolicy {
	if ctx.Config != nil && ctx.Config.SeniorTeamPolicy != "" {
		return ctx.Config.SeniorTeamPolicy
	}
	if p.config != nil && p.config.SeniorTeamPolicy != "" {
		return p.config.SeniorTeamPolicy
	}
	return types.PolicyRegistry
}

type seniorTeamSelector func(candidates []nationalCandidate, known *types.KnownTeams) (nationalCandidate, bool)

var seniorTeamSelectors = map[types.SeniorTeamPolicy]seniorTeamSelector{
	types.PolicyRegistry:  selectLastKnownTeam,
	types.PolicyExclusion: selectFirstUnexcludedTeam,
}

// selectLastKnownTeam takes the last candidate registered from a tournament page.
// Later rows follow a player's progress from youth teams to the senior team.
func selectLastKnownTeam(candidates []nationalCandidate, known *types.KnownTeams) (nationalCandidate, bool) {
	for i := len(candidates) - 1; i >= 0; i-- {
		if known.Contains(candidates[i].title) {
			return candidates[i], true
		}
	}
	return nationalCandidate{}, false
}

// Title fragments of youth, olympic and cross-wiki teams
var excludedTitleMarkers = []string{"молодёжная", "юношеская", "олимпийская", "en:"}

// Teams whose titles collide with other associations or regions
var ambiguousTeamTitles = map[string]bool{
	"Сборная Каталонии по футболу":          true,
	"Сборная Арубы по футболу":              true,
	"Сборная ДР Конго по футболу":           true,
	"Сборная Ирландии по футболу":           true,
	"Сборная Северной Македонии по футболу": true,
}

func selectFirstUnexcludedTeam(candidates []nationalCandidate, _ *types.KnownTeams) (nationalCandidate, bool) {
	for _, c := range candidates {
		if ambiguousTeamTitles[c.title] || hasExcludedMarker(c.title) {
			continue
		}
		return c, true
	}
	return nationalCandidate{}, false
}

func hasExcludedMarker(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range excludedTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// totalsTable describes an optional statistics table whose last row holds career totals
type totalsTable struct {
	name     string
	headings []string
	parse    func(last *goquery.Selection) (matches, goals int, ok bool)
	merge    func(record *types.PlayerRecord, matches, goals int)
}

var totalLabels = map[string]bool{
	"Всего":            true,
	"Всего за карьеру": true,
	"Итого":            true,
}

var totalsTables = []totalsTable{
	{
		name:     "club",
		headings: []string{"Статистика_выступлений", "Клубная_статистика", "Статистика_в_клубах"},
		parse:    parseTrailingTotals,
		merge:    (*types.PlayerRecord).MergeClubTotals,
	},
	{
		name:     "national",
		headings: []string{"Статистика_в_сборной", "Матчи_за_сборную"},
		parse:    parseLeadingTotals,
		merge:    (*types.PlayerRecord).MergeNationalTotals,
	},
}

// applyTotals merges the first totals row found under one of the table's headings.
// A missing heading, table or totals row leaves the record unchanged.
func (p *PlayerAdapter) applyTotals(doc *goquery.Document, record *types.PlayerRecord, totals totalsTable) {
	for _, heading := range p.FindHeadings(doc, totals.headings) {
		table := p.FindNext(doc, heading, totalsTableSelector)
		if table.Length() == 0 {
			continue
		}

		matches, goals, ok := totals.parse(table.Find("tr").Last())
		if !ok {
			continue
		}

		totals.merge(record, matches, goals)
		p.logger.Debugf("Applied %s totals %d (%d) to %s", totals.name, matches, goals, record.URL)
		return
	}
}

// parseTrailingTotals reads matches and goals from the last two columns of
// a club statistics totals row.
//
// Club statistics tables break matches down by competition and close with a
// "Всего" row whose last two columns are the overall matches and goals.
// Editors style that row inconsistently. Some use th cells throughout, some
// use td cells, and some mix a th label with td figures. The row is read from
// whichever cell kind it has more of, and the label is accepted from either.
//
// Older layouts put matches third from last and the goal figure second from
// last, followed by a trailing column such as an average. In that layout the
// second-to-last cell is a signed or annotated figure rather than a plain
// count, so a second-to-last cell that does not start with a digit selects it.
func parseTrailingTotals(last *goquery.Selection) (int, int, bool) {
	headers := last.Find("th")
	data := last.Find("td")

	// Read figures from the dominant cell kind
	cols := headers
	if data.Length() > headers.Length() {
		cols = data
	}
	// Without a total label this is an ordinary season row
	labelled := (headers.Length() > 0 && totalLabels[cellText(headers.First())]) ||
		(data.Length() > 0 && totalLabels[cellText(data.First())])
	if !labelled {
		return 0, 0, false
	}

	n := cols.Length()
	if n < 2 {
		return 0, 0, false
	}

	// Shifted layout: matches third from last, goals second from last
	matchesText := cellText(cols.Eq(n - 2))
	if !startsWithDigit(matchesText) {
		if n < 3 {
			return 0, 0, false
		}
		return ParseNoisyInt(cellText(cols.Eq(n - 3))), ParseNoisyInt(matchesText), true
	}
	return ParseNoisyInt(matchesText), totalsGoals(cellText(cols.Eq(n - 1))), true
}

// parseLeadingTotals reads "label | matches | goals | ..." rows
func parseLeadingTotals(last *goquery.Selection) (int, int, bool) {
	cells := last.ChildrenFiltered("th, td")
	if cells.Length() < 3 || !totalLabels[cellText(cells.First())] {
		return 0, 0, false
	}
	return ParseNoisyInt(cellText(cells.Eq(1))), totalsGoals(cellText(cells.Eq(2))), true
}

func totalsGoals(text string) int {
	if strings.Contains(text, UnknownMarker) {
		return 0
	}
	return ParseNoisyInt(StripSlashAlternate(text))
}
