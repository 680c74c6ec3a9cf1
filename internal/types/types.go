package types

import (
	"github.com/PuerkitoBio/goquery"
)

// PageKind identifies which extraction strategy applies to a page
type PageKind int

const (
	PageUnknown PageKind = iota
	PageTournament
	PageTeam
	PagePlayer
)

// MarshalText encodes the kind by name in JSON output
func (k PageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k PageKind) String() string {
	switch k {
	case PageTournament:
		return "tournament"
	case PageTeam:
		return "team"
	case PagePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// GoalkeeperPosition is the position value that switches goal tallies to conceded goals
const GoalkeeperPosition = "вратарь"

// PlayerRecord is the terminal record extracted from a player page
type PlayerRecord struct {
	URL              string   `json:"url"`
	Name             []string `json:"name"`
	HeightCm         int      `json:"height"`
	Position         string   `json:"position"`
	CurrentClub      string   `json:"current_club"`
	ClubCaps         int      `json:"club_caps"`
	ClubConceded     int      `json:"club_conceded"`
	ClubScored       int      `json:"club_scored"`
	NationalCaps     int      `json:"national_caps"`
	NationalConceded int      `json:"national_conceded"`
	NationalScored   int      `json:"national_scored"`
	NationalTeam     string   `json:"national_team"`
	BirthTimestamp   *int64   `json:"birth,omitempty"`
	BirthDateText    string   `json:"birth_str,omitempty"`
}

// IsGoalkeeper reports whether goal tallies count conceded goals
func (p *PlayerRecord) IsGoalkeeper() bool {
	return IsGoalkeeper(p.Position)
}

// IsGoalkeeper reports whether a position text names the goalkeeper role
func IsGoalkeeper(position string) bool {
	return position == GoalkeeperPosition
}

// AddGoals adds a club goal tally to the field selected by position
func (p *PlayerRecord) AddGoals(n int) {
	if p.IsGoalkeeper() {
		p.ClubConceded += n
	} else {
		p.ClubScored += n
	}
}

// MergeClubTotals raises the club aggregates to the given totals, never lowering them
func (p *PlayerRecord) MergeClubTotals(matches, goals int) {
	p.ClubCaps = max(p.ClubCaps, matches)
	if p.IsGoalkeeper() {
		p.ClubConceded = max(p.ClubConceded, goals)
	} else {
		p.ClubScored = max(p.ClubScored, goals)
	}
}

// MergeNationalTotals raises the national aggregates to the given totals, never lowering them
func (p *PlayerRecord) MergeNationalTotals(matches, goals int) {
	p.NationalCaps = max(p.NationalCaps, matches)
	if p.IsGoalkeeper() {
		p.NationalConceded = max(p.NationalConceded, goals)
	} else {
		p.NationalScored = max(p.NationalScored, goals)
	}
}

// TeamReference is a team page found on a tournament page
type TeamReference struct {
	DisplayName    string `json:"display_name"`
	CanonicalTitle string `json:"canonical_title"`
	PageURL        string `json:"page_url"`
}

// CareerRow is one "<matches> (<goals>)" cell of a career table
type CareerRow struct {
	MatchesText string
	GoalsText   string
}

// ExtractionResult is what a single page yields
type ExtractionResult struct {
	Kind      PageKind        `json:"kind"`
	Record    *PlayerRecord   `json:"record,omitempty"`
	Teams     []TeamReference `json:"teams,omitempty"`
	FollowUps []string        `json:"follow_ups,omitempty"`
}

// PageFailure describes a page the crawler could not extract
type PageFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CrawlResult represents the complete crawl result
type CrawlResult struct {
	Players  []PlayerRecord  `json:"players"`
	Teams    []TeamReference `json:"teams,omitempty"`
	Failures []PageFailure   `json:"failures,omitempty"`
	Pages    int             `json:"pages"`
}

// PageAdapter defines the interface for page-kind specific extraction logic
type PageAdapter interface {
	// Kind returns the page kind the adapter handles
	Kind() PageKind

	// Matches reports whether a classification marker selects this adapter
	Matches(marker string) bool

	// Extract pulls the record or follow-up links out of a parsed page
	Extract(ctx Context, doc *goquery.Document, pageURL string) (*ExtractionResult, error)
}

// Context carries per-run state into an adapter. Adapters log through
// their own logger, so only configuration and the shared registry travel here.
type Context struct {
	Config     *Config
	KnownTeams *KnownTeams
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
