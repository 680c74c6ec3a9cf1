package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"squad-extractor/internal/types"
)

// UnknownMarker is how pages write a figure nobody recorded
const UnknownMarker = "?"

var (
	digitRun     = regexp.MustCompile(`[0-9]+`)
	leadingDigit = regexp.MustCompile(`^[0-9]+`)
)

// Genitive month names as they appear in birth dates ("5 мая")
var monthNames = []string{
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

// ParseNoisyInt parses the first run of ASCII digits in text.
// Text without digits, such as "?" or "", yields 0.
func ParseNoisyInt(text string) int {
	run := digitRun.FindString(text)
	if run == "" {
		return 0
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0
	}
	return n
}

// StripSlashAlternate keeps only the figure before the first "/"
func StripSlashAlternate(text string) string {
	if i := strings.Index(text, "/"); i >= 0 {
		return text[:i]
	}
	return text
}

// ParseHeight reads the leading centimetre figure of a height cell ("180 см", "182[1]").
// The cell must open with digits. A footnote bracket may only follow the
// digit run, so "[1]180 см" is malformed rather than 180.
func ParseHeight(text string) (int, error) {
	text = strings.TrimSpace(text)
	run := leadingDigit.FindString(text)
	if run == "" {
		return 0, fmt.Errorf("%w: height %q has no leading digits", types.ErrMalformedField, text)
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, fmt.Errorf("%w: height %q: %v", types.ErrMalformedField, text, err)
	}
	return n, nil
}

// ParseBirthDate converts a day, a localized month name and a year into
// a UTC midnight epoch timestamp and a "year.month.day" string.
func ParseBirthDate(day, monthName, year string) (int64, string, error) {
	month := 0
	for i, name := range monthNames {
		if name == strings.ToLower(strings.TrimSpace(monthName)) {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return 0, "", fmt.Errorf("%w: %q", types.ErrUnknownMonth, monthName)
	}

	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return 0, "", fmt.Errorf("%w: birth day %q", types.ErrMalformedField, day)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, "", fmt.Errorf("%w: birth year %q", types.ErrMalformedField, year)
	}

	// time.Date normalizes 31 февраля into March, so a date that does not
	// survive the round trip was never a calendar day
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(month) {
		return 0, "", fmt.Errorf("%w: birth date %d.%d.%d", types.ErrMalformedField, y, month, d)
	}
	return t.Unix(), fmt.Sprintf("%d.%d.%d", y, month, d), nil
}

// TrimToLastAlphabetic drops trailing non-letter runes ("Рост:" -> "Рост")
func TrimToLastAlphabetic(text string) string {
	return strings.TrimRightFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// ParseCareerCell splits a "<matches> (<goals>)" cell
func ParseCareerCell(text string) types.CareerRow {
	text = strings.TrimSpace(text)
	open := strings.Index(text, "(")
	if open < 0 {
		return types.CareerRow{MatchesText: text}
	}

	goals := text[open+1:]
	if end := strings.Index(goals, ")"); end >= 0 {
		goals = goals[:end]
	}
	return types.CareerRow{
		MatchesText: strings.TrimSpace(text[:open]),
		GoalsText:   strings.TrimSpace(goals),
	}
}

// careerMatches returns the appearance count of a career row; unknown counts add nothing
func careerMatches(row types.CareerRow) int {
	if strings.Contains(row.MatchesText, UnknownMarker) {
		return 0
	}
	return ParseNoisyInt(row.MatchesText)
}

// careerGoals returns the goal tally of a career row.
// Goalkeepers record conceded goals with a leading minus sign, which ParseNoisyInt skips.
func careerGoals(row types.CareerRow) int {
	goals := row.GoalsText
	if goals == "0" || strings.Contains(goals, UnknownMarker) {
		return 0
	}
	return ParseNoisyInt(StripSlashAlternate(goals))
}

func startsWithDigit(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && text[0] >= '0' && text[0] <= '9'
}
