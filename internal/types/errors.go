package types

import "errors"

var (
	// ErrUnrecognizedPage means the page has no classification marker; treat it as a missing resource
	ErrUnrecognizedPage = errors.New("unrecognized page: classification marker not found")

	// ErrUnknownMonth means a birth date names a month outside the lookup table
	ErrUnknownMonth = errors.New("unknown month")

	// ErrMalformedField means a recognized field does not match its expected shape
	ErrMalformedField = errors.New("malformed field")

	// ErrNoSeniorNationalTeam means no career row resolved to a senior national team
	ErrNoSeniorNationalTeam = errors.New("player has no senior national team")
)

// IsOutOfScope reports whether err marks a page that is valid but not a target of the crawl
func IsOutOfScope(err error) bool {
	return errors.Is(err, ErrUnrecognizedPage) || errors.Is(err, ErrNoSeniorNationalTeam)
}
