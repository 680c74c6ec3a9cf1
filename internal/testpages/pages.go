// Package testpages builds small encyclopedia-style pages for extractor tests
package testpages

import (
	"fmt"
	"strings"
)

// Page markers
const (
	TournamentMarker = "Соревнование футбольных сборных"
	TeamMarker       = "Сборная страны по футболу"
	PlayerMarker     = "Футболист"
)

// Canonical team titles used across fixtures
const (
	Brazil    = "Сборная Бразилии по футболу"
	Argentina = "Сборная Аргентины по футболу"
	Olympic   = "Олимпийская сборная Бразилии по футболу"
	Ireland   = "Сборная Ирландии по футболу"
	U20       = "Сборная Бразилии по футболу (до 20 лет)"
)

// Page wraps body in a document whose infobox carries marker
func Page(marker, infobox, body string) string {
	return fmt.Sprintf(`<html><head><title>t</title></head><body>
<table class="infobox" data-name="%s">%s</table>
%s
</body></html>`, marker, infobox, body)
}

// Tournament builds a tournament page whose qualified table lists the given
// title/display pairs, plus a decoy table before the section.
func Tournament(teams ...[2]string) string {
	var rows strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&rows, `<tr><td><a href="/wiki/Файл:Flag.svg" title="Флаг"><img src="f.png"/></a> <a href="/wiki/%s" title="%s">%s</a></td><td>Победитель группы</td></tr>`,
			strings.ReplaceAll(team[0], " ", "_"), team[0], team[1])
	}

	body := `<table class="standard sortable"><tr><th>Хозяева</th></tr><tr><td><a href="/wiki/Decoy" title="Decoy">Decoy</a></td></tr></table>
<h2><span class="mw-headline" id="Квалифицировались_в_финальный_турнир">Квалифицировались в финальный турнир</span></h2>
<table class="standard sortable">
<tr><th>Команда</th><th>Способ квалификации</th></tr>
` + rows.String() + `
<tr><td>Определится позже</td><td>—</td></tr>
</table>`

	return Page(TournamentMarker, `<tr><td>Чемпионат</td></tr>`, body)
}

// Squad builds a roster table under the given heading id
func Squad(headingID string, rows ...string) string {
	return fmt.Sprintf(`<h2><span class="mw-headline" id="%s">Состав</span></h2>
<table class="wikitable">
<tr><th>№</th><th>Поз.</th><th>Игрок</th><th>Клуб</th></tr>
%s
</table>`, headingID, strings.Join(rows, "\n"))
}

// SquadRow is a roster row linking a player page
func SquadRow(number, position, slug string) string {
	return fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td><a href="/wiki/%s" title="%s">%s</a></td><td>Клуб</td></tr>`,
		number, position, slug, slug, slug)
}

// Team builds a team page from squad sections
func Team(sections ...string) string {
	return Page(TeamMarker, `<tr><td>Сборная</td></tr>`, strings.Join(sections, "\n"))
}

// NameRow is the athlete name block
func NameRow(name string) string {
	return fmt.Sprintf(`<tr><td colspan="3"><div class="ts_Спортсмен_имя">%s</div></td></tr>`, name)
}

// FieldRow is a labelled biography row
func FieldRow(label, value string) string {
	return fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>", label, value)
}

// BirthRow is a birth date row with day-month and year links
func BirthRow(dayMonth, year string) string {
	return FieldRow("Родился", fmt.Sprintf(`<span class="nowrap"><a href="/wiki/%s">%s</a> <a href="/wiki/%s">%s</a></span>`,
		dayMonth, dayMonth, year, year))
}

// HeightRow is a height row in source formatting, one cell per line
func HeightRow(value string) string {
	return fmt.Sprintf("<tr>\n<th>Рост:\n</th>\n<td>%s\n</td>\n</tr>", value)
}

// ClubRow is the current club row; the club span excludes the linked-data marker
func ClubRow(club string) string {
	return FieldRow("Клуб", fmt.Sprintf(`<span class="no-wikidata"><a href="/wiki/c">%s</a></span><sup>[wd]</sup>`, club))
}

// SectionRow is a label row starting a career section
func SectionRow(label string) string {
	return fmt.Sprintf(`<tr><th colspan="3">%s</th></tr>`, label)
}

// ClubCareerRow is a three-cell club career row
func ClubCareerRow(years, club, stats string) string {
	return fmt.Sprintf(`<tr><td>%s</td><td><a href="/wiki/%s" title="%s">%s</a></td><td>%s</td></tr>`,
		years, club, club, club, stats)
}

// NationalCareerRow is a three-cell national career row with a flag link before the team link
func NationalCareerRow(years, title, display, stats string) string {
	return fmt.Sprintf(`<tr><td>%s</td><td><a href="/wiki/Flag" title="Флаг Бразилии"><img src="f.png"/></a> <a href="/wiki/%s" title="%s">%s</a></td><td>%s</td></tr>`,
		years, strings.ReplaceAll(title, " ", "_"), title, display, stats)
}

// FootnoteRow is a three-cell row whose last cell holds a footnote reference
func FootnoteRow(title string) string {
	return fmt.Sprintf(`<tr><td>2020</td><td><a href="/wiki/x" title="%s">x</a></td><td>5 (1)<span class="reference-text">Обновлено</span></td></tr>`, title)
}

// TotalsTable builds a statistics table under headingID whose last row is lastRow
func TotalsTable(headingID, lastRow string) string {
	return fmt.Sprintf(`<h2><span class="mw-headline" id="%s">Статистика</span></h2>
<table class="wikitable">
<tr><th>Команда</th><th>Сезон</th><th>Матчи</th><th>Голы</th></tr>
<tr><td>Клуб</td><td>2019</td><td>1</td><td>1</td></tr>
%s
</table>`, headingID, lastRow)
}

// Player builds a player page from infobox rows and trailing body markup
func Player(rows []string, body string) string {
	return Page(PlayerMarker, strings.Join(rows, "\n"), body)
}
