package extractor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"squad-extractor/adapters"
	tp "squad-extractor/internal/testpages"
	"squad-extractor/internal/types"
)

const siteRoot = "https://ru.wikipedia.org"

func wikiURL(slug string) string {
	return siteRoot + "/wiki/" + slug
}

func playerPage(name, position string, national ...string) string {
	rows := []string{
		tp.NameRow(name),
		tp.FieldRow("Позиция", position),
		tp.SectionRow("Клубная карьера"),
		tp.ClubCareerRow("2015—н. в.", "Клуб", "100 (20)"),
		tp.SectionRow("Национальная сборная"),
	}
	return tp.Player(append(rows, national...), "")
}

func TestNewExtractor(t *testing.T) {
	config := types.DefaultConfig()
	logger := logrus.New()

	extractor := NewExtractor(config, logger, nil)

	assert.NotNil(t, extractor)
	assert.Equal(t, config, extractor.config)
	assert.Equal(t, logger, extractor.logger)
	assert.Len(t, extractor.adapters, 3)
	require.NotNil(t, extractor.KnownTeams())
	assert.Equal(t, 0, extractor.KnownTeams().Len())

	known := types.NewKnownTeams(tp.Brazil)
	assert.Same(t, known, NewExtractor(config, logger, known).KnownTeams())
}

func TestExtract_NoMarker(t *testing.T) {
	extractor := NewExtractor(types.DefaultConfig(), logrus.New(), nil)

	_, err := extractor.Extract(`<html><body><h1>Ошибка 404</h1></body></html>`, wikiURL("Missing"))

	assert.ErrorIs(t, err, types.ErrUnrecognizedPage)
	assert.True(t, types.IsOutOfScope(err))
}

func TestExtract_UnknownMarker(t *testing.T) {
	extractor := NewExtractor(types.DefaultConfig(), logrus.New(), nil)

	result, err := extractor.Extract(tp.Page("Теннисист", "", ""), wikiURL("Tennis"))

	require.NoError(t, err)
	assert.Equal(t, types.PageUnknown, result.Kind)
	assert.Nil(t, result.Record)
	assert.Empty(t, result.FollowUps)
}

func TestClassify(t *testing.T) {
	extractor := NewExtractor(types.DefaultConfig(), logrus.New(), nil)

	cases := []struct {
		name string
		html string
		want types.PageKind
	}{
		{"tournament", tp.Tournament(), types.PageTournament},
		{"team", tp.Team(), types.PageTeam},
		{"player", tp.Player(nil, ""), types.PagePlayer},
		{"other", tp.Page("Стадион", "", ""), types.PageUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := adapters.ParseHTML(tc.html)
			require.NoError(t, err)

			kind, adapter, err := extractor.Classify(doc)

			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
			if tc.want == types.PageUnknown {
				assert.Nil(t, adapter)
			} else {
				assert.Equal(t, tc.want, adapter.Kind())
			}
		})
	}
}

func TestExtract_RegistrySharedAcrossPages(t *testing.T) {
	extractor := NewExtractor(types.DefaultConfig(), logrus.New(), nil)
	player := playerPage("Неймар да Силва Сантус Жуниор", "нападающий",
		tp.NationalCareerRow("2012", tp.Olympic, "Бразилия", "6 (2)"),
		tp.NationalCareerRow("2010—н. в.", tp.Brazil, "Бразилия", "128 (79)"),
	)

	_, err := extractor.Extract(player, wikiURL("Неймар"))
	require.ErrorIs(t, err, types.ErrNoSeniorNationalTeam)

	_, err = extractor.Extract(tp.Tournament([2]string{tp.Brazil, "Бразилия"}), wikiURL("ЧМ"))
	require.NoError(t, err)

	result, err := extractor.Extract(player, wikiURL("Неймар"))
	require.NoError(t, err)
	require.NotNil(t, result.Record)
	assert.Equal(t, tp.Brazil, result.Record.NationalTeam)
	assert.Equal(t, 128, result.Record.NationalCaps)
	assert.Equal(t, 100, result.Record.ClubCaps)
	assert.Equal(t, 20, result.Record.ClubScored)
}

func TestExtract_Idempotent(t *testing.T) {
	extractor := NewExtractor(types.DefaultConfig(), logrus.New(), types.NewKnownTeams(tp.Brazil))
	player := playerPage("Алиссон Рамзес Беккер", "вратарь",
		tp.NationalCareerRow("2015—н. в.", tp.Brazil, "Бразилия", "60 (−40)"),
	)

	first, err := extractor.Extract(player, wikiURL("Алиссон"))
	require.NoError(t, err)
	second, err := extractor.Extract(player, wikiURL("Алиссон"))
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated extraction differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 20, first.Record.ClubConceded)
	assert.Equal(t, 40, first.Record.NationalConceded)
}

func TestWriteCSV(t *testing.T) {
	birth := int64(551491200)
	players := []types.PlayerRecord{
		{
			URL:            wikiURL("Месси"),
			Name:           []string{"Месси", "Лионель Андрес"},
			HeightCm:       170,
			Position:       "нападающий",
			CurrentClub:    "Интер Майами",
			ClubCaps:       850,
			ClubScored:     700,
			NationalCaps:   180,
			NationalScored: 106,
			NationalTeam:   tp.Argentina,
			BirthTimestamp: &birth,
			BirthDateText:  "1987.6.24",
		},
		{URL: wikiURL("X"), Name: []string{"X"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, players))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Equal(t, wikiURL("Месси")+",Месси Лионель Андрес,170,нападающий,Интер Майами,850,0,700,180,0,106,"+
		tp.Argentina+",551491200,1987.6.24", lines[1])
	assert.Equal(t, wikiURL("X")+",X,0,,,0,0,0,0,0,0,,,", lines[2])
}

func TestWriteJSON(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "players.json")
	players := []types.PlayerRecord{{URL: wikiURL("X"), Name: []string{"X"}, NationalTeam: tp.Brazil}}

	require.NoError(t, WriteJSON(filename, players))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, tp.Brazil, decoded[0]["national_team"])
	assert.NotContains(t, decoded[0], "birth")
}

func TestVisitedSet(t *testing.T) {
	visited := newVisitedSet(0)

	assert.True(t, visited.Add("a"))
	assert.True(t, visited.Add("b"))
	assert.False(t, visited.Add("a"))
	assert.Equal(t, 2, visited.Len())
}
