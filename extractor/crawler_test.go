package extractor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tp "squad-extractor/internal/testpages"
	"squad-extractor/internal/types"
)

// staticFetcher serves pages from memory and counts requests per URL
type staticFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
	order []string
}

func newStaticFetcher(pages map[string]string) *staticFetcher {
	return &staticFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *staticFetcher) GetPageContent(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[url]++
	f.order = append(f.order, url)
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("unexpected status code: 404")
	}
	return html, nil
}

func worldCup() map[string]string {
	return map[string]string{
		wikiURL("ЧМ"): tp.Tournament(
			[2]string{tp.Brazil, "Бразилия"},
			[2]string{tp.Argentina, "Аргентина"},
		),
		wikiURL("Сборная_Бразилии_по_футболу"): tp.Team(
			tp.Squad("Текущий_состав",
				tp.SquadRow("10", "НП", "Неймар"),
				tp.SquadRow("1", "ВР", "Алиссон"),
			),
		),
		wikiURL("Сборная_Аргентины_по_футболу"): tp.Team(
			tp.Squad("Текущий_состав",
				tp.SquadRow("10", "НП", "Месси"),
				tp.SquadRow("7", "ПЗ", "Неймар"),
				tp.SquadRow("20", "ПЗ", "Юниор"),
				tp.SquadRow("99", "НП", "Призрак"),
			),
		),
		wikiURL("Неймар"): playerPage("Неймар да Силва Сантус Жуниор", "нападающий",
			tp.NationalCareerRow("2012", tp.Olympic, "Бразилия", "6 (2)"),
			tp.NationalCareerRow("2010—н. в.", tp.Brazil, "Бразилия", "128 (79)"),
		),
		wikiURL("Алиссон"): playerPage("Алиссон Беккер", "вратарь",
			tp.NationalCareerRow("2015—н. в.", tp.Brazil, "Бразилия", "60 (−40)"),
		),
		wikiURL("Месси"): playerPage("Лионель Андрес Месси", "нападающий",
			tp.NationalCareerRow("2005—н. в.", tp.Argentina, "Аргентина", "180 (106)"),
		),
		wikiURL("Юниор"): playerPage("Юниор Юниорович", "полузащитник",
			tp.NationalCareerRow("2022", tp.U20, "Аргентина (до 20)", "3 (0)"),
		),
	}
}

func newTestCrawler(config *types.Config, fetcher PageFetcher) *Crawler {
	logger := logrus.New()
	return NewCrawler(config, logger, NewExtractor(config, logger, nil), fetcher)
}

func TestCrawler_Crawl(t *testing.T) {
	fetcher := newStaticFetcher(worldCup())
	crawler := newTestCrawler(types.DefaultConfig(), fetcher)

	result, err := crawler.Crawl(context.Background(), wikiURL("ЧМ"))

	require.NoError(t, err)
	assert.Equal(t, 8, result.Pages)

	require.Len(t, result.Players, 3)
	assert.Equal(t, wikiURL("Неймар"), result.Players[0].URL)
	assert.Equal(t, tp.Brazil, result.Players[0].NationalTeam)
	assert.Equal(t, 79, result.Players[0].NationalScored)
	assert.Equal(t, wikiURL("Алиссон"), result.Players[1].URL)
	assert.Equal(t, 40, result.Players[1].NationalConceded)
	assert.Equal(t, wikiURL("Месси"), result.Players[2].URL)
	assert.Equal(t, tp.Argentina, result.Players[2].NationalTeam)

	require.Len(t, result.Teams, 2)
	assert.Equal(t, tp.Brazil, result.Teams[0].CanonicalTitle)

	require.Len(t, result.Failures, 2)
	assert.Equal(t, wikiURL("Юниор"), result.Failures[0].URL)
	assert.Contains(t, result.Failures[0].Error, types.ErrNoSeniorNationalTeam.Error())
	assert.Equal(t, wikiURL("Призрак"), result.Failures[1].URL)
	assert.Contains(t, result.Failures[1].Error, "404")

	for url, n := range fetcher.calls {
		assert.Equal(t, 1, n, "fetched %s more than once", url)
	}
}

func TestCrawler_ReportsUniqueURLs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	config := types.DefaultConfig()
	crawler := NewCrawler(config, logger, NewExtractor(config, logger, nil), newStaticFetcher(worldCup()))

	_, err := crawler.Crawl(context.Background(), wikiURL("ЧМ"))

	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Contains(t, entry.Message, "2 known teams, 8 unique URLs")
}

func TestCrawler_LevelsCompleteInOrder(t *testing.T) {
	fetcher := newStaticFetcher(worldCup())
	crawler := newTestCrawler(types.DefaultConfig(), fetcher)

	_, err := crawler.Crawl(context.Background(), wikiURL("ЧМ"))
	require.NoError(t, err)

	position := make(map[string]int)
	for i, url := range fetcher.order {
		position[url] = i
	}

	assert.Equal(t, 0, position[wikiURL("ЧМ")])
	for _, team := range []string{"Сборная_Бразилии_по_футболу", "Сборная_Аргентины_по_футболу"} {
		for _, player := range []string{"Неймар", "Алиссон", "Месси", "Юниор"} {
			assert.Less(t, position[wikiURL(team)], position[wikiURL(player)])
		}
	}
}

func TestCrawler_MaxPages(t *testing.T) {
	config := types.DefaultConfig()
	config.MaxPages = 2
	fetcher := newStaticFetcher(worldCup())
	crawler := newTestCrawler(config, fetcher)

	result, err := crawler.Crawl(context.Background(), wikiURL("ЧМ"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	assert.Empty(t, result.Players)
	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, 1, fetcher.calls[wikiURL("Сборная_Бразилии_по_футболу")])
}

func TestCrawler_SeedFailure(t *testing.T) {
	crawler := newTestCrawler(types.DefaultConfig(), newStaticFetcher(nil))

	result, err := crawler.Crawl(context.Background(), wikiURL("Нет"))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	require.Len(t, result.Failures, 1)
	assert.Empty(t, result.Players)
}

func TestCrawler_Cancelled(t *testing.T) {
	fetcher := newStaticFetcher(worldCup())
	crawler := newTestCrawler(types.DefaultConfig(), fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := crawler.Crawl(ctx, wikiURL("ЧМ"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Pages)
	assert.Empty(t, fetcher.calls)
}
