package extractor

import (
	"fmt"

	"squad-extractor/adapters"
	"squad-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// Extractor classifies pages and routes them to the adapter for their kind
type Extractor struct {
	config     *types.Config
	logger     types.Logger
	knownTeams *types.KnownTeams
	adapters   []types.PageAdapter
}

// NewExtractor creates an extractor. knownTeams is shared by every extraction
// it performs; pass nil to start with an empty registry.
func NewExtractor(config *types.Config, logger types.Logger, knownTeams *types.KnownTeams) *Extractor {
	if knownTeams == nil {
		knownTeams = types.NewKnownTeams()
	}

	// Marker keyword sets are tried in this order
	return &Extractor{
		config:     config,
		logger:     logger,
		knownTeams: knownTeams,
		adapters: []types.PageAdapter{
			adapters.NewTournamentAdapter(config, logger),
			adapters.NewTeamAdapter(config, logger),
			adapters.NewPlayerAdapter(config, logger),
		},
	}
}

// KnownTeams returns the registry shared by this extractor's extractions
func (e *Extractor) KnownTeams() *types.KnownTeams {
	return e.knownTeams
}

// Classify reads the page marker and returns the adapter for it.
// A page without a marker fails with ErrUnrecognizedPage; a marker no adapter
// recognizes yields PageUnknown and a nil adapter.
func (e *Extractor) Classify(doc *goquery.Document) (types.PageKind, types.PageAdapter, error) {
	marker, ok := adapters.ReadMarker(doc)
	if !ok {
		return types.PageUnknown, nil, types.ErrUnrecognizedPage
	}

	for _, adapter := range e.adapters {
		if adapter.Matches(marker) {
			return adapter.Kind(), adapter, nil
		}
	}
	return types.PageUnknown, nil, nil
}

// Extract parses a fetched page body and extracts it.
// Tournament and team pages yield follow-up links, player pages a record.
func (e *Extractor) Extract(html string, pageURL string) (*types.ExtractionResult, error) {
	doc, err := adapters.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML of %s: %w", pageURL, err)
	}
	return e.ExtractDocument(doc, pageURL)
}

// ExtractDocument extracts an already parsed page
func (e *Extractor) ExtractDocument(doc *goquery.Document, pageURL string) (*types.ExtractionResult, error) {
	kind, adapter, err := e.Classify(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}
	if adapter == nil {
		e.logger.Debugf("Page %s has an unsupported marker, nothing to extract", pageURL)
		return &types.ExtractionResult{Kind: types.PageUnknown}, nil
	}

	ctx := types.Context{
		Config:     e.config,
		KnownTeams: e.knownTeams,
	}
	result, err := adapter.Extract(ctx, doc, pageURL)
	if err != nil {
		return nil, err
	}

	e.logger.Debugf("Extracted %s page %s (%d follow-up links)", kind, pageURL, len(result.FollowUps))
	return result, nil
}
