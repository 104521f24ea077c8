package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// Default configuration values.
// These values mirror the behavior the vocabulary artifacts were originally
// built with, and the politeness settings recommended by the iNaturalist API
// documentation (at most ~1 request per second sustained).
const (
	// DefaultAPIBaseURL is the iNaturalist API v1 base URL.
	DefaultAPIBaseURL = "https://api.inaturalist.org/v1"

	// DefaultPlaceID is the iNaturalist place_id for Sweden, confirmed via
	// the /places/autocomplete endpoint.
	DefaultPlaceID = 7599

	// DefaultLocale requests Swedish common names where available.
	DefaultLocale = "sv"

	// DefaultRegionSlug names the region in artifact file names
	// (e.g. birds_genera_sweden.json).
	DefaultRegionSlug = "sweden"

	// DefaultPerPage is the species-counts page size. 200 is the API's
	// maximum; fewer pages means fewer chances to hit rate limiting.
	DefaultPerPage = 200

	// DefaultMaxPages caps species-counts pagination per source taxon.
	// This is a deliberate partial-result policy: very large taxa
	// (e.g. Plantae) are under-sampled rather than fetched unboundedly.
	// 5 pages of 200 comfortably covers the largest configured top_n.
	DefaultMaxPages = 5

	// DefaultMaxRetries is how many times a single species-counts page is
	// retried after a throttling response before the run fails.
	DefaultMaxRetries = 5

	// DefaultInitialBackoff is the wait after the first throttling
	// response; subsequent retries double it (1s, 2s, 4s, ...).
	DefaultInitialBackoff = 1 * time.Second

	// DefaultPageDelay is the politeness delay between successive
	// species-counts pages.
	DefaultPageDelay = 200 * time.Millisecond

	// DefaultChunkDelay is the politeness delay between batched taxa
	// detail requests.
	DefaultChunkDelay = 500 * time.Millisecond

	// DefaultObservationCooldown is the single fixed wait after a
	// throttling response during example-observation lookup. The lookup
	// retries exactly once, so the cooldown sits near the top of the
	// counts backoff ladder rather than starting a new one.
	DefaultObservationCooldown = 10 * time.Second

	// DefaultTaxaBatchSize is the number of taxon ids per batched detail
	// request. 30 keeps the request path well under URL length limits.
	DefaultTaxaBatchSize = 30

	// DefaultTopN is the retained-count for groups that don't set one.
	DefaultTopN = 100

	// DefaultOutputDir is where per-group JSON artifacts are written.
	DefaultOutputDir = "data"

	// DefaultUserAgent identifies vocabbuild in API requests. A
	// descriptive User-Agent is requested by the iNaturalist API terms.
	DefaultUserAgent = "vocabbuild/1.0 (+https://github.com/naturkoll/vocabbuild)"

	// AppName is the application name used for XDG directory paths.
	AppName = "vocabbuild"
)

// Config holds all configuration options for vocabbuild.
// This struct is populated from the configuration file and CLI flags and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// APIBaseURL is the base URL of the iNaturalist-compatible API.
	// Overridable mainly for tests against httptest servers.
	APIBaseURL string

	// PlaceID is the region identifier all counts and example-observation
	// queries are scoped to.
	PlaceID int

	// Locale is the BCP 47 language tag for localized common names.
	Locale string

	// RegionSlug names the region in artifact file names.
	RegionSlug string

	// PerPage is the species-counts page size.
	PerPage int

	// MaxPages caps species-counts pagination per source taxon,
	// independent of what total the server reports.
	MaxPages int

	// MaxRetries bounds throttling retries for a single counts page.
	MaxRetries int

	// InitialBackoff is the first throttling wait; retry n sleeps
	// InitialBackoff * 2^(n-1).
	InitialBackoff time.Duration

	// PageDelay is the politeness delay between counts pages.
	PageDelay time.Duration

	// ChunkDelay is the politeness delay between taxa detail batches.
	ChunkDelay time.Duration

	// ObservationCooldown is the single fixed wait after throttling
	// during example-observation lookup.
	ObservationCooldown time.Duration

	// TaxaBatchSize is the number of ids per batched taxa request.
	TaxaBatchSize int

	// OutputDir is the directory artifacts are written to.
	OutputDir string

	// SummaryFile, when set, is the path a markdown run summary is
	// written to after all groups complete.
	SummaryFile string

	// Verbose enables slog.LevelDebug output. When false, progress lines
	// are logged at Info.
	Verbose bool

	// ConfigFilePath is the path to the group configuration file. If
	// empty, the tool searches vocabbuild.yml in the current directory
	// and then in the XDG config directory.
	ConfigFilePath string

	// Groups is the ordered list of vocabulary groups to build.
	Groups []model.SourceGroup

	// DBDir is the directory for the run-history SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether run summaries are journaled to the
	// database after all groups complete.
	SaveToDB bool

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (place id, delays,
// retry budget). This also serves as documentation of what the defaults
// are.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:          DefaultAPIBaseURL,
		PlaceID:             DefaultPlaceID,
		Locale:              DefaultLocale,
		RegionSlug:          DefaultRegionSlug,
		PerPage:             DefaultPerPage,
		MaxPages:            DefaultMaxPages,
		MaxRetries:          DefaultMaxRetries,
		InitialBackoff:      DefaultInitialBackoff,
		PageDelay:           DefaultPageDelay,
		ChunkDelay:          DefaultChunkDelay,
		ObservationCooldown: DefaultObservationCooldown,
		TaxaBatchSize:       DefaultTaxaBatchSize,
		OutputDir:           DefaultOutputDir,
		UserAgent:           DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for vocabbuild.
// On Linux: ~/.local/share/vocabbuild
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for vocabbuild.
// On Linux: ~/.config/vocabbuild
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after config loading, before any requests are made.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Groups) == 0 {
		return ErrNoGroups
	}
	for _, g := range c.Groups {
		if g.Label == "" {
			return ErrEmptyGroupLabel
		}
		if len(g.TaxonIDs) == 0 {
			return ErrNoTaxonIDs
		}
		if g.TopN <= 0 {
			return ErrInvalidTopN
		}
	}

	if c.PerPage <= 0 {
		return ErrInvalidPerPage
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	if c.InitialBackoff <= 0 {
		return ErrInvalidBackoff
	}
	if c.PageDelay < 0 || c.ChunkDelay < 0 || c.ObservationCooldown < 0 {
		return ErrInvalidDelay
	}
	if c.TaxaBatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return ErrInvalidLocale
	}

	return nil
}
