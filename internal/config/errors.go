package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoGroups is returned when the configuration holds no vocabulary
	// groups. Without groups there is nothing to build.
	ErrNoGroups = errors.New("no groups configured: add at least one group to the configuration file")

	// ErrEmptyGroupLabel is returned when a group has no label. The label
	// names the output artifact, so it cannot be empty.
	ErrEmptyGroupLabel = errors.New("invalid group: label must not be empty")

	// ErrNoTaxonIDs is returned when a group lists no source taxa.
	ErrNoTaxonIDs = errors.New("invalid group: at least one taxon id is required")

	// ErrInvalidTopN is returned when a group's top_n is not positive.
	ErrInvalidTopN = errors.New("invalid group: topN must be positive")

	// ErrInvalidPerPage is returned when the counts page size is not
	// positive.
	ErrInvalidPerPage = errors.New("invalid per-page: must be positive")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	// A cap of zero would fetch nothing.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxRetries is returned when the throttling retry budget is
	// not positive.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be positive")

	// ErrInvalidBackoff is returned when the initial backoff is not
	// positive. A zero backoff would hammer a throttling server.
	ErrInvalidBackoff = errors.New("invalid initial backoff: must be positive")

	// ErrInvalidDelay is returned when a politeness delay is negative.
	// Use 0 to disable a delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidBatchSize is returned when the taxa batch size is not
	// positive.
	ErrInvalidBatchSize = errors.New("invalid taxa batch size: must be positive")

	// ErrInvalidLocale is returned when the locale is not a parseable
	// BCP 47 language tag.
	ErrInvalidLocale = errors.New("invalid locale: must be a BCP 47 language tag such as \"sv\"")
)
