package vocab

import (
	"context"
	"log/slog"
	"strings"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// ObservationSearcher lists observations for a taxon, region-scoped or
// global. Implemented by *inat.Client.
type ObservationSearcher interface {
	SearchObservations(ctx context.Context, taxonID int, regionScoped bool) ([]model.Observation, error)
}

// DefaultAllowedLicenses is the photo-license preference order: permissive
// Creative Commons tokens the quiz app can display without negotiation.
// The allow-list is a preference, not a hard filter; a taxon whose only
// photos carry other licenses still gets its first photo.
var DefaultAllowedLicenses = []string{"cc0", "cc-by", "cc-by-nc"}

// ExampleSelector finds one illustrative, photo-bearing observation for a
// taxon. Region-scoped lookup is always attempted strictly before the
// global fallback; finding nothing at all is a normal outcome reported as
// a nil example, not an error.
type ExampleSelector struct {
	// searcher lists candidate observations.
	searcher ObservationSearcher

	// allowedLicenses is the license preference list.
	allowedLicenses []string

	// logger for structured logging.
	logger *slog.Logger
}

// SelectorOption configures an ExampleSelector.
type SelectorOption func(*ExampleSelector)

// WithAllowedLicenses replaces the license preference list.
func WithAllowedLicenses(licenses []string) SelectorOption {
	return func(s *ExampleSelector) {
		s.allowedLicenses = licenses
	}
}

// WithSelectorLogger sets a custom logger for the selector.
func WithSelectorLogger(logger *slog.Logger) SelectorOption {
	return func(s *ExampleSelector) {
		s.logger = logger
	}
}

// NewExampleSelector creates a selector over the given searcher.
func NewExampleSelector(searcher ObservationSearcher, opts ...SelectorOption) *ExampleSelector {
	s := &ExampleSelector{
		searcher:        searcher,
		allowedLicenses: DefaultAllowedLicenses,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Select returns one example observation for the taxon, or nil when none
// qualifies. The first returned record wins; recency ordering is the
// designed tie-break, with no further scoring among candidates.
func (s *ExampleSelector) Select(ctx context.Context, taxonID int) (*model.ExampleObservation, error) {
	obs, err := s.searcher.SearchObservations(ctx, taxonID, true)
	if err != nil {
		return nil, err
	}

	if len(obs) == 0 {
		s.logger.Debug("no regional observation, trying global",
			"taxonId", taxonID,
		)
		obs, err = s.searcher.SearchObservations(ctx, taxonID, false)
		if err != nil {
			return nil, err
		}
	}

	if len(obs) == 0 {
		return nil, nil
	}

	chosen := obs[0]
	photo, ok := s.pickPhoto(chosen.Photos)
	if !ok {
		// photos=true should prevent this, but an empty photo list still
		// means there is nothing to show.
		return nil, nil
	}

	example := &model.ExampleObservation{
		ObsID:    chosen.ID,
		PhotoURL: largePhotoURL(photo.URL),
		Observer: chosen.UserLogin,
		ObsURL:   model.NewObservationURL(chosen.ID),
	}
	if example.Observer == "" {
		example.Observer = model.UnknownObserver
	}
	if photo.LicenseCode != "" {
		example.LicenseCode = &photo.LicenseCode
	}
	return example, nil
}

// pickPhoto prefers the first photo whose license is in the allow-list and
// falls back to the first photo regardless of license.
func (s *ExampleSelector) pickPhoto(photos []model.Photo) (model.Photo, bool) {
	if len(photos) == 0 {
		return model.Photo{}, false
	}
	for _, p := range photos {
		if s.licenseAllowed(p.LicenseCode) {
			return p, true
		}
	}
	return photos[0], true
}

// licenseAllowed reports whether the license token is in the allow-list.
func (s *ExampleSelector) licenseAllowed(code string) bool {
	for _, allowed := range s.allowedLicenses {
		if code == allowed {
			return true
		}
	}
	return false
}

// largePhotoURL substitutes the "large" size marker for the "square" one
// the listing endpoint returns.
func largePhotoURL(url string) string {
	return strings.Replace(url, "square", "large", 1)
}
