package model

import "fmt"

// ObservationURLFormat builds the canonical URL to an observation on the
// iNaturalist website from its identifier.
const ObservationURLFormat = "https://www.inaturalist.org/observations/%d"

// UnknownObserver is the sentinel used when an observation carries no
// attributed user.
const UnknownObserver = "unknown"

// ExampleObservation is one photographic observation attached to a vocabulary
// entry. Every entry in the output artifact carries exactly one; taxa without
// a usable example are dropped before assembly.
type ExampleObservation struct {
	// ObsID is the observation identifier on iNaturalist.
	ObsID int `json:"obsId"`

	// PhotoURL is the photo URL normalized to the "large" size variant.
	PhotoURL string `json:"photoUrl"`

	// Observer is the observer's login name, or "unknown" when the
	// observation is unattributed.
	Observer string `json:"observer"`

	// LicenseCode is the photo's license token. Null when the chosen photo
	// carries no license; the license allow-list is a preference, not a
	// hard filter.
	LicenseCode *string `json:"licenseCode"`

	// ObsURL is the canonical URL to the observation record.
	ObsURL string `json:"obsUrl"`
}

// NewObservationURL returns the canonical observation URL for an id.
func NewObservationURL(obsID int) string {
	return fmt.Sprintf(ObservationURLFormat, obsID)
}

// VocabEntry is the final output unit: one taxon in a group's vocabulary
// artifact. Entries are created once, immutable, and written in ranking
// order (descending observation count).
//
// Design decision: Nullable output fields are pointers so the artifact
// carries explicit JSON nulls. Consumers of the artifact distinguish "no
// Swedish name exists" (null) from "empty string", and the original tool's
// artifacts used nulls for these fields.
type VocabEntry struct {
	// ScientificName is the leaf taxon's scientific name.
	ScientificName string `json:"scientificName"`

	// SwedishName is the localized common name, null when unavailable.
	SwedishName *string `json:"swedishName"`

	// GenusName is derived from ScientificName's first whitespace token.
	GenusName string `json:"genusName"`

	// FamilyName mirrors FamilyScientificName. The field predates the
	// scientific/Swedish split and is kept so existing artifact consumers
	// keep working.
	FamilyName *string `json:"familyName"`

	// FamilyScientificName is the scientific name of the first ancestor
	// with rank "family", null when the ancestor chain has none.
	FamilyScientificName *string `json:"familyScientificName"`

	// FamilySwedishName is the family's localized common name, null when
	// the family is unknown or has no localized name.
	FamilySwedishName *string `json:"familySwedishName"`

	// Rank is the taxon's rank tag, from enrichment when available and
	// from the counts record otherwise.
	Rank string `json:"rank"`

	// TaxonID is the taxon identifier. Unique within one group's artifact.
	TaxonID int `json:"taxonId"`

	// ObsCount is the ranking metric: the observation count the merger
	// retained for this taxon.
	ObsCount int `json:"obsCount"`

	// ExampleObservation is the attached example record. Never null in an
	// artifact: taxa without one are dropped during assembly.
	ExampleObservation *ExampleObservation `json:"exampleObservation"`
}
