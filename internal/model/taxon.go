package model

import "strings"

// TaxonCount is one leaf-taxon count record from the species-counts endpoint,
// normalized at the API boundary. Records the API returned without a taxon id
// or scientific name survive normalization (with zero values) and are
// discarded during the merge fold, not here.
//
// Design decision: Missing-field defaults (0 for counts, "" for names) are
// applied in exactly one place, the inat package's response normalizer,
// instead of get-or-default checks scattered through the pipeline.
type TaxonCount struct {
	// TaxonID is the iNaturalist taxon identifier. Zero means the record
	// is unusable and will be dropped by the merger.
	TaxonID int `json:"taxonId"`

	// ScientificName is the taxon's scientific name, e.g. "Parus major".
	ScientificName string `json:"scientificName"`

	// CommonName is the localized common name. Empty when the API has none
	// for the requested locale.
	CommonName string `json:"commonName,omitempty"`

	// Rank is the taxon's rank tag as reported by the counts endpoint,
	// typically "species". Used as a fallback when enrichment is missing.
	Rank string `json:"rank,omitempty"`

	// Count is the observation count, the ranking metric. Defaults to 0
	// when absent in the response.
	Count int `json:"count"`
}

// GenusName derives the genus from the scientific name by taking the first
// whitespace-delimited token. This is a known approximation kept on purpose:
// it works for binomial species names, which is what the counts endpoint
// returns at leaf rank.
func (t TaxonCount) GenusName() string {
	fields := strings.Fields(t.ScientificName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Ancestor is one entry in a taxon's ordered ancestor chain.
type Ancestor struct {
	// ID is the ancestor's taxon identifier.
	ID int `json:"id"`

	// Rank is the ancestor's rank tag, e.g. "family" or "order".
	Rank string `json:"rank"`

	// Name is the ancestor's scientific name.
	Name string `json:"name"`

	// CommonName is the localized common name, empty when unavailable.
	CommonName string `json:"commonName,omitempty"`
}

// TaxonDetail is the full detail record for one taxon, fetched from the
// batched taxa endpoint. It exists for the duration of one group's pipeline
// run and is discarded afterwards.
type TaxonDetail struct {
	// ID is the taxon identifier.
	ID int `json:"id"`

	// Rank is the taxon's rank tag.
	Rank string `json:"rank"`

	// Ancestors is the ancestor chain in the order the API returned it,
	// from kingdom down towards the taxon itself.
	Ancestors []Ancestor `json:"ancestors"`
}

// AncestorOfRank scans the ancestor chain in returned order and reports the
// first ancestor whose rank tag equals rank. The second return value is false
// when no such ancestor exists; that is a normal outcome, not an error.
func (d TaxonDetail) AncestorOfRank(rank string) (Ancestor, bool) {
	for _, a := range d.Ancestors {
		if a.Rank == rank {
			return a, true
		}
	}
	return Ancestor{}, false
}

// Observation is one observation record from the record-listing endpoint,
// normalized at the API boundary. The example selector picks a photo and
// shapes it into an ExampleObservation.
type Observation struct {
	// ID is the observation identifier.
	ID int `json:"id"`

	// UserLogin is the observer's login name, empty when unattributed.
	UserLogin string `json:"userLogin,omitempty"`

	// Photos are the observation's photos in returned order.
	Photos []Photo `json:"photos"`
}

// Photo is one photo attached to an observation.
type Photo struct {
	// URL is the photo URL as returned by the API, typically pointing at
	// the "square" thumbnail variant.
	URL string `json:"url"`

	// LicenseCode is the photo's license token (e.g. "cc-by"), empty when
	// the photo carries no license.
	LicenseCode string `json:"licenseCode,omitempty"`
}
