package inat

import (
	"github.com/naturkoll/vocabbuild/internal/model"
)

// Wire structures for the three consumed endpoints. Pointers mark the
// sub-objects the API is known to omit; normalization turns every absence
// into the model package's documented defaults.

// speciesCountsResponse is one page of /observations/species_counts.
type speciesCountsResponse struct {
	TotalResults int                  `json:"total_results"`
	Page         int                  `json:"page"`
	PerPage      int                  `json:"per_page"`
	Results      []speciesCountResult `json:"results"`
}

// speciesCountResult is one leaf-taxon count record.
type speciesCountResult struct {
	Count int       `json:"count"`
	Taxon *rawTaxon `json:"taxon"`
}

// rawTaxon is the taxon object embedded in a count record.
type rawTaxon struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Rank                string `json:"rank"`
	PreferredCommonName string `json:"preferred_common_name"`
}

// normalize converts a raw count record into a model.TaxonCount, applying
// missing-field defaults: 0 for counts and ids, "" for names. Records with
// a zero id or empty name survive here and are discarded by the merger.
func (r speciesCountResult) normalize() model.TaxonCount {
	tc := model.TaxonCount{Count: r.Count}
	if tc.Count < 0 {
		tc.Count = 0
	}
	if r.Taxon != nil {
		tc.TaxonID = r.Taxon.ID
		tc.ScientificName = r.Taxon.Name
		tc.CommonName = r.Taxon.PreferredCommonName
		tc.Rank = r.Taxon.Rank
	}
	return tc
}

// taxaResponse is the body of a batched /taxa/{ids} request.
type taxaResponse struct {
	Results []rawTaxonDetail `json:"results"`
}

// rawTaxonDetail is one full taxon record with its ancestor chain.
type rawTaxonDetail struct {
	ID        int           `json:"id"`
	Rank      string        `json:"rank"`
	Ancestors []rawAncestor `json:"ancestors"`
}

// rawAncestor is one entry of the ancestor chain.
type rawAncestor struct {
	ID                  int    `json:"id"`
	Rank                string `json:"rank"`
	Name                string `json:"name"`
	PreferredCommonName string `json:"preferred_common_name"`
}

// normalize converts a raw detail record, preserving ancestor order.
func (r rawTaxonDetail) normalize() model.TaxonDetail {
	d := model.TaxonDetail{
		ID:        r.ID,
		Rank:      r.Rank,
		Ancestors: make([]model.Ancestor, 0, len(r.Ancestors)),
	}
	for _, a := range r.Ancestors {
		d.Ancestors = append(d.Ancestors, model.Ancestor{
			ID:         a.ID,
			Rank:       a.Rank,
			Name:       a.Name,
			CommonName: a.PreferredCommonName,
		})
	}
	return d
}

// observationsResponse is the body of an /observations listing.
type observationsResponse struct {
	TotalResults int              `json:"total_results"`
	Results      []rawObservation `json:"results"`
}

// rawObservation is one observation record.
type rawObservation struct {
	ID     int        `json:"id"`
	User   *rawUser   `json:"user"`
	Photos []rawPhoto `json:"photos"`
}

// rawUser is the attributed user of an observation.
type rawUser struct {
	Login string `json:"login"`
}

// rawPhoto is one photo of an observation.
type rawPhoto struct {
	URL         string `json:"url"`
	LicenseCode string `json:"license_code"`
}

// normalize converts a raw observation, preserving photo order. An absent
// user leaves UserLogin empty; the selector substitutes its sentinel.
func (r rawObservation) normalize() model.Observation {
	o := model.Observation{
		ID:     r.ID,
		Photos: make([]model.Photo, 0, len(r.Photos)),
	}
	if r.User != nil {
		o.UserLogin = r.User.Login
	}
	for _, p := range r.Photos {
		o.Photos = append(o.Photos, model.Photo{URL: p.URL, LicenseCode: p.LicenseCode})
	}
	return o
}
