package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// searchCall records one SearchObservations invocation.
type searchCall struct {
	taxonID      int
	regionScoped bool
}

// fakeSearcher serves canned observations per scope and records calls.
type fakeSearcher struct {
	regional map[int][]model.Observation
	global   map[int][]model.Observation
	err      error
	calls    []searchCall
}

func (f *fakeSearcher) SearchObservations(_ context.Context, taxonID int, regionScoped bool) ([]model.Observation, error) {
	f.calls = append(f.calls, searchCall{taxonID: taxonID, regionScoped: regionScoped})
	if f.err != nil {
		return nil, f.err
	}
	if regionScoped {
		return f.regional[taxonID], nil
	}
	return f.global[taxonID], nil
}

func photoObs(id int, login string, photos ...model.Photo) model.Observation {
	return model.Observation{ID: id, UserLogin: login, Photos: photos}
}

// TestExampleSelectorFallback tests the region-then-global query order.
func TestExampleSelectorFallback(t *testing.T) {
	t.Parallel()

	t.Run("regional hit needs no fallback", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(100, "naturfan", model.Photo{URL: "p/square.jpg", LicenseCode: "cc-by"})},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example == nil {
			t.Fatal("expected an example")
		}
		if example.ObsID != 100 {
			t.Errorf("ObsID = %d, want 100", example.ObsID)
		}
		if len(searcher.calls) != 1 || !searcher.calls[0].regionScoped {
			t.Errorf("calls = %+v, want single region-scoped call", searcher.calls)
		}
	})

	t.Run("empty regional result falls back to global", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{global: map[int][]model.Observation{
			1: {photoObs(200, "traveller", model.Photo{URL: "p/square.jpg", LicenseCode: "cc0"})},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example == nil || example.ObsID != 200 {
			t.Fatalf("example = %+v, want the global result", example)
		}

		want := []searchCall{{taxonID: 1, regionScoped: true}, {taxonID: 1, regionScoped: false}}
		if len(searcher.calls) != 2 || searcher.calls[0] != want[0] || searcher.calls[1] != want[1] {
			t.Errorf("calls = %+v, want region strictly before global", searcher.calls)
		}
	})

	t.Run("nothing anywhere returns nil without error", func(t *testing.T) {
		t.Parallel()

		s := NewExampleSelector(&fakeSearcher{}, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example != nil {
			t.Errorf("example = %+v, want nil", example)
		}
	})

	t.Run("search error propagates", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("throttled twice")
		s := NewExampleSelector(&fakeSearcher{err: wantErr}, WithSelectorLogger(quietLogger()))

		if _, err := s.Select(context.Background(), 1); !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	})
}

// TestExampleSelectorPhotoPolicy tests license preference and URL shaping.
func TestExampleSelectorPhotoPolicy(t *testing.T) {
	t.Parallel()

	t.Run("prefers allowed license over earlier disallowed photo", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(1, "x",
				model.Photo{URL: "a/square.jpg", LicenseCode: "all-rights-reserved"},
				model.Photo{URL: "b/square.jpg", LicenseCode: "cc-by"},
			)},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example.PhotoURL != "b/large.jpg" {
			t.Errorf("PhotoURL = %q, want the allowed photo normalized to large", example.PhotoURL)
		}
		if example.LicenseCode == nil || *example.LicenseCode != "cc-by" {
			t.Errorf("LicenseCode = %v, want cc-by", example.LicenseCode)
		}
	})

	t.Run("falls back to first photo when no license qualifies", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(1, "x",
				model.Photo{URL: "a/square.jpg", LicenseCode: "all-rights-reserved"},
				model.Photo{URL: "b/square.jpg"},
			)},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example.PhotoURL != "a/large.jpg" {
			t.Errorf("PhotoURL = %q, want first photo despite license", example.PhotoURL)
		}
		if example.LicenseCode == nil || *example.LicenseCode != "all-rights-reserved" {
			t.Errorf("LicenseCode = %v", example.LicenseCode)
		}
	})

	t.Run("unlicensed chosen photo leaves license null", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(1, "x", model.Photo{URL: "a/square.jpg"})},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example.LicenseCode != nil {
			t.Errorf("LicenseCode = %v, want nil", example.LicenseCode)
		}
	})

	t.Run("observation without photos yields nil", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(1, "x")},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example != nil {
			t.Errorf("example = %+v, want nil", example)
		}
	})

	t.Run("missing user becomes the unknown sentinel", func(t *testing.T) {
		t.Parallel()

		searcher := &fakeSearcher{regional: map[int][]model.Observation{
			1: {photoObs(300, "", model.Photo{URL: "a/square.jpg", LicenseCode: "cc0"})},
		}}
		s := NewExampleSelector(searcher, WithSelectorLogger(quietLogger()))

		example, err := s.Select(context.Background(), 1)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if example.Observer != model.UnknownObserver {
			t.Errorf("Observer = %q, want %q", example.Observer, model.UnknownObserver)
		}
		if example.ObsURL != "https://www.inaturalist.org/observations/300" {
			t.Errorf("ObsURL = %q", example.ObsURL)
		}
	})
}
