package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naturkoll/vocabbuild/internal/model"
)

func strptr(s string) *string {
	return &s
}

// sampleReport builds a one-entry report with Swedish vernacular names.
func sampleReport() *model.GroupReport {
	report := model.NewGroupReport(model.SourceGroup{Label: "birds", TaxonIDs: []int{3}, TopN: 50})
	report.Entries = []model.VocabEntry{
		{
			ScientificName:       "Cyanistes caeruleus",
			SwedishName:          strptr("blåmes"),
			GenusName:            "Cyanistes",
			FamilyName:           strptr("Paridae"),
			FamilyScientificName: strptr("Paridae"),
			FamilySwedishName:    strptr("mesar"),
			Rank:                 "species",
			TaxonID:              13732,
			ObsCount:             10421,
			ExampleObservation: &model.ExampleObservation{
				ObsID:       987,
				PhotoURL:    "https://example.org/photos/1/large.jpg",
				Observer:    "naturfan",
				LicenseCode: strptr("cc-by"),
				ObsURL:      "https://www.inaturalist.org/observations/987",
			},
		},
	}
	return report
}

// TestJSONWriterWriteGroup tests artifact encoding guarantees.
func TestJSONWriterWriteGroup(t *testing.T) {
	t.Parallel()

	t.Run("preserves non-ASCII literally with stable indentation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.WriteGroup(sampleReport())
		if err != nil {
			t.Fatalf("WriteGroup() error = %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, buffer has %d", n, buf.Len())
		}

		out := buf.String()
		if !strings.Contains(out, `"blåmes"`) {
			t.Errorf("Swedish name was escaped:\n%s", out)
		}
		if strings.Contains(out, `\u`) {
			t.Errorf("output contains escape sequences:\n%s", out)
		}
		if !strings.Contains(out, "\n  {") {
			t.Errorf("output is not two-space indented:\n%s", out)
		}
		if !strings.HasSuffix(out, "\n") {
			t.Error("output lacks trailing newline")
		}
		if !strings.Contains(out, `"taxonId": 13732`) {
			t.Errorf("missing taxonId field:\n%s", out)
		}
	})

	t.Run("empty group encodes as empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		report := model.NewGroupReport(model.SourceGroup{Label: "birds"})
		report.Entries = nil

		if _, err := w.WriteGroup(report); err != nil {
			t.Fatalf("WriteGroup() error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("output = %q, want []", got)
		}
	})

	t.Run("absent names encode as null", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		report := model.NewGroupReport(model.SourceGroup{Label: "fungi"})
		report.Entries = []model.VocabEntry{{
			ScientificName: "Amanita muscaria",
			GenusName:      "Amanita",
			Rank:           "species",
			TaxonID:        48715,
			ObsCount:       12,
		}}

		if _, err := w.WriteGroup(report); err != nil {
			t.Fatalf("WriteGroup() error = %v", err)
		}
		out := buf.String()
		for _, field := range []string{"swedishName", "familyName", "familyScientificName", "familySwedishName"} {
			if !strings.Contains(out, `"`+field+`": null`) {
				t.Errorf("field %q is not null:\n%s", field, out)
			}
		}
	})
}

// TestMarkdownWriterWriteRun tests the run summary table.
func TestMarkdownWriterWriteRun(t *testing.T) {
	t.Parallel()

	run := &model.RunRecord{
		StartedAt:  time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 28, 10, 5, 0, 0, time.UTC),
		Groups: []model.GroupRunRecord{
			{Label: "birds", Retained: 50, Written: 48, Skipped: 2},
			{Label: "mosses", Retained: 35, Written: 35, Skipped: 0},
		},
	}

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	n, err := w.WriteRun(run)
	if err != nil {
		t.Fatalf("WriteRun() error = %v", err)
	}
	if n == 0 {
		t.Error("WriteRun() reported zero bytes")
	}

	out := buf.String()
	for _, want := range []string{"# Vocabulary Build Summary", "birds", "mosses", "48", "Total entries", "83"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// errWriter always fails.
type errWriter struct{}

func (errWriter) WriteGroup(*model.GroupReport) (int, error) {
	return 0, errors.New("sink closed")
}

func (errWriter) WriteRun(*model.RunRecord) (int, error) {
	return 0, errors.New("sink closed")
}

// TestMultiWriter tests fan-out and first-error behavior.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		m := NewMultiWriter(NewJSONWriter(&a), NewJSONWriter(&b))

		if _, err := m.WriteGroup(sampleReport()); err != nil {
			t.Fatalf("WriteGroup() error = %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Errorf("writer outputs = %d, %d bytes; want both non-empty", a.Len(), b.Len())
		}
		if a.String() != b.String() {
			t.Error("writers received different output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		m := NewMultiWriter(errWriter{}, NewJSONWriter(&after))

		if _, err := m.WriteGroup(sampleReport()); err == nil {
			t.Fatal("expected an error")
		}
		if after.Len() != 0 {
			t.Errorf("writer after the failure received %d bytes", after.Len())
		}
	})
}

// TestArtifactPath tests the artifact naming scheme.
func TestArtifactPath(t *testing.T) {
	t.Parallel()

	got := ArtifactPath("data", "birds", "sweden")
	want := filepath.Join("data", "birds_genera_sweden.json")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}
}

// TestCreateFile tests directory creation and file writing.
func TestCreateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := ArtifactPath(filepath.Join(dir, "out"), "birds", "sweden")

	f, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}

	if _, err := NewJSONWriter(f).WriteGroup(sampleReport()); err != nil {
		t.Fatalf("WriteGroup() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "blåmes") {
		t.Errorf("artifact on disk lost the literal name:\n%s", data)
	}
}
