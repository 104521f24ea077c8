package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/naturkoll/vocabbuild/internal/model"
)

// timeRounding trims sub-millisecond noise from displayed durations.
const timeRounding = time.Millisecond

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for terminal display and sharing after a build.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteGroup outputs a one-group summary table.
func (w *MarkdownWriter) WriteGroup(report *model.GroupReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("Group: " + report.Group.Label)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Retained", strconv.Itoa(len(report.Ranked))},
			{"Written", strconv.Itoa(report.Written())},
			{"Skipped", strconv.Itoa(report.Skipped)},
			{"Duration", report.Duration().Round(timeRounding).String()},
		},
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteRun outputs the run summary with one table row per group.
func (w *MarkdownWriter) WriteRun(run *model.RunRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Vocabulary Build Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Finished", run.FinishedAt.Format("2006-01-02 15:04:05 MST")},
			{"Groups", strconv.Itoa(len(run.Groups))},
			{"Total entries", strconv.Itoa(run.EntryCount())},
		},
	})
	md.PlainText("")

	w.writeGroupTable(md, run)

	return len(md.String()), md.Build()
}

// writeGroupTable writes the per-group breakdown.
func (w *MarkdownWriter) writeGroupTable(md *markdown.Markdown, run *model.RunRecord) {
	md.H2("Groups")
	md.PlainText("")

	if len(run.Groups) == 0 {
		md.PlainText("No groups were processed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Groups))
	for i, g := range run.Groups {
		rows[i] = []string{
			g.Label,
			strconv.Itoa(g.Retained),
			strconv.Itoa(g.Written),
			strconv.Itoa(g.Skipped),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Group", "Retained", "Written", "Skipped"},
		Rows:   rows,
	})
	md.PlainText("")
}
