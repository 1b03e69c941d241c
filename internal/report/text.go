package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jflowers/xctag/internal/resolve"
	"github.com/jflowers/xctag/internal/swiftscan"
)

// WriteText writes attribution results as human-readable styled text
// to the writer. Output uses lipgloss for color and formatting when
// the output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, results []resolve.Result) error {
	s := DefaultStyles()

	// Budget: 100 cols. Borders and padding take ~10.
	// CLASS=7, STRATEGY=14, remainder for the path.
	const maxPath = 48
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		path := r.File.Path
		if len(path) > maxPath {
			path = "..." + path[len(path)-maxPath+3:]
		}
		rows = append(rows, []string{
			string(r.Class),
			string(r.Strategy),
			path,
			strings.Join(tokensOf(r), ", "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return s.ClassStyle(rows[row][0])
			}
			return s.TableCell
		}).
		Headers("CLASS", "STRATEGY", "FILE", "TOKENS").
		Rows(rows...)

	fmt.Fprintln(w, t)

	return WriteSummary(w, resolve.Summarize(results))
}

// WriteSummary writes the trailing per-classification tally.
func WriteSummary(w io.Writer, sum resolve.Summary) error {
	s := DefaultStyles()

	fmt.Fprintf(w, "\n%s\n", s.Header.Render("Summary:"))
	for _, line := range []struct {
		label string
		count int
	}{
		{"Failed", sum.Failed},
		{"Passed", sum.Passed},
		{"Unknown", sum.Unknown},
	} {
		fmt.Fprintf(w, "  %s %d\n",
			s.SummaryLabel.Render(line.label+":"), line.count)
	}
	return nil
}

// WriteScan writes the output of the scan subcommand: the discovered
// test files and their candidate tokens, with no attribution.
func WriteScan(w io.Writer, files []swiftscan.FileInfo) error {
	s := DefaultStyles()

	for _, f := range files {
		fmt.Fprintln(w, s.Header.Render(f.Path))
		if len(f.Suites) > 0 {
			fmt.Fprintf(w, "  suites:  %s\n", strings.Join(f.Suites, ", "))
		}
		if len(f.Classes) > 0 {
			fmt.Fprintf(w, "  classes: %s\n", strings.Join(f.Classes, ", "))
		}
		if len(f.Funcs) > 0 {
			fmt.Fprintf(w, "  funcs:   %s\n", strings.Join(f.Funcs, ", "))
		}
		if len(f.Suites) == 0 && len(f.Classes) == 0 && len(f.Funcs) == 0 {
			fmt.Fprintln(w, s.Muted.Render("  no candidates"))
		}
	}

	fmt.Fprintf(w, "\n%s\n", s.SubHeader.Render(
		fmt.Sprintf("%d test file(s) discovered", len(files))))
	return nil
}
