// Package report provides output formatters for xctag attribution
// results in JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/jflowers/xctag/internal/resolve"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version string          `json:"version"`
	Files   []FileEntry     `json:"files"`
	Summary resolve.Summary `json:"summary"`
}

// FileEntry is the JSON shape of one file's attribution.
type FileEntry struct {
	Path     string   `json:"path"`
	Class    string   `json:"class"`
	Strategy string   `json:"strategy"`
	Tokens   []string `json:"tokens,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
}

// WriteJSON writes attribution results as formatted JSON to the writer.
func WriteJSON(w io.Writer, results []resolve.Result, version string) error {
	files := make([]FileEntry, 0, len(results))
	for _, r := range results {
		statuses := make([]string, 0, len(r.Statuses))
		for _, s := range r.Statuses {
			statuses = append(statuses, s.String())
		}
		files = append(files, FileEntry{
			Path:     r.File.Path,
			Class:    string(r.Class),
			Strategy: string(r.Strategy),
			Tokens:   tokensOf(r),
			Statuses: statuses,
		})
	}

	rpt := JSONReport{
		Version: version,
		Files:   files,
		Summary: resolve.Summarize(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rpt)
}

// tokensOf returns the candidate tokens the file brought to
// resolution: suites and classes when present, otherwise functions.
func tokensOf(r resolve.Result) []string {
	tokens := append(append([]string{}, r.File.Suites...), r.File.Classes...)
	if len(tokens) == 0 {
		tokens = append(tokens, r.File.Funcs...)
	}
	return tokens
}
