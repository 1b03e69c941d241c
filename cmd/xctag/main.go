package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/jflowers/xctag/internal/aggregate"
	"github.com/jflowers/xctag/internal/config"
	"github.com/jflowers/xctag/internal/report"
	"github.com/jflowers/xctag/internal/resolve"
	"github.com/jflowers/xctag/internal/swiftscan"
	"github.com/jflowers/xctag/internal/tag"
	"github.com/jflowers/xctag/internal/xcresult"
	"github.com/jflowers/xctag/pkg/xctag"
	"github.com/spf13/cobra"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

// reportVersion is the JSON report schema version.
const reportVersion = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "xctag",
		Short: "xctag — tag Swift test files from .xcresult statuses",
		Long: `xctag reads an Xcode .xcresult bundle, attributes a worst-case
test status to each Swift test file in the project (Swift Testing
@Suite/@Test and XCTest), and labels the files with Finder tags.`,
		Version: version,
	}

	root.AddCommand(newTagCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps the distinct empty-result conditions to their
// dedicated exit codes; everything else is a plain failure.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, xcresult.ErrNoTestRefs):
		return xctag.ExitNoTestRefs
	case errors.Is(err, xcresult.ErrNoStatusNodes):
		return xctag.ExitNoStatusNodes
	case errors.Is(err, swiftscan.ErrNoTestFiles):
		return xctag.ExitNoTestFiles
	default:
		return xctag.ExitFailure
	}
}

// tagParams holds the parsed flags for the tag command.
type tagParams struct {
	bundlePath  string
	root        string
	configPath  string
	format      string
	dryRun      bool
	interactive bool

	// Tag name overrides; empty means use the config value.
	passedTag  string
	failedTag  string
	unknownTag string

	runner xcresult.ToolRunner
	store  tag.Store
	stdout io.Writer
	stderr io.Writer
}

// runTag is the extracted, testable body of the tag command.
func runTag(ctx context.Context, p tagParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}
	tags := tagNames(cfg, p)

	logger.Info("reading result bundle", "bundle", p.bundlePath)
	leaves, err := xcresult.Load(ctx, p.runner, p.bundlePath)
	if err != nil {
		return err
	}
	logger.Info("collected test outcomes", "count", len(leaves))

	tables := aggregate.Build(leaves)

	files, err := swiftscan.Scan(p.root, swiftscan.ScanOptions{
		Exclude: cfg.Scan.Exclude,
	})
	if err != nil {
		if errors.Is(err, swiftscan.ErrNoTestFiles) {
			return fmt.Errorf("%w under %s", swiftscan.ErrNoTestFiles, p.root)
		}
		return err
	}
	logger.Info("scanned test files", "files", len(files))

	results := resolve.Resolve(files, tables)

	if !p.dryRun {
		// Per-file actions go to stderr in JSON mode so the report
		// stays machine-readable.
		actionLog := p.stdout
		if p.format == "json" {
			actionLog = p.stderr
		}
		if err := applyTags(actionLog, p, tags, results); err != nil {
			return err
		}
	}

	if p.interactive {
		return runInteractiveResults(results)
	}

	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, results, reportVersion)
	default:
		if p.dryRun {
			writePreview(p.stdout, results)
		}
		return report.WriteText(p.stdout, results)
	}
}

// loadConfig resolves the effective configuration: an explicit
// --config path must exist; otherwise .xctag.yaml in the scan root
// is used when present.
func loadConfig(p tagParams) (*config.Config, error) {
	if p.configPath != "" {
		return config.Load(p.configPath)
	}
	return config.LoadOrDefault(filepath.Join(p.root, config.DefaultFileName))
}

// tagNames applies flag overrides on top of the config's tag names.
func tagNames(cfg *config.Config, p tagParams) config.TagNames {
	tags := cfg.Tags
	if p.passedTag != "" {
		tags.Passed = p.passedTag
	}
	if p.failedTag != "" {
		tags.Failed = p.failedTag
	}
	if p.unknownTag != "" {
		tags.Unknown = p.unknownTag
	}
	return tags
}

// applyTags writes one Finder tag per file and echoes each action.
func applyTags(w io.Writer, p tagParams, tags config.TagNames, results []resolve.Result) error {
	for _, r := range results {
		name := tags.Unknown
		switch r.Class {
		case resolve.Passed:
			name = tags.Passed
		case resolve.Failed:
			name = tags.Failed
		}

		path := filepath.Join(p.root, r.File.Path)
		if err := p.store.Add(path, name); err != nil {
			return err
		}
		fmt.Fprintf(w, "Tagged %s -> %s   [strategy=%s]\n",
			r.File.Path, name, r.Strategy)
	}
	return nil
}

// writePreview prints the would-be action per file in dry-run mode.
func writePreview(w io.Writer, results []resolve.Result) {
	for _, r := range results {
		tokens := ""
		if f := r.File; len(f.Suites)+len(f.Classes)+len(f.Funcs) > 0 {
			all := append(append(append([]string{}, f.Suites...), f.Classes...), f.Funcs...)
			tokens = strings.Join(all, ", ")
		}
		fmt.Fprintf(w, "%-7s  %s   [strategy=%s; tokens=%s]\n",
			r.Class, r.File.Path, r.Strategy, tokens)
	}
	fmt.Fprintln(w)
}

func newTagCmd() *cobra.Command {
	var (
		root        string
		configPath  string
		format      string
		dryRun      bool
		interactive bool
		passedTag   string
		failedTag   string
		unknownTag  string
	)

	cmd := &cobra.Command{
		Use:   "tag [xcresult]",
		Short: "Attribute statuses to Swift test files and tag them",
		Long: `Read a .xcresult bundle, reduce each suite and test function to
its worst-case status, classify every Swift test file under the
project root as Passed, Failed, or Unknown, and write the matching
Finder tag onto each file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd.Context(), tagParams{
				bundlePath:  args[0],
				root:        root,
				configPath:  configPath,
				format:      format,
				dryRun:      dryRun,
				interactive: interactive,
				passedTag:   passedTag,
				failedTag:   failedTag,
				unknownTag:  unknownTag,
				runner:      xcresult.XCRun{},
				store:       tag.FinderStore{},
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&root, "root", ".",
		"project root to search for Swift test files")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: <root>/.xctag.yaml if present)")
	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"preview actions; do not write Finder tags")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")
	cmd.Flags().StringVar(&passedTag, "passed-tag", "",
		"Finder tag for passed files (default: TestPassed)")
	cmd.Flags().StringVar(&failedTag, "failed-tag", "",
		"Finder tag for failed files (default: TestFailed)")
	cmd.Flags().StringVar(&unknownTag, "unknown-tag", "",
		"Finder tag for unknown files (default: TestUnknown)")

	return cmd
}

// scanParams holds the parsed flags for the scan command.
type scanParams struct {
	root   string
	format string
	stdout io.Writer
}

// runScan is the extracted, testable body of the scan command.
func runScan(p scanParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	files, err := swiftscan.Scan(p.root, swiftscan.ScanOptions{})
	if err != nil {
		return err
	}

	if p.format == "json" {
		enc := json.NewEncoder(p.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	return report.WriteScan(p.stdout, files)
}

func newScanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List discovered Swift test files and their candidates",
		Long: `Scan a project tree for Swift test files and print the suite,
class, and function candidates each one contributes, without
reading any result bundle.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runScan(scanParams{
				root:   root,
				format: format,
				stdout: os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for xctag report output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of xctag tag --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
