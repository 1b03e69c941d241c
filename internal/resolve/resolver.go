// Package resolve attributes one classification to each Swift test
// file by matching its candidate tokens against the aggregated
// status tables.
//
// Strategies run in confidence order: suite and class tokens are
// unambiguous within a file, so they are tried first; function-name
// matching is a fallback and is downgraded to Unknown outright when
// the name is shared between files, because guessing would silently
// misattribute a result.
package resolve

import (
	"sort"

	"github.com/jflowers/xctag/internal/aggregate"
	"github.com/jflowers/xctag/internal/status"
	"github.com/jflowers/xctag/internal/swiftscan"
)

// Class is the per-file classification.
type Class string

// The three possible classifications. There is never a fourth.
const (
	Passed  Class = "Passed"
	Failed  Class = "Failed"
	Unknown Class = "Unknown"
)

// Strategy tags the resolution path that produced a classification.
type Strategy string

// Strategy tags, in the order the resolver tries them.
const (
	StrategySuite         Strategy = "suite"
	StrategyXCTest        Strategy = "xctest"
	StrategySuiteXCTest   Strategy = "suite+xctest"
	StrategyFuncUnique    Strategy = "func-unique"
	StrategyFuncCollision Strategy = "func-collision"
	StrategyNone          Strategy = "none"
)

// Result is the attribution outcome for one file.
type Result struct {
	// File is the scanned file this result belongs to.
	File swiftscan.FileInfo

	// Class is the attributed classification.
	Class Class

	// Strategy names the resolution path that was used.
	Strategy Strategy

	// Statuses lists the distinct statuses that fed the
	// classification, worst first. Empty for collision and no-match
	// outcomes.
	Statuses []status.Status
}

// Summary tallies classifications across all files.
type Summary struct {
	Failed  int `json:"failed"`
	Passed  int `json:"passed"`
	Unknown int `json:"unknown"`
}

// Add counts one result.
func (s *Summary) Add(c Class) {
	switch c {
	case Failed:
		s.Failed++
	case Passed:
		s.Passed++
	default:
		s.Unknown++
	}
}

// Resolve classifies every scanned file against the tables. The
// collision index is built over all files before any file is
// resolved, so attribution order cannot affect the outcome.
func Resolve(files []swiftscan.FileInfo, tables aggregate.Tables) []Result {
	index := funcIndex(files)

	results := make([]Result, 0, len(files))
	for _, f := range files {
		results = append(results, resolveOne(f, tables, index))
	}
	return results
}

// Summarize tallies the classification counts of results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Add(r.Class)
	}
	return s
}

// funcIndex maps each function candidate name to how many files
// declare it. Collisions are detected only within the
// function-candidate namespace; a function name that happens to match
// a suite token elsewhere is not a collision.
func funcIndex(files []swiftscan.FileInfo) map[string]int {
	index := make(map[string]int)
	for _, f := range files {
		seen := make(map[string]bool, len(f.Funcs))
		for _, fn := range f.Funcs {
			if seen[fn] {
				continue // duplicates within one file are harmless
			}
			seen[fn] = true
			index[fn]++
		}
	}
	return index
}

// outcome is what one strategy produced for a file.
type outcome struct {
	strategy Strategy
	statuses []status.Status

	// final short-circuits the chain regardless of statuses; used by
	// the collision path, which must not fall through to a guess.
	final bool
}

// strategyFunc is one attribution strategy. It reports whether it
// applied to the file at all; a strategy that applied but collected
// nothing still stamps its tag before the chain moves on.
type strategyFunc func(f swiftscan.FileInfo, tables aggregate.Tables, index map[string]int) (outcome, bool)

// strategies run in confidence order until one yields statuses or a
// final outcome.
var strategies = []strategyFunc{suiteClassStrategy, uniqueFuncStrategy}

func resolveOne(f swiftscan.FileInfo, tables aggregate.Tables, index map[string]int) Result {
	res := Result{File: f, Strategy: StrategyNone}

	for _, strategy := range strategies {
		out, applied := strategy(f, tables, index)
		if !applied {
			continue
		}
		res.Strategy = out.strategy
		res.Statuses = out.statuses
		if out.final || len(out.statuses) > 0 {
			break
		}
	}

	res.Class = Classify(res.Statuses)
	return res
}

// suiteClassStrategy matches @Suite and XCTestCase tokens against the
// suite table. Applies whenever the file declares either kind.
func suiteClassStrategy(f swiftscan.FileInfo, tables aggregate.Tables, _ map[string]int) (outcome, bool) {
	if len(f.Suites) == 0 && len(f.Classes) == 0 {
		return outcome{}, false
	}

	tag := StrategyXCTest
	switch {
	case len(f.Classes) == 0:
		tag = StrategySuite
	case len(f.Suites) > 0:
		tag = StrategySuiteXCTest
	}

	tokens := append(append([]string{}, f.Suites...), f.Classes...)
	return outcome{
		strategy: tag,
		statuses: collectStatuses(tables.BySuite, tokens),
	}, true
}

// uniqueFuncStrategy matches @Test function tokens against the
// function table, but only when every candidate name is unique to
// this file; a shared name makes attribution ambiguous and the file
// is pinned to Unknown instead.
func uniqueFuncStrategy(f swiftscan.FileInfo, tables aggregate.Tables, index map[string]int) (outcome, bool) {
	if len(f.Funcs) == 0 {
		return outcome{}, false
	}
	for _, fn := range f.Funcs {
		if index[fn] > 1 {
			return outcome{strategy: StrategyFuncCollision, final: true}, true
		}
	}
	return outcome{
		strategy: StrategyFuncUnique,
		statuses: collectStatuses(tables.ByFunc, f.Funcs),
	}, true
}

// collectStatuses looks up each token and returns the distinct
// statuses found, worst first.
func collectStatuses(table map[string]status.Status, tokens []string) []status.Status {
	seen := make(map[status.Status]bool)
	var out []status.Status
	for _, t := range tokens {
		if st, ok := table[t]; ok && !seen[st] {
			seen[st] = true
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Classify maps a collected status set to a file classification:
// any Failure means Failed; otherwise any Success or Expected
// Failure means Passed; everything else — all Skipped, or an empty
// set — is Unknown.
func Classify(statuses []status.Status) Class {
	for _, s := range statuses {
		if s == status.Failure {
			return Failed
		}
	}
	for _, s := range statuses {
		if s == status.Success || s == status.ExpectedFailure {
			return Passed
		}
	}
	return Unknown
}
