// Package aggregate folds per-test outcomes into worst-case status
// tables keyed by suite token and by function token.
package aggregate

import (
	"github.com/jflowers/xctag/internal/status"
	"github.com/jflowers/xctag/internal/xcresult"
)

// Tables holds the reduced status per suite token and per function
// token. Built once per run and read-only afterwards.
type Tables struct {
	BySuite map[string]status.Status
	ByFunc  map[string]status.Status
}

// Build decomposes every leaf identifier and merges its status into
// the matching table entries. Insertion order is irrelevant: the
// merge is commutative and associative, so any ordering of the same
// leaves produces the same tables. An empty leaf slice yields empty
// tables, which is a valid state the caller must surface separately.
func Build(leaves []xcresult.Leaf) Tables {
	t := Tables{
		BySuite: make(map[string]status.Status),
		ByFunc:  make(map[string]status.Status),
	}
	for _, leaf := range leaves {
		suite, fn := xcresult.Decompose(leaf.Identifier)
		if suite != "" {
			status.MergeInto(t.BySuite, suite, leaf.Status)
		}
		if fn != "" {
			status.MergeInto(t.ByFunc, fn, leaf.Status)
		}
	}
	return t
}
