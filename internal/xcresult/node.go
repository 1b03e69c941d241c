// Package xcresult reads Xcode result bundles through xcresulttool
// and extracts per-test outcomes from the exported JSON tree.
//
// The bundle format has no stable schema the tool relies on. The only
// structural contract is that any object carrying both an "identifier"
// and a "testStatus" field is a leaf test result; everything else is
// walked blindly and unrecognized shapes are skipped.
package xcresult

import (
	"github.com/jflowers/xctag/internal/status"
)

// Leaf is one (identifier, testStatus) pair found in the tree.
type Leaf struct {
	Identifier string
	Status     status.Status
}

// CollectLeaves walks an arbitrarily nested JSON value depth-first
// and returns every leaf test result it encounters. Traversal
// continues into the children of a leaf, so nested duplicates are
// emitted too; the idempotent status merge makes that harmless.
func CollectLeaves(node any) []Leaf {
	var out []Leaf
	collect(node, &out)
	return out
}

func collect(node any, out *[]Leaf) {
	switch v := node.(type) {
	case map[string]any:
		id, hasID := v["identifier"]
		st, hasStatus := v["testStatus"]
		if hasID && hasStatus {
			ids, idOK := unwrapString(id)
			sts, stOK := unwrapString(st)
			if idOK && stOK {
				*out = append(*out, Leaf{
					Identifier: ids,
					Status:     status.Parse(sts),
				})
			}
		}
		for _, child := range v {
			collect(child, out)
		}
	case []any:
		for _, child := range v {
			collect(child, out)
		}
	}
}

// unwrapString returns the string form of a field that is either a
// bare string or wrapped one level deep in a {"_value": ...}
// container, as xcresulttool's legacy JSON export does.
func unwrapString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if m, ok := v.(map[string]any); ok {
		if s, ok := m["_value"].(string); ok {
			return s, true
		}
	}
	return "", false
}
