package xcresult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// Terminal conditions surfaced to the caller. These are distinct,
// user-visible outcomes with their own exit codes, not generic faults.
var (
	// ErrNoTestRefs means the bundle root carried no testsRef ids:
	// the bundle holds no test results at all.
	ErrNoTestRefs = errors.New("no test results found in the bundle (no testsRef)")

	// ErrNoStatusNodes means a test plan was present but the exported
	// trees contained no leaf nodes with a status.
	ErrNoStatusNodes = errors.New("found a test plan but no test nodes with status")
)

// ToolRunner executes xcresulttool and returns its raw JSON output.
// The single production implementation shells out to xcrun; tests
// substitute a stub.
type ToolRunner interface {
	// Get exports the bundle's root object as JSON.
	Get(ctx context.Context, bundlePath string) ([]byte, error)

	// GetID exports the object with the given id as JSON.
	GetID(ctx context.Context, bundlePath, id string) ([]byte, error)
}

// XCRun invokes `xcrun xcresulttool get --legacy` for real bundles.
type XCRun struct{}

func (XCRun) Get(ctx context.Context, bundlePath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "xcrun", "xcresulttool", "get",
		"--legacy", "--path", bundlePath, "--format", "json")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("reading result bundle %q: %w", bundlePath, err)
	}
	return out, nil
}

func (XCRun) GetID(ctx context.Context, bundlePath, id string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "xcrun", "xcresulttool", "get",
		"--legacy", "--path", bundlePath, "--id", id, "--format", "json")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("reading object %q from bundle %q: %w", id, bundlePath, err)
	}
	return out, nil
}

// TestsRefIDs extracts the testsRef object ids from a bundle's root
// object. Each action's actionResult may carry a testsRef whose id is
// either a bare string or a {"_value": ...} container.
func TestsRefIDs(root any) []string {
	var ids []string

	rootMap, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	actions, _ := rootMap["actions"].(map[string]any)
	values, _ := actions["_values"].([]any)
	for _, a := range values {
		action, ok := a.(map[string]any)
		if !ok {
			continue
		}
		result, _ := action["actionResult"].(map[string]any)
		testsRef, ok := result["testsRef"].(map[string]any)
		if !ok {
			continue
		}
		if id, ok := unwrapString(testsRef["id"]); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Load reads a bundle and returns every leaf test outcome it holds.
// It returns ErrNoTestRefs when the bundle carries no test references
// and ErrNoStatusNodes when the referenced trees hold no leaves.
func Load(ctx context.Context, runner ToolRunner, bundlePath string) ([]Leaf, error) {
	raw, err := runner.Get(ctx, bundlePath)
	if err != nil {
		return nil, err
	}
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decoding bundle root: %w", err)
	}

	ids := TestsRefIDs(root)
	if len(ids) == 0 {
		return nil, ErrNoTestRefs
	}

	var leaves []Leaf
	for _, id := range ids {
		raw, err := runner.GetID(ctx, bundlePath, id)
		if err != nil {
			return nil, err
		}
		var tree any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("decoding test tree %q: %w", id, err)
		}
		leaves = append(leaves, CollectLeaves(tree)...)
	}
	if len(leaves) == 0 {
		return nil, ErrNoStatusNodes
	}
	return leaves, nil
}
