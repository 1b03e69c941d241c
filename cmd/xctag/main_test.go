package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jflowers/xctag/internal/swiftscan"
	"github.com/jflowers/xctag/internal/xcresult"
	"github.com/jflowers/xctag/pkg/xctag"
)

// stubRunner serves canned xcresulttool JSON.
type stubRunner struct {
	root string
	byID map[string]string
}

func (s stubRunner) Get(context.Context, string) ([]byte, error) {
	return []byte(s.root), nil
}

func (s stubRunner) GetID(_ context.Context, _ string, id string) ([]byte, error) {
	body, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("stub: unknown id %q", id)
	}
	return []byte(body), nil
}

// memStore records Finder tag writes instead of touching xattrs.
type memStore struct {
	tags map[string][]string
}

func newMemStore() *memStore {
	return &memStore{tags: map[string][]string{}}
}

func (m *memStore) Add(path, tag string) error {
	m.tags[path] = append(m.tags[path], tag)
	return nil
}

// fixtureProject writes a small Swift project and returns its root.
func fixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"AppTests/LoginTests.swift": `
import Testing

@Suite struct LoginSuite {
    @Test func login() {}
}
`,
		"AppTests/Loose.swift": `
import Testing

@Test func looseCheck() {}
`,
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func fixtureRunner() stubRunner {
	return stubRunner{
		root: `{"actions": {"_values": [{"actionResult": {"testsRef": {"id": {"_value": "ref-1"}}}}]}}`,
		byID: map[string]string{
			"ref-1": `{"tests": [
				{"identifier": "LoginSuite/login()", "testStatus": "Failure"},
				{"identifier": "looseCheck()", "testStatus": "Success"}
			]}`,
		},
	}
}

func baseParams(t *testing.T, root string) tagParams {
	t.Helper()
	return tagParams{
		bundlePath: "TestRun.xcresult",
		root:       root,
		format:     "text",
		runner:     fixtureRunner(),
		store:      newMemStore(),
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
	}
}

func TestRunTag_TagsFiles(t *testing.T) {
	root := fixtureProject(t)
	store := newMemStore()
	p := baseParams(t, root)
	p.store = store

	if err := runTag(context.Background(), p); err != nil {
		t.Fatalf("runTag() error: %v", err)
	}

	loginPath := filepath.Join(root, "AppTests", "LoginTests.swift")
	loosePath := filepath.Join(root, "AppTests", "Loose.swift")

	if got := store.tags[loginPath]; len(got) != 1 || got[0] != "TestFailed" {
		t.Errorf("LoginTests tags = %v, want [TestFailed]", got)
	}
	if got := store.tags[loosePath]; len(got) != 1 || got[0] != "TestPassed" {
		t.Errorf("Loose tags = %v, want [TestPassed]", got)
	}
}

func TestRunTag_DryRunWritesNothing(t *testing.T) {
	root := fixtureProject(t)
	store := newMemStore()
	var out bytes.Buffer
	p := baseParams(t, root)
	p.store = store
	p.stdout = &out
	p.dryRun = true

	if err := runTag(context.Background(), p); err != nil {
		t.Fatalf("runTag() error: %v", err)
	}

	if len(store.tags) != 0 {
		t.Errorf("dry run wrote tags: %v", store.tags)
	}
	if !strings.Contains(out.String(), "strategy=suite") {
		t.Errorf("preview missing strategy tag:\n%s", out.String())
	}
}

func TestRunTag_TagNameOverrides(t *testing.T) {
	root := fixtureProject(t)
	store := newMemStore()
	p := baseParams(t, root)
	p.store = store
	p.failedTag = "Broken"

	if err := runTag(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	loginPath := filepath.Join(root, "AppTests", "LoginTests.swift")
	if got := store.tags[loginPath]; len(got) != 1 || got[0] != "Broken" {
		t.Errorf("tags = %v, want [Broken]", got)
	}
}

func TestRunTag_ConfigFileTagNames(t *testing.T) {
	root := fixtureProject(t)
	cfgBody := "tags:\n  passed: \"Green\"\n"
	if err := os.WriteFile(filepath.Join(root, ".xctag.yaml"), []byte(cfgBody), 0o644); err != nil {
		t.Fatal(err)
	}

	store := newMemStore()
	p := baseParams(t, root)
	p.store = store

	if err := runTag(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	loosePath := filepath.Join(root, "AppTests", "Loose.swift")
	if got := store.tags[loosePath]; len(got) != 1 || got[0] != "Green" {
		t.Errorf("tags = %v, want [Green]", got)
	}
}

func TestRunTag_JSONFormat(t *testing.T) {
	root := fixtureProject(t)
	var out bytes.Buffer
	p := baseParams(t, root)
	p.stdout = &out
	p.format = "json"
	p.dryRun = true

	if err := runTag(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
		t.Fatalf("JSON output invalid: %v\n%s", err, out.String())
	}
}

func TestRunTag_InvalidFormat(t *testing.T) {
	p := baseParams(t, t.TempDir())
	p.format = "xml"
	if err := runTag(context.Background(), p); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestRunTag_NoTestFiles(t *testing.T) {
	p := baseParams(t, t.TempDir())
	err := runTag(context.Background(), p)
	if !errors.Is(err, swiftscan.ErrNoTestFiles) {
		t.Fatalf("err = %v, want ErrNoTestFiles", err)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{xcresult.ErrNoTestRefs, xctag.ExitNoTestRefs},
		{xcresult.ErrNoStatusNodes, xctag.ExitNoStatusNodes},
		{swiftscan.ErrNoTestFiles, xctag.ExitNoTestFiles},
		{fmt.Errorf("wrapped: %w", xcresult.ErrNoTestRefs), xctag.ExitNoTestRefs},
		{errors.New("anything else"), xctag.ExitFailure},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRunScan_ListsFiles(t *testing.T) {
	root := fixtureProject(t)
	var out bytes.Buffer

	if err := runScan(scanParams{root: root, format: "text", stdout: &out}); err != nil {
		t.Fatalf("runScan() error: %v", err)
	}
	for _, want := range []string{"LoginSuite", "looseCheck", "2 test file(s)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("scan output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunScan_JSON(t *testing.T) {
	root := fixtureProject(t)
	var out bytes.Buffer

	if err := runScan(scanParams{root: root, format: "json", stdout: &out}); err != nil {
		t.Fatal(err)
	}
	var files []swiftscan.FileInfo
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("JSON output invalid: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}
