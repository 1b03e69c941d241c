package swiftscan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/tools/txtar"
)

// extractFixture writes a txtar archive out as a file tree under a
// fresh temp dir and returns the root.
func extractFixture(t *testing.T, archive string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const projectFixture = `
-- AppTests/LoginSuiteTests.swift --
import Testing

@Suite struct LoginSuite {
    @Test func login() {}
}
-- AppTests/LegacyTests.swift --
import XCTest

final class LegacyTests: XCTestCase {
    func testOld() {}
}
-- AppTests/Loose.swift --
import Testing

@Test func looseCheck() {}
-- Sources/App.swift --
struct App {}
-- Sources/FlowUITests.swift --
import XCTest

class FlowUITests: XCTestCase {}
`

func TestScan_DiscoversTestFilesOnly(t *testing.T) {
	root := extractFixture(t, projectFixture)

	files, err := Scan(root, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	got := map[string]FileInfo{}
	for _, f := range files {
		got[filepath.ToSlash(f.Path)] = f
	}

	if len(got) != 4 {
		t.Fatalf("got %d files, want 4: %v", len(got), got)
	}
	if _, ok := got["Sources/App.swift"]; ok {
		t.Error("Sources/App.swift is not a test file")
	}

	if suites := got["AppTests/LoginSuiteTests.swift"].Suites; !reflect.DeepEqual(suites, []string{"LoginSuite"}) {
		t.Errorf("LoginSuiteTests suites = %v", suites)
	}
	if classes := got["AppTests/LegacyTests.swift"].Classes; !reflect.DeepEqual(classes, []string{"LegacyTests"}) {
		t.Errorf("LegacyTests classes = %v", classes)
	}
	if funcs := got["AppTests/Loose.swift"].Funcs; !reflect.DeepEqual(funcs, []string{"looseCheck"}) {
		t.Errorf("Loose funcs = %v", funcs)
	}
}

func TestScan_FuncsSuppressedWhenSuiteExists(t *testing.T) {
	root := extractFixture(t, projectFixture)

	files, err := Scan(root, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if filepath.ToSlash(f.Path) == "AppTests/LoginSuiteTests.swift" {
			if len(f.Funcs) != 0 {
				t.Errorf("funcs should be empty when suites exist, got %v", f.Funcs)
			}
		}
	}
}

func TestScan_Exclude(t *testing.T) {
	root := extractFixture(t, projectFixture)

	files, err := Scan(root, ScanOptions{
		Exclude: []string{filepath.FromSlash("AppTests/Loose.swift")},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if filepath.ToSlash(f.Path) == "AppTests/Loose.swift" {
			t.Error("excluded file was scanned")
		}
	}
}

func TestScan_HiddenDirsSkipped(t *testing.T) {
	root := extractFixture(t, `
-- .build/GenTests/Gen.swift --
import XCTest
class GenTests: XCTestCase {}
-- AppTests/Real.swift --
import Testing
@Test func real() {}
`)

	files, err := Scan(root, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.ToSlash(files[0].Path) != "AppTests/Real.swift" {
		t.Errorf("got %v, want only AppTests/Real.swift", files)
	}
}

func TestScan_NoTestFiles(t *testing.T) {
	root := extractFixture(t, `
-- Sources/App.swift --
struct App {}
`)

	_, err := Scan(root, ScanOptions{})
	if !errors.Is(err, ErrNoTestFiles) {
		t.Fatalf("err = %v, want ErrNoTestFiles", err)
	}
}
