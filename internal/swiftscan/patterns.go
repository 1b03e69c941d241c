package swiftscan

import "regexp"

// The scanner is a plain pattern matcher, not a Swift parser. The
// patterns mirror the shapes that matter for attribution: Swift
// Testing @Suite types, XCTestCase subclasses, and @Test functions.
var (
	suitePat = regexp.MustCompile(
		`@Suite\b[^\n]*?(?:\n[ \t]*)?` +
			`(?:final\s+|public\s+|open\s+|internal\s+|fileprivate\s+|private\s+)?` +
			`(?:class|struct|enum|actor)\s+([A-Za-z_]\w*)\b`)

	testFuncPat = regexp.MustCompile(
		`@Test\b[^\n]*?(?:\n[ \t]*)?` +
			`(?:final\s+|public\s+|open\s+|internal\s+|fileprivate\s+|private\s+)?` +
			`func\s+([A-Za-z_]\w*)\s*\(`)

	xcTestCasePat = regexp.MustCompile(
		`(?m)^\s*(?:final\s+|public\s+|open\s+|internal\s+|fileprivate\s+|private\s+)?` +
			`class\s+([A-Za-z_]\w*)\s*:\s*XCTestCase\b`)
)

// Suites returns the names of @Suite-annotated types in file order.
func Suites(src string) []string {
	return firstGroups(suitePat, src)
}

// XCTestClasses returns the names of XCTestCase subclasses in file order.
func XCTestClasses(src string) []string {
	return firstGroups(xcTestCasePat, src)
}

// TestFuncs returns the names of @Test-annotated functions in file
// order. Best effort: it may also catch methods inside types, so
// callers only use it for files without suites or classes.
func TestFuncs(src string) []string {
	return firstGroups(testFuncPat, src)
}

func firstGroups(re *regexp.Regexp, src string) []string {
	var names []string
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		names = append(names, m[1])
	}
	return names
}
