package xcresult

import "strings"

// Decompose splits a test identifier into its suite and function
// tokens. The runner emits three shapes:
//
//	"MyModule.MySuite/testFoo()" -> ("MySuite", "testFoo")
//	"MySuite/testFoo()"          -> ("MySuite", "testFoo")
//	"testFoo()"                  -> ("", "testFoo")
//
// Anything else — a bare name with no slash and no parameter list —
// yields neither token. An identifier with several slashes splits on
// the first one only; the function token is whatever precedes the
// first "(" in the remainder.
func Decompose(identifier string) (suite, fn string) {
	left, right, found := strings.Cut(identifier, "/")
	if found {
		suite = left
		if i := strings.LastIndex(left, "."); i >= 0 {
			suite = left[i+1:]
		}
		fn, _, _ = strings.Cut(right, "(")
		return suite, fn
	}

	// No slash: only a call-shaped name counts, as a bare function.
	name, _, hasParen := strings.Cut(left, "(")
	if hasParen && name != "" {
		return "", name
	}
	return "", ""
}
