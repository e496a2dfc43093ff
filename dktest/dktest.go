// Package dktest holds shared test support for source implementations:
// a conformance suite driven through SourceTester and an in-memory
// TriggerSource for exercising reload paths.
package dktest

// testT is the subset of *testing.T the assertion helpers touch.
type testT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// require stops the test when cond does not hold.
func require(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// requireNoError stops the test on a non-nil err.
func requireNoError(t testT, err error, format string, args ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf(format, args...)
	}
}

// check records a failure without stopping the test.
func check(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}
