// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a test identifier and to accumulate success/failure
// results outside of the Go test runner. Each test captures its own structured debug log,
// which the TestLogger can show when the test finishes (usually only if it failed).
//
// The domain-specific code that knows what is being tested is responsible for talking to the
// service under test and for providing a domain-specific test API on top of the test context.
package framework
