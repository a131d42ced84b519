package usertests

import (
	"context"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

// T represents a test or subtest in the user API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, with captured debug logging provided by the lower-level
// framework package. To make test assertions, you can use the assert and require packages,
// passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *Environment
	ctx     context.Context
}

func newTestScope(ctx context.Context, c *framework.Context, env *Environment) *T {
	return &T{context: c, env: env, ctx: ctx}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(t.ctx, c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Environment returns the configuration and helpers shared by all tests.
func (t *T) Environment() *Environment {
	return t.env
}

// RunScenario runs a scenario within this test, logging to this test's debug output. If the
// scenario fails, the test fails with a diagnostic describing the request and response.
func (t *T) RunScenario(s Scenario) ScenarioResult {
	result := RunScenario(t.ctx, t.env, s, t.context.DebugLogger())
	if !result.Outcome.OK() {
		t.Errorf("%s", result.Diagnostic())
	}
	return result
}
