package usertests

import (
	"context"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

// RunTestSuite runs every scenario in the registry, in order, one at a time.
func RunTestSuite(
	ctx context.Context,
	env *Environment,
	registry *Registry,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(ctx, c, env)

		for _, s := range registry.Scenarios() {
			s := s
			t.Run(s.Name, func(t *T) {
				t.RunScenario(s)
			})
		}
	})
}
