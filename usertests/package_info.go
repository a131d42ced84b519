// Package usertests contains the contract tests for the user-management API and their
// supporting API.
//
// Each test is a Scenario: generate a payload, build and send one request, then validate the
// response against expectations derived from that same payload. Scenarios are registered by
// name in a Registry and run as subtests of the lower-level framework package's test context.
package usertests
