package usertests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/launchdarkly/rest-contract-tests/client"
	"github.com/launchdarkly/rest-contract-tests/credentials"
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/userdata"
	"github.com/launchdarkly/rest-contract-tests/validate"
)

// Scenario is one independent test case.
//
// Expect receives the payload that Generate produced, so that the expected values are always
// the ones that were actually sent.
type Scenario struct {
	Name     string
	Generate func(*userdata.Generator) userdata.Payload
	Expect   func(userdata.Payload) validate.Expectations
}

// ScenarioResult is the outcome of running a Scenario. Request and Response are nil if the
// scenario did not get that far.
type ScenarioResult struct {
	Name     string
	Outcome  validate.Outcome
	Elapsed  time.Duration
	Payload  userdata.Payload
	Request  *client.Request
	Response *client.Response
	Log      framework.CapturedOutput
}

// RunScenario generates a payload, sends the request once, and validates the response.
// Events are logged to sink, and the captured log is attached to the result; if sink is nil,
// a new one is used.
func RunScenario(ctx context.Context, env *Environment, s Scenario, sink *framework.CapturingLogger) ScenarioResult {
	if sink == nil {
		sink = new(framework.CapturingLogger)
	}
	log := sink.Logger().With().Str("scenario", s.Name).Logger()
	start := time.Now()
	result := ScenarioResult{Name: s.Name}
	finish := func(outcome validate.Outcome) ScenarioResult {
		result.Outcome = outcome
		result.Elapsed = time.Since(start)
		if outcome.OK() {
			log.Info().Dur("elapsed", result.Elapsed).Msg("passed")
		} else {
			log.Error().Str("reason", string(outcome.Reason)).Dur("elapsed", result.Elapsed).Msg(outcome.Message)
		}
		result.Log = sink.Output()
		return result
	}

	payload := s.Generate(env.Generator)
	result.Payload = payload
	log.Debug().Stringer("payload", payload).Msg("generated payload")

	req, err := client.BuildCreateUserRequest(env.Config, payload)
	if err != nil {
		return finish(validate.Fail(validate.ReasonSerializationError, err.Error()))
	}
	result.Request = req
	log.Debug().Str("method", req.Method).Str("url", req.URL).Msg("sending request")

	resp, err := env.Client.Do(ctx, req)
	if err != nil {
		return finish(validate.Fail(validate.ReasonTransportError, err.Error()))
	}
	result.Response = resp
	log.Debug().Int("status", resp.StatusCode()).Dur("response_time", resp.Elapsed()).
		Int("body_bytes", len(resp.Body())).Msg("received response")

	return finish(env.Validator.Validate(resp, s.Expect(payload)))
}

// Diagnostic describes a failed result in enough detail to reproduce it by hand: what failed,
// the request that was sent, and the response that came back.
func (r ScenarioResult) Diagnostic() string {
	var b strings.Builder
	b.WriteString(r.Outcome.String())
	if r.Request != nil {
		b.WriteString("\n\nRequest:\n")
		b.WriteString(indent(r.Request.Describe()))
		b.WriteString("\nReproduce with:\n")
		b.WriteString(indent(r.Request.CurlCommand()))
		if r.Request.TokenReference == "" || r.Request.TokenReference == credentials.PlaceholderReference {
			b.WriteString("\n  (set TOKEN to the API token first)")
		}
	}
	if r.Response != nil {
		b.WriteString("\n\nResponse:\n")
		b.WriteString(indent(r.Response.Describe()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r ScenarioResult) String() string {
	return fmt.Sprintf("%s: %s (%s)", r.Name, r.Outcome, r.Elapsed.Round(time.Millisecond))
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return "  " + strings.Join(lines, "\n  ")
}
