package usertests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/servicedef"
	"github.com/launchdarkly/rest-contract-tests/userdata"
	"github.com/launchdarkly/rest-contract-tests/validate"
)

const testToken = "test-token-0123456789"

func testEnvironment(baseURI, token string) *Environment {
	cfg := config.New(config.Settings{BaseURI: baseURI, Timeout: 5 * time.Second}, token)
	return NewEnvironment(cfg, 1, zerolog.Nop())
}

func withFakeService(t *testing.T, service *fakeUserService, action func(env *Environment)) {
	httphelpers.WithServer(service, func(server *httptest.Server) {
		action(testEnvironment(server.URL, testToken))
	})
}

func requireScenario(t *testing.T, name string) Scenario {
	s, ok := DefaultRegistry().Lookup(name)
	require.True(t, ok, "scenario %q is not registered", name)
	return s
}

func TestAllScenariosPassAgainstConformingService(t *testing.T) {
	withFakeService(t, newFakeUserService(testToken), func(env *Environment) {
		for _, s := range DefaultRegistry().Scenarios() {
			result := RunScenario(context.Background(), env, s, nil)
			assert.True(t, result.Outcome.OK(), result.Diagnostic())
			assert.Equal(t, s.Name, result.Name)
			assert.NotNil(t, result.Request)
			assert.NotNil(t, result.Response)
			assert.NotEmpty(t, result.Log)
		}
	})
}

func TestValidPayloadIsEchoed(t *testing.T) {
	withFakeService(t, newFakeUserService(testToken), func(env *Environment) {
		for i := 0; i < 20; i++ {
			result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)
			require.True(t, result.Outcome.OK(), result.Diagnostic())
			assert.Equal(t, 201, result.Response.StatusCode())
		}
	})
}

func TestKnownPayloadScenario(t *testing.T) {
	withFakeService(t, newFakeUserService(testToken), func(env *Environment) {
		s := requireScenario(t, "create user with known payload")
		result := RunScenario(context.Background(), env, s, nil)
		require.True(t, result.Outcome.OK(), result.Diagnostic())
		assert.Equal(t, KnownUser.Map(), result.Payload.Map())
		assert.JSONEq(t,
			`{"name":"Jane Doe","email":"jane.doe+test1@example.com","gender":"female","status":"active"}`,
			string(result.Request.Body))

		// the service only accepts each address once
		result = RunScenario(context.Background(), env, s, nil)
		assert.Equal(t, validate.ReasonUnexpectedStatusCode, result.Outcome.Reason)
		assert.Contains(t, result.Outcome.Message, "has already been taken")
	})
}

func TestEchoViolationsAreAllReported(t *testing.T) {
	service := newFakeUserService(testToken)
	service.mutate = func(u *servicedef.User, _ map[string]interface{}) {
		u.Email = "someone.else@example.com"
		u.Name = "Somebody Else"
	}
	withFakeService(t, service, func(env *Environment) {
		result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)

		require.Equal(t, validate.ReasonFieldAssertionFailure, result.Outcome.Reason)
		require.Len(t, result.Outcome.Violations, 2)
		assert.Equal(t, servicedef.FieldName, result.Outcome.Violations[0].Path)
		assert.Equal(t, servicedef.FieldEmail, result.Outcome.Violations[1].Path)
		assert.Equal(t, `"someone.else@example.com"`, result.Outcome.Violations[1].Actual)
	})
}

func TestUnexpectedPropertyIsSchemaViolation(t *testing.T) {
	service := newFakeUserService(testToken)
	service.mutate = func(_ *servicedef.User, extra map[string]interface{}) {
		extra["created_at"] = "2025-01-01T00:00:00Z"
	}
	withFakeService(t, service, func(env *Environment) {
		result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)
		assert.Equal(t, validate.ReasonSchemaViolation, result.Outcome.Reason)
	})
}

func TestWrongTokenIsUnexpectedStatus(t *testing.T) {
	httphelpers.WithServer(newFakeUserService("the-real-token"), func(server *httptest.Server) {
		env := testEnvironment(server.URL, testToken)
		result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)

		require.Equal(t, validate.ReasonUnexpectedStatusCode, result.Outcome.Reason)
		diag := result.Diagnostic()
		assert.Contains(t, diag, "expected status 201 but got 401")
		assert.Contains(t, diag, "POST "+server.URL+"/users")
		assert.Contains(t, diag, "Authorization: Bearer ****6789")
		assert.Contains(t, diag, "curl -i -X POST")
		assert.Contains(t, diag, "HTTP 401 Unauthorized")
		assert.Contains(t, diag, result.Payload.Email())
		assert.NotContains(t, diag, testToken)
	})
}

func TestUnparsableBody(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(201, http.Header{"Content-Type": {"text/html"}}, []byte("<html></html>"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		env := testEnvironment(server.URL, testToken)
		result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)
		assert.Equal(t, validate.ReasonUnparsableBody, result.Outcome.Reason)
	})
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(newFakeUserService(testToken))
	env := testEnvironment(server.URL, testToken)
	server.Close()

	result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)
	assert.Equal(t, validate.ReasonTransportError, result.Outcome.Reason)
	assert.NotNil(t, result.Request)
	assert.Nil(t, result.Response)
	assert.Contains(t, result.Diagnostic(), "Reproduce with:")
	assert.NotContains(t, result.Diagnostic(), "Response:")
}

func TestExpectationsAreBuiltFromGeneratedPayload(t *testing.T) {
	var generated, expectedFrom userdata.Payload
	s := Scenario{
		Name: "capture",
		Generate: func(g *userdata.Generator) userdata.Payload {
			generated = g.GenerateUser()
			return generated
		},
		Expect: func(p userdata.Payload) validate.Expectations {
			expectedFrom = p
			return expectCreatedEcho(p)
		},
	}
	withFakeService(t, newFakeUserService(testToken), func(env *Environment) {
		result := RunScenario(context.Background(), env, s, nil)
		require.True(t, result.Outcome.OK(), result.Diagnostic())
	})
	assert.Equal(t, generated.Map(), expectedFrom.Map())
}

func TestScenarioLogIsCapturedWithLevels(t *testing.T) {
	var sink framework.CapturingLogger
	server := httptest.NewServer(newFakeUserService(testToken))
	env := testEnvironment(server.URL, testToken)
	server.Close()

	result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), &sink)

	assert.Equal(t, sink.Output(), result.Log)
	require.NotEmpty(t, result.Log.AtLeast(zerolog.ErrorLevel))
	assert.Contains(t, string(result.Log.AtLeast(zerolog.ErrorLevel)[0].Data), "TransportError")
	for _, m := range result.Log {
		assert.NotContains(t, string(m.Data), testToken)
	}
}

func TestDiagnosticNotesTokenPlaceholder(t *testing.T) {
	server := httptest.NewServer(newFakeUserService(testToken))
	env := testEnvironment(server.URL, testToken)
	server.Close()

	result := RunScenario(context.Background(), env, requireScenario(t, "create user with valid payload"), nil)
	assert.Contains(t, result.Diagnostic(), `"Authorization: Bearer $GOREST_TOKEN"`)
	assert.NotContains(t, result.Diagnostic(), "set TOKEN")

	result.Request.TokenReference = ""
	assert.Contains(t, result.Diagnostic(), `"Authorization: Bearer $TOKEN"`)
	assert.Contains(t, result.Diagnostic(), "(set TOKEN to the API token first)")
}
