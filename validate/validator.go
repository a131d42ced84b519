// Package validate checks HTTP responses against a set of expectations: status code, JSON
// Schema conformance, and assertions on individual fields.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// maxBodyInMessage limits how much of a response body is quoted in a failure message.
const maxBodyInMessage = 2000

// Response is the part of an HTTP response that the Validator looks at.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Validator evaluates Expectations. It has no state other than its schemas, so validating
// the same response and expectations again always produces the same Outcome.
type Validator struct {
	schemas *SchemaSet
}

// NewValidator creates a Validator. schemas may be nil if no expectations refer to a schema.
func NewValidator(schemas *SchemaSet) *Validator {
	return &Validator{schemas: schemas}
}

// Validate checks the status code first and stops there if it is wrong. Otherwise it checks
// the schema, if any, and stops if the body does not conform. Finally it evaluates every field
// assertion and reports all of the ones that failed together.
func (v *Validator) Validate(resp Response, exp Expectations) Outcome {
	if resp.StatusCode() != exp.StatusCode {
		return Fail(ReasonUnexpectedStatusCode,
			fmt.Sprintf("expected status %d but got %d; body: %s",
				exp.StatusCode, resp.StatusCode(), quoteBody(resp.Body())),
			Violation{
				Assertion: "status",
				Expected:  strconv.Itoa(exp.StatusCode),
				Actual:    strconv.Itoa(resp.StatusCode()),
			})
	}

	if exp.Schema == "" && !exp.hasFieldAssertions() {
		return Pass()
	}

	doc, err := parseBody(resp.Body())
	if err != nil {
		return Fail(ReasonUnparsableBody,
			fmt.Sprintf("response body is not valid JSON (%s); body: %s", err, quoteBody(resp.Body())))
	}

	if exp.Schema != "" {
		if outcome := v.checkSchema(exp.Schema, resp.Body()); !outcome.OK() {
			return outcome
		}
	}

	var violations []Violation
	for _, f := range exp.FieldEquals {
		actual, found, err := resolvePath(doc, f.Path)
		switch {
		case err != nil:
			violations = append(violations, pathError("equals", f.Path, err))
		case !found || !actual.Equal(f.Value):
			violations = append(violations, Violation{
				Assertion: "equals",
				Path:      f.Path,
				Expected:  f.Value.JSONString(),
				Actual:    describe(actual, found),
			})
		}
	}
	for _, path := range exp.FieldPresent {
		actual, found, err := resolvePath(doc, path)
		switch {
		case err != nil:
			violations = append(violations, pathError("present", path, err))
		case !found || actual.IsNull():
			violations = append(violations, Violation{
				Assertion: "present",
				Path:      path,
				Actual:    describe(actual, found),
			})
		}
	}
	for _, f := range exp.FieldContains {
		actual, found, err := resolvePath(doc, f.Path)
		switch {
		case err != nil:
			violations = append(violations, pathError("contains", f.Path, err))
		case !found || actual.Type() != ldvalue.StringType ||
			!strings.Contains(actual.StringValue(), f.Substring):
			violations = append(violations, Violation{
				Assertion: "contains",
				Path:      f.Path,
				Expected:  strconv.Quote(f.Substring),
				Actual:    describe(actual, found),
			})
		}
	}

	if len(violations) > 0 {
		return Fail(ReasonFieldAssertionFailure,
			fmt.Sprintf("%d field assertion(s) failed", len(violations)),
			violations...)
	}
	return Pass()
}

func (v *Validator) checkSchema(name string, body []byte) Outcome {
	if v.schemas == nil {
		return Fail(ReasonSchemaViolation, fmt.Sprintf("no schemas are available to check %s", name))
	}
	violations, err := v.schemas.Check(name, body)
	if err != nil {
		return Fail(ReasonSchemaViolation, err.Error())
	}
	if len(violations) > 0 {
		return Fail(ReasonSchemaViolation,
			fmt.Sprintf("response body does not conform to %s", name),
			violations...)
	}
	return Pass()
}

func pathError(assertion, path string, err error) Violation {
	return Violation{Assertion: assertion, Path: path, Expected: "a valid path", Actual: err.Error()}
}

func describe(value ldvalue.Value, found bool) string {
	if !found {
		return "nothing (path does not exist)"
	}
	return value.JSONString()
}

func quoteBody(body []byte) string {
	if len(body) == 0 {
		return "<empty>"
	}
	if len(body) > maxBodyInMessage {
		return string(body[:maxBodyInMessage]) + "...(truncated)"
	}
	return string(body)
}
