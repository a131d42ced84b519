package validate

import (
	"fmt"
	"strings"
)

// Reason classifies a failed outcome.
type Reason string

const (
	ReasonTransportError        Reason = "TransportError"
	ReasonSerializationError    Reason = "SerializationError"
	ReasonUnexpectedStatusCode  Reason = "UnexpectedStatusCode"
	ReasonSchemaViolation       Reason = "SchemaViolation"
	ReasonFieldAssertionFailure Reason = "FieldAssertionFailure"
	ReasonUnparsableBody        Reason = "UnparsableBody"
)

// Violation describes one assertion that did not hold.
type Violation struct {
	// Assertion is the kind of check: "status", "schema", "equals", "present" or "contains".
	Assertion string
	Path      string
	Expected  string
	Actual    string
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Path != "" {
		b.WriteString(v.Path)
		b.WriteString(": ")
	}
	switch v.Assertion {
	case "schema":
		b.WriteString(v.Actual)
	case "present":
		fmt.Fprintf(&b, "expected a non-null value but got %s", v.Actual)
	case "contains":
		fmt.Fprintf(&b, "expected a string containing %s but got %s", v.Expected, v.Actual)
	default:
		fmt.Fprintf(&b, "expected %s but got %s", v.Expected, v.Actual)
	}
	return b.String()
}

// Outcome is the result of validating a response. The zero value is a pass.
type Outcome struct {
	Reason     Reason
	Message    string
	Violations []Violation
}

// Pass returns a passing outcome.
func Pass() Outcome {
	return Outcome{}
}

// Fail returns a failing outcome.
func Fail(reason Reason, message string, violations ...Violation) Outcome {
	return Outcome{Reason: reason, Message: message, Violations: violations}
}

// OK returns true if the outcome is a pass.
func (o Outcome) OK() bool {
	return o.Reason == ""
}

func (o Outcome) String() string {
	if o.OK() {
		return "PASS"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", o.Reason, o.Message)
	for _, v := range o.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}
	return b.String()
}
