package validate

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// FieldValue is an expected value at a path.
type FieldValue struct {
	Path  string
	Value ldvalue.Value
}

// FieldSubstring is a substring expected in the string at a path.
type FieldSubstring struct {
	Path      string
	Substring string
}

// Expectations describes what a response must look like. Field assertions are evaluated in
// the order FieldEquals, FieldPresent, FieldContains, each in the order added.
//
// The With/Equals/Present/Contains methods return a modified copy and never change the
// receiver, so a base set of expectations can be shared.
type Expectations struct {
	StatusCode    int
	Schema        string
	FieldEquals   []FieldValue
	FieldPresent  []string
	FieldContains []FieldSubstring
}

// Status starts a set of expectations requiring the given HTTP status.
func Status(code int) Expectations {
	return Expectations{StatusCode: code}
}

// WithSchema requires the body to conform to the named schema.
func (e Expectations) WithSchema(name string) Expectations {
	e.Schema = name
	return e
}

// Equals requires the value at path to equal value, which may be a string, number, boolean,
// nil, or ldvalue.Value.
func (e Expectations) Equals(path string, value interface{}) Expectations {
	e.FieldEquals = append(e.FieldEquals[:len(e.FieldEquals):len(e.FieldEquals)],
		FieldValue{Path: path, Value: toValue(value)})
	return e
}

// Present requires each path to resolve to a non-null value.
func (e Expectations) Present(paths ...string) Expectations {
	e.FieldPresent = append(e.FieldPresent[:len(e.FieldPresent):len(e.FieldPresent)], paths...)
	return e
}

// Contains requires the value at path to be a string containing substring.
func (e Expectations) Contains(path, substring string) Expectations {
	e.FieldContains = append(e.FieldContains[:len(e.FieldContains):len(e.FieldContains)],
		FieldSubstring{Path: path, Substring: substring})
	return e
}

func (e Expectations) hasFieldAssertions() bool {
	return len(e.FieldEquals) > 0 || len(e.FieldPresent) > 0 || len(e.FieldContains) > 0
}

func toValue(value interface{}) ldvalue.Value {
	if v, ok := value.(ldvalue.Value); ok {
		return v
	}
	return ldvalue.CopyArbitraryValue(value)
}
