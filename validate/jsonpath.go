package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// parseBody parses a response body into the generic form that JSONPath expressions
// are evaluated against.
func parseBody(body []byte) (interface{}, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New("body is empty")
	}
	return oj.Parse(body)
}

// parsePath compiles a JSONPath expression. The leading "$" may be left out:
//
//	email              $.email               $['email']
//	items[0].id        $[0].field
//	[?(@.field=='email')].message
func parsePath(path string) (jp.Expr, error) {
	s := strings.TrimSpace(path)
	switch {
	case s == "":
		return nil, fmt.Errorf("invalid path %q: empty", path)
	case strings.HasPrefix(s, "$"):
	case strings.HasPrefix(s, "["):
		s = "$" + s
	default:
		s = "$." + s
	}
	x, err := jp.ParseString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return x, nil
}

// resolvePath evaluates path against doc and returns the first value it selects. The boolean
// result is false if the path selects nothing: a missing property, an index out of range, a
// step applied to the wrong type, or a filter with no match. An explicit null is found.
func resolvePath(doc interface{}, path string) (ldvalue.Value, bool, error) {
	x, err := parsePath(path)
	if err != nil {
		return ldvalue.Null(), false, err
	}
	results := x.Get(doc)
	if len(results) == 0 {
		return ldvalue.Null(), false, nil
	}
	data, err := json.Marshal(results[0])
	if err != nil {
		return ldvalue.Null(), false, fmt.Errorf("path %q selected a value that is not JSON: %w", path, err)
	}
	return ldvalue.Parse(data), true, nil
}
