package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func parseDoc(t *testing.T, s string) interface{} {
	doc, err := parseBody([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestResolvePath(t *testing.T) {
	doc := parseDoc(t, `{"a":{"b":[10,{"c":"x"}]},"n":null,"list":[{"field":"email","message":"is invalid"},{"field":"id","message":"other"},{"field":"email","message":"second"}]}`)

	for _, tc := range []struct {
		path     string
		expected ldvalue.Value
	}{
		{"a.b[0]", ldvalue.Int(10)},
		{"$.a.b[1].c", ldvalue.String("x")},
		{"$['a']['b'][1]['c']", ldvalue.String("x")},
		{"a.b[1]", ldvalue.ObjectBuild().Set("c", ldvalue.String("x")).Build()},
		{"list[?(@.field=='email')].message", ldvalue.String("is invalid")},
		{"list[?(@.field=='id')].message", ldvalue.String("other")},
		{"n", ldvalue.Null()},
	} {
		t.Run(tc.path, func(t *testing.T) {
			actual, found, err := resolvePath(doc, tc.path)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tc.expected.JSONString(), actual.JSONString())
		})
	}
}

func TestResolvePathOnTopLevelArray(t *testing.T) {
	doc := parseDoc(t, `[{"field":"email","message":"is invalid"},{"field":"name","message":"can't be blank"}]`)

	actual, found, err := resolvePath(doc, "[?(@.field=='name')].message")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "can't be blank", actual.StringValue())

	actual, found, err = resolvePath(doc, "$[0].field")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "email", actual.StringValue())
}

func TestResolvePathNotFound(t *testing.T) {
	doc := parseDoc(t, `{"a":[1,2],"s":"str"}`)
	for _, path := range []string{"missing", "a[2]", "s.x", "a.x", "a[?(@.k=='v')]"} {
		_, found, err := resolvePath(doc, path)
		require.NoError(t, err, path)
		assert.False(t, found, path)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, path := range []string{"", "  ", "a[", "list[?(@.field=='email'"} {
		_, err := parsePath(path)
		assert.Error(t, err, path)
	}
}

func TestParseBodyErrors(t *testing.T) {
	for _, body := range []string{"", "   ", "<html></html>", `{"a":`} {
		_, err := parseBody([]byte(body))
		assert.Error(t, err, body)
	}
}
