package userdata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

// Payload is the set of fields sent to create a user. It cannot be changed after it is built.
type Payload struct {
	fields map[string]string
}

// NewPayload copies fields into a new Payload.
func NewPayload(fields map[string]string) Payload {
	p := Payload{fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		p.fields[k] = v
	}
	return p
}

// Get returns the value of a field and whether the field is present.
func (p Payload) Get(field string) (string, bool) {
	v, ok := p.fields[field]
	return v, ok
}

// Has returns true if the field is present.
func (p Payload) Has(field string) bool {
	_, ok := p.fields[field]
	return ok
}

func (p Payload) Name() string   { return p.fields[servicedef.FieldName] }
func (p Payload) Email() string  { return p.fields[servicedef.FieldEmail] }
func (p Payload) Gender() string { return p.fields[servicedef.FieldGender] }
func (p Payload) Status() string { return p.fields[servicedef.FieldStatus] }

// Fields returns the names of the fields present, known fields first in canonical order.
func (p Payload) Fields() []string {
	var ret []string
	for _, f := range servicedef.UserFields {
		if p.Has(f) {
			ret = append(ret, f)
		}
	}
	var extra []string
	for k := range p.fields {
		if !isKnownField(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(ret, extra...)
}

// Map returns a copy of the fields.
func (p Payload) Map() map[string]string {
	ret := make(map[string]string, len(p.fields))
	for k, v := range p.fields {
		ret[k] = v
	}
	return ret
}

// With returns a copy of the payload with one field set.
func (p Payload) With(field, value string) Payload {
	ret := NewPayload(p.fields)
	ret.fields[field] = value
	return ret
}

// Without returns a copy of the payload with one field removed.
func (p Payload) Without(field string) Payload {
	ret := NewPayload(p.fields)
	delete(ret.fields, field)
	return ret
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.fields)
}

func (p Payload) String() string {
	var parts []string
	for _, f := range p.Fields() {
		parts = append(parts, fmt.Sprintf("%s=%q", f, p.fields[f]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func isKnownField(name string) bool {
	for _, f := range servicedef.UserFields {
		if f == name {
			return true
		}
	}
	return false
}
