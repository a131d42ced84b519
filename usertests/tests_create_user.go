package usertests

import (
	"fmt"
	"net/http"

	"github.com/launchdarkly/rest-contract-tests/schemas"
	"github.com/launchdarkly/rest-contract-tests/servicedef"
	"github.com/launchdarkly/rest-contract-tests/userdata"
	"github.com/launchdarkly/rest-contract-tests/validate"
)

// KnownUser is a fixed payload whose expected response is known in advance. Note that the
// service rejects an email address that is already in use, so against a shared instance this
// scenario only passes while the address is free.
var KnownUser = userdata.NewPayload(map[string]string{
	servicedef.FieldName:   "Jane Doe",
	servicedef.FieldEmail:  "jane.doe+test1@example.com",
	servicedef.FieldGender: servicedef.GenderFemale,
	servicedef.FieldStatus: servicedef.StatusActive,
})

func CreateUserScenarios() []Scenario {
	return []Scenario{
		{
			Name:     "create user with valid payload",
			Generate: (*userdata.Generator).GenerateUser,
			Expect:   expectCreatedEcho,
		},
		{
			Name:     "create user with known payload",
			Generate: func(*userdata.Generator) userdata.Payload { return KnownUser },
			Expect: func(p userdata.Payload) validate.Expectations {
				return validate.Status(http.StatusCreated).
					WithSchema(schemas.User).
					Equals(servicedef.FieldEmail, p.Email()).
					Equals(servicedef.FieldStatus, p.Status()).
					Present(servicedef.FieldID)
			},
		},
		{
			Name:     "create user with invalid email",
			Generate: (*userdata.Generator).GenerateInvalidEmailUser,
			Expect: func(userdata.Payload) validate.Expectations {
				return validate.Status(http.StatusUnprocessableEntity).
					WithSchema(schemas.FieldErrors).
					Contains(fieldErrorMessage(servicedef.FieldEmail), servicedef.MessageInvalid)
			},
		},
		{
			Name:     "create user without name",
			Generate: (*userdata.Generator).GenerateMissingNameUser,
			Expect: func(userdata.Payload) validate.Expectations {
				return validate.Status(http.StatusUnprocessableEntity).
					WithSchema(schemas.FieldErrors).
					Equals(fieldErrorMessage(servicedef.FieldName), servicedef.MessageBlank)
			},
		},
	}
}

// expectCreatedEcho expects a created user that repeats every field of the payload, whatever
// fields the payload has.
func expectCreatedEcho(p userdata.Payload) validate.Expectations {
	exp := validate.Status(http.StatusCreated).WithSchema(schemas.User)
	for _, field := range p.Fields() {
		value, _ := p.Get(field)
		exp = exp.Equals(field, value)
	}
	return exp.Present(servicedef.FieldID)
}

// fieldErrorMessage is the path of the message for one field in a 422 response body.
func fieldErrorMessage(field string) string {
	return fmt.Sprintf("[?(@.field=='%s')].message", field)
}
