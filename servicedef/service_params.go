// Package servicedef describes the wire contract of the user-management API under test.
package servicedef

// DefaultBaseURI is the public instance the suite runs against unless configured otherwise.
const DefaultBaseURI = "https://gorest.co.in/public/v2"

// UsersPath is the collection resource for users, relative to the base URI.
const UsersPath = "/users"

// Fields of a user object.
const (
	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldGender = "gender"
	FieldStatus = "status"
)

// UserFields is the fixed set of fields sent when creating a user, in canonical order.
var UserFields = []string{FieldName, FieldEmail, FieldGender, FieldStatus}

// Allowed values for the enumerated user fields.
const (
	GenderMale     = "male"
	GenderFemale   = "female"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Error messages the service reports for rejected fields. These are the service's own
// vocabulary, observed on the live API, and may change if the service changes.
const (
	MessageInvalid = "is invalid"
	MessageBlank   = "can't be blank"
)

// User is the representation of a user returned by the service.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Status string `json:"status"`
}

// FieldError is one entry of the array returned with a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
