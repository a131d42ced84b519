// Package userdata generates the randomized user payloads that scenarios send to the service.
package userdata

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

// Reserved for documentation by RFC 2606, so generated addresses never reach a real mailbox.
var emailDomains = []string{"example.com", "example.org", "example.net"}

var genders = []string{servicedef.GenderMale, servicedef.GenderFemale}

var statuses = []string{servicedef.StatusActive, servicedef.StatusInactive}

// Generator produces user payloads from a seeded faker. The same seed produces the same
// sequence of payloads. A Generator is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewGenerator creates a Generator with the given seed.
func NewGenerator(seed int64) *Generator {
	source := rand.NewPCG(uint64(seed), uint64(seed))
	return &Generator{faker: gofakeit.NewFaker(source, false), seed: seed}
}

// Seed returns the seed the Generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// GenerateUser returns a payload that the service should accept.
func (g *Generator) GenerateUser() Payload {
	first, last := g.faker.FirstName(), g.faker.LastName()
	return NewPayload(map[string]string{
		servicedef.FieldName:   first + " " + last,
		servicedef.FieldEmail:  g.email(first, last),
		servicedef.FieldGender: g.faker.RandomString(genders),
		servicedef.FieldStatus: g.faker.RandomString(statuses),
	})
}

// GenerateInvalidEmailUser returns a payload whose email is not a valid address.
func (g *Generator) GenerateInvalidEmailUser() Payload {
	p := g.GenerateUser()
	return p.With(servicedef.FieldEmail, g.invalidEmail(p.Email()))
}

// GenerateMissingNameUser returns a payload with no name field.
func (g *Generator) GenerateMissingNameUser() Payload {
	return g.GenerateUser().Without(servicedef.FieldName)
}

func (g *Generator) email(first, last string) string {
	local := strings.ToLower(emailSafe(first) + "." + emailSafe(last))
	return fmt.Sprintf("%s+%s@%s", local, g.tag(), g.faker.RandomString(emailDomains))
}

// tag distinguishes addresses across runs; the service rejects an address already in use.
func (g *Generator) tag() string {
	id := uuid.MustParse(g.faker.UUID())
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}

func (g *Generator) invalidEmail(valid string) string {
	at := strings.LastIndex(valid, "@")
	local, domain := valid[:at], valid[at+1:]
	switch g.faker.Number(0, 3) {
	case 0:
		return local + "." + domain
	case 1:
		return local + "@@" + domain
	case 2:
		return local + "@"
	default:
		return "@" + domain
	}
}

func emailSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
