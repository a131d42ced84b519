package usertests

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"sync"

	"github.com/launchdarkly/rest-contract-tests/servicedef"
)

// fakeUserService behaves like the real service's user creation endpoint.
type fakeUserService struct {
	token  string
	mutate func(*servicedef.User, map[string]interface{})
	lock   sync.Mutex
	lastID int
	emails map[string]bool
}

func newFakeUserService(token string) *fakeUserService {
	return &fakeUserService{token: token, lastID: 7000, emails: make(map[string]bool)}
}

func (s *fakeUserService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != servicedef.UsersPath {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Resource not found"})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+s.token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication failed"})
		return
	}
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed JSON"})
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	var errs []servicedef.FieldError
	reject := func(field, message string) {
		errs = append(errs, servicedef.FieldError{Field: field, Message: message})
	}
	email := fields[servicedef.FieldEmail]
	switch {
	case email == "":
		reject(servicedef.FieldEmail, servicedef.MessageBlank)
	case !isValidEmail(email):
		reject(servicedef.FieldEmail, servicedef.MessageInvalid)
	case s.emails[email]:
		reject(servicedef.FieldEmail, "has already been taken")
	}
	if strings.TrimSpace(fields[servicedef.FieldName]) == "" {
		reject(servicedef.FieldName, servicedef.MessageBlank)
	}
	if g := fields[servicedef.FieldGender]; g != servicedef.GenderMale && g != servicedef.GenderFemale {
		reject(servicedef.FieldGender, "can't be blank, can be male of female")
	}
	if st := fields[servicedef.FieldStatus]; st != servicedef.StatusActive && st != servicedef.StatusInactive {
		reject(servicedef.FieldStatus, servicedef.MessageBlank)
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errs)
		return
	}

	s.lastID++
	s.emails[email] = true
	user := servicedef.User{
		ID:     s.lastID,
		Name:   fields[servicedef.FieldName],
		Email:  email,
		Gender: fields[servicedef.FieldGender],
		Status: fields[servicedef.FieldStatus],
	}
	if s.mutate != nil {
		extra := make(map[string]interface{})
		s.mutate(&user, extra)
		if len(extra) > 0 {
			out := map[string]interface{}{
				"id": user.ID, "name": user.Name, "email": user.Email, "gender": user.Gender, "status": user.Status,
			}
			for k, v := range extra {
				out[k] = v
			}
			writeJSON(w, http.StatusCreated, out)
			return
		}
	}
	writeJSON(w, http.StatusCreated, user)
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
