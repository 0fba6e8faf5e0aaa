package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Registered account. PasswordHash is persisted under "password" to stay
// compatible with existing db.json files.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// Student profile driving persona selection
type UserProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Age        Age    `json:"age,omitzero"`
	ClassGroup string `json:"classGroup,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Stream     string `json:"stream,omitempty"`
}

// Age keeps the age in the JSON form the client sent it: "12" stays a string
// and 12 stays a number. Form inputs on the web client post ages as strings.
type Age struct {
	value string
	form  ageForm
}

type ageForm uint8

const (
	ageAbsent ageForm = iota
	ageString
	ageNumber
)

func StringAge(s string) Age { return Age{value: s, form: ageString} }

func NumberAge(n int) Age { return Age{value: strconv.Itoa(n), form: ageNumber} }

func (a Age) String() string { return a.value }

// IsZero reports whether no age was sent.
func (a Age) IsZero() bool { return a.form == ageAbsent }

func (a Age) Equal(b Age) bool { return a == b }

func (a Age) MarshalJSON() ([]byte, error) {
	switch a.form {
	case ageString:
		return json.Marshal(a.value)
	case ageNumber:
		return []byte(a.value), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Age{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = StringAge(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Age{value: n.String(), form: ageNumber}
	return nil
}
