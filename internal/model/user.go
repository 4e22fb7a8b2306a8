package model

import (
    "time"

    "github.com/google/uuid"
)

// Gender is stored lower-case in users.gender.
type Gender string

const (
    GenderMale   Gender = "male"
    GenderFemale Gender = "female"
    GenderOther  Gender = "other"
)

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
    switch g {
    case GenderMale, GenderFemale, GenderOther:
        return true
    }
    return false
}

// User is the public view of a user: the users row joined with the
// is_active flag from users_credentials.  The password never appears here,
// and users_settings has nothing public to show.
type User struct {
    ID        uuid.UUID `json:"id"`
    Email     string    `json:"email"`
    FirstName string    `json:"firstName"`
    LastName  string    `json:"lastName"`
    Phone     string    `json:"phone"`
    Gender    Gender    `json:"gender"`
    Address   string    `json:"address"`
    CreatedAt time.Time `json:"createdAt"`
    IsActive  bool      `json:"isActive"`
}
