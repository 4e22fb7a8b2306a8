// Package validation turns the untyped parts of a request (route params,
// query string, raw body) into typed payloads.  It performs no I/O.  Every
// check runs; all violations come back joined in a single validation error.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iliyamo/user-dashboard/internal/apperr"
	"github.com/iliyamo/user-dashboard/internal/model"
)

// ParamUserID is the route parameter carrying the user id.
const ParamUserID = "userId"

// Input is the untyped request envelope.
type Input struct {
	Params map[string]string
	Query  url.Values
	Body   []byte
}

// CreatePayload is a validated create request.  Gender is already lower case.
type CreatePayload struct {
	Email     string       `json:"email" validate:"required,min=6,max=256,email"`
	Password  string       `json:"password" validate:"required,min=6,max=64,password,maxbytes=72"`
	FirstName string       `json:"firstName" validate:"required,min=1,max=128"`
	LastName  string       `json:"lastName" validate:"required,min=1,max=128"`
	Phone     string       `json:"phone" validate:"required,min=1,max=32,phone"`
	Gender    model.Gender `json:"gender" validate:"required,gender"`
	Address   string       `json:"address" validate:"max=512"`
}

// UpdatePayload is a validated update request.  Nil fields are left alone.
type UpdatePayload struct {
	UserID    uuid.UUID
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Phone     *string
	Gender    *model.Gender
	Address   *string
}

// ReadManyPayload filters the listing.  Archive nil lists everyone.
type ReadManyPayload struct {
	Archive *bool
}

type updateBody struct {
	Email     *string `json:"email" validate:"omitempty,min=6,max=256,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=64,password,maxbytes=72"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=128"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=128"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=32,phone"`
	Gender    *string `json:"gender" validate:"omitempty,gender"`
	Address   *string `json:"address" validate:"omitempty,max=512"`
}

// userIDParams only checks presence; the format is left to uuid.Parse,
// which accepts either letter case.
type userIDParams struct {
	UserID string `json:"userId" validate:"required"`
}

// Validator holds the configured validator.Validate.  It is safe for
// concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator checking phone numbers against region
// (ISO 3166-1 alpha-2, e.g. "IL").
func New(region string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("password", strongPassword)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	_ = v.RegisterValidation("gender", genderValue)
	_ = v.RegisterValidation("phone", phoneFor(strings.ToUpper(region)))
	return &Validator{v: v}
}

// ReadMany: no params, no body, optional archive=true|false.
func (val *Validator) ReadMany(in Input) (ReadManyPayload, error) {
	var p ReadManyPayload
	var msgs errs
	msgs.add(noParams(in.Params)...)
	msgs.add(noBody(in.Body)...)
	for _, key := range sortedKeys(in.Query) {
		if key != "archive" {
			msgs.add(`query parameter "` + key + `" is not allowed`)
			continue
		}
		vals := in.Query[key]
		if len(vals) != 1 {
			msgs.add(`"archive" must be a boolean`)
			continue
		}
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "true":
			b := true
			p.Archive = &b
		case "false":
			b := false
			p.Archive = &b
		default:
			msgs.add(`"archive" must be a boolean`)
		}
	}
	return p, msgs.err()
}

// ReadOne: params {userId}, empty query and body.
func (val *Validator) ReadOne(in Input) (uuid.UUID, error) { return val.userIDOnly(in) }

// DeleteOne has the same shape as ReadOne.
func (val *Validator) DeleteOne(in Input) (uuid.UUID, error) { return val.userIDOnly(in) }

// ReactivateOne has the same shape as ReadOne.
func (val *Validator) ReactivateOne(in Input) (uuid.UUID, error) { return val.userIDOnly(in) }

func (val *Validator) userIDOnly(in Input) (uuid.UUID, error) {
	var msgs errs
	id := val.userID(in.Params, &msgs)
	msgs.add(noQuery(in.Query)...)
	msgs.add(noBody(in.Body)...)
	if err := msgs.err(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// CreateOne: empty params and query, body with exactly the create fields.
func (val *Validator) CreateOne(in Input) (CreatePayload, error) {
	var p CreatePayload
	var msgs errs
	msgs.add(noParams(in.Params)...)
	msgs.add(noQuery(in.Query)...)

	fields := map[string]any{
		"email":     &p.Email,
		"password":  &p.Password,
		"firstName": &p.FirstName,
		"lastName":  &p.LastName,
		"phone":     &p.Phone,
		"gender":    &p.Gender,
		"address":   &p.Address,
	}
	_, badType, ok := decodeObject(in.Body, fields, &msgs)
	if ok {
		msgs.add(val.structErrors(&p, badType)...)
	}
	if err := msgs.err(); err != nil {
		return CreatePayload{}, err
	}
	p.Gender = model.Gender(strings.ToLower(string(p.Gender)))
	return p, nil
}

// UpdateOne: params {userId}, empty query, body with any non-empty subset of
// the create fields.
func (val *Validator) UpdateOne(in Input) (UpdatePayload, error) {
	var b updateBody
	var msgs errs
	id := val.userID(in.Params, &msgs)
	msgs.add(noQuery(in.Query)...)

	fields := map[string]any{
		"email":     &b.Email,
		"password":  &b.Password,
		"firstName": &b.FirstName,
		"lastName":  &b.LastName,
		"phone":     &b.Phone,
		"gender":    &b.Gender,
		"address":   &b.Address,
	}
	present, badType, ok := decodeObject(in.Body, fields, &msgs)
	if ok {
		if present == 0 {
			msgs.add("body must contain at least one field")
		} else {
			msgs.add(val.structErrors(&b, badType)...)
		}
	}
	if err := msgs.err(); err != nil {
		return UpdatePayload{}, err
	}

	p := UpdatePayload{
		UserID:    id,
		Email:     b.Email,
		Password:  b.Password,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Phone:     b.Phone,
		Address:   b.Address,
	}
	if b.Gender != nil {
		g := model.Gender(strings.ToLower(*b.Gender))
		p.Gender = &g
	}
	return p, nil
}

func (val *Validator) userID(params map[string]string, msgs *errs) uuid.UUID {
	for _, key := range sortedKeys(params) {
		if key != ParamUserID {
			msgs.add(`route parameter "` + key + `" is not allowed`)
		}
	}
	in := userIDParams{UserID: params[ParamUserID]}
	fieldMsgs := val.structErrors(&in, nil)
	if len(fieldMsgs) > 0 {
		msgs.add(fieldMsgs...)
		return uuid.Nil
	}
	id, err := uuid.Parse(in.UserID)
	if err != nil || len(in.UserID) != len(uuid.Nil.String()) { // canonical 8-4-4-4-12 form only
		msgs.add(`"userId" must be a valid UUID`)
		return uuid.Nil
	}
	return id
}

// structErrors runs the tag rules on s, skipping fields already reported as
// having the wrong JSON type.
func (val *Validator) structErrors(s any, skip map[string]bool) []string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []string{err.Error()}
	}
	var out []string
	for _, fe := range fes {
		if skip[fe.Field()] {
			continue
		}
		out = append(out, message(fe))
	}
	return out
}

// decodeObject decodes body into the per-key destinations.  It reports
// unknown keys and type mismatches, returns how many known keys carried a
// non-null value, which keys had the wrong type, and whether the body was a JSON
// object at all.
func decodeObject(body []byte, fields map[string]any, msgs *errs) (int, map[string]bool, bool) {
	raw, ok := parseObject(body, msgs)
	if !ok {
		return 0, nil, false
	}
	present := 0
	badType := map[string]bool{}
	for _, key := range sortedKeys(raw) {
		dst, known := fields[key]
		if !known {
			msgs.add(`"` + key + `" is not allowed`)
			continue
		}
		if string(raw[key]) != "null" {
			present++
		}
		if err := json.Unmarshal(raw[key], dst); err != nil {
			msgs.add(`"` + key + `" must be a string`)
			badType[key] = true
		}
	}
	return present, badType, true
}

// parseObject accepts an empty body as an empty object.
func parseObject(body []byte, msgs *errs) (map[string]json.RawMessage, bool) {
	if isEmptyBody(body) {
		return map[string]json.RawMessage{}, true
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		msgs.add("body must be a JSON object")
		return nil, false
	}
	return raw, true
}

func noParams(params map[string]string) []string {
	var out []string
	for _, key := range sortedKeys(params) {
		out = append(out, `route parameter "`+key+`" is not allowed`)
	}
	return out
}

func noQuery(q url.Values) []string {
	var out []string
	for _, key := range sortedKeys(q) {
		out = append(out, `query parameter "`+key+`" is not allowed`)
	}
	return out
}

func noBody(body []byte) []string {
	if isEmptyBody(body) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return []string{"body must be empty"}
	}
	var out []string
	for _, key := range sortedKeys(raw) {
		out = append(out, `"`+key+`" is not allowed`)
	}
	return out
}

func isEmptyBody(body []byte) bool {
	b := bytes.TrimSpace(body)
	if len(b) == 0 {
		return true
	}
	var raw map[string]json.RawMessage
	return json.Unmarshal(b, &raw) == nil && raw != nil && len(raw) == 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// errs collects messages in the order checks ran.
type errs []string

func (e *errs) add(msgs ...string) { *e = append(*e, msgs...) }

func (e errs) err() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.Validation(strings.Join(e, ", "))
}
