// Package payload is the deserialization boundary between the upstream HRMS
// API and the portal's typed records.
//
// Every mapper reads fields through an Object, naming the client-shape key
// first followed by the upstream aliases it accepts. Null counts as absent.
// Keys that no mapper claims are reported as errors instead of being dropped,
// so an upstream schema change surfaces as ErrUnexpectedShape.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Version identifies the alias tables used by the mappers.
const Version = "v1"

var ErrUnexpectedShape = errors.New("unexpected payload shape")

// ShapeError describes a single field that did not match the expected shape.
type ShapeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrUnexpectedShape
}

// Object is a JSON object being mapped field by field.
type Object struct {
	entity string
	raw    map[string]json.RawMessage
	seen   map[string]bool
	errs   []error
}

// Decode parses data as a JSON object for the named entity.
func Decode(entity string, data []byte) (*Object, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, &ShapeError{Entity: entity, Reason: "expected a JSON object"}
	}
	return &Object{entity: entity, raw: raw, seen: make(map[string]bool, len(raw))}, nil
}

// DecodeList parses data as a JSON array. A null body is an empty list.
func DecodeList(entity string, data []byte) ([]json.RawMessage, error) {
	if isNull(data) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ShapeError{Entity: entity, Reason: "expected a JSON array"}
	}
	return items, nil
}

// MapList decodes a JSON array and maps every element with fn.
func MapList[T any](entity string, data []byte, fn func([]byte) (T, error)) ([]T, error) {
	items, err := DecodeList(entity, data)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := fn(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", entity, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

var envelopeKeys = map[string]bool{
	"success": true,
	"message": true,
	"status":  true,
	"code":    true,
	"meta":    true,
}

// Unwrap strips the {"success","message","data"} response envelope when
// present and returns the body unchanged otherwise.
func Unwrap(data []byte) []byte {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return data
	}
	inner, ok := raw["data"]
	if !ok {
		return data
	}
	for k := range raw {
		if k != "data" && !envelopeKeys[k] {
			return data
		}
	}
	return inner
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// Entity names the record being mapped.
func (o *Object) Entity() string {
	return o.entity
}

func (o *Object) fail(field, reason string) {
	o.errs = append(o.errs, &ShapeError{Entity: o.entity, Field: field, Reason: reason})
}

// lookup marks every alias present as consumed and returns the first non-null one.
func (o *Object) lookup(aliases []string) (json.RawMessage, bool) {
	var val json.RawMessage
	found := false
	for _, a := range aliases {
		v, ok := o.raw[a]
		if !ok {
			continue
		}
		o.seen[a] = true
		if found || isNull(v) {
			continue
		}
		val, found = v, true
	}
	return val, found
}

func (o *Object) required(field string, ok bool) bool {
	if !ok {
		o.fail(field, "is required")
	}
	return ok
}

// Ignore consumes keys the portal deliberately does not map.
func (o *Object) Ignore(keys ...string) {
	for _, k := range keys {
		if _, ok := o.raw[k]; ok {
			o.seen[k] = true
		}
	}
}

// Has reports whether any alias carries a non-null value without consuming it.
func (o *Object) Has(aliases ...string) bool {
	for _, a := range aliases {
		if v, ok := o.raw[a]; ok && !isNull(v) {
			return true
		}
	}
	return false
}

// Err reports every shape problem collected so far plus unclaimed keys.
func (o *Object) Err() error {
	var unknown []string
	for k := range o.raw {
		if !o.seen[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	errs := append([]error(nil), o.errs...)
	for _, k := range unknown {
		errs = append(errs, &ShapeError{Entity: o.entity, Field: k, Reason: "unknown field"})
	}
	return errors.Join(errs...)
}

func (o *Object) str(aliases []string) (string, bool) {
	v, ok := o.lookup(aliases)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		o.fail(aliases[0], "must be a string")
		return "", false
	}
	return strings.TrimSpace(s), true
}

// String returns an optional string field.
func (o *Object) String(aliases ...string) string {
	s, _ := o.str(aliases)
	return s
}

// RequiredString returns a string field that must be present and non-empty.
func (o *Object) RequiredString(aliases ...string) string {
	s, ok := o.str(aliases)
	o.required(aliases[0], ok && s != "")
	return s
}

// ID accepts string or integral identifiers and returns their string form.
func (o *Object) ID(aliases ...string) string {
	v, ok := o.lookup(aliases)
	if !o.required(aliases[0], ok) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == "" {
			o.fail(aliases[0], "is required")
		}
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		if _, err := n.Int64(); err == nil {
			return n.String()
		}
	}
	o.fail(aliases[0], "must be a string or integer identifier")
	return ""
}

// OptionalID is ID without the presence requirement.
func (o *Object) OptionalID(aliases ...string) string {
	if !o.Has(aliases...) {
		o.lookup(aliases)
		return ""
	}
	return o.ID(aliases...)
}

func (o *Object) number(aliases []string) (json.Number, bool) {
	v, ok := o.lookup(aliases)
	if !ok {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n, true
	}
	// Numbers sometimes arrive quoted.
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return json.Number(strings.TrimSpace(s)), true
		}
	}
	o.fail(aliases[0], "must be a number")
	return "", false
}

// Float returns an optional numeric field.
func (o *Object) Float(aliases ...string) float64 {
	n, ok := o.number(aliases)
	if !ok {
		return 0
	}
	f, _ := n.Float64()
	return f
}

// OptionalFloat distinguishes an absent number from zero.
func (o *Object) OptionalFloat(aliases ...string) *float64 {
	n, ok := o.number(aliases)
	if !ok {
		return nil
	}
	f, _ := n.Float64()
	return &f
}

// Int returns an optional integral field.
func (o *Object) Int(aliases ...string) int {
	n, ok := o.number(aliases)
	if !ok {
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		o.fail(aliases[0], "must be an integer")
		return 0
	}
	return int(i)
}

// Decimal returns an optional monetary amount.
func (o *Object) Decimal(aliases ...string) decimal.Decimal {
	n, ok := o.number(aliases)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		o.fail(aliases[0], "must be a decimal amount")
		return decimal.Zero
	}
	return d
}

// Bool returns a truthy flag. JSON booleans, 0/1 and the strings
// "true"/"false"/"1"/"0"/"yes"/"no" are accepted.
func (o *Object) Bool(aliases ...string) bool {
	v, ok := o.lookup(aliases)
	if !ok {
		return false
	}
	b, ok := ParseFlag(v)
	if !ok {
		o.fail(aliases[0], "must be a boolean flag")
	}
	return b
}

// ParseFlag converts a raw JSON value into a boolean flag.
func ParseFlag(v json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, true
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		switch n.String() {
		case "0":
			return false, true
		case "1":
			return true, true
		}
		return false, false
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no", "":
			return false, true
		}
	}
	return false, false
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// Date returns an optional calendar date normalised to YYYY-MM-DD.
func (o *Object) Date(aliases ...string) string {
	s, ok := o.str(aliases)
	if !ok || s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	o.fail(aliases[0], "must be a date")
	return ""
}

// RequiredDate is Date with a presence requirement.
func (o *Object) RequiredDate(aliases ...string) string {
	present := o.Has(aliases...)
	d := o.Date(aliases...)
	if !present {
		o.fail(aliases[0], "is required")
	}
	return d
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// Time returns an optional timestamp in UTC.
func (o *Object) Time(aliases ...string) *time.Time {
	s, ok := o.str(aliases)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	o.fail(aliases[0], "must be a timestamp")
	return nil
}

// Clock returns an optional "HH:MM" wall time; seconds are dropped.
func (o *Object) Clock(aliases ...string) string {
	s, ok := o.str(aliases)
	if !ok || s == "" {
		return ""
	}
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM", "03:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	o.fail(aliases[0], "must be a HH:MM time")
	return ""
}

// NormalizeEnum lower-cases and snake-cases an enum value.
func NormalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(s), "_")
}

// Enum returns a normalised enum value that must be one of allowed. An absent
// value yields fallback.
func (o *Object) Enum(allowed []string, fallback string, aliases ...string) string {
	s, ok := o.str(aliases)
	if !ok || s == "" {
		return fallback
	}
	v := NormalizeEnum(s)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	o.fail(aliases[0], fmt.Sprintf("unexpected value %q", s))
	return fallback
}

// Raw returns the raw JSON of a nested value.
func (o *Object) Raw(aliases ...string) (json.RawMessage, bool) {
	return o.lookup(aliases)
}

// Check records an entity-level consistency failure.
func (o *Object) Check(ok bool, field, reason string) {
	if !ok {
		o.fail(field, reason)
	}
}

// EnumWith is Enum with synonyms: values maps every accepted normalised input
// to its canonical value.
func (o *Object) EnumWith(values map[string]string, fallback string, aliases ...string) string {
	s, ok := o.str(aliases)
	if !ok || s == "" {
		return fallback
	}
	if v, ok := values[NormalizeEnum(s)]; ok {
		return v
	}
	o.fail(aliases[0], fmt.Sprintf("unexpected value %q", s))
	return fallback
}

// Ref reads a reference that is either a bare identifier or an embedded
// object carrying one of keys. It returns the identifier.
func (o *Object) Ref(keys []string, aliases ...string) string {
	v, ok := o.lookup(aliases)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		if _, err := n.Int64(); err == nil {
			return n.String()
		}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		for _, k := range keys {
			if inner, ok := obj[k]; ok && !isNull(inner) {
				var s string
				if err := json.Unmarshal(inner, &s); err == nil {
					return strings.TrimSpace(s)
				}
				var n json.Number
				if err := json.Unmarshal(inner, &n); err == nil {
					return n.String()
				}
			}
		}
	}
	o.fail(aliases[0], "must be an identifier or an object carrying one")
	return ""
}
