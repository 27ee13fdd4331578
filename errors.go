package jsonapiv

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/reoring/jsonapiv/i18n"
)

// Error codes. A code may be shared by several Kinds that differ in status.
const (
	CodeInvalidValue          = "invalid-value"
	CodeRequired              = "required"
	CodeUnrecognisedKey       = "unrecognised-key"
	CodeNotRecognised         = "not-recognised"
	CodeUnsupportedType       = "unsupported-type"
	CodeUnsupportedID         = "unsupported-id"
	CodeInvalid               = "invalid"
	CodeNotFound              = "not-found"
	CodeMissingData           = "missing-data"
	CodeDuplicateKey          = "duplicate-key"
	CodeParseError            = "parse-error"
	CodeDependencyUnavailable = "dependency-unavailable"
)

// Status is the HTTP status attached to an Error.
type Status int

const (
	StatusBadRequest         Status = http.StatusBadRequest
	StatusForbidden          Status = http.StatusForbidden
	StatusNotFound           Status = http.StatusNotFound
	StatusConflict           Status = http.StatusConflict
	StatusUnprocessable      Status = http.StatusUnprocessableEntity
	StatusInternalError      Status = http.StatusInternalServerError
	StatusServiceUnavailable Status = http.StatusServiceUnavailable
)

// String renders the status as JSON:API expects it in error objects.
func (s Status) String() string { return strconv.Itoa(int(s)) }

// Text returns the HTTP reason phrase.
func (s Status) Text() string { return http.StatusText(int(s)) }

// Family returns the class floor: 400 for 4xx, 500 for 5xx.
func (s Status) Family() Status { return s / 100 * 100 }

// Kind identifies the failure class of an Error. The kind fixes code,
// status and message templates.
type Kind int

const (
	KindInvalidValue Kind = iota
	KindRequired
	KindUnrecognisedKey
	KindRequiredAttribute
	KindUnrecognisedAttribute
	KindRequiredRelationship
	KindUnrecognisedRelationship
	// KindTypeMismatch and KindTypeConflict share CodeUnsupportedType. A
	// mismatch is a plain 400 on a relationship identifier; a conflict is the
	// 409 raised when a resource does not match the endpoint.
	KindTypeMismatch
	KindTypeConflict
	KindIDConflict
	KindRelationshipRequired
	KindHasOneExpected
	KindHasManyExpected
	KindRelationshipEmpty
	KindNotFound
	KindNotAcceptable
	KindMissingData
	KindDuplicateKey
	KindParseError
	KindDependencyUnavailable
)

type kindSpec struct {
	id     string
	code   string
	status Status
}

var kindTable = map[Kind]kindSpec{
	KindInvalidValue:             {"invalid-value", CodeInvalidValue, StatusBadRequest},
	KindRequired:                 {"required", CodeRequired, StatusBadRequest},
	KindUnrecognisedKey:          {"unrecognised-key", CodeUnrecognisedKey, StatusBadRequest},
	KindRequiredAttribute:        {"required-attribute", CodeRequired, StatusBadRequest},
	KindUnrecognisedAttribute:    {"unrecognised-attribute", CodeNotRecognised, StatusBadRequest},
	KindRequiredRelationship:     {"required-relationship", CodeRequired, StatusBadRequest},
	KindUnrecognisedRelationship: {"unrecognised-relationship", CodeNotRecognised, StatusBadRequest},
	KindTypeMismatch:             {"type-mismatch", CodeUnsupportedType, StatusBadRequest},
	KindTypeConflict:             {"type-conflict", CodeUnsupportedType, StatusConflict},
	KindIDConflict:               {"id-conflict", CodeUnsupportedID, StatusConflict},
	KindRelationshipRequired:     {"missing-relationship-data", CodeRequired, StatusBadRequest},
	KindHasOneExpected:           {"has-one-expected", CodeInvalid, StatusBadRequest},
	KindHasManyExpected:          {"has-many-expected", CodeInvalid, StatusBadRequest},
	KindRelationshipEmpty:        {"relationship-empty", CodeInvalid, StatusUnprocessable},
	KindNotFound:                 {"not-found", CodeNotFound, StatusNotFound},
	KindNotAcceptable:            {"not-acceptable", CodeInvalid, StatusUnprocessable},
	KindMissingData:              {"missing-data", CodeMissingData, StatusBadRequest},
	KindDuplicateKey:             {"duplicate-key", CodeDuplicateKey, StatusBadRequest},
	KindParseError:               {"parse-error", CodeParseError, StatusBadRequest},
	KindDependencyUnavailable:    {"dependency-unavailable", CodeDependencyUnavailable, StatusServiceUnavailable},
}

func (k Kind) spec() kindSpec {
	s, ok := kindTable[k]
	if !ok {
		panic(fmt.Sprintf("jsonapiv: unknown error kind %d", int(k)))
	}
	return s
}

// Code returns the wire code of k.
func (k Kind) Code() string { return k.spec().code }

// Status returns the HTTP status of k.
func (k Kind) Status() Status { return k.spec().status }

func (k Kind) String() string { return k.spec().id }

// Source locates an Error inside the request document.
type Source struct {
	Pointer Path
}

// Error is one validation failure.
type Error struct {
	Kind   Kind
	Code   string
	Title  string
	Detail string
	Status Status
	Source Source
	Meta   map[string]any
}

// NewError builds an Error from the template of kind. data fills the detail
// placeholders (for example {key} or {expected}).
func NewError(kind Kind, data map[string]string) Error {
	return newErrorDetail(kind, kind.String(), data)
}

func newErrorDetail(kind Kind, detailID string, data map[string]string) Error {
	s := kind.spec()
	return Error{
		Kind:   kind,
		Code:   s.code,
		Title:  i18n.Title(s.id),
		Detail: i18n.Detail(detailID, data),
		Status: s.status,
	}
}

// WithSource returns a copy of e located at p.
func (e Error) WithSource(p Path) Error {
	e.Source = Source{Pointer: p}
	return e
}

// WithMeta returns a copy of e carrying one more meta member.
func (e Error) WithMeta(key string, v any) Error {
	m := make(map[string]any, len(e.Meta)+1)
	for k, x := range e.Meta {
		m[k] = x
	}
	m[key] = v
	e.Meta = m
	return e
}

// Pointer is shorthand for e.Source.Pointer.Pointer().
func (e Error) Pointer() string { return e.Source.Pointer.Pointer() }

func (e Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Pointer(), e.Detail)
}

// Errors is an ordered collection of validation failures. It implements
// error so it can travel through error returns; use AsErrors to recover it.
type Errors []Error

// Add appends errs as they are.
func (e *Errors) Add(errs ...Error) { *e = append(*e, errs...) }

// Merge copies every entry of other into e with prefix prepended to its
// pointer. other is left untouched.
func (e *Errors) Merge(other Errors, prefix Path) {
	if len(other) == 0 {
		return
	}
	out := *e
	if out == nil {
		out = make(Errors, 0, len(other))
	}
	for _, it := range other {
		it.Source = Source{Pointer: prefix.Join(it.Source.Pointer)}
		out = append(out, it)
	}
	*e = out
}

func (e Errors) IsEmpty() bool { return len(e) == 0 }

func (e Errors) Len() int { return len(e) }

// Clear empties e, keeping its capacity.
func (e *Errors) Clear() { *e = (*e)[:0] }

// Codes lists the codes in order.
func (e Errors) Codes() []string {
	out := make([]string, 0, len(e))
	for _, it := range e {
		out = append(out, it.Code)
	}
	return out
}

// Pointers lists the rendered pointers in order.
func (e Errors) Pointers() []string {
	out := make([]string, 0, len(e))
	for _, it := range e {
		out = append(out, it.Pointer())
	}
	return out
}

// Error summarizes the first few entries.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(e)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", e[i].Code, e[i].Pointer())
	}
	if len(e) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(e))
	}
	return b.String()
}

// Err returns e as an error, or nil when e is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsErrors extracts Errors from err.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	var single Error
	if errors.As(err, &single) {
		return Errors{single}, true
	}
	return nil, false
}

// ErrMisconfigured marks programmer errors in validator construction. It is
// raised through panics and never appears in an Errors collection.
var ErrMisconfigured = errors.New("jsonapiv: misconfigured validator")

func misconfigured(format string, args ...any) {
	panic(errors.Wrapf(ErrMisconfigured, format, args...))
}
