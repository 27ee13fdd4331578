// Package render turns validation Errors into JSON:API error documents and
// picks the HTTP status for a response.
package render

import (
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/reoring/jsonapiv"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// ErrorDocument is the top-level {"errors": [...]} document.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// ErrorObject is one JSON:API error object. Status is a string as the
// format requires.
type ErrorObject struct {
	Status string         `json:"status"`
	Code   string         `json:"code"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Source *Source        `json:"source,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

type Source struct {
	Pointer string `json:"pointer"`
}

// Document converts errs into an ErrorDocument, keeping their order.
func Document(errs jsonapiv.Errors) ErrorDocument {
	out := ErrorDocument{Errors: make([]ErrorObject, 0, len(errs))}
	for _, e := range errs {
		obj := ErrorObject{
			Status: e.Status.String(),
			Code:   e.Code,
			Title:  e.Title,
			Detail: e.Detail,
			Source: &Source{Pointer: e.Pointer()},
		}
		if len(e.Meta) > 0 {
			obj.Meta = e.Meta
		}
		out.Errors = append(out.Errors, obj)
	}
	return out
}

// Status picks the response status for errs. A single distinct status is
// used as is. Several distinct statuses collapse to fallback when given,
// otherwise to 400 when all are 4xx and to 500 when any is not. An empty
// collection yields fallback or 400.
func Status(errs jsonapiv.Errors, fallback ...jsonapiv.Status) jsonapiv.Status {
	if len(errs) == 0 {
		if len(fallback) > 0 {
			return fallback[0]
		}
		return jsonapiv.StatusBadRequest
	}
	first := errs[0].Status
	allClient := true
	same := true
	for _, e := range errs {
		if e.Status != first {
			same = false
		}
		if e.Status.Family() != jsonapiv.StatusBadRequest {
			allClient = false
		}
	}
	switch {
	case same:
		return first
	case len(fallback) > 0:
		return fallback[0]
	case allClient:
		return jsonapiv.StatusBadRequest
	default:
		return jsonapiv.StatusInternalError
	}
}

// Write renders errs as a JSON:API error document with the collapsed
// status.
func Write(w http.ResponseWriter, errs jsonapiv.Errors, fallback ...jsonapiv.Status) error {
	body, err := gojson.Marshal(Document(errs))
	if err != nil {
		return errors.Wrap(err, "render: marshal error document")
	}
	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(int(Status(errs, fallback...)))
	if _, err := w.Write(body); err != nil {
		return errors.Wrap(err, "render: write error document")
	}
	return nil
}
