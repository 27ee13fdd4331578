// Package middleware validates JSON:API request documents at the HTTP
// boundary. The net/http adapter lives here; gin and echo adapters live in
// their own modules and share Check.
package middleware

import (
	"context"
	"io"
	"net/http"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/render"
	"github.com/reoring/jsonapiv/resolver"
)

// DefaultMaxBytes bounds request bodies when Options leaves it unset.
const DefaultMaxBytes = 1 << 20

// ctxKeyDocument is the context key for the decoded request document.
type ctxKeyDocument struct{}

// ContextWithValue attaches the decoded document to ctx.
func ContextWithValue(ctx context.Context, doc jsonapiv.Value) context.Context {
	return context.WithValue(ctx, ctxKeyDocument{}, doc)
}

// ValueFromContext retrieves the document stored by Validate.
func ValueFromContext(ctx context.Context) (jsonapiv.Value, bool) {
	v, ok := ctx.Value(ctxKeyDocument{}).(jsonapiv.Value)
	return v, ok
}

// Options controls request validation.
type Options struct {
	// Decode configures body decoding. Nil selects the DefaultOptions
	// decoding; a non-nil value is used as given.
	Decode *jsonapiv.DecodeOpt
	// Status overrides the collapsed status when errors disagree.
	Status jsonapiv.Status
	// Before runs after decoding and before validation, e.g. to warm a
	// resolver.Store with the document's identifiers. Errors it returns
	// reject the request.
	Before func(ctx context.Context, doc jsonapiv.Value) jsonapiv.Errors
	// Store, when set, creates the request's resolver.Store. It is attached
	// to the context and warmed with the identifiers the primary data links
	// to before validation.
	Store func() *resolver.Store
}

// DefaultOptions returns a recommended default for HTTP JSON boundaries:
// duplicate members are errors, depth is bounded and bodies are capped at
// DefaultMaxBytes.
func DefaultOptions() Options {
	opt := jsonapiv.DefaultDecodeOpt()
	opt.MaxBytes = DefaultMaxBytes
	return Options{Decode: &opt}
}

func (o Options) decodeOpt() jsonapiv.DecodeOpt {
	if o.Decode == nil {
		return *DefaultOptions().Decode
	}
	return *o.Decode
}

// Check decodes body and validates it with v. Decoding failures are reported
// as Errors like validation failures. The returned context carries the
// request's Store when opt.Store is set.
func Check(ctx context.Context, v jsonapiv.Validator, body io.Reader, opt Options) (context.Context, jsonapiv.Value, jsonapiv.Errors) {
	doc, err := jsonapiv.DecodeJSONReader(ctx, body, opt.decodeOpt())
	if err != nil {
		return ctx, jsonapiv.Value{}, asErrors(err)
	}
	if opt.Store != nil {
		store := opt.Store()
		ctx = resolver.WithStore(ctx, store)
		if data, ok := doc.Get("data"); ok {
			ids := resolver.Related(data)
			if _, isResource := data.Get("relationships"); !isResource {
				ids = resolver.Linkage(data)
			}
			// failed lookups are memoized and resurface per identifier
			_ = store.Warm(ctx, ids)
		}
	}
	if opt.Before != nil {
		if errs := opt.Before(ctx, doc); !errs.IsEmpty() {
			return ctx, jsonapiv.Value{}, errs
		}
	}
	if errs := v.Validate(ctx, doc); !errs.IsEmpty() {
		return ctx, jsonapiv.Value{}, errs
	}
	return ctx, doc, nil
}

// StatusFor collapses errs to the response status honouring opt.Status.
func StatusFor(errs jsonapiv.Errors, opt Options) jsonapiv.Status {
	if opt.Status != 0 {
		return render.Status(errs, opt.Status)
	}
	return render.Status(errs)
}

// Validate returns net/http middleware that rejects invalid documents with a
// JSON:API error document and otherwise stores the decoded document in the
// request context.
func Validate(v jsonapiv.Validator, opt Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, doc, errs := Check(r.Context(), v, r.Body, opt)
			if !errs.IsEmpty() {
				_ = render.Write(w, errs, StatusFor(errs, opt))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(ctx, doc)))
		})
	}
}

func asErrors(err error) jsonapiv.Errors {
	if errs, ok := jsonapiv.AsErrors(err); ok {
		return errs
	}
	return jsonapiv.Errors{jsonapiv.NewError(jsonapiv.KindParseError, map[string]string{"reason": err.Error()})}
}
