// Package jsonapiv validates JSON:API request documents.
//
// - A Value union models the parsed document (null, bool, number, string,
//   array, ordered object); numbers remember whether they were integral
// - Validators compose at construction time: leaf type checks, Keyed
//   member rules, Attributes, HasOne/HasMany relationships, Resource and
//   Document envelopes
// - Failures come back as Errors: ordered, typed (code, title, detail,
//   HTTP status) and located by a JSON Pointer relative to the document root
//
// Design policy:
// - Keep the public API in the root package; drivers live under source/,
//   the error document under render/, the resolver under resolver/.
// - Validators hold configuration only. Validate returns a fresh Errors on
//   every call, so one validator may serve concurrent requests.
// - Misconfiguration panics with ErrMisconfigured; it is never reported as
//   a validation failure.
//
// Typical usage:
//
//	posts := jsonapiv.Document(jsonapiv.Resource("posts",
//		jsonapiv.ExpectID("5"),
//		jsonapiv.WithAttributes(jsonapiv.Attributes().
//			Require("title", "body").
//			Field("title", jsonapiv.StringType()).
//			Build()),
//		jsonapiv.WithRelationships(jsonapiv.Relationships().
//			Allow("author").
//			Field("author", jsonapiv.HasOne("users", jsonapiv.Required())).
//			Build()),
//	))
//
//	doc, err := jsonapiv.DecodeJSON(ctx, body)
//	errs := posts.Validate(ctx, doc)
package jsonapiv
