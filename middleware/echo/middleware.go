package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/middleware"
	"github.com/reoring/jsonapiv/render"
)

// Validate decodes and validates the request document with v, stores it in
// the request context on success, or responds with a JSON:API error
// document.
func Validate(v jsonapiv.Validator, opt middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, doc, errs := middleware.Check(c.Request().Context(), v, c.Request().Body, opt)
			if !errs.IsEmpty() {
				return render.Write(c.Response(), errs, middleware.StatusFor(errs, opt))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithValue(ctx, doc)))
			return next(c)
		}
	}
}

// GetDocument fetches the validated document from echo.Context.
func GetDocument(c echo.Context) (jsonapiv.Value, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}
