package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/middleware"
	"github.com/reoring/jsonapiv/render"
)

// Validate decodes and validates the request document with v, stores it in
// the request context on success, and otherwise aborts with a JSON:API error
// document.
func Validate(v jsonapiv.Validator, opt middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, doc, errs := middleware.Check(c.Request.Context(), v, c.Request.Body, opt)
		if !errs.IsEmpty() {
			c.Header("Content-Type", render.MediaType)
			c.AbortWithStatusJSON(int(middleware.StatusFor(errs, opt)), render.Document(errs))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(ctx, doc))
		c.Next()
	}
}

// GetDocument fetches the validated document from gin.Context.
func GetDocument(c *gin.Context) (jsonapiv.Value, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}
