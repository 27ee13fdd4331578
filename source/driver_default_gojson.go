package source

import (
	"github.com/reoring/jsonapiv"
	drvgojson "github.com/reoring/jsonapiv/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { jsonapiv.SetJSONDriver(drvgojson.Driver()) }
