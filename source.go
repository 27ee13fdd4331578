package jsonapiv

import (
	"io"
	"sync"

	eng "github.com/reoring/jsonapiv/internal/engine"
	jsonsrc "github.com/reoring/jsonapiv/source/json"
)

// Token and TokenStream expose the engine's token stream so drivers outside the
// root package can feed the decoder.
type (
	Token       = eng.Token
	TokenKind   = eng.Kind
	TokenStream = eng.TokenSource
)

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// JSONDriver converts JSON input into a TokenStream via a pluggable SPI. The
// default implementation is based on encoding/json; importing
// github.com/reoring/jsonapiv/source switches to goccy/go-json.
type JSONDriver interface {
	NewReader(r io.Reader) TokenStream
	NewBytes(b []byte) TokenStream
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by DecodeJSON.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) TokenStream { return jsonsrc.NewReader(r) }
func (defaultJSONDriver) NewBytes(b []byte) TokenStream     { return jsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string                      { return "encoding/json" }
