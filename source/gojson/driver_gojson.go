package gojson

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonapiv"
	eng "github.com/reoring/jsonapiv/internal/engine"
)

// Driver returns a jsonapiv.JSONDriver backed by goccy/go-json.
func Driver() jsonapiv.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonapiv.TokenStream { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) jsonapiv.TokenStream     { return NewBytes(b) }
func (driverGoJSON) Name() string                               { return "go-json" }

type source struct {
	dec    *j.Decoder
	frames eng.Frames
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch v := tok.(type) {
	case j.Delim:
		return eng.Token{Kind: s.frames.Delim(rune(v)), Offset: off}, nil
	case string:
		return eng.Token{Kind: s.frames.String(), String: v, Offset: off}, nil
	case bool:
		return eng.Token{Kind: s.frames.Scalar(eng.KindBool), Bool: v, Offset: off}, nil
	case j.Number:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNumber), Number: string(v), Offset: off}, nil
	case float64:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNumber), Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	case nil:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNull), Offset: off}, nil
	}
	return eng.Token{}, fmt.Errorf("gojson: unexpected token %T", tok)
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
