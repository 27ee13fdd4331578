package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	eng "github.com/reoring/jsonapiv/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	frames     eng.Frames
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		return eng.Token{Kind: s.frames.Delim(rune(v)), Offset: s.lastOffset}, nil
	case string:
		return eng.Token{Kind: s.frames.String(), String: v, Offset: s.lastOffset}, nil
	case bool:
		return eng.Token{Kind: s.frames.Scalar(eng.KindBool), Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNumber), Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNumber), Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}, nil
	case nil:
		return eng.Token{Kind: s.frames.Scalar(eng.KindNull), Offset: s.lastOffset}, nil
	}
	return eng.Token{}, fmt.Errorf("json: unexpected token %T", tok)
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
