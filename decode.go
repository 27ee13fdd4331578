package jsonapiv

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"

	eng "github.com/reoring/jsonapiv/internal/engine"
)

// DecodeJSON parses data into a Value with the current JSON driver. The last
// opt wins; with none, DefaultDecodeOpt applies. Syntax and enforcement
// failures are returned as Errors.
func DecodeJSON(ctx context.Context, data []byte, opts ...DecodeOpt) (Value, error) {
	opt := pickDecodeOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Value{}, tooLarge(opt.MaxBytes)
	}
	return DecodeSource(ctx, CurrentJSONDriver().NewBytes(data), opt)
}

// DecodeJSONReader is DecodeJSON over a reader. MaxBytes is enforced before
// parsing starts.
func DecodeJSONReader(ctx context.Context, r io.Reader, opts ...DecodeOpt) (Value, error) {
	opt := pickDecodeOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return Value{}, errors.Wrap(err, "jsonapiv: read input")
		}
		if int64(len(data)) > opt.MaxBytes {
			return Value{}, tooLarge(opt.MaxBytes)
		}
		r = bytes.NewReader(data)
	}
	return DecodeSource(ctx, CurrentJSONDriver().NewReader(r), opt)
}

// DecodeSource builds a Value from any TokenStream, applying duplicate-key
// and depth enforcement. Exactly one top-level value is accepted.
func DecodeSource(ctx context.Context, src TokenStream, opts ...DecodeOpt) (Value, error) {
	opt := pickDecodeOpt(opts)
	var report func(eng.Violation)
	if opt.Warnings != nil {
		report = func(v eng.Violation) {
			if v.Code == eng.CodeDuplicateKey && opt.OnDuplicateKey == SeverityWarn {
				opt.Warnings(violationError(v, opt.MaxBytes))
			}
		}
	}
	enforced := eng.Enforce(src, eng.Limits{
		Duplicates: toDupPolicy(opt.OnDuplicateKey),
		MaxDepth:   opt.MaxDepth,
		MaxBytes:   opt.MaxBytes,
		Report:     report,
	})
	d := &decoder{ctx: ctx, src: enforced, maxBytes: opt.MaxBytes}
	tok, err := enforced.NextToken()
	if err != nil {
		if err == io.EOF {
			return Value{}, parseFailure("empty input")
		}
		return Value{}, d.fail(err)
	}
	v, err := d.value(tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := enforced.NextToken(); err != io.EOF {
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Value{}, parseFailure("unexpected data after the top-level value")
	}
	return v, nil
}

func pickDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DefaultDecodeOpt()
	}
	return opts[len(opts)-1]
}

type decoder struct {
	ctx      context.Context
	src      TokenStream
	maxBytes int64
}

func (d *decoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		if err == io.EOF {
			return Token{}, parseFailure("unexpected end of input")
		}
		return Token{}, d.fail(err)
	}
	return tok, nil
}

func (d *decoder) value(tok Token) (Value, error) {
	switch tok.Kind {
	case TokenBeginObject:
		if err := d.ctx.Err(); err != nil {
			return Value{}, err
		}
		return d.object()
	case TokenBeginArray:
		if err := d.ctx.Err(); err != nil {
			return Value{}, err
		}
		return d.array()
	case TokenString:
		return String(tok.String), nil
	case TokenNumber:
		n, err := ParseNumber(tok.Number)
		if err != nil {
			return Value{}, parseFailure("invalid number " + tok.Number)
		}
		return NumberValue(n), nil
	case TokenBool:
		return Bool(tok.Bool), nil
	case TokenNull:
		return Null(), nil
	default:
		return Value{}, parseFailure("unexpected " + tok.Kind.String())
	}
}

func (d *decoder) object() (Value, error) {
	o := NewObject()
	for {
		tok, err := d.next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == TokenEndObject {
			return ObjectValue(o), nil
		}
		if tok.Kind != TokenKey {
			return Value{}, parseFailure("expected a member name")
		}
		vt, err := d.next()
		if err != nil {
			return Value{}, err
		}
		v, err := d.value(vt)
		if err != nil {
			return Value{}, err
		}
		// with duplicates tolerated the last occurrence wins
		o.Set(tok.String, v)
	}
}

func (d *decoder) array() (Value, error) {
	items := []Value{}
	for {
		tok, err := d.next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == TokenEndArray {
			return Array(items...), nil
		}
		v, err := d.value(tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

// fail converts driver and enforcement errors into Errors.
func (d *decoder) fail(err error) error {
	var v eng.Violation
	if errors.As(err, &v) {
		return Errors{violationError(v, d.maxBytes)}
	}
	return parseFailure(err.Error())
}

func violationError(v eng.Violation, limit int64) Error {
	p := ParsePointer(v.Pointer)
	switch v.Code {
	case eng.CodeDuplicateKey:
		return NewError(KindDuplicateKey, keyData(v.Key)).WithSource(p)
	case eng.CodeMaxBytes:
		return NewError(KindParseError, map[string]string{"reason": v.Message}).WithSource(p).WithMeta("maxBytes", limit)
	}
	return NewError(KindParseError, map[string]string{"reason": v.Message}).WithSource(p)
}

func parseFailure(reason string) Errors {
	return Errors{NewError(KindParseError, map[string]string{"reason": reason}).WithSource(Root())}
}

func tooLarge(limit int64) Errors {
	e := NewError(KindParseError, map[string]string{"reason": "max bytes exceeded"})
	return Errors{e.WithSource(Root()).WithMeta("maxBytes", limit)}
}

func toDupPolicy(s Severity) eng.DupPolicy {
	switch s {
	case SeverityError:
		return eng.DupError
	case SeverityWarn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
