package engine

import (
	"strconv"
	"strings"
)

// Limits configures Enforce.
type Limits struct {
	Duplicates DupPolicy
	MaxDepth   int
	MaxBytes   int64
	// Report sees every violation, fatal or not. Duplicate warnings are only
	// visible here.
	Report func(Violation)
}

type frame struct {
	object      bool
	seen        map[string]struct{}
	member      string
	awaitingKey bool
	next        int
}

// Enforce wraps inner so that duplicate member names, nesting depth and
// consumed bytes are checked as tokens stream past. A fatal breach is
// returned from NextToken as a Violation.
func Enforce(inner TokenSource, lim Limits) TokenSource {
	return &enforcer{inner: inner, lim: lim}
}

type enforcer struct {
	inner TokenSource
	lim   Limits
	stack []frame
	// path holds the segments of the innermost open container; the
	// outermost container has none.
	path []string
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if len(e.stack) > 0 {
			e.path = append(e.path, e.consume())
		}
		f := frame{object: tok.Kind == KindBeginObject}
		if f.object {
			f.seen = make(map[string]struct{})
			f.awaitingKey = true
		}
		e.stack = append(e.stack, f)
		if e.lim.MaxDepth > 0 && len(e.stack) > e.lim.MaxDepth {
			return Token{}, e.fail(Violation{Code: CodeMaxDepth, Pointer: pointer(e.path), Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		e.pop()
	case KindKey:
		if err := e.member(tok.String); err != nil {
			return Token{}, err
		}
	default:
		if len(e.stack) > 0 {
			e.consume()
		}
	}
	if e.lim.MaxBytes > 0 {
		if off := e.Location(); off > e.lim.MaxBytes {
			return Token{}, e.fail(Violation{Code: CodeMaxBytes, Pointer: pointer(e.path), Message: "max bytes exceeded"})
		}
	}
	return tok, nil
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

func (e *enforcer) member(name string) error {
	if len(e.stack) == 0 {
		return nil
	}
	top := &e.stack[len(e.stack)-1]
	if !top.object {
		return nil
	}
	top.member = name
	top.awaitingKey = false
	if _, dup := top.seen[name]; dup && e.lim.Duplicates != DupIgnore {
		v := Violation{
			Code:    CodeDuplicateKey,
			Pointer: pointer(append(e.path[:len(e.path):len(e.path)], name)),
			Key:     name,
			Message: "key '" + name + "' duplicated",
		}
		if e.lim.Duplicates == DupError {
			return e.fail(v)
		}
		e.report(v)
	}
	top.seen[name] = struct{}{}
	return nil
}

// consume marks the next value of the innermost container as seen and
// returns its segment.
func (e *enforcer) consume() string {
	top := &e.stack[len(e.stack)-1]
	if top.object {
		top.awaitingKey = true
		return top.member
	}
	seg := strconv.Itoa(top.next)
	top.next++
	return seg
}

func (e *enforcer) pop() {
	if len(e.stack) == 0 {
		return
	}
	e.stack = e.stack[:len(e.stack)-1]
	if n := len(e.stack); n == 0 {
		e.path = e.path[:0]
	} else {
		e.path = e.path[:n-1]
	}
}

func (e *enforcer) report(v Violation) {
	if e.lim.Report != nil {
		e.lim.Report(v)
	}
}

func (e *enforcer) fail(v Violation) error {
	e.report(v)
	return v
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointer(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s))
	}
	return b.String()
}
