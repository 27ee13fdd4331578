package jsonapiv

import (
	"strconv"
	"strings"
)

// Path is an immutable JSON Pointer under construction. Validators record
// paths relative to the value they inspect; Errors.Merge prepends the
// parent's segment as validation unwinds, so a finished error always carries
// a pointer relative to the document root.
type Path struct {
	parts []string
}

// Root is the empty path.
func Root() Path { return Path{} }

// PathOf builds a path from unescaped segments.
func PathOf(segments ...string) Path {
	if len(segments) == 0 {
		return Path{}
	}
	return Path{parts: append([]string(nil), segments...)}
}

// ParsePointer splits an RFC 6901 pointer into segments. "" and "/" are root.
func ParsePointer(p string) Path {
	if p == "" || p == "/" {
		return Path{}
	}
	raw := strings.Split(strings.TrimPrefix(p, "/"), "/")
	parts := make([]string, 0, len(raw))
	for _, r := range raw {
		parts = append(parts, pointerUnescaper.Replace(r))
	}
	return Path{parts: parts}
}

// Field returns p extended by a member name.
func (p Path) Field(name string) Path {
	return Path{parts: append(append(make([]string, 0, len(p.parts)+1), p.parts...), name)}
}

// Index returns p extended by an array index.
func (p Path) Index(i int) Path { return p.Field(strconv.Itoa(i)) }

// Join returns p followed by every segment of child.
func (p Path) Join(child Path) Path {
	if len(child.parts) == 0 {
		return p
	}
	if len(p.parts) == 0 {
		return child
	}
	out := make([]string, 0, len(p.parts)+len(child.parts))
	out = append(out, p.parts...)
	return Path{parts: append(out, child.parts...)}
}

// Segments returns a copy of the unescaped segments.
func (p Path) Segments() []string { return append([]string(nil), p.parts...) }

func (p Path) IsRoot() bool { return len(p.parts) == 0 }

func (p Path) Equal(o Path) bool {
	if len(p.parts) != len(o.parts) {
		return false
	}
	for i := range p.parts {
		if p.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Pointer renders p; the root renders as "/".
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p.parts {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }
