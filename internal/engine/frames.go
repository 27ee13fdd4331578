package engine

// Frames tracks container nesting for decoders whose token API does not
// distinguish object member names from string values.
type Frames struct {
	stack []nestFrame
}

type nestFrame struct {
	object       bool
	expectingKey bool
}

// Delim maps a structural delimiter to its Kind and updates the nesting.
func (f *Frames) Delim(d rune) Kind {
	switch d {
	case '{':
		f.stack = append(f.stack, nestFrame{object: true, expectingKey: true})
		return KindBeginObject
	case '[':
		f.stack = append(f.stack, nestFrame{})
		return KindBeginArray
	case '}':
		f.pop()
		return KindEndObject
	default:
		f.pop()
		return KindEndArray
	}
}

// String classifies a string token as a member name or a value.
func (f *Frames) String() Kind {
	if n := len(f.stack); n > 0 && f.stack[n-1].object && f.stack[n-1].expectingKey {
		f.stack[n-1].expectingKey = false
		return KindKey
	}
	f.valueDone()
	return KindString
}

// Scalar records a non-string scalar value of kind k.
func (f *Frames) Scalar(k Kind) Kind {
	f.valueDone()
	return k
}

func (f *Frames) pop() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	// a closed container completes the enclosing member
	f.valueDone()
}

func (f *Frames) valueDone() {
	if n := len(f.stack); n > 0 && f.stack[n-1].object && !f.stack[n-1].expectingKey {
		f.stack[n-1].expectingKey = true
	}
}
