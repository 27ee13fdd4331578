package jsonapiv

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses the first YAML document in data into a Value. Mapping
// order is kept; !!int scalars become integral numbers and !!float scalars
// floating ones. Duplicate mapping keys follow opt.OnDuplicateKey and depth
// follows opt.MaxDepth.
func DecodeYAML(ctx context.Context, data []byte, opts ...DecodeOpt) (Value, error) {
	opt := pickDecodeOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Value{}, tooLarge(opt.MaxBytes)
	}
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, parseFailure("empty input")
		}
		return Value{}, parseFailure(strings.TrimPrefix(err.Error(), "yaml: "))
	}
	if doc.Kind == 0 {
		return Value{}, parseFailure("empty input")
	}
	y := yamlDecoder{ctx: ctx, opt: opt}
	return y.node(&doc, Root(), 0)
}

type yamlDecoder struct {
	ctx context.Context
	opt DecodeOpt
}

func (y yamlDecoder) node(n *yaml.Node, at Path, depth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return y.node(n.Content[0], at, depth)
	case yaml.AliasNode:
		return y.node(n.Alias, at, depth)
	case yaml.MappingNode:
		if err := y.enter(at, depth); err != nil {
			return Value{}, err
		}
		return y.mapping(n, at, depth+1)
	case yaml.SequenceNode:
		if err := y.enter(at, depth); err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := y.node(c, at.Index(i), depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case yaml.ScalarNode:
		return yamlScalar(n, at)
	}
	return Value{}, parseFailure("unsupported YAML node")
}

func (y yamlDecoder) enter(at Path, depth int) error {
	if err := y.ctx.Err(); err != nil {
		return err
	}
	if y.opt.MaxDepth > 0 && depth+1 > y.opt.MaxDepth {
		e := NewError(KindParseError, map[string]string{"reason": "max depth exceeded"})
		return Errors{e.WithSource(at)}
	}
	return nil
}

func (y yamlDecoder) mapping(n *yaml.Node, at Path, depth int) (Value, error) {
	o := NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return Value{}, Errors{NewError(KindParseError, map[string]string{"reason": "mapping keys must be scalars"}).WithSource(at)}
		}
		key := k.Value
		if o.Has(key) {
			dup := NewError(KindDuplicateKey, keyData(key)).WithSource(at.Field(key))
			switch y.opt.OnDuplicateKey {
			case SeverityError:
				return Value{}, Errors{dup}
			case SeverityWarn:
				if y.opt.Warnings != nil {
					y.opt.Warnings(dup)
				}
			}
		}
		v, err := y.node(vn, at.Field(key), depth)
		if err != nil {
			return Value{}, err
		}
		o.Set(key, v)
	}
	return ObjectValue(o), nil
}

func yamlScalar(n *yaml.Node, at Path) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, scalarFailure(at, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, scalarFailure(at, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, scalarFailure(at, err)
		}
		if num, err := ParseNumber(n.Value); err == nil && num.IsFloat() {
			return NumberValue(num), nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, scalarFailure(at, errors.Errorf("%s is not a finite number", n.Value))
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

func scalarFailure(at Path, err error) error {
	return Errors{NewError(KindParseError, map[string]string{"reason": err.Error()}).WithSource(at)}
}
