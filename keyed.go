package jsonapiv

import "context"

// KeyedValidator validates the member set of an object: an optional
// allow-list, required members and per-member child validators.
//
// Errors for present members follow the input's member order; errors for
// missing required members follow afterwards in configuration order.
type KeyedValidator struct {
	allowed      map[string]struct{} // nil permits any member
	allowedOrder []string
	required     []string
	children     map[string]Validator
	fallback     Validator // used for members without a child; may be nil
	unknownKind  Kind
	requiredKind Kind
}

var _ Validator = (*KeyedValidator)(nil)

// KeyedBuilder assembles a KeyedValidator.
type KeyedBuilder struct {
	kv    KeyedValidator
	built bool
}

// Keyed starts a generic keyed validator. Unknown members raise
// CodeUnrecognisedKey; missing required members raise CodeRequired.
func Keyed() *KeyedBuilder {
	return newKeyedBuilder(KindUnrecognisedKey, KindRequired)
}

func newKeyedBuilder(unknown, required Kind) *KeyedBuilder {
	return &KeyedBuilder{kv: KeyedValidator{
		children:     map[string]Validator{},
		unknownKind:  unknown,
		requiredKind: required,
	}}
}

// Allow switches on strict allow-listing and adds keys to the list.
// Allow() with no keys forbids every member.
func (b *KeyedBuilder) Allow(keys ...string) *KeyedBuilder {
	if b.kv.allowed == nil {
		b.kv.allowed = map[string]struct{}{}
	}
	for _, k := range keys {
		if _, dup := b.kv.allowed[k]; dup {
			continue
		}
		b.kv.allowed[k] = struct{}{}
		b.kv.allowedOrder = append(b.kv.allowedOrder, k)
	}
	return b
}

// Require marks keys as required. Order is kept; repeats are ignored.
func (b *KeyedBuilder) Require(keys ...string) *KeyedBuilder {
	for _, k := range keys {
		if !contains(b.kv.required, k) {
			b.kv.required = append(b.kv.required, k)
		}
	}
	return b
}

// Field registers the child validator for key. It does not touch the
// allow-list.
func (b *KeyedBuilder) Field(key string, v Validator) *KeyedBuilder {
	if v == nil {
		misconfigured("nil validator for member %q", key)
	}
	b.kv.children[key] = v
	return b
}

// Default sets the validator used for members that have no child.
func (b *KeyedBuilder) Default(v Validator) *KeyedBuilder {
	b.kv.fallback = v
	return b
}

// Build returns the configured validator. The builder must not be reused.
func (b *KeyedBuilder) Build() *KeyedValidator {
	if b.built {
		misconfigured("keyed builder reused after Build")
	}
	b.built = true
	kv := b.kv
	return &kv
}

// AllowedKeys returns the allow-list and whether allow-listing is active.
func (k *KeyedValidator) AllowedKeys() ([]string, bool) {
	if k.allowed == nil {
		return nil, false
	}
	return append([]string(nil), k.allowedOrder...), true
}

// RequiredKeys returns the required members in configuration order.
func (k *KeyedValidator) RequiredKeys() []string { return append([]string(nil), k.required...) }

// IsAllowed reports whether key may appear.
func (k *KeyedValidator) IsAllowed(key string) bool {
	if k.allowed == nil {
		return true
	}
	_, ok := k.allowed[key]
	return ok
}

// Child returns the validator registered for key, if any.
func (k *KeyedValidator) Child(key string) (Validator, bool) {
	v, ok := k.children[key]
	return v, ok
}

func (k *KeyedValidator) Validate(ctx context.Context, v Value) Errors {
	obj, ok := v.AsObject()
	if !ok {
		return errorsAt(Root(), newErrorDetail(KindInvalidValue, "expect-object", nil))
	}
	var out Errors
	for _, key := range obj.Keys() {
		if !k.IsAllowed(key) {
			out.Add(NewError(k.unknownKind, keyData(key)).WithSource(PathOf(key)))
			continue
		}
		child, ok := k.Child(key)
		if !ok {
			if k.fallback == nil {
				continue
			}
			child = k.fallback
		}
		member, _ := obj.Get(key)
		out.Merge(child.Validate(ctx, member), PathOf(key))
	}
	for _, key := range k.required {
		if !obj.Has(key) {
			out.Add(NewError(k.requiredKind, keyData(key)).WithSource(PathOf(key)))
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
