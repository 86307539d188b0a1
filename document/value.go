package document

import (
	"iter"
	"math"
	"strconv"
)

// Kind identifies which JSON type a Value holds.
type Kind uint8

const (
	// KindNull is the JSON null. The zero Value is null.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is a JSON number kept as its literal text.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered list of values.
	KindArray
	// KindObject is an ordered set of key/value members.
	KindObject
)

// String returns the JSON type name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a generic JSON value. Objects keep their members in source order
// and numbers keep their literal text, so a document survives a parse and
// re-encode without reordering or float round-off.
//
// Copying a Value is shallow: arrays and objects share their backing storage.
// Use Clone for an independent copy.
type Value struct {
	kind  Kind
	b     bool
	text  string
	items []Value
	obj   *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value from its JSON literal text, e.g. "3.0" or "-1e9".
// The literal is checked when the value is encoded.
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Int returns a number value for n.
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// Float returns a number value for f using the shortest exact representation.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Array returns an array value holding items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// FromObject wraps o as a value. A nil object becomes an empty one.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// NumberLiteral returns the literal text of a number value.
func (v Value) NumberLiteral() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// Items returns the elements of an array value, or nil.
// The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Object returns the members of an object value, or nil.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get returns the member named key when v is an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Len returns the number of elements or members, or 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Truthy reports whether v counts as present in a loose presence check:
// null, false, zero, NaN and the empty string do not; everything else,
// including empty arrays and objects, does.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			// out of range literals are huge, hence non-zero
			return true
		}
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.text != ""
	default:
		return true
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports whether v and other hold the same JSON data. Object member
// order is ignored; numbers compare by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

// Object is an ordered set of JSON object members. Setting an existing key
// replaces its value in place, keeping the key's original position.
type Object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Set stores val under key, appending the key if it is new.
func (o *Object) Set(key string, val Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = val
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.keys); j++ {
		o.index[o.keys[j]] = j
	}
	return true
}

// All iterates over the members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}

// ShallowCopy returns a new object with the same members. Nested arrays and
// objects are shared with o.
func (o *Object) ShallowCopy() *Object {
	out := &Object{
		keys:  make([]string, len(o.keys)),
		vals:  make([]Value, len(o.vals)),
		index: make(map[string]int, len(o.keys)),
	}
	copy(out.keys, o.keys)
	copy(out.vals, o.vals)
	for k, i := range o.index {
		out.index[k] = i
	}
	return out
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	out := o.ShallowCopy()
	for i := range out.vals {
		out.vals[i] = out.vals[i].Clone()
	}
	return out
}

// Equal reports whether both objects hold the same members, in any order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.All() {
		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
