package hier

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ListKind
	MapKind
)

// Value is a typed attribute value: a tagged union over the scalar
// kinds plus recursive list and map containers. It replaces the
// dynamic attribute dictionaries of loosely-typed stores at the
// engine boundary.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	List  []Value
	Map   map[string]Value
}

func Null() Value            { return Value{Kind: NullKind} }
func Bool(b bool) Value      { return Value{Kind: BoolKind, Bool: b} }
func Int(i int64) Value      { return Value{Kind: IntKind, Int: i} }
func Float(f float64) Value  { return Value{Kind: FloatKind, Float: f} }
func String(s string) Value  { return Value{Kind: StringKind, Str: s} }
func List(vs ...Value) Value { return Value{Kind: ListKind, List: vs} }

func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: MapKind, Map: m}
}

// IsNull reports whether v is the null value. The zero Value is null.
func (v Value) IsNull() bool { return v.Kind == NullKind }

// Get returns the entry under key for map values.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != MapKind {
		return Value{}, false
	}
	e, ok := v.Map[key]
	return e, ok
}

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case NullKind:
		return true
	case BoolKind:
		return v.Bool == o.Bool
	case IntKind:
		return v.Int == o.Int
	case FloatKind:
		return v.Float == o.Float
	case StringKind:
		return v.Str == o.Str
	case ListKind:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, ve := range v.Map {
			oe, ok := o.Map[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value in a compact JSON-like form, map keys
// sorted for stable output.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case NullKind:
		b.WriteString("null")
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.Bool))
	case IntKind:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatKind:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case StringKind:
		b.WriteString(strconv.Quote(v.Str))
	case ListKind:
		b.WriteByte('[')
		for i, e := range v.List {
			if i > 0 {
				b.WriteByte(',')
			}
			e.write(b)
		}
		b.WriteByte(']')
	case MapKind:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			v.Map[k].write(b)
		}
		b.WriteByte('}')
	}
}

// FromAny converts a decoded JSON value (bool, float64/int64, string,
// []any, map[string]any, nil) into a Value. Unknown types become their
// string rendering rather than failing — attribute payloads from
// foreign stores should never abort a load.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t))
		}
		return Float(t)
	case string:
		return String(t)
	case []any:
		list := make([]Value, len(t))
		for i, e := range t {
			list[i] = FromAny(e)
		}
		return Value{Kind: ListKind, List: list}
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return Map(m)
	default:
		return String(fmt.Sprint(t))
	}
}

// ToAny converts a Value back into plain Go types suitable for JSON
// encoding.
func (v Value) ToAny() any {
	switch v.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case StringKind:
		return v.Str
	case ListKind:
		list := make([]any, len(v.List))
		for i, e := range v.List {
			list[i] = e.ToAny()
		}
		return list
	case MapKind:
		m := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			m[k] = e.ToAny()
		}
		return m
	}
	return nil
}
