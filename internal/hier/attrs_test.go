package hier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_FromAny(t *testing.T) {
	v := FromAny(map[string]any{
		"fs":       float64(30000),
		"gain":     2.5,
		"label":    "channel",
		"enabled":  true,
		"comment":  nil,
		"history":  []any{"a", "b"},
		"metadata": map[string]any{"depth": int64(3)},
	})
	assert.Equal(t, MapKind, v.Kind)

	fs, ok := v.Get("fs")
	assert.True(t, ok)
	// Integral floats (the usual JSON decoding of ints) narrow to ints.
	assert.Equal(t, Int(30000), fs)

	gain, _ := v.Get("gain")
	assert.Equal(t, Float(2.5), gain)

	comment, _ := v.Get("comment")
	assert.True(t, comment.IsNull())

	history, _ := v.Get("history")
	assert.Equal(t, List(String("a"), String("b")), history)

	meta, _ := v.Get("metadata")
	depth, ok := meta.Get("depth")
	assert.True(t, ok)
	assert.Equal(t, Int(3), depth)
}

func TestValue_ToAnyRoundTrip(t *testing.T) {
	v := Map(map[string]Value{
		"n":    Int(5),
		"tags": List(String("x"), Bool(false)),
		"sub":  Map(map[string]Value{"f": Float(1.5)}),
	})
	back := FromAny(v.ToAny())
	assert.True(t, v.Equal(back))
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, List(Int(1), Int(2)).Equal(List(Int(1), Int(2))))
	assert.False(t, List(Int(1)).Equal(List(Int(2))))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, Map(map[string]Value{"a": Int(1)}).Equal(Map(nil)))
}

func TestValue_StringIsStable(t *testing.T) {
	v := Map(map[string]Value{"b": Int(2), "a": Int(1)})
	assert.Equal(t, `{"a":1,"b":2}`, v.String())
	assert.Equal(t, `[1,"x",true,null]`, List(Int(1), String("x"), Bool(true), Null()).String())
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Nil(t, v.ToAny())
}
