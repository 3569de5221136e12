package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompound_KeyOrder(t *testing.T) {
	c := NewCompound()
	c.Set("Width", Short(2))
	c.Set("Height", Short(3))
	c.Set("Length", Short(4))

	assert.Equal(t, []string{"Width", "Height", "Length"}, c.Keys())
	assert.Equal(t, 3, c.Len())

	// Re-setting keeps the original position.
	c.Set("Height", Short(9))
	assert.Equal(t, []string{"Width", "Height", "Length"}, c.Keys())
	n, ok := c.GetInt("Height")
	require.True(t, ok)
	assert.Equal(t, int64(9), n)
}

func TestCompound_Accessors(t *testing.T) {
	c := NewCompound()
	c.Set("name", String("stone"))
	c.Set("count", Int(64))
	c.Set("child", NewCompound())
	c.Set("items", &List{ElemTag: TagString, Items: []Value{String("a")}})
	c.Set("ratio", Double(0.5))

	s, ok := c.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "stone", s)

	_, ok = c.GetString("count")
	assert.False(t, ok, "kind mismatch reports absence")

	_, ok = c.GetCompound("child")
	assert.True(t, ok)
	_, ok = c.GetCompound("name")
	assert.False(t, ok)

	l, ok := c.GetList("items")
	require.True(t, ok)
	assert.Equal(t, 1, l.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.False(t, c.Has("missing"))
	assert.True(t, c.Has("ratio"))

	_, ok = c.GetInt("ratio")
	assert.False(t, ok, "floating point values are not integers")
}

func TestCompound_GetIntWidens(t *testing.T) {
	c := NewCompound()
	c.Set("b", Byte(-1))
	c.Set("s", Short(256))
	c.Set("i", Int(1<<20))
	c.Set("l", Long(1<<40))

	for name, want := range map[string]int64{"b": -1, "s": 256, "i": 1 << 20, "l": 1 << 40} {
		n, ok := c.GetInt(name)
		require.True(t, ok, name)
		assert.Equal(t, want, n, name)
	}
}

func TestCompound_ZeroValue(t *testing.T) {
	var c Compound
	c.Set("Width", Int(4))
	c.Set("Name", String("hut"))

	assert.Equal(t, []string{"Width", "Name"}, c.Keys())
	n, ok := c.GetInt("Width")
	require.True(t, ok)
	assert.Equal(t, int64(4), n)
}

func TestCompound_NilReceiver(t *testing.T) {
	var c *Compound

	_, ok := c.Get("x")
	assert.False(t, ok)
	assert.False(t, c.Has("x"))
	assert.Nil(t, c.Keys())
	assert.Zero(t, c.Len())
	_, ok = c.GetCompound("x")
	assert.False(t, ok)
	_, ok = c.GetList("x")
	assert.False(t, ok)
	_, ok = c.GetString("x")
	assert.False(t, ok)
	_, ok = c.GetInt("x")
	assert.False(t, ok)
}

func TestList_NilLen(t *testing.T) {
	var l *List
	assert.Zero(t, l.Len())
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "TAG_End", TagName(TagEnd))
	assert.Equal(t, "TAG_Byte", TagName(TagByte))
	assert.Equal(t, "TAG_Compound", TagName(TagCompound))
	assert.Equal(t, "TAG_Long_Array", TagName(TagLongArray))
	assert.Equal(t, "TAG_99", TagName(99))
}
