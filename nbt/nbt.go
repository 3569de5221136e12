// Package nbt implements the Named Binary Tag format as a generic tree of
// typed values. Unlike struct-mapping decoders, the tree keeps compound keys
// in wire order and every lookup is tolerant: accessors report absence or a
// kind mismatch through their second return value instead of failing.
package nbt

import "fmt"

const (
	TagEnd       byte = 0  // terminates a compound; single zero byte
	TagByte      byte = 1  // signed 8-bit
	TagShort     byte = 2  // signed 16-bit, big endian
	TagInt       byte = 3  // signed 32-bit, big endian
	TagLong      byte = 4  // signed 64-bit, big endian
	TagFloat     byte = 5  // IEEE 754 binary32, big endian
	TagDouble    byte = 6  // IEEE 754 binary64, big endian
	TagByteArray byte = 7  // int32 length + raw bytes
	TagString    byte = 8  // uint16 length + UTF-8 bytes
	TagList      byte = 9  // element tag + int32 count + unnamed payloads
	TagCompound  byte = 10 // named tags until TagEnd
	TagIntArray  byte = 11 // int32 length + int32 values
	TagLongArray byte = 12 // int32 length + int64 values
)

// TagName returns the conventional name of a tag byte, for error messages.
func TagName(tag byte) string {
	switch tag {
	case TagEnd:
		return "TAG_End"
	case TagByte:
		return "TAG_Byte"
	case TagShort:
		return "TAG_Short"
	case TagInt:
		return "TAG_Int"
	case TagLong:
		return "TAG_Long"
	case TagFloat:
		return "TAG_Float"
	case TagDouble:
		return "TAG_Double"
	case TagByteArray:
		return "TAG_Byte_Array"
	case TagString:
		return "TAG_String"
	case TagList:
		return "TAG_List"
	case TagCompound:
		return "TAG_Compound"
	case TagIntArray:
		return "TAG_Int_Array"
	case TagLongArray:
		return "TAG_Long_Array"
	}
	return fmt.Sprintf("TAG_%d", tag)
}

// Value is one node of a decoded tree.
type Value interface {
	Tag() byte
}

type (
	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string

	ByteArray []byte
	IntArray  []int32
	LongArray []int64
)

func (Byte) Tag() byte      { return TagByte }
func (Short) Tag() byte     { return TagShort }
func (Int) Tag() byte       { return TagInt }
func (Long) Tag() byte      { return TagLong }
func (Float) Tag() byte     { return TagFloat }
func (Double) Tag() byte    { return TagDouble }
func (String) Tag() byte    { return TagString }
func (ByteArray) Tag() byte { return TagByteArray }
func (IntArray) Tag() byte  { return TagIntArray }
func (LongArray) Tag() byte { return TagLongArray }

// List is a sequence of unnamed values sharing one element tag. Element
// homogeneity is how the wire format works, not something this package
// re-checks on access.
type List struct {
	ElemTag byte
	Items   []Value
}

func (*List) Tag() byte { return TagList }

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Compound is an ordered name→value mapping. Iteration via Keys follows the
// order names were first set, which for decoded trees is wire order. The
// zero value is an empty compound ready to use, and read accessors are
// nil-safe: reading from a nil compound reports absence.
type Compound struct {
	names  []string
	values map[string]Value
}

func NewCompound() *Compound {
	return &Compound{values: make(map[string]Value)}
}

func (*Compound) Tag() byte { return TagCompound }

// Set stores a value under name. Re-setting an existing name replaces the
// value but keeps its original position.
func (c *Compound) Set(name string, v Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = v
}

func (c *Compound) Get(name string) (Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[name]
	return v, ok
}

func (c *Compound) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Keys returns the names in insertion order. The slice is shared; callers
// must not modify it.
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	return c.names
}

func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// GetCompound returns the named child when it exists and is a compound.
func (c *Compound) GetCompound(name string) (*Compound, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Compound)
	return child, ok
}

// GetList returns the named child when it exists and is a list.
func (c *Compound) GetList(name string) (*List, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	l, ok := v.(*List)
	return l, ok
}

// GetString returns the named child when it exists and is a string.
func (c *Compound) GetString(name string) (string, bool) {
	v, ok := c.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// GetInt returns the named child widened to int64 when it exists and is one
// of the integer kinds (byte, short, int, long). Floating-point values do
// not match.
func (c *Compound) GetInt(name string) (int64, bool) {
	v, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case Byte:
		return int64(n), true
	case Short:
		return int64(n), true
	case Int:
		return int64(n), true
	case Long:
		return int64(n), true
	}
	return 0, false
}
