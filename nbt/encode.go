package nbt

import (
	"fmt"
	"io"
	"math"
)

// Marshal writes root to w as a single named compound tag. Schematic files
// conventionally use an empty root name or "Schematic".
func Marshal(w io.Writer, name string, root *Compound) error {
	return NewEncoder(w).Encode(name, root)
}

// Encoder writes values in big-endian wire order, the inverse of Decoder.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one named root tag.
func (e *Encoder) Encode(name string, root *Compound) error {
	if root == nil {
		return fmt.Errorf("nbt: cannot encode nil root")
	}
	if err := e.writeTag(TagCompound, name); err != nil {
		return err
	}
	return e.writeCompound(root)
}

func (e *Encoder) writeValue(v Value) error {
	switch n := v.(type) {
	case Byte:
		_, err := e.w.Write([]byte{byte(n)})
		return err

	case Short:
		return e.writeInt16(int16(n))

	case Int:
		return e.writeInt32(int32(n))

	case Long:
		return e.writeInt64(int64(n))

	case Float:
		return e.writeInt32(int32(math.Float32bits(float32(n))))

	case Double:
		return e.writeInt64(int64(math.Float64bits(float64(n))))

	case String:
		return e.writeString(string(n))

	case ByteArray:
		if err := e.writeInt32(int32(len(n))); err != nil {
			return err
		}
		_, err := e.w.Write(n)
		return err

	case IntArray:
		if err := e.writeInt32(int32(len(n))); err != nil {
			return err
		}
		for _, el := range n {
			if err := e.writeInt32(el); err != nil {
				return err
			}
		}
		return nil

	case LongArray:
		if err := e.writeInt32(int32(len(n))); err != nil {
			return err
		}
		for _, el := range n {
			if err := e.writeInt64(el); err != nil {
				return err
			}
		}
		return nil

	case *List:
		return e.writeList(n)

	case *Compound:
		return e.writeCompound(n)
	}
	return fmt.Errorf("nbt: cannot encode %T", v)
}

// writeList frames the element tag and count, then the unnamed payloads. The
// wire format requires homogeneous elements, so a mismatched item is an
// error.
func (e *Encoder) writeList(l *List) error {
	if err := e.writeNamelessTag(l.ElemTag); err != nil {
		return err
	}
	if err := e.writeInt32(int32(len(l.Items))); err != nil {
		return err
	}
	for _, item := range l.Items {
		if item == nil || item.Tag() != l.ElemTag {
			return fmt.Errorf("nbt: list element %T does not match element tag %s", item, TagName(l.ElemTag))
		}
		if err := e.writeValue(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeCompound(c *Compound) error {
	for _, name := range c.Keys() {
		v, _ := c.Get(name)
		if v == nil {
			return fmt.Errorf("nbt: compound entry %q holds no value", name)
		}
		if err := e.writeTag(v.Tag(), name); err != nil {
			return err
		}
		if err := e.writeValue(v); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) writeTag(tagType byte, tagName string) error {
	if _, err := e.w.Write([]byte{tagType}); err != nil {
		return err
	}
	return e.writeString(tagName)
}

func (e *Encoder) writeNamelessTag(tagType byte) error {
	_, err := e.w.Write([]byte{tagType})
	return err
}

func (e *Encoder) writeString(s string) error {
	if err := e.writeInt16(int16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) writeInt16(n int16) error {
	_, err := e.w.Write([]byte{byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt32(n int32) error {
	_, err := e.w.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt64(n int64) error {
	_, err := e.w.Write([]byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}
