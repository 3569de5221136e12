package nbt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrRootNotCompound = errors.New("nbt: root tag is not a compound")
	ErrUnknownTag      = errors.New("nbt: unknown tag")
	ErrInvalidLength   = errors.New("nbt: invalid length")
)

// maxNestingDepth bounds compound/list recursion so a malicious stream cannot
// exhaust the stack.
const maxNestingDepth = 512

// Decoder reads a big-endian binary NBT stream into the generic tree model.
type Decoder struct {
	r       *bufio.Reader
	scratch [8]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads the single root tag of the stream. The root must be a
// compound; its name (empty in most schematic files, "Schematic" in others)
// is read and discarded. Bytes after the root tag are ignored.
func (d *Decoder) Decode() (*Compound, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if tag != TagCompound {
		return nil, fmt.Errorf("%w (found %s)", ErrRootNotCompound, TagName(tag))
	}
	if _, err := d.readString(); err != nil {
		return nil, err
	}
	return d.readCompound(1)
}

func (d *Decoder) readCompound(depth int) (*Compound, error) {
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("nbt: nesting exceeds %d levels", maxNestingDepth)
	}
	c := NewCompound()
	for {
		tag, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return c, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		v, err := d.readValue(tag, depth)
		if err != nil {
			return nil, err
		}
		c.Set(name, v)
	}
}

func (d *Decoder) readValue(tag byte, depth int) (Value, error) {
	switch tag {
	case TagByte:
		b, err := d.r.ReadByte()
		return Byte(b), err

	case TagShort:
		n, err := d.readUint16()
		return Short(n), err

	case TagInt:
		n, err := d.readUint32()
		return Int(n), err

	case TagLong:
		n, err := d.readUint64()
		return Long(n), err

	case TagFloat:
		n, err := d.readUint32()
		return Float(math.Float32frombits(n)), err

	case TagDouble:
		n, err := d.readUint64()
		return Double(math.Float64frombits(n)), err

	case TagString:
		s, err := d.readString()
		return String(s), err

	case TagByteArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		buf, err := d.readBytes(n)
		return ByteArray(buf), err

	case TagIntArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		arr := make(IntArray, 0, min(n, 1<<16))
		for i := 0; i < n; i++ {
			v, err := d.readUint32()
			if err != nil {
				return nil, err
			}
			arr = append(arr, int32(v))
		}
		return arr, nil

	case TagLongArray:
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		arr := make(LongArray, 0, min(n, 1<<15))
		for i := 0; i < n; i++ {
			v, err := d.readUint64()
			if err != nil {
				return nil, err
			}
			arr = append(arr, int64(v))
		}
		return arr, nil

	case TagList:
		if depth >= maxNestingDepth {
			return nil, fmt.Errorf("nbt: nesting exceeds %d levels", maxNestingDepth)
		}
		elemTag, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		if elemTag == TagEnd && n > 0 {
			return nil, fmt.Errorf("%w: list of end tags with length %d", ErrInvalidLength, n)
		}
		l := &List{ElemTag: elemTag, Items: make([]Value, 0, min(n, 1<<12))}
		for i := 0; i < n; i++ {
			item, err := d.readValue(elemTag, depth+1)
			if err != nil {
				return nil, err
			}
			l.Items = append(l.Items, item)
		}
		return l, nil

	case TagCompound:
		return d.readCompound(depth + 1)
	}
	return nil, fmt.Errorf("%w %d", ErrUnknownTag, tag)
}

// readLength reads the signed 32-bit count that prefixes arrays and lists,
// rejecting negative values.
func (d *Decoder) readLength() (int, error) {
	n, err := d.readUint32()
	if err != nil {
		return 0, err
	}
	if int32(n) < 0 {
		return 0, fmt.Errorf("%w %d", ErrInvalidLength, int32(n))
	}
	return int(int32(n)), nil
}

func (d *Decoder) readString() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}
	buf, err := d.readBytes(int(n))
	return string(buf), err
}

// readBytes reads exactly n bytes, growing the buffer in bounded chunks; the
// claimed length is untrusted input.
func (d *Decoder) readBytes(n int) ([]byte, error) {
	const chunk = 1 << 20
	buf := make([]byte, 0, min(n, chunk))
	for len(buf) < n {
		start := len(buf)
		buf = append(buf, make([]byte, min(n-start, chunk))...)
		if _, err := io.ReadFull(d.r, buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (d *Decoder) readUint16() (uint16, error) {
	b := d.scratch[:2]
	if _, err := io.ReadFull(d.r, b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *Decoder) readUint32() (uint32, error) {
	b := d.scratch[:4]
	if _, err := io.ReadFull(d.r, b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *Decoder) readUint64() (uint64, error) {
	b := d.scratch[:8]
	if _, err := io.ReadFull(d.r, b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
