package arg

import (
	"fmt"

	"go.klb.dev/hostbridge/internal/errcode"
)

// Tag is the host's type tag on an argument cell.
type Tag int32

const (
	TagUndefined Tag = 0
	TagBool      Tag = 2
	TagDouble    Tag = 3
	TagString    Tag = 4
	TagInteger   Tag = 123
	TagUInteger  Tag = 124
)

// Cell is a host argument cell with the union payload split into fields.
// Int carries integer, unsigned (as a bit pattern) and bool payloads. Str is
// nil when the host passed a NULL string pointer.
type Cell struct {
	Tag   Tag
	Int   int64
	Float float64
	Str   *string
}

// Decode turns a cell into a Value. Tags the bridge has no use for (script
// and live objects) decode to Undefined and are rejected later by Check. A
// string cell with a NULL pointer is malformed.
func Decode(c Cell) (Value, error) {
	switch c.Tag {
	case TagUndefined:
		return Undefined{}, nil
	case TagBool:
		return Bool(c.Int != 0), nil
	case TagDouble:
		return Float(c.Float), nil
	case TagString:
		if c.Str == nil {
			return nil, errcode.Wrap(errcode.BadArgument, "decode", fmt.Errorf("NULL string"))
		}
		return String(*c.Str), nil
	case TagInteger:
		return Int(c.Int), nil
	case TagUInteger:
		return Uint(uint64(c.Int)), nil
	default:
		return Undefined{}, nil
	}
}

// DecodeAll decodes cells in order and stops at the first malformed one.
func DecodeAll(cells []Cell) (Vector, error) {
	v := make(Vector, len(cells))
	for i, c := range cells {
		val, err := Decode(c)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		v[i] = val
	}
	return v, nil
}

// Encode turns a Value back into a cell for the return slot.
func Encode(v Value) Cell {
	switch x := v.(type) {
	case Int:
		return Cell{Tag: TagInteger, Int: int64(x)}
	case Uint:
		return Cell{Tag: TagUInteger, Int: int64(x)}
	case Float:
		return Cell{Tag: TagDouble, Float: float64(x)}
	case String:
		s := string(x)
		return Cell{Tag: TagString, Str: &s}
	case Bool:
		var n int64
		if x {
			n = 1
		}
		return Cell{Tag: TagBool, Int: n}
	default:
		return Cell{Tag: TagUndefined}
	}
}
