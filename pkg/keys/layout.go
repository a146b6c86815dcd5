// Package keys encodes typed, fixed-shape composite keys whose raw byte order matches the
// semantic order of their fields, so an ordered key-value store can answer range queries.
//
// A key is a one-byte tag followed by each field: unsigned integers as big-endian
// fixed-width bytes and hashes as raw fixed-width bytes.
package keys

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// Kind is the encoding family of a field.
type Kind uint8

const (
	KindUint Kind = iota + 1
	KindHash
)

const maxUintWidth = 8

// Field describes one fixed-width component of a key.
type Field struct {
	Name  string
	Kind  Kind
	Width int
}

func Uint8(name string) Field  { return Field{Name: name, Kind: KindUint, Width: 1} }
func Uint16(name string) Field { return Field{Name: name, Kind: KindUint, Width: 2} }
func Uint32(name string) Field { return Field{Name: name, Kind: KindUint, Width: 4} }
func Uint64(name string) Field { return Field{Name: name, Kind: KindUint, Width: 8} }

func Hash160(name string) Field {
	return Field{Name: name, Kind: KindHash, Width: common.AddressLength}
}
func Hash256(name string) Field { return Field{Name: name, Kind: KindHash, Width: common.HashLength} }

// Layout is the immutable shape of one key family.
type Layout struct {
	name   string
	tag    byte
	fields []Field
	size   int
}

// NewLayout validates and builds a layout. Unsigned fields may be 1 to 8 bytes wide.
func NewLayout(name string, tag byte, fields ...Field) (*Layout, error) {
	if name == "" {
		return nil, fmt.Errorf("layout name is required")
	}

	size := 1
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("layout %s: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = struct{}{}

		switch f.Kind {
		case KindUint:
			if f.Width < 1 || f.Width > maxUintWidth {
				return nil, fmt.Errorf("layout %s: field %q: unsigned width must be 1..8, got %d", name, f.Name, f.Width)
			}
		case KindHash:
			if f.Width < 1 {
				return nil, fmt.Errorf("layout %s: field %q: hash width must be positive", name, f.Name)
			}
		default:
			return nil, fmt.Errorf("layout %s: field %q: unknown kind %d", name, f.Name, f.Kind)
		}
		size += f.Width
	}

	return &Layout{
		name:   name,
		tag:    tag,
		fields: slices.Clone(fields),
		size:   size,
	}, nil
}

// MustLayout is NewLayout for package-level layout tables.
func MustLayout(name string, tag byte, fields ...Field) *Layout {
	l, err := NewLayout(name, tag, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) Name() string { return l.name }
func (l *Layout) Tag() byte    { return l.tag }

// Size is the byte length of every key of this layout.
func (l *Layout) Size() int { return l.size }

func (l *Layout) Fields() []Field { return slices.Clone(l.fields) }

// Matches reports whether key has this layout's tag and length.
func (l *Layout) Matches(key []byte) bool {
	return len(key) == l.size && key[0] == l.tag
}

// Encode builds the key for a complete set of field values.
//
// Unsigned fields accept Go integer types and *big.Int; values that are negative or do not
// fit the field width fail with *EncodingRangeError. Hash fields accept common.Hash,
// common.Address and []byte of exactly the field width.
func (l *Layout) Encode(values ...any) ([]byte, error) {
	if len(values) != len(l.fields) {
		return nil, fmt.Errorf("key %s: %w: expected %d, got %d", l.name, ErrFieldCount, len(l.fields), len(values))
	}
	return l.build(values, 0x00)
}

// Min is the smallest key whose leading fields equal prefix.
func (l *Layout) Min(prefix ...any) ([]byte, error) {
	return l.build(prefix, 0x00)
}

// Max is the largest key whose leading fields equal prefix.
func (l *Layout) Max(prefix ...any) ([]byte, error) {
	return l.build(prefix, 0xff)
}

// Decode splits key back into its field values.
func (l *Layout) Decode(key []byte) (Tuple, error) {
	if !l.Matches(key) {
		return nil, NewDecodingFormatError(l, key)
	}

	tuple := make(Tuple, len(l.fields))
	off := 1
	for i, f := range l.fields {
		raw := key[off : off+f.Width]
		if f.Kind == KindUint {
			tuple[i] = getUint(raw)
		} else {
			tuple[i] = slices.Clone(raw)
		}
		off += f.Width
	}

	return tuple, nil
}

func (l *Layout) build(values []any, fill byte) ([]byte, error) {
	if len(values) > len(l.fields) {
		return nil, fmt.Errorf("key %s: %w: at most %d, got %d", l.name, ErrFieldCount, len(l.fields), len(values))
	}

	key := make([]byte, l.size)
	key[0] = l.tag

	off := 1
	for i, f := range l.fields {
		dst := key[off : off+f.Width]
		off += f.Width

		if i >= len(values) {
			for j := range dst {
				dst[j] = fill
			}
			continue
		}

		var err error
		if f.Kind == KindUint {
			err = l.putUint(dst, f, values[i])
		} else {
			err = l.putHash(dst, f, values[i])
		}
		if err != nil {
			return nil, err
		}
	}

	return key, nil
}

func (l *Layout) putUint(dst []byte, f Field, v any) error {
	var (
		u        uint64
		negative bool
	)

	switch x := v.(type) {
	case uint8:
		u = uint64(x)
	case uint16:
		u = uint64(x)
	case uint32:
		u = uint64(x)
	case uint64:
		u = x
	case uint:
		u = uint64(x)
	case int8:
		u, negative = uint64(x), x < 0
	case int16:
		u, negative = uint64(x), x < 0
	case int32:
		u, negative = uint64(x), x < 0
	case int64:
		u, negative = uint64(x), x < 0
	case int:
		u, negative = uint64(x), x < 0
	case *big.Int:
		if x == nil {
			return fmt.Errorf("key %s field %q: %w: nil *big.Int", l.name, f.Name, ErrFieldType)
		}
		if x.Sign() < 0 || x.BitLen() > f.Width*8 {
			return NewEncodingRangeError(l.name, f, x.String())
		}
		u = x.Uint64()
	default:
		return fmt.Errorf("key %s field %q: %w: %T", l.name, f.Name, ErrFieldType, v)
	}

	if negative || (f.Width < maxUintWidth && u>>(uint(f.Width)*8) != 0) {
		return NewEncodingRangeError(l.name, f, fmt.Sprint(v))
	}

	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(u)
		u >>= 8
	}
	return nil
}

func (l *Layout) putHash(dst []byte, f Field, v any) error {
	var raw []byte

	switch x := v.(type) {
	case common.Hash:
		raw = x[:]
	case common.Address:
		raw = x[:]
	case []byte:
		raw = x
	default:
		return fmt.Errorf("key %s field %q: %w: %T", l.name, f.Name, ErrFieldType, v)
	}

	if len(raw) != f.Width {
		return fmt.Errorf("key %s field %q: %w: expected %d bytes, got %d",
			l.name, f.Name, ErrFieldType, f.Width, len(raw))
	}

	copy(dst, raw)
	return nil
}

func getUint(raw []byte) uint64 {
	var u uint64
	for _, b := range raw {
		u = u<<8 | uint64(b)
	}
	return u
}

// Tuple holds decoded field values: uint64 for unsigned fields, []byte for hash fields.
type Tuple []any

// Uint returns the unsigned field at i.
func (t Tuple) Uint(i int) uint64 {
	return t[i].(uint64)
}

// Bytes returns the raw hash field at i.
func (t Tuple) Bytes(i int) []byte {
	return t[i].([]byte)
}

// Hash returns the hash field at i as a common.Hash.
func (t Tuple) Hash(i int) common.Hash {
	return common.BytesToHash(t.Bytes(i))
}
