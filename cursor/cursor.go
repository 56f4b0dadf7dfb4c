// Package cursor implements a bounds-checked sequential reader over an
// in-memory byte buffer.
//
// Every read advances the cursor by the width of the value and fails with
// errs.ErrOutOfBounds if fewer bytes remain; no read ever returns partial or
// zero-padded data. Cursors are cheap values with no side effects beyond
// their own position, so a Fork can look ahead without disturbing the caller.
package cursor

import (
	"fmt"
	"math"

	"github.com/echemdata/galvani/endian"
	"github.com/echemdata/galvani/errs"
)

// Cursor reads fixed-width little-endian values from a byte slice.
//
// A Cursor never copies or mutates the underlying buffer; ReadBytes returns
// sub-slices sharing the buffer's memory.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// New creates a cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data, engine: endian.GetLittleEndianEngine()}
}

// NewAt creates a cursor positioned at offset within data.
func NewAt(data []byte, offset int) (*Cursor, error) {
	c := New(data)
	if err := c.SeekAbsolute(offset); err != nil {
		return nil, err
	}

	return c, nil
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Fork returns an independent cursor at the same position, for look-ahead
// reads that must not disturb the caller's position.
func (c *Cursor) Fork() *Cursor {
	fork := *c
	return &fork
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrOutOfBounds, n, c.pos, c.Remaining())
	}

	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n

	return nil
}

// SeekAbsolute positions the cursor at offset from the start of the buffer.
func (c *Cursor) SeekAbsolute(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return fmt.Errorf("%w: seek to %d in buffer of %d bytes",
			errs.ErrOutOfBounds, offset, len(c.data))
	}
	c.pos = offset

	return nil
}

// ReadBytes returns the next n bytes as a sub-slice of the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// ReadASCII returns the next n bytes as a string, untrimmed.
func (c *Cursor) ReadASCII(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++

	return v, nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.data[c.pos:])
	c.pos += 2

	return v, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.data[c.pos:])
	c.pos += 4

	return v, nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.pos:])
	c.pos += 8

	return v, nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	return math.Float64frombits(v), err
}
