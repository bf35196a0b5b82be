// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import (
	"cmp"
	"encoding"
	"encoding/json"
	"fmt"
	"hash/maphash"
	"io"
	"iter"
)

// This file is the forwarding surface: every standard capability the
// contained value supports, the box exposes by delegating through Ref.
// Nothing here adds semantics of its own.

// as resolves a capability C against the contained value: first on *T,
// whose method set covers both receiver kinds, then on the value itself
// for interface-typed elements (where the copy shares the referent).
func as[C any, T any](b *Box[T]) (C, bool) {
	if c, ok := any(b.Ref()).(C); ok {
		return c, true
	}
	c, ok := any(*b.Ref()).(C)
	return c, ok
}

// Read delegates to the contained io.Reader.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) Read(p []byte) (int, error) {
	if r, ok := as[io.Reader](b); ok {
		return r.Read(p)
	}
	return 0, ErrUnsupported
}

// Write delegates to the contained io.Writer.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) Write(p []byte) (int, error) {
	if w, ok := as[io.Writer](b); ok {
		return w.Write(p)
	}
	return 0, ErrUnsupported
}

// Seek delegates to the contained io.Seeker.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) Seek(offset int64, whence int) (int64, error) {
	if s, ok := as[io.Seeker](b); ok {
		return s.Seek(offset, whence)
	}
	return 0, ErrUnsupported
}

// Close delegates to the contained io.Closer. Closing is not dropping:
// the box still owns its storage afterwards.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) Close() error {
	if c, ok := as[io.Closer](b); ok {
		return c.Close()
	}
	return ErrUnsupported
}

// String delegates to the contained fmt.Stringer, falling back to the
// default formatting of the value.
func (b *Box[T]) String() string {
	if s, ok := as[fmt.Stringer](b); ok {
		return s.String()
	}
	return fmt.Sprint(*b.Ref())
}

// Format delegates to the contained fmt.Formatter, falling back to
// formatting the value with the caller's verb and flags, so a box prints
// exactly as its contents would.
func (b *Box[T]) Format(f fmt.State, verb rune) {
	if fm, ok := as[fmt.Formatter](b); ok {
		fm.Format(f, verb)
		return
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), *b.Ref())
}

// GoString delegates to the contained fmt.GoStringer, falling back to the
// %#v rendering of the value.
func (b *Box[T]) GoString() string {
	if g, ok := as[fmt.GoStringer](b); ok {
		return g.GoString()
	}
	return fmt.Sprintf("%#v", *b.Ref())
}

// MarshalJSON encodes the contained value. The output is byte-for-byte
// identical to marshaling the bare value.
func (b *Box[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Ref())
}

// UnmarshalJSON decodes into reserved storage and assumes it initialized
// on success, so the box ends up holding exactly the decoded value. Any
// previous contents are not dropped; unmarshal into a fresh box.
func (b *Box[T]) UnmarshalJSON(data []byte) error {
	s := Reserve[T]()
	if err := json.Unmarshal(data, s.Ref()); err != nil {
		s.Discard()
		return err
	}
	*b = s.AssumeInit()
	return nil
}

// MarshalText delegates to the contained encoding.TextMarshaler.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) MarshalText() ([]byte, error) {
	if m, ok := as[encoding.TextMarshaler](b); ok {
		return m.MarshalText()
	}
	return nil, ErrUnsupported
}

// UnmarshalText decodes into reserved storage, like UnmarshalJSON.
// Returns ErrUnsupported if the element type is no encoding.TextUnmarshaler.
func (b *Box[T]) UnmarshalText(data []byte) error {
	s := Reserve[T]()
	u, ok := any(s.Ref()).(encoding.TextUnmarshaler)
	if !ok {
		s.Discard()
		return ErrUnsupported
	}
	if err := u.UnmarshalText(data); err != nil {
		s.Discard()
		return err
	}
	*b = s.AssumeInit()
	return nil
}

// MarshalBinary delegates to the contained encoding.BinaryMarshaler.
// Returns ErrUnsupported if the element type is not one.
func (b *Box[T]) MarshalBinary() ([]byte, error) {
	if m, ok := as[encoding.BinaryMarshaler](b); ok {
		return m.MarshalBinary()
	}
	return nil, ErrUnsupported
}

// UnmarshalBinary decodes into reserved storage, like UnmarshalJSON.
// Returns ErrUnsupported if the element type is no encoding.BinaryUnmarshaler.
func (b *Box[T]) UnmarshalBinary(data []byte) error {
	s := Reserve[T]()
	u, ok := any(s.Ref()).(encoding.BinaryUnmarshaler)
	if !ok {
		s.Discard()
		return ErrUnsupported
	}
	if err := u.UnmarshalBinary(data); err != nil {
		s.Discard()
		return err
	}
	*b = s.AssumeInit()
	return nil
}

// Equal reports whether two boxes hold equal values.
func Equal[T comparable](a, b *Box[T]) bool {
	return *a.Ref() == *b.Ref()
}

// Compare orders two boxes by their contained values.
func Compare[T cmp.Ordered](a, b *Box[T]) int {
	return cmp.Compare(*a.Ref(), *b.Ref())
}

// Less reports whether a's value orders before b's.
func Less[T cmp.Ordered](a, b *Box[T]) bool {
	return *a.Ref() < *b.Ref()
}

// Hash returns the maphash of the contained value under seed; equal values
// hash equally whether boxed or bare.
func Hash[T comparable](seed maphash.Seed, b *Box[T]) uint64 {
	return maphash.Comparable(seed, *b.Ref())
}

// Values forwards iteration over a boxed sequence.
func Values[V any](b *Box[iter.Seq[V]]) iter.Seq[V] {
	return *b.Ref()
}
