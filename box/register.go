// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package box

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// RegisterType is the type of a register value.
type RegisterType uint8

const (
	LongArray RegisterType = iota + 1
	ByteArray
)

// First and last usable register numbers.
const (
	R4 = 4
	R9 = 9

	MaxRegisters = R9 - R4 + 1
)

// Register is a typed field of a box.
type Register struct {
	typ   RegisterType
	longs []int64
	bytes []byte
}

// Longs creates a long array register.
func Longs(v ...int64) Register {
	return Register{typ: LongArray, longs: append([]int64{}, v...)}
}

// Bytes creates a byte array register.
func Bytes(b []byte) Register {
	return Register{typ: ByteArray, bytes: append([]byte{}, b...)}
}

func (r Register) Type() RegisterType { return r.typ }

// Longs returns a copy of the long array, nil for other types.
func (r Register) Longs() []int64 {
	if r.typ != LongArray {
		return nil
	}
	return append([]int64{}, r.longs...)
}

// Bytes returns a copy of the byte array, nil for other types.
func (r Register) Bytes() []byte {
	if r.typ != ByteArray {
		return nil
	}
	return append([]byte{}, r.bytes...)
}

// Equal reports whether both registers hold the same typed value.
func (r Register) Equal(other Register) bool {
	return r.typ == other.typ && slices.Equal(r.longs, other.longs) && bytes.Equal(r.bytes, other.bytes)
}

type registerRLP struct {
	Type  uint8
	Longs []uint64
	Bytes []byte
}

// EncodeRLP implements rlp.Encoder. Longs are stored as their two's
// complement bit pattern.
func (r Register) EncodeRLP(w io.Writer) error {
	enc := registerRLP{Type: uint8(r.typ), Bytes: r.bytes}
	if r.typ == LongArray {
		enc.Longs = make([]uint64, len(r.longs))
		for i, v := range r.longs {
			enc.Longs[i] = uint64(v)
		}
	}
	return rlp.Encode(w, &enc)
}

// DecodeRLP implements rlp.Decoder.
func (r *Register) DecodeRLP(s *rlp.Stream) error {
	var dec registerRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	switch RegisterType(dec.Type) {
	case LongArray:
		longs := make([]int64, len(dec.Longs))
		for i, v := range dec.Longs {
			longs[i] = int64(v)
		}
		*r = Register{typ: LongArray, longs: longs}
	case ByteArray:
		*r = Register{typ: ByteArray, bytes: dec.Bytes}
	default:
		return errors.Errorf("unknown register type %d", dec.Type)
	}
	return nil
}
