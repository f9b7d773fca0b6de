package encoding

import (
	"bytes"
	"encoding/binary"
)

// All integers are stored little-endian.

func PutUint32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

func Uint32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// PutFixedString copies s into field left-justified and zero fills the
// rest. Bytes of s beyond len(field) are dropped.
func PutFixedString(field []byte, s string) {
	n := copy(field, s)
	clear(field[n:])
}

// FixedString returns the contents of field up to the first NUL byte, or
// the whole field when it has no terminator.
func FixedString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}
