package review

import (
	"crypto/ed25519"
	"encoding/binary"
)

// Offset-cursor codec helpers. Writers assume the destination buffer was
// sized with the record's Size(); readers bounds-check every field so a
// truncated account fails cleanly instead of corrupting a read.

func putBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}

func getBool(src []byte, dst *bool, offset *int) error {
	if len(src) < *offset+1 {
		return ErrTruncatedState
	}
	*dst = src[*offset] == 1
	*offset += 1
	return nil
}

func putKey(dst []byte, src ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], src)
	*offset += ed25519.PublicKeySize
}

func getKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if len(src) < *offset+ed25519.PublicKeySize {
		return ErrTruncatedState
	}
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return nil
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func getUint8(src []byte, dst *uint8, offset *int) error {
	if len(src) < *offset+1 {
		return ErrTruncatedState
	}
	*dst = src[*offset]
	*offset += 1
	return nil
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func getUint64(src []byte, dst *uint64, offset *int) error {
	if len(src) < *offset+8 {
		return ErrTruncatedState
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return nil
}

func putString(dst []byte, src string, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], uint32(len(src)))
	*offset += 4
	copy(dst[*offset:], src)
	*offset += len(src)
}

func getString(src []byte, dst *string, offset *int) error {
	if len(src) < *offset+4 {
		return ErrTruncatedState
	}
	length := int(binary.LittleEndian.Uint32(src[*offset:]))
	*offset += 4

	if len(src) < *offset+length {
		return ErrTruncatedState
	}
	*dst = string(src[*offset : *offset+length])
	*offset += length
	return nil
}
