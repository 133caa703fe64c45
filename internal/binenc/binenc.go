// Package binenc holds the binary field encoding shared by the saved
// recognizer and parse-table artifact formats: fixed-width ints,
// rune-counted UTF-8 strings, and length-prefixed nested values.
package binenc

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// EncInt encodes i as 8 big-endian bytes.
func EncInt(i int) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(int64(i)))
	return enc
}

// DecInt decodes an int written by EncInt and returns it with the number
// of bytes consumed.
func DecInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}
	val := int64(binary.BigEndian.Uint64(data[:8]))
	return int(val), 8, nil
}

// EncBool encodes b as a single byte.
func EncBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

// DecBool decodes a bool written by EncBool and returns it with the
// number of bytes consumed.
func DecBool(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, fmt.Errorf("unexpected end of data")
	}
	switch data[0] {
	case 0:
		return false, 1, nil
	case 1:
		return true, 1, nil
	default:
		return false, 0, fmt.Errorf("unknown non-bool value")
	}
}

// EncString encodes s as its rune count followed by its UTF-8 bytes.
func EncString(s string) []byte {
	enc := make([]byte, 0, 8+len(s))

	chCount := 0
	for _, ch := range s {
		chBuf := make([]byte, utf8.UTFMax)
		byteLen := utf8.EncodeRune(chBuf, ch)
		enc = append(enc, chBuf[:byteLen]...)
		chCount++
	}

	return append(EncInt(chCount), enc...)
}

// DecString decodes a string written by EncString and returns it with
// the number of bytes consumed.
func DecString(data []byte) (string, int, error) {
	runeCount, readBytes, err := DecInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	data = data[readBytes:]

	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}

	var sb strings.Builder
	for i := 0; i < runeCount; i++ {
		ch, n := utf8.DecodeRune(data)
		if ch == utf8.RuneError {
			if n == 0 {
				return "", 0, fmt.Errorf("unexpected end of data in string")
			}
			return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
		}
		sb.WriteRune(ch)
		readBytes += n
		data = data[n:]
	}

	return sb.String(), readBytes, nil
}

// EncStrings encodes sl as a count followed by each element.
func EncStrings(sl []string) []byte {
	enc := EncInt(len(sl))
	for _, s := range sl {
		enc = append(enc, EncString(s)...)
	}
	return enc
}

// DecStrings decodes a string slice written by EncStrings and returns it
// with the number of bytes consumed. An empty slice decodes as nil.
func DecStrings(data []byte) ([]string, int, error) {
	count, readBytes, err := DecInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding slice count: %w", err)
	}
	data = data[readBytes:]

	var out []string
	for i := 0; i < count; i++ {
		s, n, err := DecString(data)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
		readBytes += n
		data = data[n:]
	}

	return out, readBytes, nil
}

// Enc encodes b's binary rendering behind a byte-length prefix, so Dec
// can hand the nested value exactly its own bytes.
func Enc(b encoding.BinaryMarshaler) ([]byte, error) {
	enc, err := b.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(EncInt(len(enc)), enc...), nil
}

// Dec decodes a length-prefixed nested value written by Enc into b and
// returns the number of bytes consumed.
func Dec(data []byte, b encoding.BinaryUnmarshaler) (int, error) {
	byteLen, readBytes, err := DecInt(data)
	if err != nil {
		return 0, err
	}
	data = data[readBytes:]

	if byteLen < 0 || len(data) < byteLen {
		return 0, fmt.Errorf("unexpected end of data")
	}
	if err := b.UnmarshalBinary(data[:byteLen]); err != nil {
		return 0, err
	}

	return readBytes + byteLen, nil
}
