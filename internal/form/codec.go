package form

import (
	"bytes"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf16BOM = []byte{0xFE, 0xFF}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}

	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// DecodeUTF16 decodes a UTF-16BE string whose first two bytes are a byte
// order mark. Decoding stops at the first zero code unit. It reports false
// when the code units contain an unpaired surrogate.
func DecodeUTF16(b []byte) (string, bool) {
	if len(b) <= len(utf16BOM) {
		return "", true
	}
	b = b[len(utf16BOM):]

	end := len(b)
	for i := 0; i < len(b); i += 2 {
		var lo byte
		if i+1 < len(b) {
			lo = b[i+1]
		}
		if b[i] == 0 && lo == 0 {
			end = i
			break
		}
	}
	units := b[:end]
	if len(units)%2 == 1 {
		// a dangling byte is the high half of a final code unit
		units = append(units[:len(units):len(units)], 0)
	}
	if !pairedSurrogates(units) {
		return "", false
	}

	s, err := utf16BE.NewDecoder().Bytes(units)
	if err != nil {
		return "", false
	}
	return string(s), true
}

// EncodeUTF16 encodes s as UTF-16BE prefixed with the FE FF byte order mark.
// Characters outside the Basic Multilingual Plane become surrogate pairs.
func EncodeUTF16(s string) []byte {
	// the encoder substitutes U+FFFD for invalid UTF-8 and never fails
	body, _ := utf16BE.NewEncoder().Bytes([]byte(s))
	out := make([]byte, 0, len(utf16BOM)+len(body))
	out = append(out, utf16BOM...)
	return append(out, body...)
}

func pairedSurrogates(units []byte) bool {
	for i := 0; i+1 < len(units); i += 2 {
		u := uint16(units[i])<<8 | uint16(units[i+1])
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+3 >= len(units) {
				return false
			}
			next := uint16(units[i+2])<<8 | uint16(units[i+3])
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF:
			return false
		}
	}
	return true
}

// decodeTextString decodes a PDF text string. UTF-16 strings carry the FE FF
// mark; anything else is taken as UTF-8 when valid and Latin-1 otherwise.
func decodeTextString(b []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(b, utf16BOM):
		return DecodeUTF16(b)
	case bytes.HasPrefix(b, utf8BOM):
		b = b[len(utf8BOM):]
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if utf8.Valid(b) {
		return string(b), true
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(s), true
}

// encodeTextString keeps ASCII as is and switches to UTF-16 otherwise.
func encodeTextString(s string) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return EncodeUTF16(s)
		}
	}
	return []byte(s)
}

// stringBytes returns the raw bytes of a literal or hex string object.
func stringBytes(obj types.Object) ([]byte, bool) {
	switch s := obj.(type) {
	case types.StringLiteral:
		b, err := types.Unescape(string(s))
		if err != nil {
			return nil, false
		}
		return b, true
	case types.HexLiteral:
		b, err := s.Bytes()
		if err != nil {
			return nil, false
		}
		return b, true
	}
	return nil, false
}

// textOf decodes a string object into text.
func textOf(obj types.Object) (string, bool) {
	b, ok := stringBytes(obj)
	if !ok {
		return "", false
	}
	return decodeTextString(b)
}

// newStringLiteral wraps raw bytes into an escaped literal string object.
func newStringLiteral(b []byte) (types.StringLiteral, error) {
	s, err := types.Escape(string(b))
	if err != nil {
		return "", err
	}
	return types.StringLiteral(*s), nil
}
