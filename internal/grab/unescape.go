package grab

import "strings"

// isHexDigit reports whether c is an ASCII hex digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of an ASCII hex digit.
func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// Unescape decodes JSON string escape sequences in raw. It handles
// \\ \" \/ \b \f \n \r \t and \uXXXX for code points in the ASCII
// range; a \uXXXX above 0x7F is replaced with '?'.
//
// The decoder is lenient by design: a trailing backslash is emitted
// literally, an unrecognized escape emits the character following the
// backslash, and a \u with fewer than four hex digits is treated as
// an unrecognized escape. Multi-byte encoding of non-ASCII code
// points is a documented non-feature; grabber bodies are consumed
// only for title extraction, where '?' placeholders are acceptable.
func Unescape(raw string) string {
	var out strings.Builder
	out.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out.WriteByte(c)
			continue
		}

		i++
		switch n := raw[i]; n {
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'u':
			if i+4 >= len(raw) || !hexQuad(raw[i+1:i+5]) {
				// Lenient fallback: emit the 'u', leave the rest alone.
				out.WriteByte(n)
				continue
			}
			code := 0
			for _, h := range []byte(raw[i+1 : i+5]) {
				code = code<<4 | hexValue(h)
			}
			if code <= 0x7F {
				out.WriteByte(byte(code))
			} else {
				out.WriteByte('?')
			}
			i += 4
		default:
			out.WriteByte(n)
		}
	}

	return out.String()
}

// hexQuad reports whether s is exactly four ASCII hex digits.
func hexQuad(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}
