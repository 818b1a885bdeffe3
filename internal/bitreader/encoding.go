package bitreader

import "golang.org/x/text/encoding/charmap"

// DecodeLatin1 decodes an 8-bit string-pool byte slice as ISO-8859-1, the
// code page Framework's 8-bit string format never names but that
// round-trips every byte value 1:1, matching spec's "8-bit string" framing.
func DecodeLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// DecodeUCS2 converts a sequence of UCS-2 code units to text. A high
// surrogate immediately followed by a low surrogate is combined into one
// character; any unpaired surrogate is replaced with U+FFFD (malformed
// input is tolerated rather than rejected).
func DecodeUCS2(units []uint16) string {
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			// High surrogate: combine with a following low surrogate,
			// otherwise replace and continue.
			if i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
				runes = append(runes, 0x10000+(rune(u)-0xD800)<<10+(rune(units[i+1])-0xDC00))
				i++
				continue
			}
			runes = append(runes, 0xFFFD)
		case u >= 0xDC00 && u <= 0xDFFF:
			runes = append(runes, 0xFFFD)
		default:
			runes = append(runes, rune(u))
		}
	}
	return string(runes)
}

// SCSU single-byte mode tags known to this decoder. HII string packages
// rarely use SCSU's multi-byte or shifted modes, so a minimal decoder that
// covers the default window plus the SQU and SCU controls is sufficient
// (spec §4.1). SQ0 is not decoded as a quote: it is kept out of the
// control-character passthrough so that it triggers the Latin-1 fallback.
const (
	scsuSQ0 = 0x01 // Quote from window 0 (single byte follows, literal ASCII)
	scsuSQU = 0x0E // Quote a single Unicode character (16-bit) then return to prior mode
	scsuSCU = 0x0F // Switch to Unicode mode (16-bit units follow, until next control)
)

// DecodeSCSU decodes a NUL-terminated Standard Compression Scheme for
// Unicode string, per UTS #6, supporting the single-byte default window
// (ASCII passthrough) plus the SQU/SCU Unicode-quoting controls HII
// producers commonly emit. On an unrecognised tag byte it falls back to
// treating the remainder of the string as Latin-1 and continues, per
// spec §4.1. Returns the decoded text and the number of input bytes
// consumed, including the terminating NUL.
func DecodeSCSU(data []byte) (string, int) {
	var runes []rune
	unicodeMode := false
	i := 0
	for i < len(data) {
		b := data[i]
		if unicodeMode {
			if i+1 >= len(data) {
				break
			}
			u := uint16(b)<<8 | uint16(data[i+1])
			i += 2
			if u == 0 {
				return string(runes), i
			}
			runes = append(runes, rune(u))
			continue
		}

		switch {
		case b == 0:
			return string(runes), i + 1
		case b == scsuSCU:
			unicodeMode = true
			i++
		case b == scsuSQU:
			if i+2 >= len(data) {
				i = len(data)
				break
			}
			u := uint16(data[i+1])<<8 | uint16(data[i+2])
			runes = append(runes, rune(u))
			i += 3
		case b >= 0x20 && b < 0x80:
			runes = append(runes, rune(b))
			i++
		case b < 0x20 && b != scsuSQ0:
			// Control/whitespace characters below 0x20 pass through literally
			// except where they collide with SCSU tags handled above.
			runes = append(runes, rune(b))
			i++
		default:
			// Unrecognised tag: fall back to Latin-1 for the remainder.
			j := i
			for j < len(data) && data[j] != 0 {
				runes = append(runes, rune(data[j]))
				j++
			}
			if j < len(data) {
				j++ // consume terminating NUL
			}
			return string(runes), j
		}
	}
	return string(runes), i
}
