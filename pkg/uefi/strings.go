package uefi

import "github.com/hiiscan/ifrscan/internal/bitreader"

// SIBT (String Information Block Type) tags, per the UEFI HII string
// package block stream.
const (
	sibtEnd             = 0x00
	sibtStringScsu      = 0x10
	sibtStringScsuFont  = 0x11
	sibtStringsScsu     = 0x12
	sibtStringsScsuFont = 0x13
	sibtStringUcs2      = 0x14
	sibtStringUcs2Font  = 0x15
	sibtStringsUcs2     = 0x16
	sibtStringsUcs2Font = 0x17
	sibtDuplicate       = 0x20
	sibtSkip2           = 0x21
	sibtSkip1           = 0x22
	sibtExt1            = 0x30
	sibtExt2            = 0x31
	sibtExt4            = 0x32
)

type stringPackageHeader struct {
	hdrSize           uint16
	stringInfoOffset  uint16
	languageWindow    [16]uint16
	languageNameStrID uint16
	language          string
}

func readStringPackageHeader(r *bitreader.Reader) (stringPackageHeader, bool) {
	var h stringPackageHeader
	var err error
	if h.hdrSize, err = r.Uint16(); err != nil {
		return h, false
	}
	if h.stringInfoOffset, err = r.Uint16(); err != nil {
		return h, false
	}
	for i := range h.languageWindow {
		if h.languageWindow[i], err = r.Uint16(); err != nil {
			return h, false
		}
	}
	if h.languageNameStrID, err = r.Uint16(); err != nil {
		return h, false
	}
	h.language = r.NulTerminatedASCII()
	return h, true
}

// decodeStringPackage parses a UEFI string-package body: a fixed header
// followed by a SIBT-tagged block stream, per spec §4.3. current_id starts
// at 1; ID 0 is reserved and is inserted up front as the empty string.
func decodeStringPackage(body []byte) (language string, idMap map[uint16]string, ok bool) {
	r := bitreader.New(body)
	hdr, ok := readStringPackageHeader(r)
	if !ok {
		return "", nil, false
	}
	if err := r.Seek(int(hdr.stringInfoOffset)); err != nil {
		return "", nil, false
	}

	idMap = map[uint16]string{0: ""}
	currentID := uint16(1)

	insert := func(s string) {
		idMap[currentID] = s
		currentID++
	}

	for {
		tag, err := r.Byte()
		if err != nil {
			break
		}
		switch tag {
		case sibtEnd:
			return hdr.language, idMap, true

		case sibtStringScsu:
			s, n := decodeSCSUFromReader(r)
			_ = n
			insert(s)

		case sibtStringScsuFont:
			if _, err := r.Byte(); err != nil { // font id, ignored
				return hdr.language, idMap, true
			}
			s, _ := decodeSCSUFromReader(r)
			insert(s)

		case sibtStringsScsu:
			count, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			for i := uint16(0); i < count; i++ {
				s, _ := decodeSCSUFromReader(r)
				insert(s)
			}

		case sibtStringsScsuFont:
			if _, err := r.Byte(); err != nil {
				return hdr.language, idMap, true
			}
			count, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			for i := uint16(0); i < count; i++ {
				s, _ := decodeSCSUFromReader(r)
				insert(s)
			}

		case sibtStringUcs2:
			s, err := r.UCS2NulTerminated()
			if err != nil {
				return hdr.language, idMap, true
			}
			insert(s)

		case sibtStringUcs2Font:
			if _, err := r.Byte(); err != nil {
				return hdr.language, idMap, true
			}
			s, err := r.UCS2NulTerminated()
			if err != nil {
				return hdr.language, idMap, true
			}
			insert(s)

		case sibtStringsUcs2:
			count, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			for i := uint16(0); i < count; i++ {
				s, err := r.UCS2NulTerminated()
				if err != nil {
					return hdr.language, idMap, true
				}
				insert(s)
			}

		case sibtStringsUcs2Font:
			if _, err := r.Byte(); err != nil {
				return hdr.language, idMap, true
			}
			count, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			for i := uint16(0); i < count; i++ {
				s, err := r.UCS2NulTerminated()
				if err != nil {
					return hdr.language, idMap, true
				}
				insert(s)
			}

		case sibtDuplicate:
			if _, err := r.Uint16(); err != nil { // referenced string id, ignored
				return hdr.language, idMap, true
			}
			currentID++

		case sibtSkip1:
			n, err := r.Byte()
			if err != nil {
				return hdr.language, idMap, true
			}
			currentID += uint16(n)

		case sibtSkip2:
			n, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			currentID += n

		case sibtExt1:
			length, err := r.Byte()
			if err != nil {
				return hdr.language, idMap, true
			}
			if _, err := r.Bytes(int(length)); err != nil {
				return hdr.language, idMap, true
			}

		case sibtExt2:
			length, err := r.Uint16()
			if err != nil {
				return hdr.language, idMap, true
			}
			if _, err := r.Bytes(int(length)); err != nil {
				return hdr.language, idMap, true
			}

		case sibtExt4:
			length, err := r.Uint32()
			if err != nil {
				return hdr.language, idMap, true
			}
			if _, err := r.Bytes(int(length)); err != nil {
				return hdr.language, idMap, true
			}

		default:
			// Unrecognised block tag: its length is unknown, so decoding
			// stops here without error and keeps the strings read so far.
			return hdr.language, idMap, true
		}
	}

	return hdr.language, idMap, true
}

// decodeSCSUFromReader decodes one NUL-terminated SCSU string starting at
// the reader's current position and advances past it.
func decodeSCSUFromReader(r *bitreader.Reader) (string, int) {
	rest, err := r.Bytes(r.Len())
	if err != nil {
		return "", 0
	}
	s, n := bitreader.DecodeSCSU(rest)
	// DecodeSCSU consumed n bytes of rest; rewind the reader to just past
	// them since Bytes() already advanced it past the whole remainder.
	overshoot := len(rest) - n
	if overshoot > 0 {
		_ = mustSeekBack(r, overshoot)
	}
	return s, n
}

func mustSeekBack(r *bitreader.Reader, n int) error {
	return r.Seek(r.Pos() - n)
}
