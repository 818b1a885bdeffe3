package framework

import "github.com/hiiscan/ifrscan/internal/bitreader"

// decodeStringPackage parses a Framework string-package body: a fixed
// header, NumStringPointers 32-bit offsets into the body (relative to the
// start of the body), and a NUL-terminated 8-bit string pool. The offsets
// are resolved to strings indexed 0..NumStringPointers-1, and the package
// language is the string whose pointer equals LanguageNameStringOffset
// (falling back to index 0 if no pointer matches, per spec §4.2).
func decodeStringPackage(body []byte) (language string, idMap map[uint16]string, ok bool) {
	r := bitreader.New(body)
	hdr, err := readStringPackageHeader(r)
	if err != nil {
		return "", nil, false
	}
	if hdr.numStringPointers == 0 || hdr.numStringPointers > uint32(len(body)) {
		return "", nil, false
	}

	offsets := make([]uint32, hdr.numStringPointers)
	for i := range offsets {
		off, err := r.Uint32()
		if err != nil {
			return "", nil, false
		}
		offsets[i] = off
	}

	strs := make([]string, len(offsets))
	for i, off := range offsets {
		if int(off) > len(body) {
			return "", nil, false
		}
		sr := bitreader.New(body)
		if err := sr.Seek(int(off)); err != nil {
			return "", nil, false
		}
		strs[i] = sr.NulTerminatedLatin1()
	}

	langIndex := 0
	for i, off := range offsets {
		if off == hdr.languageNameStringOffset {
			langIndex = i
			break
		}
	}
	language = ""
	if langIndex < len(strs) {
		language = strs[langIndex]
	}

	idMap = make(map[uint16]string, len(strs))
	for i, s := range strs {
		idMap[uint16(i)] = s
	}
	return language, idMap, true
}
