// Package framework decodes the EFI 1.10-era Framework HII package format:
// its string packages (offset table into a NUL-terminated 8-bit string
// pool) and its IFR form opcode stream. It has no outer container — the
// caller supplies an arbitrary byte blob and FindPackages locates every
// recognisable package inside it by linear scan.
package framework

import "github.com/hiiscan/ifrscan/internal/bitreader"

// Package type tags recognised in a Framework HII package header. Framework
// packages only ever declare the two the locator looks for; all other type
// values are simply never matched by a candidate scan.
const (
	packageTypeString byte = 0x02
	packageTypeForm   byte = 0x03
)

// packageHeaderSize is the Framework package header: a 4-byte length
// followed by a 1-byte type.
const packageHeaderSize = 5

// pkg represents one parsed Framework HII package: header plus the body
// bytes, borrowed from the caller's buffer.
type pkg struct {
	length uint32
	typ    byte
	body   []byte
}

// StringPackage is a located and decoded Framework string package.
type StringPackage struct {
	Offset      uint64
	Length      uint64
	Language    string
	StringIDMap map[uint16]string
}

// FormPackage is a located Framework form package, with its referenced
// string-ID range already computed by the locator.
type FormPackage struct {
	Offset      uint64
	Length      uint64
	UsedStrings uint32
	MinStringID uint16
	MaxStringID uint16
}

// stringPackageHeader mirrors the fixed portion of a Framework string
// package body, preceding its offset table and string pool.
type stringPackageHeader struct {
	hdrSize                           uint16
	stringInfoOffset                  uint16
	numStringPointers                 uint32
	attributes                        uint32
	languageNameStringOffset          uint32
	printableLanguageNameStringOffset uint32
}

func readStringPackageHeader(r *bitreader.Reader) (stringPackageHeader, error) {
	var h stringPackageHeader
	var err error
	if h.hdrSize, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.stringInfoOffset, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.numStringPointers, err = r.Uint32(); err != nil {
		return h, err
	}
	if h.attributes, err = r.Uint32(); err != nil {
		return h, err
	}
	if h.languageNameStringOffset, err = r.Uint32(); err != nil {
		return h, err
	}
	if h.printableLanguageNameStringOffset, err = r.Uint32(); err != nil {
		return h, err
	}
	return h, nil
}
