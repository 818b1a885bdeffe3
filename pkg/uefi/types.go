// Package uefi decodes UEFI HII package format: string packages built from
// a SIBT-tagged block stream (SCSU or UCS-2 encoded), and IFR form-package
// opcode streams where each opcode carries its own scope-start bit. Like
// framework, it has no outer container — FindPackages locates every
// recognisable package in an arbitrary byte blob by linear scan.
package uefi

import "github.com/hiiscan/ifrscan/internal/bitreader"

// Package type tags recognised in a UEFI HII package header.
const (
	packageTypeForm   byte = 0x02
	packageTypeString byte = 0x04
)

// packageHeaderSize is the UEFI package header: a 24-bit length and an
// 8-bit type packed into the low and high bits of a 32-bit little-endian
// word.
const packageHeaderSize = 4

// scopeStartBit marks an opcode as opening a new nesting level; it is
// packed into the high bit of the opcode's first header byte, alongside
// the 7-bit opcode value.
const scopeStartBit = 0x80

// invalidID is the sentinel UEFI uses for "no string"; the cross-referencer
// does not count it as a string reference.
const invalidID uint16 = 0xFFFF

// StringPackage is a located and decoded UEFI string package.
type StringPackage struct {
	Offset      uint64
	Length      uint64
	Language    string
	StringIDMap map[uint16]string
}

// FormPackage is a located UEFI form package, with its referenced
// string-ID range already computed by the locator.
type FormPackage struct {
	Offset      uint64
	Length      uint64
	UsedStrings uint32
	MinStringID uint16
	MaxStringID uint16
}

// pkg represents one parsed UEFI HII package: header plus body bytes,
// borrowed from the caller's buffer.
type pkg struct {
	length uint32
	typ    byte
	body   []byte
}

func readPackageHeader(r *bitreader.Reader) (length uint32, typ byte, err error) {
	v, err := r.Uint24()
	if err != nil {
		return 0, 0, err
	}
	t, err := r.Byte()
	if err != nil {
		return 0, 0, err
	}
	return v, t, nil
}

// readPackage attempts to parse a UEFI package header (24-bit length,
// 8-bit type) at the start of data, returning the package if the declared
// type matches wantType and the declared length fits within data.
func readPackage(data []byte, wantType byte) (pkg, bool) {
	if len(data) < packageHeaderSize {
		return pkg{}, false
	}
	r := bitreader.New(data)
	length, typ, err := readPackageHeader(r)
	if err != nil {
		return pkg{}, false
	}
	if typ != wantType {
		return pkg{}, false
	}
	if length < packageHeaderSize || uint64(length) > uint64(len(data)) {
		return pkg{}, false
	}
	body := data[packageHeaderSize:length]
	return pkg{length: length, typ: typ, body: body}, true
}
