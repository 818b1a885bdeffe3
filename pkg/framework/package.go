package framework

import "github.com/hiiscan/ifrscan/internal/bitreader"

// readPackage attempts to parse a Framework package header (4-byte length,
// 1-byte type) at the start of data, and returns the package and its total
// on-wire length if the declared type matches wantType and the declared
// length fits within data.
func readPackage(data []byte, wantType byte) (pkg, bool) {
	if len(data) < packageHeaderSize {
		return pkg{}, false
	}
	r := bitreader.New(data)
	length, err := r.Uint32()
	if err != nil {
		return pkg{}, false
	}
	typ, err := r.Byte()
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
