// Package fvscan is a supplemental preprocessing pass that looks for
// LZSS-compressed regions embedded in a firmware image (a common OEM
// padding/section compression scheme) and, where decompressing one
// yields bytes that contain an HII package, offers the decompressed
// buffer up alongside the original for scanning. It never validates or
// rejects anything; it only ever adds candidate bytes.
package fvscan

import (
	"encoding/binary"

	"github.com/hiiscan/ifrscan/pkg/framework"
	"github.com/hiiscan/ifrscan/pkg/lzss"
	"github.com/hiiscan/ifrscan/pkg/uefi"
)

const sizeHeaderLen = 8

// minOriginalSize is a sanity floor: candidates claiming a smaller
// original size are skipped without being decompressed.
const minOriginalSize = 16

// maxOriginalSize bounds how large a claimed original size we will
// attempt to decompress, to keep a scan over a large image bounded.
const maxOriginalSize = 64 << 20

// Region is one located compressed span and its decompressed bytes.
type Region struct {
	Offset        uint64
	CompressedLen uint32
	OriginalLen   uint32
	Decompressed  []byte
}

// Find scans data for candidate LZSS regions: a little-endian
// (compressedSize, originalSize) uint32 pair followed by compressedSize
// bytes of LZSS stream. A candidate is kept only if decompressing it
// yields at least one string or form package under either dialect.
func Find(data []byte) []Region {
	var regions []Region
	for off := 0; off+sizeHeaderLen < len(data); off++ {
		compressedLen := binary.LittleEndian.Uint32(data[off:])
		originalLen := binary.LittleEndian.Uint32(data[off+4:])
		if originalLen < minOriginalSize || originalLen > maxOriginalSize {
			continue
		}
		if compressedLen == 0 || compressedLen > originalLen {
			continue
		}
		start := off + sizeHeaderLen
		end := start + int(compressedLen)
		if end > len(data) {
			continue
		}

		out := lzss.Decompress(data[start:end])
		if len(out) == 0 {
			continue
		}
		if !containsPackage(out) {
			continue
		}

		regions = append(regions, Region{
			Offset:        uint64(off),
			CompressedLen: compressedLen,
			OriginalLen:   originalLen,
			Decompressed:  out,
		})
	}
	return regions
}

// containsPackage reports whether buf holds at least one recognisable
// string or form package under either the Framework or UEFI dialect.
func containsPackage(buf []byte) bool {
	fStrs, fForms := framework.FindPackages(buf)
	if len(fStrs) > 0 || len(fForms) > 0 {
		return true
	}
	uStrs, uForms := uefi.FindPackages(buf)
	return len(uStrs) > 0 || len(uForms) > 0
}

// ExpandBuffers returns data plus the decompressed bytes of every
// candidate region Find locates, for callers that want to hand every
// buffer worth scanning to the locators in one pass.
func ExpandBuffers(data []byte) [][]byte {
	buffers := [][]byte{data}
	for _, r := range Find(data) {
		buffers = append(buffers, r.Decompressed)
	}
	return buffers
}
