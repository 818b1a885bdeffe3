package fvscan

import (
	"encoding/binary"
	"testing"

	"github.com/hiiscan/ifrscan/pkg/framework"
	"github.com/hiiscan/ifrscan/pkg/lzss"
	"github.com/stretchr/testify/require"
)

const (
	frameworkPackageHeaderSize = 5
	frameworkPackageTypeString = 0x02
	frameworkPackageTypeForm   = 0x03
)

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// buildFrameworkBlob assembles a minimal but well-formed Framework
// string+form package pair to exercise decompression against.
func buildFrameworkBlob() []byte {
	const headerSize = 20
	all := []string{"eng", "Compressed Title"}
	offsetTableSize := len(all) * 4

	pool := make([]byte, 0, 32)
	offsets := make([]uint32, len(all))
	for i, s := range all {
		offsets[i] = uint32(headerSize + offsetTableSize + len(pool))
		pool = append(pool, []byte(s)...)
		pool = append(pool, 0)
	}

	body := make([]byte, 0, headerSize+offsetTableSize+len(pool))
	put16 := func(v uint16) { body = binary.LittleEndian.AppendUint16(body, v) }
	put32 := func(v uint32) { body = binary.LittleEndian.AppendUint32(body, v) }
	put16(uint16(headerSize)) // hdrSize
	put16(uint16(headerSize)) // stringInfoOffset
	put32(uint32(len(all)))   // numStringPointers
	put32(0)                  // attributes
	put32(offsets[0])         // languageNameStringOffset
	put32(offsets[0])         // printableLanguageNameStringOffset
	for _, off := range offsets {
		put32(off)
	}
	body = append(body, pool...)

	strPkg := make([]byte, 0, frameworkPackageHeaderSize+len(body))
	strPkg = binary.LittleEndian.AppendUint32(strPkg, uint32(frameworkPackageHeaderSize+len(body)))
	strPkg = append(strPkg, frameworkPackageTypeString)
	strPkg = append(strPkg, body...)

	formSetPayload := append(u16(1), u16(0)...)           // Title, Help
	formSetPayload = append(formSetPayload, make([]byte, 16+8+2+2+2)...) // Guid, CallbackHandle, Class, SubClass, NvDataSize
	formBody := append([]byte{byte(framework.OpFormSet), byte(len(formSetPayload) + 2)}, formSetPayload...)
	formBody = append(formBody, byte(framework.OpEndFormSet), 2)

	formPkg := make([]byte, 0, frameworkPackageHeaderSize+len(formBody))
	formPkg = binary.LittleEndian.AppendUint32(formPkg, uint32(frameworkPackageHeaderSize+len(formBody)))
	formPkg = append(formPkg, frameworkPackageTypeForm)
	formPkg = append(formPkg, formBody...)

	return append(strPkg, formPkg...)
}

func wrapLZSS(original []byte) []byte {
	compressed := lzss.Compress(original)
	out := make([]byte, 0, 8+len(compressed))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(compressed)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(original)))
	out = append(out, compressed...)
	return out
}

func TestFindLocatesDecompressibleRegionWithPackage(t *testing.T) {
	original := buildFrameworkBlob()
	blob := append([]byte{0xAA, 0xAA, 0xAA, 0xAA}, wrapLZSS(original)...)

	regions := Find(blob)
	require.Len(t, regions, 1)
	require.Equal(t, uint32(len(original)), regions[0].OriginalLen)
	require.Equal(t, original, regions[0].Decompressed)
}

func TestFindRejectsPlainNoise(t *testing.T) {
	noise := make([]byte, 256)
	for i := range noise {
		noise[i] = byte(i * 37)
	}
	require.Empty(t, Find(noise))
}

func TestFindRejectsImplausibleSizePairs(t *testing.T) {
	bad := make([]byte, 0, 16)
	bad = binary.LittleEndian.AppendUint32(bad, 4)
	bad = binary.LittleEndian.AppendUint32(bad, 0xFFFFFFFF)
	bad = append(bad, []byte{1, 2, 3, 4}...)
	require.Empty(t, Find(bad))
}

func TestExpandBuffersIncludesOriginalAndDecompressed(t *testing.T) {
	original := buildFrameworkBlob()
	blob := wrapLZSS(original)

	buffers := ExpandBuffers(blob)
	require.Len(t, buffers, 2)
	require.Equal(t, blob, buffers[0])
	require.Equal(t, original, buffers[1])
}
