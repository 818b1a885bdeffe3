package uefi

import (
	"encoding/binary"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStringPackage assembles a well-formed UEFI string-package blob using
// UCS2 string blocks terminated by a SIBT End tag.
func buildStringPackage(language string, strs []string) []byte {
	const hdrSize = 2 + 2 + 16*2 + 2 // hdrSize + stringInfoOffset + languageWindow + languageNameStrId
	langBytes := append([]byte(language), 0)
	stringInfoOffset := hdrSize + len(langBytes)

	body := make([]byte, 0, 64)
	put16 := func(v uint16) { body = binary.LittleEndian.AppendUint16(body, v) }

	put16(uint16(hdrSize))
	put16(uint16(stringInfoOffset))
	for i := 0; i < 16; i++ {
		put16(0)
	}
	put16(0) // languageNameStrId
	body = append(body, langBytes...)

	for _, s := range strs {
		body = append(body, sibtStringUcs2)
		for _, r := range s {
			put16(uint16(r))
		}
		put16(0)
	}
	body = append(body, sibtEnd)

	return wrapPackage(packageTypeString, body)
}

func wrapPackage(typ byte, body []byte) []byte {
	header := make([]byte, packageHeaderSize)
	length := uint32(packageHeaderSize + len(body))
	header[0] = byte(length)
	header[1] = byte(length >> 8)
	header[2] = byte(length >> 16)
	header[3] = typ
	return append(header, body...)
}

type opBuilder struct {
	body []byte
}

func (b *opBuilder) op(code OpCode, scopeStart bool, data []byte) *opBuilder {
	raw := byte(code)
	if scopeStart {
		raw |= scopeStartBit
	}
	b.body = append(b.body, raw, byte(len(data)+2))
	b.body = append(b.body, data...)
	return b
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func TestFindPackagesLocatesPairedFormAndStringPackages(t *testing.T) {
	strPkg := buildStringPackage("en-US", []string{"My Setup Title"})

	guid := make([]byte, 16)
	var ob opBuilder
	ob.op(OpFormSet, true, append(append([]byte{}, guid...), append(u16(1), u16(0)...)...))
	ob.op(OpForm, true, append(u16(0x1000), u16(2)...))
	ob.op(OpEnd, false, nil)
	ob.op(OpEnd, false, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	require.Equal(t, "en-US", strs[0].Language)
	require.Equal(t, "My Setup Title", strs[0].StringIDMap[1])

	require.Equal(t, uint16(0), forms[0].MinStringID)
	require.Equal(t, uint16(2), forms[0].MaxStringID)
	require.Equal(t, uint32(3), forms[0].UsedStrings)
}

func TestExtractRendersTitleAndBalancesScope(t *testing.T) {
	strPkg := buildStringPackage("en-US", []string{"My Setup Title"})

	guid := make([]byte, 16)
	var ob opBuilder
	ob.op(OpFormSet, true, append(append([]byte{}, guid...), append(u16(0), u16(0)...)...))
	ob.op(OpForm, true, append(u16(0x1000), u16(1)...))
	ob.op(OpEnd, false, nil)
	ob.op(OpEnd, false, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	out := Extract(blob, forms[0], strs[0], false)
	require.Contains(t, out, `Title: "My Setup Title"`)
	require.Contains(t, out, "FormSet")
	require.Contains(t, out, "End\n")
	require.Contains(t, out, "\n Form FormId: ")
	require.Contains(t, out, "\n End\nEnd\n")
}

func TestExtractVerboseIncludesOffsets(t *testing.T) {
	strPkg := buildStringPackage("en-US", []string{"Title"})

	var ob opBuilder
	ob.op(OpForm, true, append(u16(0x1000), u16(1)...))
	ob.op(OpEnd, false, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	out := Extract(blob, forms[0], strs[0], true)
	require.Regexp(t, regexp.MustCompile(`0x[0-9A-F]+: Form`), out)
}

func TestFindPackagesRejectsRandomBytes(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte{0x01, 0x02, 0x03}},
		{"junk", []byte{0xde, 0xad, 0xbe, 0xef, 0x02, 0x00, 0x00, 0x00, 0x00}},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			strs, forms := FindPackages(tt.data)
			require.Empty(t, strs)
			require.Empty(t, forms)
		})
	}
}

func TestFormPackageWithoutStringReferencesIsDiscarded(t *testing.T) {
	var ob opBuilder
	ob.op(OpEnd, false, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	_, forms := FindPackages(formPkg)
	require.Empty(t, forms)
}

func TestVarEqNameBugIsPreservedLiterally(t *testing.T) {
	guid := frameworkGUID
	d := append(append([]byte{}, guid[:]...), edkExtVarEqName, 0x05, 0x02)

	p, ok := parseGuid(d)
	require.True(t, ok)
	require.True(t, p.hasVarEqName)
	require.Equal(t, uint16(2)*100+uint16(5), p.VarEqNameID)
}

func TestGuidBannerExtension(t *testing.T) {
	guid := tianoGUID
	d := append(append([]byte{}, guid[:]...), edk2ExtBanner, byte(0x2A), byte(0x00))

	p, ok := parseGuid(d)
	require.True(t, ok)
	require.True(t, p.hasBanner)
	require.Equal(t, uint16(0x2A), p.BannerID)
}

func TestCollectStringIDsKeepsZeroSkipsInvalid(t *testing.T) {
	var obZero opBuilder
	obZero.op(OpForm, false, append(u16(0x1000), u16(0)...))
	opsZero, ok := parseOperations(obZero.body)
	require.True(t, ok)
	require.Equal(t, []uint16{0}, collectStringIDs(opsZero))

	var obInvalid opBuilder
	obInvalid.op(OpForm, false, append(u16(0x1000), u16(invalidID)...))
	opsInvalid, ok := parseOperations(obInvalid.body)
	require.True(t, ok)
	require.Empty(t, collectStringIDs(opsInvalid))
}
