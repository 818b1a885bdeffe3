package framework

import (
	"encoding/binary"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStringPackage assembles a well-formed Framework string-package blob
// (header, type byte, body) for the given language and ordered strings.
func buildStringPackage(language string, strs []string) []byte {
	all := append([]string{language}, strs...)
	headerSize := 20
	offsetTableSize := len(all) * 4

	pool := make([]byte, 0, 64)
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
	put32(offsets[0])         // languageNameStringOffset -> index 0
	put32(offsets[0])         // printableLanguageNameStringOffset

	for _, off := range offsets {
		put32(off)
	}
	body = append(body, pool...)

	return wrapPackage(packageTypeString, body)
}

func wrapPackage(typ byte, body []byte) []byte {
	out := make([]byte, 0, packageHeaderSize+len(body))
	out = binary.LittleEndian.AppendUint32(out, uint32(packageHeaderSize+len(body)))
	out = append(out, typ)
	out = append(out, body...)
	return out
}

type opBuilder struct {
	body []byte
}

func (b *opBuilder) op(code OpCode, data []byte) *opBuilder {
	b.body = append(b.body, byte(code), byte(len(data)+2))
	b.body = append(b.body, data...)
	return b
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func TestFindPackagesLocatesPairedFormAndStringPackages(t *testing.T) {
	strPkg := buildStringPackage("eng", []string{"My Setup Title"})

	var ob opBuilder
	ob.op(OpFormSet, append(append(u16(0), u16(0)...), make([]byte, 16+8+2+2+2)...))
	ob.op(OpForm, append(u16(0x1000), u16(1)...))
	ob.op(OpEndForm, nil)
	ob.op(OpEndFormSet, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	require.Equal(t, "eng", strs[0].Language)
	require.Equal(t, "My Setup Title", strs[0].StringIDMap[1])

	require.Equal(t, uint16(0), forms[0].MinStringID)
	require.Equal(t, uint16(1), forms[0].MaxStringID)
	require.Equal(t, uint32(2), forms[0].UsedStrings)
}

func TestExtractRendersTitleAndBalancesScope(t *testing.T) {
	strPkg := buildStringPackage("eng", []string{"My Setup Title"})

	var ob opBuilder
	ob.op(OpFormSet, append(append(u16(0), u16(0)...), make([]byte, 16+8+2+2+2)...))
	ob.op(OpForm, append(u16(0x1000), u16(1)...))
	ob.op(OpEndForm, nil)
	ob.op(OpEndFormSet, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	out := Extract(blob, forms[0], strs[0], false)
	require.Contains(t, out, `Title: "My Setup Title"`)
	require.Contains(t, out, "FormSet ")
	require.Contains(t, out, "EndForm\n")
	require.Contains(t, out, "\n Form Title: ")
	require.Contains(t, out, "\n EndForm\nEndFormSet\n")
}

func TestExtractVerboseIncludesOffsets(t *testing.T) {
	strPkg := buildStringPackage("eng", []string{"Title"})

	var ob opBuilder
	ob.op(OpForm, append(u16(0x1000), u16(1)...))
	ob.op(OpEndForm, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	blob := append(append([]byte{}, strPkg...), formPkg...)

	strs, forms := FindPackages(blob)
	require.Len(t, strs, 1)
	require.Len(t, forms, 1)

	out := Extract(blob, forms[0], strs[0], true)
	require.Regexp(t, regexp.MustCompile(`0x[0-9A-F]+: Form `), out)
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
	ob.op(OpEnd, nil)
	formPkg := wrapPackage(packageTypeForm, ob.body)

	_, forms := FindPackages(formPkg)
	require.Empty(t, forms)
}
