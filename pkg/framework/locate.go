package framework

import "slices"

// FindPackages scans data for every Framework string package and form
// package it can locate, in that order, by trying a package header at each
// byte offset in turn. A form package is kept only if cross-referencing its
// opcode stream yields at least one string ID, since a form package with no
// string references is indistinguishable from a random byte run that
// happened to parse.
func FindPackages(data []byte) ([]StringPackage, []FormPackage) {
	var strPkgs []StringPackage
	for off := 0; off+packageHeaderSize < len(data); off++ {
		p, ok := readPackage(data[off:], packageTypeString)
		if !ok {
			continue
		}
		language, idMap, ok := decodeStringPackage(p.body)
		if !ok {
			continue
		}
		strPkgs = append(strPkgs, StringPackage{
			Offset:      uint64(off),
			Length:      uint64(p.length),
			Language:    language,
			StringIDMap: idMap,
		})
	}

	var formPkgs []FormPackage
	for off := 0; off+packageHeaderSize < len(data); off++ {
		p, ok := readPackage(data[off:], packageTypeForm)
		if !ok {
			continue
		}
		ops, ok := parseOperations(p.body)
		if !ok {
			continue
		}
		ids := collectStringIDs(ops)
		if len(ids) == 0 {
			continue
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)
		formPkgs = append(formPkgs, FormPackage{
			Offset:      uint64(off),
			Length:      uint64(p.length),
			UsedStrings: uint32(len(ids)),
			MinStringID: ids[0],
			MaxStringID: ids[len(ids)-1],
		})
	}

	return strPkgs, formPkgs
}

// collectStringIDs extracts every string-table ID an opcode stream
// references, mirroring the field-by-field extraction a full formatter
// pass performs, but without building output text.
func collectStringIDs(ops []operation) []uint16 {
	var ids []uint16
	push := func(id uint16) {
		ids = append(ids, id)
	}
	for _, op := range ops {
		switch op.op {
		case OpForm:
			if p, ok := parseForm(op.data); ok {
				push(p.TitleStringID)
			}
		case OpFormSet:
			if p, ok := parseFormSet(op.data); ok {
				push(p.TitleStringID)
				push(p.HelpStringID)
			}
		case OpSubtitle:
			if p, ok := parseSubtitle(op.data); ok {
				push(p.SubtitleStringID)
			}
		case OpText:
			if p, ok := parseText(op.data); ok {
				push(p.HelpStringID)
				push(p.TextStringID)
				push(p.TextTwoStringID)
			}
		case OpOneOf:
			if p, ok := parseOneOf(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpCheckBox:
			if p, ok := parseCheckBox(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpNumeric:
			if p, ok := parseNumeric(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpPassword:
			if p, ok := parsePassword(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpOneOfOption:
			if p, ok := parseOneOfOption(op.data); ok {
				push(p.OptionStringID)
			}
		case OpRef:
			if p, ok := parseRef(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpSaveDefaults, OpRestoreDefaults:
			if p, ok := parseSaveRestoreDefaults(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpInconsistentIf:
			if p, ok := parseInconsistentIf(op.data); ok {
				push(p.PopupStringID)
			}
		case OpDate, OpTime:
			if p, ok := parseDateTime(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpString:
			if p, ok := parseStringOp(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpBanner:
			if p, ok := parseBanner(op.data); ok {
				push(p.TitleStringID)
			}
		case OpInventory:
			if p, ok := parseInventory(op.data); ok {
				push(p.HelpStringID)
				push(p.TextStringID)
				push(p.TextTwoStringID)
			}
		case OpOrderedList:
			if p, ok := parseOrderedList(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		}
	}
	return ids
}
