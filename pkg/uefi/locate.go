package uefi

import "slices"

// FindPackages scans data for every UEFI string package and form package
// it can locate, in that order, by trying a package header at each byte
// offset in turn. A form package is kept only if cross-referencing its
// opcode stream yields at least one string ID.
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
// references, mirroring §4.5's cross-referencer field by field.
func collectStringIDs(ops []operation) []uint16 {
	var ids []uint16
	push := func(id uint16) {
		if id != invalidID {
			ids = append(ids, id)
		}
	}
	for _, op := range ops {
		switch op.op {
		case OpForm:
			if p, ok := parseForm(op.data); ok {
				push(p.TitleStringID)
			}
		case OpSubtitle:
			if p, ok := parseSubtitle(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpText:
			if p, ok := parseText(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
				push(p.TextID)
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
				if p.hasValueID {
					push(p.ValueID)
				}
			}
		case OpAction:
			if p, ok := parseAction(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
				if p.hasConfigStringID {
					push(p.ConfigStringID)
				}
			}
		case OpResetButton:
			if p, ok := parseResetButton(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpFormSet:
			if p, ok := parseFormSet(op.data); ok {
				push(p.TitleStringID)
				push(p.HelpStringID)
			}
		case OpRef:
			if p, ok := parseRef(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpNoSubmitIf:
			if p, ok := parseNoSubmitIf(op.data); ok {
				push(p.ErrorStringID)
			}
		case OpInconsistentIf:
			if p, ok := parseInconsistentIf(op.data); ok {
				push(p.ErrorStringID)
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
		case OpOrderedList:
			if p, ok := parseOrderedList(op.data); ok {
				push(p.PromptStringID)
				push(p.HelpStringID)
			}
		case OpVarStoreDevice:
			if p, ok := parseVarStoreDevice(op.data); ok {
				push(p.DevicePathStringID)
			}
		case OpStringRef1:
			if p, ok := parseStringRef1(op.data); ok {
				push(p.StringID)
			}
		case OpQuestionRef3:
			if p, ok := parseQuestionRef3(op.data); ok && p.hasDevicePath {
				push(p.DevicePathID)
			}
		case OpDefault:
			if p, ok := parseDefault(op.data); ok && p.hasValue {
				push(p.ValueID)
			}
		case OpDefaultStore:
			if p, ok := parseDefaultStore(op.data); ok {
				push(p.NameStringID)
			}
		case OpFormMap:
			if p, ok := parseFormMap(op.data); ok {
				for _, m := range p.Methods {
					push(m.MethodTitleID)
				}
			}
		case OpWarningIf:
			if p, ok := parseWarningIf(op.data); ok {
				push(p.WarningStringID)
			}
		case OpGuid:
			if p, ok := parseGuid(op.data); ok {
				if p.hasBanner {
					push(p.BannerID)
				}
				if p.hasVarEqName {
					push(p.VarEqNameID)
				}
			}
		}
	}
	return ids
}
