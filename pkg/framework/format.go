package framework

import (
	"fmt"
	"strings"
)

// Version is reported in the Extract preamble line.
const Version = "0.1.0"

func resolveString(sp StringPackage, id uint16) string {
	if s, ok := sp.StringIDMap[id]; ok {
		return s
	}
	return "InvalidId"
}

// Extract decodes a Framework form-package opcode stream against a paired
// string package and renders it as indented, human-readable diagnostic
// text, one line per opcode. verbose prefixes each line with its absolute
// byte offset within data.
func Extract(data []byte, form FormPackage, sp StringPackage, verbose bool) string {
	if form.Offset+form.Length > uint64(len(data)) {
		return ""
	}
	raw := data[form.Offset : form.Offset+form.Length]
	p, ok := readPackage(raw, packageTypeForm)
	if !ok {
		return ""
	}
	ops, ok := parseOperations(p.body)
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Program version: %s, Extraction mode: Framework\n", Version)
	depth := 0
	offset := form.Offset + packageHeaderSize
	for _, op := range ops {
		switch op.op {
		case OpEndFormSet, OpEndForm:
			if depth > 0 {
				depth--
			}
		}

		if verbose {
			fmt.Fprintf(&b, "0x%X: ", offset)
		}
		b.WriteString(indent(depth))
		b.WriteString(op.op.Name())
		if payload := formatPayload(op, sp); payload != "" {
			b.WriteString(" ")
			b.WriteString(payload)
		}
		b.WriteByte('\n')

		switch op.op {
		case OpFormSet, OpForm:
			depth++
		}

		offset += uint64(op.length)
	}
	return b.String()
}

func indent(depth int) string {
	return strings.Repeat(" ", depth)
}

func enabledDisabled(set bool) string {
	if set {
		return "Enabled"
	}
	return "Disabled"
}

func formatPayload(op operation, sp StringPackage) string {
	switch op.op {
	case OpForm:
		p, ok := parseForm(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Title: %q, FormId: 0x%X", resolveString(sp, p.TitleStringID), p.FormID)

	case OpFormSet:
		p, ok := parseFormSet(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Title: %q, Help: %q, Guid: %s, Callback: 0x%X, Class: 0x%X, SubClass: 0x%X, NvDataSize: 0x%X",
			resolveString(sp, p.TitleStringID), resolveString(sp, p.HelpStringID), p.GUID, p.CallbackHandle, p.Class, p.SubClass, p.NvDataSize)

	case OpSubtitle:
		p, ok := parseSubtitle(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Subtitle: %q", resolveString(sp, p.SubtitleStringID))

	case OpText:
		p, ok := parseText(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Text: %q, TextTwo: %q, Help: %q, Flags: 0x%X, Key: 0x%X",
			resolveString(sp, p.TextStringID), resolveString(sp, p.TextTwoStringID), resolveString(sp, p.HelpStringID), p.Flags, p.Key)

	case OpOneOf:
		p, ok := parseOneOf(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Width: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Width)

	case OpCheckBox:
		p, ok := parseCheckBox(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Flags: 0x%X, Key: 0x%X, Default: %s, MfgDefault: %s",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Flags, p.Key,
			enabledDisabled(p.Flags&0x01 != 0), enabledDisabled(p.Flags&0x02 != 0))

	case OpNumeric:
		p, ok := parseNumeric(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Flags: 0x%X, Key: 0x%X, Min: 0x%X, Max: 0x%X, Step: 0x%X, Default: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Flags, p.Key, p.Min, p.Max, p.Step, p.Default)

	case OpPassword:
		p, ok := parsePassword(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, MinSize: 0x%X, MaxSize: 0x%X, Encoding: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.MinSize, p.MaxSize, p.Encoding)

	case OpOneOfOption:
		p, ok := parseOneOfOption(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Option: %q, Value: 0x%X, Flags: 0x%X", resolveString(sp, p.OptionStringID), p.Value, p.Flags)

	case OpSuppressIf, OpGrayOutIf:
		p, ok := parseFlagsOnly(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Flags: 0x%X", p.Flags)

	case OpHidden:
		p, ok := parseHidden(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Value: 0x%X, Key: 0x%X", p.Value, p.Key)

	case OpRef:
		p, ok := parseRef(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, FormId: 0x%X, Flags: 0x%X, Key: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.FormID, p.Flags, p.Key)

	case OpSaveDefaults, OpRestoreDefaults:
		p, ok := parseSaveRestoreDefaults(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, FormId: 0x%X, Flags: 0x%X, Key: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.FormID, p.Flags, p.Key)

	case OpInconsistentIf:
		p, ok := parseInconsistentIf(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Popup: %q, Flags: 0x%X", resolveString(sp, p.PopupStringID), p.Flags)

	case OpEqIdVal:
		p, ok := parseEqIDVal(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("QuestionId: 0x%X, Value: 0x%X", p.QuestionID, p.Value)

	case OpEqIdId:
		p, ok := parseEqIDID(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("QuestionId1: 0x%X, QuestionId2: 0x%X", p.QuestionID1, p.QuestionID2)

	case OpEqIdValList:
		p, ok := parseEqIDValList(op.data)
		if !ok {
			return "<truncated>"
		}
		parts := make([]string, len(p.List))
		for i, v := range p.List {
			parts[i] = fmt.Sprintf("0x%X", v)
		}
		return fmt.Sprintf("QuestionId: 0x%X, Width: 0x%X, List: [%s]", p.QuestionID, p.Width, strings.Join(parts, ", "))

	case OpDate, OpTime:
		p, ok := parseDateTime(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Flags: 0x%X, Key: 0x%X, Min: 0x%X, Max: 0x%X, Step: 0x%X, Default: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Flags, p.Key, p.Min, p.Max, p.Step, p.Default)

	case OpString:
		p, ok := parseStringOp(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Flags: 0x%X, Key: 0x%X, MinSize: 0x%X, MaxSize: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Flags, p.Key, p.MinSize, p.MaxSize)

	case OpLabel:
		p, ok := parseLabel(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("LabelId: 0x%X", p.LabelID)

	case OpBanner:
		p, ok := parseBanner(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Title: %q, LineNumber: 0x%X, Alignment: 0x%X", resolveString(sp, p.TitleStringID), p.LineNumber, p.Alignment)

	case OpInventory:
		p, ok := parseInventory(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Help: %q, Text: %q, TextTwo: %q", resolveString(sp, p.HelpStringID), resolveString(sp, p.TextStringID), resolveString(sp, p.TextTwoStringID))

	case OpEqVarVal:
		p, ok := parseEqVarVal(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("VariableId: 0x%X, Value: 0x%X", p.VariableID, p.Value)

	case OpOrderedList:
		p, ok := parseOrderedList(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, MaxEntries: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.MaxEntries)

	case OpVarStore:
		p, ok := parseVarStore(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("VarStoreId: 0x%X, Guid: %s, Name: %q, Size: 0x%X", p.VarStoreID, p.GUID, p.Name, p.Size)

	case OpVarStoreSelect:
		p, ok := parseVarStoreSelect(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("VarStoreId: 0x%X", p.VarStoreID)

	case OpVarStoreSelectPair:
		p, ok := parseVarStoreSelectPair(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("VarStoreId: 0x%X, SecondaryVarStoreId: 0x%X", p.VarStoreID, p.SecondaryVarStoreID)

	case OpEndForm, OpEndFormSet, OpEnd, OpEndIf, OpAnd, OpOr, OpNot, OpTrue, OpFalse,
		OpGreaterThan, OpGreaterEqual, OpGraphic, OpOemDefined, OpOem, OpNvAccessCommand:
		return ""

	case opUnknown:
		return "Unknown RawData: " + formatRawData(op.data)

	default:
		return "RawData: " + formatRawData(op.data)
	}
}

func formatRawData(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
