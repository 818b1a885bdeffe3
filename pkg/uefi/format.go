package uefi

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

// Extract decodes a UEFI form-package opcode stream against a paired
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
	fmt.Fprintf(&b, "Program version: %s, Extraction mode: UEFI\n", Version)
	depth := 0
	offset := form.Offset + packageHeaderSize
	for _, op := range ops {
		if op.op == OpEnd && depth > 0 {
			depth--
		}

		if verbose {
			fmt.Fprintf(&b, "0x%X: ", offset)
		}
		b.WriteString(strings.Repeat(" ", depth))
		b.WriteString(op.op.Name())
		if payload := formatPayload(op, sp); payload != "" {
			b.WriteString(" ")
			b.WriteString(payload)
		}
		b.WriteByte('\n')

		if op.scopeStart {
			depth++
		}

		offset += uint64(op.length)
	}
	return b.String()
}

func formatPayload(op operation, sp StringPackage) string {
	switch op.op {
	case OpForm:
		p, ok := parseForm(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("FormId: 0x%X, Title: %q", p.FormID, resolveString(sp, p.TitleStringID))

	case OpSubtitle:
		p, ok := parseSubtitle(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.Flags)

	case OpText:
		p, ok := parseText(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, Text: %q",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), resolveString(sp, p.TextID))

	case OpImage:
		p, ok := parseImage(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("ImageId: 0x%X", p.ImageID)

	case OpOneOf:
		p, ok := parseOneOf(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("Prompt: %q, Help: %q, QuestionFlags: 0x%X, QuestionId: 0x%X, VarStoreId: 0x%X, VarOffset: 0x%X, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionFlags, p.QuestionID, p.VarStoreID, p.VarStoreInfo, p.Flags)
		return s + formatMinMax(p.MinMax)

	case OpNumeric:
		p, ok := parseNumeric(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("Prompt: %q, Help: %q, QuestionFlags: 0x%X, QuestionId: 0x%X, VarStoreId: 0x%X, VarOffset: 0x%X, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionFlags, p.QuestionID, p.VarStoreID, p.VarStoreInfo, p.Flags)
		return s + formatMinMax(p.MinMax)

	case OpCheckBox:
		p, ok := parseCheckBox(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionFlags: 0x%X, QuestionId: 0x%X, VarStoreId: 0x%X, VarOffset: 0x%X, Flags: 0x%X, Default: %s, MfgDefault: %s",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionFlags, p.QuestionID, p.VarStoreID, p.VarStoreInfo, p.Flags,
			enabledDisabled(p.Flags&0x01 != 0), enabledDisabled(p.Flags&0x02 != 0))

	case OpPassword:
		p, ok := parsePassword(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, MinSize: 0x%X, MaxSize: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.MinSize, p.MaxSize)

	case OpOneOfOption:
		p, ok := parseOneOfOption(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("Option: %q, Flags: 0x%X", resolveString(sp, p.OptionStringID), p.Flags)
		if p.hasValueID {
			s += fmt.Sprintf(", Value: %q", resolveString(sp, p.ValueID))
		}
		return s

	case OpAction:
		p, ok := parseAction(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID)
		if p.hasConfigStringID {
			s += fmt.Sprintf(", Config: %q", resolveString(sp, p.ConfigStringID))
		}
		return s

	case OpResetButton:
		p, ok := parseResetButton(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, DefaultId: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.DefaultID)

	case OpFormSet:
		p, ok := parseFormSet(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Title: %q, Help: %q, Guid: %s",
			resolveString(sp, p.TitleStringID), resolveString(sp, p.HelpStringID), p.GUID)

	case OpRef:
		p, ok := parseRef(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, FormId: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.FormID)

	case OpNoSubmitIf:
		p, ok := parseNoSubmitIf(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Error: %q, Flags: 0x%X", resolveString(sp, p.ErrorStringID), p.Flags)

	case OpInconsistentIf:
		p, ok := parseInconsistentIf(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Error: %q, Flags: 0x%X", resolveString(sp, p.ErrorStringID), p.Flags)

	case OpDate, OpTime:
		p, ok := parseDateTime(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.Flags)

	case OpString:
		p, ok := parseStringOp(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, MinSize: 0x%X, MaxSize: 0x%X, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.MinSize, p.MaxSize, p.Flags)

	case OpOrderedList:
		p, ok := parseOrderedList(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Prompt: %q, Help: %q, QuestionId: 0x%X, MaxContainers: 0x%X, Flags: 0x%X",
			resolveString(sp, p.PromptStringID), resolveString(sp, p.HelpStringID), p.QuestionID, p.MaxContainers, p.Flags)

	case OpVarStoreDevice:
		p, ok := parseVarStoreDevice(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("DevicePath: %q", resolveString(sp, p.DevicePathStringID))

	case OpVarStore:
		p, ok := parseVarStore(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("VarStoreId: 0x%X, Guid: %s, Name: %q, Size: 0x%X", p.VarStoreID, p.GUID, p.Name, p.Size)

	case OpStringRef1:
		p, ok := parseStringRef1(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("String: %q", resolveString(sp, p.StringID))

	case OpQuestionRef3:
		p, _ := parseQuestionRef3(op.data)
		if !p.hasDevicePath {
			return ""
		}
		return fmt.Sprintf("DevicePath: %q", resolveString(sp, p.DevicePathID))

	case OpDefaultStore:
		p, ok := parseDefaultStore(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Name: %q, DefaultId: 0x%X", resolveString(sp, p.NameStringID), p.DefaultID)

	case OpDefault:
		p, ok := parseDefault(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("DefaultId: 0x%X", p.DefaultID)
		if p.hasValue {
			s += fmt.Sprintf(", Value: %q", resolveString(sp, p.ValueID))
		}
		return s

	case OpFormMap:
		p, ok := parseFormMap(op.data)
		if !ok {
			return "<truncated>"
		}
		names := make([]string, len(p.Methods))
		for i, m := range p.Methods {
			names[i] = fmt.Sprintf("%q", resolveString(sp, m.MethodTitleID))
		}
		return fmt.Sprintf("Methods: [%s]", strings.Join(names, ", "))

	case OpWarningIf:
		p, ok := parseWarningIf(op.data)
		if !ok {
			return "<truncated>"
		}
		return fmt.Sprintf("Warning: %q, Timeout: 0x%X", resolveString(sp, p.WarningStringID), p.Timeout)

	case OpGuid:
		p, ok := parseGuid(op.data)
		if !ok {
			return "<truncated>"
		}
		s := fmt.Sprintf("Guid: %s", p.GUID)
		if p.hasBanner {
			s += fmt.Sprintf(", Title: %q", resolveString(sp, p.BannerID))
		}
		if p.hasVarEqName {
			s += fmt.Sprintf(", Name: %q", resolveString(sp, p.VarEqNameID))
		}
		return s

	case OpEnd, OpAnd, OpOr, OpNot, OpTrue, OpFalse, OpZero, OpOne, OpOnes, OpUndefined,
		OpLength, OpDup, OpThis, OpValue, OpCatenate, OpEqual, OpNotEqual, OpGreaterThan,
		OpGreaterEqual, OpLessThan, OpLessEqual, OpBitwiseAnd, OpBitwiseOr, OpBitwiseNot,
		OpShiftLeft, OpShiftRight, OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo,
		OpToUint, OpToString, OpToBoolean, OpMid, OpFind, OpToken, OpSpan, OpMatch, OpMatch2,
		OpGet, OpSet, OpRead, OpWrite, OpLocked, OpRule, OpSuppressIf, OpGrayOutIf, OpDisableIf,
		OpRefresh, OpAnimation, OpToLower, OpToUpper, OpMap, OpVersion, OpSecurity, OpModalTag,
		OpRefreshID, OpEqIdVal, OpEqIdId, OpEqIdValList, OpRuleRef, OpQuestionRef1, OpQuestionRef2,
		OpUint8, OpUint16, OpUint32, OpUint64, OpConditional, OpStringRef2, OpVarStoreNameValue,
		OpVarStoreEfi:
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

func formatMinMax(d minMaxStepData) string {
	if !d.present {
		return ""
	}
	return fmt.Sprintf(", Min: 0x%X, Max: 0x%X, Step: 0x%X", d.Min, d.Max, d.Step)
}

func enabledDisabled(set bool) string {
	if set {
		return "Enabled"
	}
	return "Disabled"
}
