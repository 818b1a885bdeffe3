package framework

import "github.com/hiiscan/ifrscan/internal/bitreader"

// OpCode identifies a Framework IFR opcode. Numeric values follow the
// EFI 1.10 "Tiano" Framework HII IFR opcode numbering.
type OpCode uint8

const (
	OpForm OpCode = iota + 1
	OpSubtitle
	OpText
	OpGraphic
	OpOneOf
	OpCheckBox
	OpNumeric
	OpPassword
	OpOneOfOption
	OpSuppressIf
	OpEndForm
	OpHidden
	OpEndFormSet
	OpFormSet
	OpRef
	OpEnd
	OpInconsistentIf
	OpEqIdVal
	OpEqIdId
	OpEqIdValList
	OpAnd
	OpOr
	OpNot
	OpEndIf
	OpGrayOutIf
	OpDate
	OpTime
	OpString
	OpLabel
	OpSaveDefaults
	OpRestoreDefaults
	OpBanner
	OpInventory
	OpEqVarVal
	OpOrderedList
	OpVarStore
	OpVarStoreSelect
	OpVarStoreSelectPair
	OpTrue
	OpFalse
	OpGreaterThan
	OpGreaterEqual
	OpOemDefined
	OpOem
	OpNvAccessCommand
)

// opUnknown is the fallthrough value reported for any opcode outside the
// recognised range.
const opUnknown OpCode = 0xFF

var opNames = map[OpCode]string{
	OpForm:               "Form",
	OpSubtitle:           "Subtitle",
	OpText:               "Text",
	OpGraphic:            "Graphic",
	OpOneOf:              "OneOf",
	OpCheckBox:           "CheckBox",
	OpNumeric:            "Numeric",
	OpPassword:           "Password",
	OpOneOfOption:        "OneOfOption",
	OpSuppressIf:         "SuppressIf",
	OpEndForm:            "EndForm",
	OpHidden:             "Hidden",
	OpEndFormSet:         "EndFormSet",
	OpFormSet:            "FormSet",
	OpRef:                "Ref",
	OpEnd:                "End",
	OpInconsistentIf:     "InconsistentIf",
	OpEqIdVal:            "EqIdVal",
	OpEqIdId:             "EqIdId",
	OpEqIdValList:        "EqIdValList",
	OpAnd:                "And",
	OpOr:                 "Or",
	OpNot:                "Not",
	OpEndIf:              "EndIf",
	OpGrayOutIf:          "GrayOutIf",
	OpDate:               "Date",
	OpTime:               "Time",
	OpString:             "String",
	OpLabel:              "Label",
	OpSaveDefaults:       "SaveDefaults",
	OpRestoreDefaults:    "RestoreDefaults",
	OpBanner:             "Banner",
	OpInventory:          "Inventory",
	OpEqVarVal:           "EqVarVal",
	OpOrderedList:        "OrderedList",
	OpVarStore:           "VarStore",
	OpVarStoreSelect:     "VarStoreSelect",
	OpVarStoreSelectPair: "VarStoreSelectPair",
	OpTrue:               "True",
	OpFalse:              "False",
	OpGreaterThan:        "GreaterThan",
	OpGreaterEqual:       "GreaterEqual",
	OpOemDefined:         "OemDefined",
	OpOem:                "Oem",
	OpNvAccessCommand:    "NvAccessCommand",
}

// Name returns the canonical enumerant name, or "Unknown" for any opcode
// outside the recognised range.
func (o OpCode) Name() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Unknown"
}

// operation is one parsed Framework IFR opcode: a 2-byte header (op, length)
// followed by length-2 bytes of payload, borrowed from the caller's buffer.
type operation struct {
	op     OpCode
	length uint8
	data   []byte
}

// parseOperations walks a Framework form-package body as a sequence of
// opcodes, per spec §4.2. It stops at the first truncated or zero-length
// opcode rather than failing the whole stream, mirroring how the UEFI
// formatter tolerates individual bad opcodes (§4.6).
func parseOperations(body []byte) ([]operation, bool) {
	var ops []operation
	r := bitreader.New(body)
	for r.Len() > 0 {
		rawOp, err := r.Byte()
		if err != nil {
			break
		}
		length, err := r.Byte()
		if err != nil {
			break
		}
		if length < 2 {
			break
		}
		dataLen := int(length) - 2
		if r.Len() < dataLen {
			break
		}
		data, _ := r.Bytes(dataLen)
		op := OpCode(rawOp)
		if _, known := opNames[op]; !known {
			op = opUnknown
		}
		ops = append(ops, operation{op: op, length: length, data: data})
	}
	if len(ops) == 0 {
		return nil, false
	}
	return ops, true
}
