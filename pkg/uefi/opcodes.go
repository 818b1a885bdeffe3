package uefi

import "github.com/hiiscan/ifrscan/internal/bitreader"

// OpCode identifies a UEFI IFR opcode, numbered 0x01..0x64 per the UEFI
// Platform Initialization spec, Vol 3.
type OpCode uint8

const (
	OpForm OpCode = iota + 1
	OpSubtitle
	OpText
	OpImage
	OpOneOf
	OpCheckBox
	OpNumeric
	OpPassword
	OpOneOfOption
	OpSuppressIf
	OpLocked
	OpAction
	OpResetButton
	OpFormSet
	OpRef
	OpNoSubmitIf
	OpInconsistentIf
	OpEqIdVal
	OpEqIdId
	OpEqIdValList
	OpAnd
	OpOr
	OpNot
	OpRule
	OpGrayOutIf
	OpDate
	OpTime
	OpString
	OpRefresh
	OpDisableIf
	OpAnimation
	OpToLower
	OpToUpper
	OpMap
	OpOrderedList
	OpVarStore
	OpVarStoreNameValue
	OpVarStoreEfi
	OpVarStoreDevice
	OpVersion
	OpEnd
	OpMatch
	OpGet
	OpSet
	OpRead
	OpWrite
	OpEqual
	OpNotEqual
	OpGreaterThan
	OpGreaterEqual
	OpLessThan
	OpLessEqual
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseNot
	OpShiftLeft
	OpShiftRight
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpRuleRef
	OpQuestionRef1
	OpQuestionRef2
	OpUint8
	OpUint16
	OpUint32
	OpUint64
	OpTrue
	OpFalse
	OpToUint
	OpToString
	OpToBoolean
	OpMid
	OpFind
	OpToken
	OpStringRef1
	OpStringRef2
	OpConditional
	OpQuestionRef3
	OpZero
	OpOne
	OpOnes
	OpUndefined
	OpLength
	OpDup
	OpThis
	OpSpan
	OpValue
	OpDefault
	OpDefaultStore
	OpFormMap
	OpCatenate
	OpGuid
	OpSecurity
	OpModalTag
	OpRefreshID
	OpWarningIf
	OpMatch2
)

const opUnknown OpCode = 0xFF

var opNames = map[OpCode]string{
	OpForm: "Form", OpSubtitle: "Subtitle", OpText: "Text", OpImage: "Image",
	OpOneOf: "OneOf", OpCheckBox: "CheckBox", OpNumeric: "Numeric", OpPassword: "Password",
	OpOneOfOption: "OneOfOption", OpSuppressIf: "SuppressIf", OpLocked: "Locked",
	OpAction: "Action", OpResetButton: "ResetButton", OpFormSet: "FormSet", OpRef: "Ref",
	OpNoSubmitIf: "NoSubmitIf", OpInconsistentIf: "InconsistentIf", OpEqIdVal: "EqIdVal",
	OpEqIdId: "EqIdId", OpEqIdValList: "EqIdValList", OpAnd: "And", OpOr: "Or", OpNot: "Not",
	OpRule: "Rule", OpGrayOutIf: "GrayOutIf", OpDate: "Date", OpTime: "Time", OpString: "String",
	OpRefresh: "Refresh", OpDisableIf: "DisableIf", OpAnimation: "Animation", OpToLower: "ToLower",
	OpToUpper: "ToUpper", OpMap: "Map", OpOrderedList: "OrderedList", OpVarStore: "VarStore",
	OpVarStoreNameValue: "VarStoreNameValue", OpVarStoreEfi: "VarStoreEfi",
	OpVarStoreDevice: "VarStoreDevice", OpVersion: "Version", OpEnd: "End", OpMatch: "Match",
	OpGet: "Get", OpSet: "Set", OpRead: "Read", OpWrite: "Write", OpEqual: "Equal",
	OpNotEqual: "NotEqual", OpGreaterThan: "GreaterThan", OpGreaterEqual: "GreaterEqual",
	OpLessThan: "LessThan", OpLessEqual: "LessEqual", OpBitwiseAnd: "BitwiseAnd",
	OpBitwiseOr: "BitwiseOr", OpBitwiseNot: "BitwiseNot", OpShiftLeft: "ShiftLeft",
	OpShiftRight: "ShiftRight", OpAdd: "Add", OpSubtract: "Subtract", OpMultiply: "Multiply",
	OpDivide: "Divide", OpModulo: "Modulo", OpRuleRef: "RuleRef", OpQuestionRef1: "QuestionRef1",
	OpQuestionRef2: "QuestionRef2", OpUint8: "Uint8", OpUint16: "Uint16", OpUint32: "Uint32",
	OpUint64: "Uint64", OpTrue: "True", OpFalse: "False", OpToUint: "ToUint",
	OpToString: "ToString", OpToBoolean: "ToBoolean", OpMid: "Mid", OpFind: "Find",
	OpToken: "Token", OpStringRef1: "StringRef1", OpStringRef2: "StringRef2",
	OpConditional: "Conditional", OpQuestionRef3: "QuestionRef3", OpZero: "Zero", OpOne: "One",
	OpOnes: "Ones", OpUndefined: "Undefined", OpLength: "Length", OpDup: "Dup", OpThis: "This",
	OpSpan: "Span", OpValue: "Value", OpDefault: "Default", OpDefaultStore: "DefaultStore",
	OpFormMap: "FormMap", OpCatenate: "Catenate", OpGuid: "Guid", OpSecurity: "Security",
	OpModalTag: "ModalTag", OpRefreshID: "RefreshId", OpWarningIf: "WarningIf",
	OpMatch2: "Match2",
}

func (o OpCode) Name() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Unknown"
}

// operation is one parsed UEFI IFR opcode: a 2-byte header (op packed
// with the scope-start bit, length) followed by length-2 bytes of
// payload, borrowed from the caller's buffer.
type operation struct {
	op         OpCode
	scopeStart bool
	length     uint8
	data       []byte
}

// parseOperations walks a UEFI form-package body as a sequence of
// opcodes, per spec §4.3. It stops at the first truncated or zero-length
// opcode rather than failing the whole stream.
func parseOperations(body []byte) ([]operation, bool) {
	var ops []operation
	r := bitreader.New(body)
	for r.Len() > 0 {
		raw, err := r.Byte()
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
		op := OpCode(raw &^ scopeStartBit)
		if _, known := opNames[op]; !known {
			op = opUnknown
		}
		ops = append(ops, operation{
			op:         op,
			scopeStart: raw&scopeStartBit != 0,
			length:     length,
			data:       data,
		})
	}
	if len(ops) == 0 {
		return nil, false
	}
	return ops, true
}
