package uefi

import "github.com/hiiscan/ifrscan/internal/bitreader"

// statementHeader is EFI_IFR_STATEMENT_HEADER: the Prompt/Help string IDs
// that precede nearly every displayable opcode's own fields.
type statementHeader struct {
	PromptStringID uint16
	HelpStringID   uint16
}

func parseStatementHeader(r *bitreader.Reader) (statementHeader, bool) {
	var h statementHeader
	var err error
	if h.PromptStringID, err = r.Uint16(); err != nil {
		return h, false
	}
	if h.HelpStringID, err = r.Uint16(); err != nil {
		return h, false
	}
	return h, true
}

// questionHeader is EFI_IFR_QUESTION_HEADER: a statementHeader plus the
// variable-store binding every question-type opcode carries.
type questionHeader struct {
	statementHeader
	QuestionID    uint16
	VarStoreID    uint16
	VarStoreInfo  uint16
	QuestionFlags uint8
}

func parseQuestionHeader(r *bitreader.Reader) (questionHeader, bool) {
	var h questionHeader
	sh, ok := parseStatementHeader(r)
	if !ok {
		return h, false
	}
	h.statementHeader = sh
	var err error
	if h.QuestionID, err = r.Uint16(); err != nil {
		return h, false
	}
	if h.VarStoreID, err = r.Uint16(); err != nil {
		return h, false
	}
	if h.VarStoreInfo, err = r.Uint16(); err != nil {
		return h, false
	}
	if h.QuestionFlags, err = r.Byte(); err != nil {
		return h, false
	}
	return h, true
}

// minMaxStepData is EFI_IFR_{NUMERIC,ONE_OF}_MIN_MAX_STEP_DATA: the three
// range bounds, sized 1/2/4/8 bytes per the low 2 bits of the opcode's
// numeric-size flags.
type minMaxStepData struct {
	present bool
	width   int
	Min     uint64
	Max     uint64
	Step    uint64
}

func parseMinMaxStepData(r *bitreader.Reader, flags uint8) (minMaxStepData, bool) {
	width := 1 << (flags & 0x03)
	readWidth := func() (uint64, error) {
		switch width {
		case 1:
			v, err := r.Byte()
			return uint64(v), err
		case 2:
			v, err := r.Uint16()
			return uint64(v), err
		case 4:
			v, err := r.Uint32()
			return uint64(v), err
		default:
			return r.Uint64()
		}
	}
	d := minMaxStepData{present: true, width: width}
	var err error
	if d.Min, err = readWidth(); err != nil {
		return d, false
	}
	if d.Max, err = readWidth(); err != nil {
		return d, false
	}
	if d.Step, err = readWidth(); err != nil {
		return d, false
	}
	return d, true
}

type formPayload struct {
	FormID        uint16
	TitleStringID uint16
}

func parseForm(d []byte) (formPayload, bool) {
	r := bitreader.New(d)
	p := formPayload{}
	var err error
	if p.FormID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.TitleStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type subtitlePayload struct {
	statementHeader
	Flags uint8
}

func parseSubtitle(d []byte) (subtitlePayload, bool) {
	r := bitreader.New(d)
	p := subtitlePayload{}
	sh, ok := parseStatementHeader(r)
	if !ok {
		return p, false
	}
	p.statementHeader = sh
	var err error
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type textPayload struct {
	statementHeader
	TextID uint16
}

func parseText(d []byte) (textPayload, bool) {
	r := bitreader.New(d)
	p := textPayload{}
	sh, ok := parseStatementHeader(r)
	if !ok {
		return p, false
	}
	p.statementHeader = sh
	var err error
	if p.TextID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type imagePayload struct {
	ImageID uint16
}

func parseImage(d []byte) (imagePayload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return imagePayload{ImageID: v}, err == nil
}

type oneOfPayload struct {
	questionHeader
	Flags  uint8
	MinMax minMaxStepData
}

func parseOneOf(d []byte) (oneOfPayload, bool) {
	r := bitreader.New(d)
	p := oneOfPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	p.MinMax, _ = parseMinMaxStepData(r, p.Flags)
	return p, true
}

type checkBoxPayload struct {
	questionHeader
	Flags uint8
}

func parseCheckBox(d []byte) (checkBoxPayload, bool) {
	r := bitreader.New(d)
	p := checkBoxPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type numericPayload struct {
	questionHeader
	Flags  uint8
	MinMax minMaxStepData
}

func parseNumeric(d []byte) (numericPayload, bool) {
	r := bitreader.New(d)
	p := numericPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	p.MinMax, _ = parseMinMaxStepData(r, p.Flags)
	return p, true
}

type passwordPayload struct {
	questionHeader
	MinSize uint16
	MaxSize uint16
}

func parsePassword(d []byte) (passwordPayload, bool) {
	r := bitreader.New(d)
	p := passwordPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.MinSize, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.MaxSize, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

const (
	ifrTypeString uint8 = 0x0c
	ifrTypeAction uint8 = 0x0d
)

type oneOfOptionPayload struct {
	OptionStringID uint16
	Flags          uint8
	ValueType      uint8
	ValueID        uint16
	hasValueID     bool
}

func parseOneOfOption(d []byte) (oneOfOptionPayload, bool) {
	r := bitreader.New(d)
	p := oneOfOptionPayload{}
	var err error
	if p.OptionStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.ValueType, err = r.Byte(); err != nil {
		return p, false
	}
	switch p.ValueType {
	case ifrTypeString, ifrTypeAction:
		if p.ValueID, err = r.Uint16(); err == nil {
			p.hasValueID = true
		}
	}
	return p, true
}

type flagsPayload struct {
	Flags uint8
}

func parseFlagsOnly(d []byte) (flagsPayload, bool) {
	if len(d) < 1 {
		return flagsPayload{}, false
	}
	return flagsPayload{Flags: d[0]}, true
}

type actionPayload struct {
	questionHeader
	ConfigStringID    uint16
	hasConfigStringID bool
}

func parseAction(d []byte) (actionPayload, bool) {
	r := bitreader.New(d)
	p := actionPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	if r.Len() >= 2 {
		if v, err := r.Uint16(); err == nil {
			p.ConfigStringID = v
			p.hasConfigStringID = true
		}
	}
	return p, true
}

type resetButtonPayload struct {
	statementHeader
	DefaultID uint16
}

func parseResetButton(d []byte) (resetButtonPayload, bool) {
	r := bitreader.New(d)
	p := resetButtonPayload{}
	sh, ok := parseStatementHeader(r)
	if !ok {
		return p, false
	}
	p.statementHeader = sh
	var err error
	if p.DefaultID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type formSetPayload struct {
	TitleStringID uint16
	HelpStringID  uint16
	GUID          bitreader.GUID
}

func parseFormSet(d []byte) (formSetPayload, bool) {
	r := bitreader.New(d)
	p := formSetPayload{}
	var err error
	if p.GUID, err = r.GUID(); err != nil {
		return p, false
	}
	if p.TitleStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type refPayload struct {
	questionHeader
	FormID uint16
}

func parseRef(d []byte) (refPayload, bool) {
	r := bitreader.New(d)
	p := refPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	if r.Len() >= 2 {
		v, err := r.Uint16()
		if err == nil {
			p.FormID = v
		}
	}
	return p, true
}

type noSubmitIfPayload struct {
	ErrorStringID uint16
	Flags         uint8
}

func parseNoSubmitIf(d []byte) (noSubmitIfPayload, bool) {
	r := bitreader.New(d)
	p := noSubmitIfPayload{}
	var err error
	if p.ErrorStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type inconsistentIfPayload struct {
	ErrorStringID uint16
	Flags         uint8
}

func parseInconsistentIf(d []byte) (inconsistentIfPayload, bool) {
	r := bitreader.New(d)
	p := inconsistentIfPayload{}
	var err error
	if p.ErrorStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type dateTimePayload struct {
	questionHeader
	Flags uint8
}

func parseDateTime(d []byte) (dateTimePayload, bool) {
	r := bitreader.New(d)
	p := dateTimePayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	if r.Len() >= 1 {
		v, err := r.Byte()
		if err == nil {
			p.Flags = v
		}
	}
	return p, true
}

type stringPayload struct {
	questionHeader
	MinSize uint8
	MaxSize uint8
	Flags   uint8
}

func parseStringOp(d []byte) (stringPayload, bool) {
	r := bitreader.New(d)
	p := stringPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.MinSize, err = r.Byte(); err != nil {
		return p, false
	}
	if p.MaxSize, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type orderedListPayload struct {
	questionHeader
	MaxContainers uint8
	Flags         uint8
}

func parseOrderedList(d []byte) (orderedListPayload, bool) {
	r := bitreader.New(d)
	p := orderedListPayload{}
	qh, ok := parseQuestionHeader(r)
	if !ok {
		return p, false
	}
	p.questionHeader = qh
	var err error
	if p.MaxContainers, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type varStoreDevicePayload struct {
	DevicePathStringID uint16
}

func parseVarStoreDevice(d []byte) (varStoreDevicePayload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return varStoreDevicePayload{DevicePathStringID: v}, err == nil
}

type varStorePayload struct {
	VarStoreID uint16
	GUID       bitreader.GUID
	Size       uint16
	Name       string
}

func parseVarStore(d []byte) (varStorePayload, bool) {
	r := bitreader.New(d)
	p := varStorePayload{}
	var err error
	if p.GUID, err = r.GUID(); err != nil {
		return p, false
	}
	if p.VarStoreID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Size, err = r.Uint16(); err != nil {
		return p, false
	}
	p.Name = r.NulTerminatedASCII()
	return p, true
}

type stringRef1Payload struct {
	StringID uint16
}

func parseStringRef1(d []byte) (stringRef1Payload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return stringRef1Payload{StringID: v}, err == nil
}

type questionRef3Payload struct {
	DevicePathID  uint16
	hasDevicePath bool
}

func parseQuestionRef3(d []byte) (questionRef3Payload, bool) {
	if len(d) < 2 {
		return questionRef3Payload{}, true
	}
	r := bitreader.New(d)
	v, err := r.Uint16()
	if err != nil {
		return questionRef3Payload{}, true
	}
	return questionRef3Payload{DevicePathID: v, hasDevicePath: true}, true
}

type defaultStorePayload struct {
	NameStringID uint16
	DefaultID    uint16
}

func parseDefaultStore(d []byte) (defaultStorePayload, bool) {
	r := bitreader.New(d)
	p := defaultStorePayload{}
	var err error
	if p.DefaultID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.NameStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type defaultPayload struct {
	DefaultID uint16
	ValueType uint8
	ValueID   uint16
	hasValue  bool
}

func parseDefault(d []byte) (defaultPayload, bool) {
	r := bitreader.New(d)
	p := defaultPayload{}
	var err error
	if p.DefaultID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.ValueType, err = r.Byte(); err != nil {
		return p, false
	}
	switch p.ValueType {
	case ifrTypeString, ifrTypeAction:
		if p.ValueID, err = r.Uint16(); err == nil {
			p.hasValue = true
		}
	}
	return p, true
}

type formMapMethod struct {
	MethodTitleID uint16
	MethodGUID    bitreader.GUID
}

type formMapPayload struct {
	Methods []formMapMethod
}

func parseFormMap(d []byte) (formMapPayload, bool) {
	r := bitreader.New(d)
	p := formMapPayload{}
	for r.Len() >= 18 {
		var m formMapMethod
		var err error
		if m.MethodTitleID, err = r.Uint16(); err != nil {
			break
		}
		if m.MethodGUID, err = r.GUID(); err != nil {
			break
		}
		p.Methods = append(p.Methods, m)
	}
	return p, true
}

type warningIfPayload struct {
	WarningStringID uint16
	Timeout         uint8
}

func parseWarningIf(d []byte) (warningIfPayload, bool) {
	r := bitreader.New(d)
	p := warningIfPayload{}
	var err error
	if p.WarningStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Timeout, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

// GUID-extended opcode (0x5F) sub-structures. The two recognised GUIDs
// carry vendor extensions identified by an ExtendedOpCode byte.
var (
	tianoGUID     = bitreader.GUID{0x6E, 0xC6, 0x3D, 0xF3, 0x3B, 0x4A, 0xc5, 0x45, 0x82, 0x33, 0x7e, 0xf6, 0xf0, 0x2c, 0xbb, 0x94}
	frameworkGUID = bitreader.GUID{0x26, 0x3a, 0xba, 0xe6, 0x02, 0xb3, 0xb5, 0x40, 0x9e, 0xf4, 0xd6, 0x6a, 0x74, 0xe2, 0x3d, 0x48}
)

const (
	edk2ExtBanner   uint8 = 0x01
	edkExtVarEqName uint8 = 0x02
)

type guidPayload struct {
	GUID         bitreader.GUID
	ExtOpCode    uint8
	hasExt       bool
	BannerID     uint16
	hasBanner    bool
	VarEqNameID  uint16
	hasVarEqName bool
}

// parseGuid handles EFI_IFR_GUID (0x5F). Only the two vendor extensions
// the cross-referencer cares about are decoded; any other GUID's payload
// is left unexamined.
func parseGuid(d []byte) (guidPayload, bool) {
	r := bitreader.New(d)
	p := guidPayload{}
	var err error
	if p.GUID, err = r.GUID(); err != nil {
		return p, false
	}
	switch p.GUID {
	case tianoGUID:
		if r.Len() < 1 {
			return p, true
		}
		ext, err := r.Byte()
		if err != nil {
			return p, true
		}
		p.ExtOpCode, p.hasExt = ext, true
		if ext == edk2ExtBanner && r.Len() >= 2 {
			if id, err := r.Uint16(); err == nil {
				p.BannerID, p.hasBanner = id, true
			}
		}
	case frameworkGUID:
		if r.Len() < 1 {
			return p, true
		}
		ext, err := r.Byte()
		if err != nil {
			return p, true
		}
		p.ExtOpCode, p.hasExt = ext, true
		if ext == edkExtVarEqName && r.Len() == 2 {
			rest, _ := r.Bytes(2)
			// Preserved exactly as observed upstream: byte[1]*100 + byte[0],
			// not the *256 a little-endian u16 combine would give.
			p.VarEqNameID = uint16(rest[1])*100 + uint16(rest[0])
			p.hasVarEqName = true
		}
	}
	return p, true
}
