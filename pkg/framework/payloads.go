package framework

import "github.com/hiiscan/ifrscan/internal/bitreader"

// Payload structs mirror the EFI 1.10 Framework IFR opcode bodies (EDK
// FrameworkIfr.h), field-for-field, with the StringId suffix added to any
// field the cross-referencer and formatter resolve against a string table.

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
	SubtitleStringID uint16
}

func parseSubtitle(d []byte) (subtitlePayload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return subtitlePayload{SubtitleStringID: v}, err == nil
}

type textPayload struct {
	HelpStringID    uint16
	TextStringID    uint16
	TextTwoStringID uint16
	Flags           uint8
	Key             uint16
}

func parseText(d []byte) (textPayload, bool) {
	r := bitreader.New(d)
	p := textPayload{}
	var err error
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.TextStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.TextTwoStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type oneOfPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
}

func parseOneOf(d []byte) (oneOfPayload, bool) {
	r := bitreader.New(d)
	p := oneOfPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Width, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type checkBoxPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
	Flags          uint8
	Key            uint16
}

func parseCheckBox(d []byte) (checkBoxPayload, bool) {
	r := bitreader.New(d)
	p := checkBoxPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Width, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type numericPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
	Flags          uint8
	Key            uint16
	Min            uint16
	Max            uint16
	Step           uint16
	Default        uint16
}

func parseMinMaxStepDefault(r *bitreader.Reader) (qid uint16, width uint8, flags uint8, key, min, max, step, def uint16, ok bool) {
	var err error
	if qid, err = r.Uint16(); err != nil {
		return
	}
	if width, err = r.Byte(); err != nil {
		return
	}
	if flags, err = r.Byte(); err != nil {
		return
	}
	if key, err = r.Uint16(); err != nil {
		return
	}
	if min, err = r.Uint16(); err != nil {
		return
	}
	if max, err = r.Uint16(); err != nil {
		return
	}
	if step, err = r.Uint16(); err != nil {
		return
	}
	if def, err = r.Uint16(); err != nil {
		return
	}
	ok = true
	return
}

func parseNumeric(d []byte) (numericPayload, bool) {
	r := bitreader.New(d)
	p := numericPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	qid, width, flags, key, min, max, step, def, ok := parseMinMaxStepDefault(r)
	if !ok {
		return p, false
	}
	p.QuestionID, p.Width, p.Flags, p.Key, p.Min, p.Max, p.Step, p.Default = qid, width, flags, key, min, max, step, def
	return p, true
}

type passwordPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
	Flags          uint8
	Key            uint16
	MinSize        uint8
	MaxSize        uint8
	Encoding       uint16
}

func parsePassword(d []byte) (passwordPayload, bool) {
	r := bitreader.New(d)
	p := passwordPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Width, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.MinSize, err = r.Byte(); err != nil {
		return p, false
	}
	if p.MaxSize, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Encoding, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type oneOfOptionPayload struct {
	OptionStringID uint16
	Value          uint16
	Flags          uint8
	Key            uint16
}

func parseOneOfOption(d []byte) (oneOfOptionPayload, bool) {
	r := bitreader.New(d)
	p := oneOfOptionPayload{}
	var err error
	if p.OptionStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Value, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
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

type hiddenPayload struct {
	Value uint16
	Key   uint16
}

func parseHidden(d []byte) (hiddenPayload, bool) {
	r := bitreader.New(d)
	p := hiddenPayload{}
	var err error
	if p.Value, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type formSetPayload struct {
	TitleStringID  uint16
	HelpStringID   uint16
	GUID           bitreader.GUID
	CallbackHandle uint64
	Class          uint16
	SubClass       uint16
	NvDataSize     uint16
}

func parseFormSet(d []byte) (formSetPayload, bool) {
	r := bitreader.New(d)
	p := formSetPayload{}
	var err error
	if p.TitleStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.GUID, err = r.GUID(); err != nil {
		return p, false
	}
	if p.CallbackHandle, err = r.Uint64(); err != nil {
		return p, false
	}
	if p.Class, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.SubClass, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.NvDataSize, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type refPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	FormID         uint16
	Flags          uint8
	Key            uint16
}

func parseRef(d []byte) (refPayload, bool) {
	r := bitreader.New(d)
	p := refPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.FormID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type inconsistentIfPayload struct {
	PopupStringID uint16
	Flags         uint8
}

func parseInconsistentIf(d []byte) (inconsistentIfPayload, bool) {
	r := bitreader.New(d)
	p := inconsistentIfPayload{}
	var err error
	if p.PopupStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type eqIDValPayload struct {
	QuestionID uint16
	Value      uint16
}

func parseEqIDVal(d []byte) (eqIDValPayload, bool) {
	r := bitreader.New(d)
	p := eqIDValPayload{}
	var err error
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Value, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type eqIDIDPayload struct {
	QuestionID1 uint16
	QuestionID2 uint16
}

func parseEqIDID(d []byte) (eqIDIDPayload, bool) {
	r := bitreader.New(d)
	p := eqIDIDPayload{}
	var err error
	if p.QuestionID1, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID2, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type eqIDValListPayload struct {
	QuestionID uint16
	Width      uint8
	List       []uint16
}

func parseEqIDValList(d []byte) (eqIDValListPayload, bool) {
	r := bitreader.New(d)
	p := eqIDValListPayload{}
	var err error
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Width, err = r.Byte(); err != nil {
		return p, false
	}
	for r.Len() >= 2 {
		v, err := r.Uint16()
		if err != nil {
			break
		}
		p.List = append(p.List, v)
	}
	return p, true
}

type dateTimePayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
	Flags          uint8
	Key            uint16
	Min            uint16
	Max            uint16
	Step           uint16
	Default        uint16
}

func parseDateTime(d []byte) (dateTimePayload, bool) {
	r := bitreader.New(d)
	p := dateTimePayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	qid, width, flags, key, min, max, step, def, ok := parseMinMaxStepDefault(r)
	if !ok {
		return p, false
	}
	p.QuestionID, p.Width, p.Flags, p.Key, p.Min, p.Max, p.Step, p.Default = qid, width, flags, key, min, max, step, def
	return p, true
}

type stringOpPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	Width          uint8
	Flags          uint8
	Key            uint16
	MinSize        uint8
	MaxSize        uint8
}

func parseStringOp(d []byte) (stringOpPayload, bool) {
	r := bitreader.New(d)
	p := stringOpPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Width, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.MinSize, err = r.Byte(); err != nil {
		return p, false
	}
	if p.MaxSize, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type labelPayload struct {
	LabelID uint16
}

func parseLabel(d []byte) (labelPayload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return labelPayload{LabelID: v}, err == nil
}

type saveRestoreDefaultsPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	FormID         uint16
	Flags          uint8
	Key            uint16
}

func parseSaveRestoreDefaults(d []byte) (saveRestoreDefaultsPayload, bool) {
	r := bitreader.New(d)
	p := saveRestoreDefaultsPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.FormID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Flags, err = r.Byte(); err != nil {
		return p, false
	}
	if p.Key, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type bannerPayload struct {
	TitleStringID uint16
	LineNumber    uint16
	Alignment     uint8
}

func parseBanner(d []byte) (bannerPayload, bool) {
	r := bitreader.New(d)
	p := bannerPayload{}
	var err error
	if p.TitleStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.LineNumber, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Alignment, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type inventoryPayload struct {
	HelpStringID    uint16
	TextStringID    uint16
	TextTwoStringID uint16
}

func parseInventory(d []byte) (inventoryPayload, bool) {
	r := bitreader.New(d)
	p := inventoryPayload{}
	var err error
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.TextStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.TextTwoStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type eqVarValPayload struct {
	VariableID uint16
	Value      uint16
}

func parseEqVarVal(d []byte) (eqVarValPayload, bool) {
	r := bitreader.New(d)
	p := eqVarValPayload{}
	var err error
	if p.VariableID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.Value, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type orderedListPayload struct {
	PromptStringID uint16
	HelpStringID   uint16
	QuestionID     uint16
	MaxEntries     uint8
}

func parseOrderedList(d []byte) (orderedListPayload, bool) {
	r := bitreader.New(d)
	p := orderedListPayload{}
	var err error
	if p.PromptStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.HelpStringID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.QuestionID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.MaxEntries, err = r.Byte(); err != nil {
		return p, false
	}
	return p, true
}

type varStorePayload struct {
	VarStoreID uint16
	GUID       bitreader.GUID
	Name       string
	Size       uint16
}

func parseVarStore(d []byte) (varStorePayload, bool) {
	const fixedPrefix = 2 + 16 // VarStoreId + Guid
	const trailingSize = 2
	if len(d) < fixedPrefix+trailingSize {
		return varStorePayload{}, false
	}
	r := bitreader.New(d)
	p := varStorePayload{}
	var err error
	if p.VarStoreID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.GUID, err = r.GUID(); err != nil {
		return p, false
	}
	nameBytes := d[fixedPrefix : len(d)-trailingSize]
	nr := bitreader.New(nameBytes)
	p.Name = nr.NulTerminatedASCII()
	sr := bitreader.New(d[len(d)-trailingSize:])
	if p.Size, err = sr.Uint16(); err != nil {
		return p, false
	}
	return p, true
}

type varStoreSelectPayload struct {
	VarStoreID uint16
}

func parseVarStoreSelect(d []byte) (varStoreSelectPayload, bool) {
	r := bitreader.New(d)
	v, err := r.Uint16()
	return varStoreSelectPayload{VarStoreID: v}, err == nil
}

type varStoreSelectPairPayload struct {
	VarStoreID          uint16
	SecondaryVarStoreID uint16
}

func parseVarStoreSelectPair(d []byte) (varStoreSelectPairPayload, bool) {
	r := bitreader.New(d)
	p := varStoreSelectPairPayload{}
	var err error
	if p.VarStoreID, err = r.Uint16(); err != nil {
		return p, false
	}
	if p.SecondaryVarStoreID, err = r.Uint16(); err != nil {
		return p, false
	}
	return p, true
}
