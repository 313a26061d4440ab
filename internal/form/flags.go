package form

import "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

// FieldFlags is the value of a field's Ff entry.
type FieldFlags uint32

// Button field flags
const (
	ButtonNoToggleToOff  FieldFlags = 1 << 14
	ButtonRadio          FieldFlags = 1 << 15
	ButtonPushbutton     FieldFlags = 1 << 16
	ButtonRadiosInUnison FieldFlags = 1 << 25
)

// Choice field flags
const (
	ChoiceCombo       FieldFlags = 0x20000
	ChoiceEdit        FieldFlags = 0x40000
	ChoiceSort        FieldFlags = 0x80000
	ChoiceMultiSelect FieldFlags = 0x200000
)

// Has reports whether any bit of mask is set.
func (f FieldFlags) Has(mask FieldFlags) bool {
	return f&mask != 0
}

// fieldFlags reads Ff, defaulting to 0 when absent or not an integer.
func fieldFlags(doc Document, dict types.Dict) FieldFlags {
	obj, found := lookup(doc, dict, "Ff")
	if !found {
		return 0
	}
	switch v := obj.(type) {
	case types.Integer:
		return FieldFlags(uint32(v.Value()))
	case types.Float:
		return FieldFlags(uint32(int64(v.Value())))
	}
	return 0
}
