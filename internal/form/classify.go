package form

import "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

// classify derives the field type from FT and Ff. Radio is tested before
// Pushbutton, Combo before list box; any FT other than Btn or Ch is text.
func classify(doc Document, dict types.Dict) FieldType {
	ft, _ := lookupName(doc, dict, "FT")
	flags := fieldFlags(doc, dict)

	switch ft {
	case "Btn":
		switch {
		case flags.Has(ButtonRadio):
			return FieldTypeRadio
		case flags.Has(ButtonPushbutton):
			return FieldTypeButton
		default:
			return FieldTypeCheckBox
		}
	case "Ch":
		if flags.Has(ChoiceCombo) {
			return FieldTypeComboBox
		}
		return FieldTypeListBox
	default:
		return FieldTypeText
	}
}
