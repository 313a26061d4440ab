package form

import (
	"fmt"
	"slices"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func mismatch(name string, got, want FieldType) error {
	return fmt.Errorf("%w: field %q is a %s, not a %s", ErrTypeMismatch, name, got, want)
}

// SetText writes text into a text field and drops its appearance stream so
// that viewers regenerate it.
func (f *Form) SetText(name, text string) error {
	dict, err := f.field(name)
	if err != nil {
		return err
	}
	if t := classify(f.doc, dict); t != FieldTypeText {
		return mismatch(name, t, FieldTypeText)
	}

	value, err := newStringLiteral(EncodeUTF16(text))
	if err != nil {
		return fmt.Errorf("field %q: failed to encode text: %w", name, err)
	}

	dict.Update("V", value)
	dict.Delete("AP")
	f.markNeedAppearances()
	return nil
}

// markNeedAppearances asks viewers to rebuild appearances when the form was
// loaded WithNeedAppearances.
func (f *Form) markNeedAppearances() {
	if f.needAppearances && f.acroForm != nil {
		f.acroForm.Update("NeedAppearances", types.Boolean(true))
	}
}

// SetRadio selects choice, which must be one of the field's appearance
// states. Widgets offering choice switch to it, every other widget to Off.
func (f *Form) SetRadio(name, choice string) error {
	dict, err := f.field(name)
	if err != nil {
		return err
	}
	if t := classify(f.doc, dict); t != FieldTypeRadio {
		return mismatch(name, t, FieldTypeRadio)
	}
	if !slices.Contains(f.radioOptions(dict), choice) {
		return fmt.Errorf("%w: %q is not an option of field %q", ErrInvalidSelection, choice, name)
	}

	for _, w := range f.widgets(dict) {
		if states, ok := f.appearanceStates(w); ok {
			if _, found := states.Find(choice); found {
				w.Update("AS", types.Name(choice))
				continue
			}
		}
		w.Update("AS", types.Name(stateOff))
	}
	dict.Update("V", types.Name(choice))
	return nil
}

// SetCheckBox sets both V and AS to Yes or Off.
func (f *Form) SetCheckBox(name string, checked bool) error {
	dict, err := f.field(name)
	if err != nil {
		return err
	}
	if t := classify(f.doc, dict); t != FieldTypeCheckBox {
		return mismatch(name, t, FieldTypeCheckBox)
	}

	state := types.Name(stateOff)
	if checked {
		state = types.Name(stateOn)
	}
	dict.Update("V", state)
	dict.Update("AS", state)
	return nil
}

// SetChoice selects choices in a list or combo box. Every choice must be an
// option, and only multi-select fields accept more than one. An empty
// selection removes V.
func (f *Form) SetChoice(name string, choices []string) error {
	dict, err := f.field(name)
	if err != nil {
		return err
	}
	t := classify(f.doc, dict)
	if t != FieldTypeListBox && t != FieldTypeComboBox {
		return fmt.Errorf("%w: field %q is a %s, not a choice field", ErrTypeMismatch, name, t)
	}

	options := f.choiceOptions(dict)
	for _, c := range choices {
		if !slices.Contains(options, c) {
			return fmt.Errorf("%w: %q is not an option of field %q", ErrInvalidSelection, c, name)
		}
	}
	if len(choices) > 1 && !fieldFlags(f.doc, dict).Has(ChoiceMultiSelect) {
		return fmt.Errorf("%w: field %q accepts a single choice, got %d", ErrTooManySelected, name, len(choices))
	}

	values := make(types.Array, 0, len(choices))
	for _, c := range choices {
		lit, err := newStringLiteral(encodeTextString(c))
		if err != nil {
			return fmt.Errorf("field %q: failed to encode choice: %w", name, err)
		}
		values = append(values, lit)
	}

	switch len(values) {
	case 0:
		dict.Delete("V")
	case 1:
		dict.Update("V", values[0])
	default:
		dict.Update("V", values)
	}
	f.markNeedAppearances()
	return nil
}
