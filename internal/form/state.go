package form

import (
	"fmt"
	"slices"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	stateOn  = "Yes"
	stateOff = "Off"
)

// State decodes the current value of the named field.
func (f *Form) State(name string) (FieldState, error) {
	dict, err := f.field(name)
	if err != nil {
		return nil, err
	}

	switch t := classify(f.doc, dict); t {
	case FieldTypeButton:
		return ButtonState{}, nil
	case FieldTypeRadio:
		return RadioState{
			Selected: f.selectedState(dict),
			Options:  f.radioOptions(dict),
		}, nil
	case FieldTypeCheckBox:
		return CheckBoxState{Checked: f.selectedState(dict) == stateOn}, nil
	case FieldTypeListBox:
		return ListBoxState{
			Selected:    f.choiceSelection(dict),
			Options:     f.choiceOptions(dict),
			MultiSelect: fieldFlags(f.doc, dict).Has(ChoiceMultiSelect),
		}, nil
	case FieldTypeComboBox:
		return ComboBoxState{
			Selected:    f.choiceSelection(dict),
			Options:     f.choiceOptions(dict),
			MultiSelect: fieldFlags(f.doc, dict).Has(ChoiceMultiSelect),
		}, nil
	case FieldTypeText:
		text := ""
		if v, found := lookup(f.doc, dict, "V"); found {
			if s, ok := textOf(v); ok {
				text = s
			}
		}
		return TextState{Text: text}, nil
	default:
		return nil, fmt.Errorf("field %q: unhandled field type %v", name, t)
	}
}

// selectedState returns V when present, else AS, else "".
func (f *Form) selectedState(dict types.Dict) string {
	obj, found := lookup(f.doc, dict, "V")
	if !found {
		obj, found = lookup(f.doc, dict, "AS")
	}
	if !found {
		return ""
	}
	switch v := obj.(type) {
	case types.Name:
		return v.Value()
	case types.StringLiteral, types.HexLiteral:
		if s, ok := textOf(v); ok {
			return s
		}
	}
	return ""
}

// widgets returns the kid widgets of a field, or the field itself when its
// widget is merged into it.
func (f *Form) widgets(dict types.Dict) []types.Dict {
	kids, ok := lookupArray(f.doc, dict, "Kids")
	if !ok {
		return []types.Dict{dict}
	}

	var widgets []types.Dict
	for _, kid := range kids {
		obj, err := resolve(f.doc, kid)
		if err != nil {
			f.logger.Printf("form: skipping unresolvable widget %v: %v", kid, err)
			continue
		}
		if w, ok := obj.(types.Dict); ok {
			widgets = append(widgets, w)
		}
	}
	return widgets
}

// appearanceStates returns the normal appearance subdictionary AP/N, whose
// keys are the states a widget can take.
func (f *Form) appearanceStates(widget types.Dict) (types.Dict, bool) {
	ap, ok := lookupDict(f.doc, widget, "AP")
	if !ok {
		return nil, false
	}
	return lookupDict(f.doc, ap, "N")
}

// radioOptions is the union of the appearance states of every widget, in
// widget order.
func (f *Form) radioOptions(dict types.Dict) []string {
	options := []string{}
	for _, w := range f.widgets(dict) {
		states, ok := f.appearanceStates(w)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(states))
		for k := range states {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !slices.Contains(options, k) {
				options = append(options, k)
			}
		}
	}
	return options
}

// choiceSelection reads V as a single string or an array of strings.
func (f *Form) choiceSelection(dict types.Dict) []string {
	obj, found := lookup(f.doc, dict, "V")
	if !found {
		return []string{}
	}

	selected := []string{}
	switch v := obj.(type) {
	case types.StringLiteral, types.HexLiteral:
		if s, ok := textOf(v); ok {
			selected = append(selected, s)
		}
	case types.Array:
		for _, item := range v {
			if s, ok := textOf(item); ok {
				selected = append(selected, s)
			}
		}
	}
	return selected
}

// choiceOptions reads Opt. Entries are strings or [export display] pairs,
// of which the display string is used. Empty entries are dropped.
func (f *Form) choiceOptions(dict types.Dict) []string {
	options := []string{}
	opt, ok := lookupArray(f.doc, dict, "Opt")
	if !ok {
		return options
	}

	for _, entry := range opt {
		entry, err := resolve(f.doc, entry)
		if err != nil {
			continue
		}
		var s string
		switch e := entry.(type) {
		case types.StringLiteral, types.HexLiteral:
			s, _ = textOf(e)
		case types.Array:
			if len(e) >= 2 {
				s, _ = textOf(e[1])
			}
		}
		if s != "" {
			options = append(options, s)
		}
	}
	return options
}
