package form

import (
	"regexp"
	"strings"
)

var arrayIndex = regexp.MustCompile(`\[\d+\]`)

// matchValue finds the input value for a field name. On a miss it
// alternates between stripping [n] index segments and dropping the
// outermost name segment until a key matches or no segment is left.
func matchValue(name string, values map[string]string) (string, bool) {
	candidate := name
	for {
		if v, ok := values[candidate]; ok {
			return v, true
		}
		candidate = arrayIndex.ReplaceAllString(candidate, "")
		if v, ok := values[candidate]; ok {
			return v, true
		}
		_, rest, found := strings.Cut(candidate, ".")
		if !found || rest == "" {
			return "", false
		}
		candidate = rest
	}
}

// Fill applies a flat key/value mapping to the form. Every known field is
// matched against the keys (see matchValue); fields without a match are
// left alone. Radio buttons, check boxes and text fields are set; check
// boxes are checked when the value is "true" in any case. Push buttons and
// list/combo boxes are not filled.
//
// Fill stops at the first failing field and returns a *FieldError. Fields
// already set stay set.
func (f *Form) Fill(values map[string]string) error {
	for _, name := range f.FieldNames() {
		value, ok := matchValue(name, values)
		if !ok {
			continue
		}

		t, err := f.Type(name)
		if err != nil {
			return &FieldError{Field: name, Value: value, Err: err}
		}

		switch t {
		case FieldTypeRadio:
			err = f.SetRadio(name, value)
		case FieldTypeCheckBox:
			err = f.SetCheckBox(name, strings.EqualFold(value, "true"))
		case FieldTypeText:
			err = f.SetText(name, value)
		case FieldTypeButton, FieldTypeListBox, FieldTypeComboBox:
			f.logger.Printf("form: not filling %s field %q", t, name)
			continue
		}
		if err != nil {
			return &FieldError{Field: name, Value: value, Err: err}
		}
	}
	return nil
}
