package form

// FieldType is the interaction variant of a field. It is always derived
// from the field's FT and Ff entries.
type FieldType int

const (
	FieldTypeButton FieldType = iota
	FieldTypeRadio
	FieldTypeCheckBox
	FieldTypeListBox
	FieldTypeComboBox
	FieldTypeText
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeButton:
		return "button"
	case FieldTypeRadio:
		return "radio"
	case FieldTypeCheckBox:
		return "checkbox"
	case FieldTypeListBox:
		return "listbox"
	case FieldTypeComboBox:
		return "combobox"
	case FieldTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalText renders the type by name in JSON and YAML output.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FieldState is the decoded value of a field. The concrete type always
// matches the field's current FieldType:
//
//	ButtonState, RadioState, CheckBoxState, ListBoxState, ComboBoxState, TextState
type FieldState interface {
	Type() FieldType
	fieldState()
}

// ButtonState is the state of a push button, which carries no value.
type ButtonState struct{}

// RadioState holds the selected appearance state and all selectable ones.
type RadioState struct {
	Selected string   `json:"selected"`
	Options  []string `json:"options"`
}

// CheckBoxState holds the toggle state of a check box.
type CheckBoxState struct {
	Checked bool `json:"checked"`
}

// ListBoxState holds the selection of a scrollable list.
type ListBoxState struct {
	Selected    []string `json:"selected"`
	Options     []string `json:"options"`
	MultiSelect bool     `json:"multiselect"`
}

// ComboBoxState holds the selection of a drop-down list.
type ComboBoxState struct {
	Selected    []string `json:"selected"`
	Options     []string `json:"options"`
	MultiSelect bool     `json:"multiselect"`
}

// TextState holds the content of a text field.
type TextState struct {
	Text string `json:"text"`
}

func (ButtonState) Type() FieldType   { return FieldTypeButton }
func (RadioState) Type() FieldType    { return FieldTypeRadio }
func (CheckBoxState) Type() FieldType { return FieldTypeCheckBox }
func (ListBoxState) Type() FieldType  { return FieldTypeListBox }
func (ComboBoxState) Type() FieldType { return FieldTypeComboBox }
func (TextState) Type() FieldType     { return FieldTypeText }

func (ButtonState) fieldState()   {}
func (RadioState) fieldState()    {}
func (CheckBoxState) fieldState() {}
func (ListBoxState) fieldState()  {}
func (ComboBoxState) fieldState() {}
func (TextState) fieldState()     {}
