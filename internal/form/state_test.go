package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRadio(t *testing.T) {
	fx := newFixture()
	ref := radioGroup(fx, "Color", "Red", "Blue")
	f := fx.form(t)

	want := RadioState{Selected: "", Options: []string{"Off", "Red", "Blue"}}
	got, err := f.State("Color")
	require.NoError(t, err)
	if diff := cmp.Diff(FieldState(want), got); diff != "" {
		t.Errorf("State() mismatch (-want +got):\n%s", diff)
	}

	fx.doc.dict(ref)["AS"] = types.Name("Blue")
	got, err = f.State("Color")
	require.NoError(t, err)
	assert.Equal(t, "Blue", got.(RadioState).Selected)

	fx.doc.dict(ref)["V"] = types.Name("Red")
	got, err = f.State("Color")
	require.NoError(t, err)
	assert.Equal(t, "Red", got.(RadioState).Selected)
}

func TestStateRadioMergedWidget(t *testing.T) {
	fx := newFixture()
	fx.top(types.Dict{
		"FT": types.Name("Btn"),
		"Ff": types.Integer(int(ButtonRadio)),
		"T":  lit("Single"),
		"AP": appearance("On", "Off"),
	})
	f := fx.form(t)

	got, err := f.State("Single")
	require.NoError(t, err)
	assert.Equal(t, []string{"Off", "On"}, got.(RadioState).Options)
}

func TestStateRadioSkipsBrokenWidgets(t *testing.T) {
	fx := newFixture()
	ref := radioGroup(fx, "Color", "Red")
	f := fx.form(t)

	// Kids that break after load: one dangling, one with a malformed AP.
	p := fx.doc.dict(ref)
	p["Kids"] = append(p["Kids"].(types.Array), *types.NewIndirectRef(99, 0), fx.doc.add(types.Dict{"AP": types.Name("x")}))

	got, err := f.State("Color")
	require.NoError(t, err)
	assert.Equal(t, []string{"Off", "Red"}, got.(RadioState).Options)
}

func TestStateCheckBox(t *testing.T) {
	tests := []struct {
		name string
		dict types.Dict
		want bool
	}{
		{"value yes", types.Dict{"V": types.Name("Yes")}, true},
		{"value off", types.Dict{"V": types.Name("Off")}, false},
		{"value wins over appearance", types.Dict{"V": types.Name("Off"), "AS": types.Name("Yes")}, false},
		{"appearance only", types.Dict{"AS": types.Name("Yes")}, true},
		{"nothing set", types.Dict{}, false},
		{"other on state", types.Dict{"V": types.Name("On")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			tt.dict["FT"] = types.Name("Btn")
			tt.dict["T"] = lit("Box")
			fx.top(tt.dict)
			f := fx.form(t)

			got, err := f.State("Box")
			require.NoError(t, err)
			assert.Equal(t, CheckBoxState{Checked: tt.want}, got)
		})
	}
}

func TestStateChoice(t *testing.T) {
	fx := newFixture()

	list := choiceField("List", ChoiceMultiSelect, "Apple")
	list["Opt"] = append(list["Opt"].(types.Array),
		types.Array{lit("b"), lit("Banana")},
		types.Integer(3),
		lit(""),
		types.Array{lit("c"), types.Integer(4)},
		types.Array{lit("only")},
	)
	list["V"] = types.Array{lit("Apple"), types.Name("Skipped"), lit("Banana")}
	fx.top(list)

	combo := choiceField("Combo", ChoiceCombo, "Small", "Large")
	combo["V"] = lit("Large")
	fx.top(combo)

	fx.top(choiceField("Empty", 0))

	f := fx.form(t)

	got, err := f.State("List")
	require.NoError(t, err)
	want := ListBoxState{
		Selected:    []string{"Apple", "Banana"},
		Options:     []string{"Apple", "Banana"},
		MultiSelect: true,
	}
	if diff := cmp.Diff(FieldState(want), got); diff != "" {
		t.Errorf("List state mismatch (-want +got):\n%s", diff)
	}

	got, err = f.State("Combo")
	require.NoError(t, err)
	assert.Equal(t, ComboBoxState{
		Selected: []string{"Large"},
		Options:  []string{"Small", "Large"},
	}, got)

	got, err = f.State("Empty")
	require.NoError(t, err)
	assert.Equal(t, ListBoxState{Selected: []string{}, Options: []string{}}, got)
}

func TestStateText(t *testing.T) {
	fx := newFixture()
	fx.top(textField("Unicode", "Grüße"))
	plain := textField("Plain", "")
	plain["V"] = lit("hello")
	fx.top(plain)
	fx.top(textField("Empty", ""))
	named := textField("Named", "")
	named["V"] = types.Name("NotText")
	fx.top(named)

	f := fx.form(t)

	for name, want := range map[string]string{
		"Unicode": "Grüße",
		"Plain":   "hello",
		"Empty":   "",
		"Named":   "",
	} {
		got, err := f.State(name)
		require.NoError(t, err, name)
		assert.Equal(t, TextState{Text: want}, got, name)
	}
}

func TestStateButton(t *testing.T) {
	fx := newFixture()
	fx.top(types.Dict{"FT": types.Name("Btn"), "Ff": types.Integer(int(ButtonPushbutton)), "T": lit("Submit")})
	f := fx.form(t)

	got, err := f.State("Submit")
	require.NoError(t, err)
	assert.Equal(t, ButtonState{}, got)
	assert.Equal(t, FieldTypeButton, got.Type())
}

func TestStateIsIdempotent(t *testing.T) {
	fx := newFixture()
	radioGroup(fx, "Color", "Red", "Blue", "Green")
	fx.top(choiceField("List", 0, "a", "b"))
	fx.top(textField("Text", "value"))
	f := fx.form(t)

	for _, name := range f.FieldNames() {
		first, err := f.State(name)
		require.NoError(t, err)
		second, err := f.State(name)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: repeated State() differs (-first +second):\n%s", name, diff)
		}
		assert.Equal(t, first.Type(), mustType(t, f, name))
	}
}

func TestStateUnknownField(t *testing.T) {
	f := newFixture().form(t)
	_, err := f.State("Missing")
	assert.ErrorIs(t, err, ErrDictionaryKeyNotFound)
}

func mustType(t *testing.T, f *Form, name string) FieldType {
	t.Helper()
	ft, err := f.Type(name)
	require.NoError(t, err)
	return ft
}
