package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-pdf-formfill/internal/form"
	"github.com/a3tai/mcp-pdf-formfill/internal/form/formtest"
)

func TestService_FormFields(t *testing.T) {
	service, dir := newTestService(t)

	result, err := service.PDFFormFields(PDFFormFieldsRequest{Path: samplePDF})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, samplePDF), result.Path)
	assert.Equal(t, 5, result.TotalCount)

	byName := map[string]FieldInfo{}
	for _, f := range result.Fields {
		byName[f.Name] = f
	}
	assert.Equal(t, form.FieldTypeText, byName[formtest.TextField].Type)
	assert.Equal(t, form.TextState{Text: "Jane"}, byName[formtest.TextField].State)
	assert.Equal(t, form.FieldTypeCheckBox, byName[formtest.CheckBoxField].Type)
	assert.Equal(t, form.FieldTypeListBox, byName[formtest.ListBoxField].Type)
}

func TestService_FormFieldState(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.PDFFormFieldState(PDFFormFieldStateRequest{Path: samplePDF, Field: formtest.ComboBoxField})
	require.NoError(t, err)
	assert.Equal(t, form.FieldTypeComboBox, result.Field.Type)
	assert.Equal(t, form.ComboBoxState{Selected: []string{"Small"}, Options: []string{"Small", "Large"}}, result.Field.State)

	_, err = service.PDFFormFieldState(PDFFormFieldStateRequest{Path: samplePDF, Field: "Nope"})
	assert.ErrorIs(t, err, form.ErrDictionaryKeyNotFound)

	_, err = service.PDFFormFieldState(PDFFormFieldStateRequest{Path: samplePDF})
	assert.Error(t, err)
}

func TestService_FormFill(t *testing.T) {
	service, dir := newTestService(t)

	result, err := service.PDFFormFill(PDFFormFillRequest{
		Path:   samplePDF,
		Values: map[string]string{"Name": "Ada", "Agree": "true", "Color": "Red"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sample_filled.pdf"), result.Output)
	assert.Positive(t, result.Size)

	filled, err := form.LoadFile(result.Output)
	require.NoError(t, err)

	state, err := filled.State(formtest.TextField)
	require.NoError(t, err)
	assert.Equal(t, form.TextState{Text: "Ada"}, state)

	state, err = filled.State(formtest.CheckBoxField)
	require.NoError(t, err)
	assert.Equal(t, form.CheckBoxState{Checked: true}, state)

	// The input is left untouched
	original, err := form.LoadFile(filepath.Join(dir, samplePDF))
	require.NoError(t, err)
	state, err = original.State(formtest.TextField)
	require.NoError(t, err)
	assert.Equal(t, form.TextState{Text: "Jane"}, state)
}

func TestService_FormFillErrors(t *testing.T) {
	service, dir := newTestService(t)

	_, err := service.PDFFormFill(PDFFormFillRequest{Path: samplePDF})
	assert.Error(t, err)

	_, err = service.PDFFormFill(PDFFormFillRequest{
		Path:   samplePDF,
		Values: map[string]string{"Color": "Green"},
	})
	var fieldErr *form.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, formtest.RadioField, fieldErr.Field)
	assert.ErrorIs(t, err, form.ErrInvalidSelection)
	assert.NoFileExists(t, filepath.Join(dir, "sample_filled.pdf"))

	_, err = service.PDFFormFill(PDFFormFillRequest{
		Path:   samplePDF,
		Values: map[string]string{"Name": "x"},
		Output: "../escaped.pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security validation failed")

	_, err = service.PDFFormFill(PDFFormFillRequest{
		Path:   samplePDF,
		Values: map[string]string{"Name": "x"},
		Output: "out.txt",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output is not a PDF")
}

func TestService_FormSetChoice(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	formtest.WriteFile(t, dir, samplePDF, formtest.SampleForm())

	service, err := NewService(ServiceOptions{
		MaxFileSize:     1024 * 1024,
		Directory:       dir,
		OutputDirectory: out,
		NeedAppearances: true,
	})
	require.NoError(t, err)

	result, err := service.PDFFormSetChoice(PDFFormSetChoiceRequest{
		Path:    samplePDF,
		Field:   formtest.ListBoxField,
		Choices: []string{"Banana", "Cherry"},
		Output:  "choices/fruit.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "choices", "fruit.pdf"), result.Output)

	entries, err := os.ReadDir(filepath.Join(out, "choices"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	filled, err := form.LoadFile(result.Output)
	require.NoError(t, err)
	state, err := filled.State(formtest.ListBoxField)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana", "Cherry"}, state.(form.ListBoxState).Selected)

	_, err = service.PDFFormSetChoice(PDFFormSetChoiceRequest{
		Path:    samplePDF,
		Field:   formtest.ComboBoxField,
		Choices: []string{"Small", "Large"},
	})
	assert.ErrorIs(t, err, form.ErrTooManySelected)

	_, err = service.PDFFormSetChoice(PDFFormSetChoiceRequest{
		Path:    samplePDF,
		Field:   formtest.TextField,
		Choices: []string{"Jane"},
	})
	assert.ErrorIs(t, err, form.ErrTypeMismatch)
}
