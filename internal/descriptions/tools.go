package descriptions

import "sort"

// Tool descriptions with practical examples and use cases

const (
	PDFFormFieldsDescription = `List every fillable field of a PDF form with its type and current value.

**When to use:** Before filling a form, to learn the exact field names, which fields are radio groups, check boxes, list boxes, combo boxes or text fields, and which options each choice field offers.

**Examples:**
• Inspect a tax form: "List the fields of w9.pdf"
• Find the options of a drop-down: "Which sizes can be chosen in order-form.pdf?"

**Output:** One entry per field, sorted by full name (for example "Person[0].Name"), with the field type and its decoded state.

**Best practices:** Use the short trailing part of a name (e.g. "Name") with pdf_form_fill; the fill tool resolves it against the full hierarchical name.`

	PDFFormFieldStateDescription = `Read the current value of a single form field.

**When to use:** To check one field after filling, or to read the options of one radio group or choice field without listing the whole form.

**Examples:**
• "Is the Agree box in contract.pdf checked?"
• "Which colour is selected in survey.pdf?"

**Best practices:** The field name must be the full name reported by pdf_form_fields.`

	PDFFormFillDescription = `Fill text fields, check boxes and radio groups of a PDF form from name/value pairs and write the result to a new file.

**When to use:** To complete a form in one call.

**Value rules:**
• Text fields take the value as is (any Unicode text).
• Check boxes are checked by "true" (any letter case); any other value unchecks them.
• Radio groups take the name of one of their options.
• List boxes and combo boxes are not filled by this tool; use pdf_form_set_choice.

**Name matching:** A value named "Name" fills "Person[0].Name". Array indices like "[0]" are ignored and leading name segments are dropped until a value matches. Fields without a matching value are left unchanged.

**Output:** Written to "output" when given (relative to the output directory), otherwise to "<input>_filled.pdf". The input file is never modified.

**Errors:** Filling stops at the first field whose value is invalid; no file is written in that case.`

	PDFFormSetChoiceDescription = `Select options of a list box or combo box and write the result to a new file.

**When to use:** For choice fields, which pdf_form_fill leaves alone.

**Rules:**
• Every choice must be one of the field's options (see pdf_form_fields).
• More than one choice requires a multi-select field.
• An empty list clears the selection.

**Output:** Same rules as pdf_form_fill.`

	PDFValidateFileDescription = `Verify PDF file integrity and report whether it carries a fillable form.

**When to use:** Before processing user supplied files, or to find out whether a PDF has an AcroForm at all.

**Output:** Validity, page count, whether a form is present and its field count.

**Best practices:** Run this first in automated workflows.`

	PDFSearchDirectoryDescription = `Find PDF files in the configured directory, optionally by fuzzy name match, and report which of them are fillable forms.

**When to use:** To locate a form before inspecting or filling it.

**Examples:**
• "Find all forms in the directory": forms_only=true
• "Find the lease agreement": query="lease"

**Best practices:** Leave directory empty to search the configured directory.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"pdf_form_fields":      PDFFormFieldsDescription,
	"pdf_form_field_state": PDFFormFieldStateDescription,
	"pdf_form_fill":        PDFFormFillDescription,
	"pdf_form_set_choice":  PDFFormSetChoiceDescription,
	"pdf_validate_file":    PDFValidateFileDescription,
	"pdf_search_directory": PDFSearchDirectoryDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all described tools, sorted
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
