package pdf

import "github.com/a3tai/mcp-pdf-formfill/internal/form"

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
	HasForm      bool   `json:"has_form"`
	FieldCount   int    `json:"field_count"`
}

// FieldInfo describes one fillable field of a form
type FieldInfo struct {
	Name  string          `json:"name"`
	Type  form.FieldType  `json:"type"`
	State form.FieldState `json:"state"`
}

// Request Types

// PDFFormFieldsRequest represents a request to list the fields of a form
type PDFFormFieldsRequest struct {
	Path string `json:"path"`
}

// PDFFormFieldStateRequest represents a request to read one field
type PDFFormFieldStateRequest struct {
	Path  string `json:"path"`
	Field string `json:"field"`
}

// PDFFormFillRequest represents a request to fill a form from name/value pairs
type PDFFormFillRequest struct {
	Path   string            `json:"path"`
	Values map[string]string `json:"values"`
	Output string            `json:"output"`
}

// PDFFormSetChoiceRequest represents a request to select options of a choice field
type PDFFormSetChoiceRequest struct {
	Path    string   `json:"path"`
	Field   string   `json:"field"`
	Choices []string `json:"choices"`
	Output  string   `json:"output"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFSearchDirectoryRequest represents a request to search for PDF files in a directory
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
	FormsOnly bool   `json:"forms_only"`
}

// Response Types

// PDFFormFieldsResult lists every field of a form, sorted by name
type PDFFormFieldsResult struct {
	Path       string      `json:"path"`
	Fields     []FieldInfo `json:"fields"`
	TotalCount int         `json:"total_count"`
}

// PDFFormFieldStateResult carries the decoded state of one field
type PDFFormFieldStateResult struct {
	Path  string    `json:"path"`
	Field FieldInfo `json:"field"`
}

// PDFFormWriteResult reports where a modified form was written
type PDFFormWriteResult struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	Size   int64  `json:"size"`
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid       bool   `json:"valid"`
	Path        string `json:"path"`
	Pages       int    `json:"pages,omitempty"`
	HasForm     bool   `json:"has_form"`
	FieldCount  int    `json:"field_count"`
	Permissions string `json:"permissions,omitempty"` // granted operations of an encrypted file
	Message     string `json:"message,omitempty"`
}

// PDFSearchDirectoryResult represents the result of a PDF search operation
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}
