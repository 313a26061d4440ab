package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/a3tai/mcp-pdf-formfill/internal/form"
	"github.com/a3tai/mcp-pdf-formfill/internal/pdf/security"
)

// fileCheck is what opening a file with the independent parser revealed
type fileCheck struct {
	pages       int
	permissions *security.Permissions // nil unless the file is encrypted
}

// Validator handles PDF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks that a file is a readable PDF and reports whether it
// carries a fillable form
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	check, err := v.validatePDFFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}
	result.Valid = true
	result.Pages = check.pages
	if check.permissions != nil {
		result.Permissions = check.permissions.String()
	}

	f, err := form.LoadFile(req.Path)
	if err != nil {
		result.Message = fmt.Sprintf("no fillable form: %v", err)
		return result, nil //nolint:nilerr // A PDF without a form is still valid
	}
	result.HasForm = f.Len() > 0
	result.FieldCount = f.Len()

	return result, nil
}

// validatePDFFile checks the file on disk and opens it with an independent parser
func (v *Validator) validatePDFFile(filePath string) (fileCheck, error) {
	if filePath == "" {
		return fileCheck{}, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fileCheck{}, fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fileCheck{}, fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(filePath, fileInfo); err != nil {
		return fileCheck{}, err
	}

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return fileCheck{}, fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()

	check := fileCheck{pages: reader.NumPage()}
	if p := reader.Trailer().Key("Encrypt").Key("P"); !p.IsNull() {
		perms := security.NewPermissions(int32(p.Int64()))
		check.permissions = &perms
	}
	return check, nil
}

// CheckFile validates a file before it is loaded as a form. With forFill
// set, encrypted files whose permissions forbid filling are rejected.
func (v *Validator) CheckFile(filePath string, forFill bool) error {
	check, err := v.validatePDFFile(filePath)
	if err != nil {
		return err
	}
	if forFill && check.permissions != nil {
		return check.permissions.CheckFill()
	}
	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF
func (v *Validator) IsValidPDF(filePath string) bool {
	return v.CheckFile(filePath, false) == nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}
