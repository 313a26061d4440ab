package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-pdf-formfill/internal/form"
)

const filledSuffix = "_filled"

// PDFFormFields lists every field of a form with its type and current state
func (s *Service) PDFFormFields(req PDFFormFieldsRequest) (*PDFFormFieldsResult, error) {
	path, f, err := s.openForm(req.Path, false)
	if err != nil {
		return nil, err
	}

	fields := make([]FieldInfo, 0, f.Len())
	for _, name := range f.FieldNames() {
		info, err := fieldInfo(f, name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, info)
	}

	return &PDFFormFieldsResult{
		Path:       path,
		Fields:     fields,
		TotalCount: len(fields),
	}, nil
}

// PDFFormFieldState decodes the state of one field
func (s *Service) PDFFormFieldState(req PDFFormFieldStateRequest) (*PDFFormFieldStateResult, error) {
	if req.Field == "" {
		return nil, fmt.Errorf("field cannot be empty")
	}

	path, f, err := s.openForm(req.Path, false)
	if err != nil {
		return nil, err
	}

	info, err := fieldInfo(f, req.Field)
	if err != nil {
		return nil, err
	}
	return &PDFFormFieldStateResult{Path: path, Field: info}, nil
}

// PDFFormFill fills a form from name/value pairs and writes the result
func (s *Service) PDFFormFill(req PDFFormFillRequest) (*PDFFormWriteResult, error) {
	if len(req.Values) == 0 {
		return nil, fmt.Errorf("values cannot be empty")
	}

	path, f, err := s.openForm(req.Path, true)
	if err != nil {
		return nil, err
	}

	if err := f.Fill(req.Values); err != nil {
		return nil, fmt.Errorf("failed to fill %s: %w", path, err)
	}

	return s.writeForm(f, path, req.Output)
}

// PDFFormSetChoice selects options of a list box or combo box and writes the result
func (s *Service) PDFFormSetChoice(req PDFFormSetChoiceRequest) (*PDFFormWriteResult, error) {
	if req.Field == "" {
		return nil, fmt.Errorf("field cannot be empty")
	}

	path, f, err := s.openForm(req.Path, true)
	if err != nil {
		return nil, err
	}

	if err := f.SetChoice(req.Field, req.Choices); err != nil {
		return nil, fmt.Errorf("failed to set %s in %s: %w", req.Field, path, err)
	}

	return s.writeForm(f, path, req.Output)
}

// openForm confines, checks and loads a form; forFill also checks the
// document permissions
func (s *Service) openForm(path string, forFill bool) (string, *form.Form, error) {
	resolved, err := s.pathValidator.Resolve(path)
	if err != nil {
		return "", nil, fmt.Errorf("security validation failed: %w", err)
	}

	if err := s.validator.CheckFile(resolved, forFill); err != nil {
		return "", nil, err
	}

	f, err := form.LoadFile(resolved,
		form.WithLogger(s.logger),
		form.WithNeedAppearances(s.needAppearances))
	if err != nil {
		return "", nil, fmt.Errorf("failed to load form %s: %w", resolved, err)
	}

	s.logger.Printf("loaded %s: %d fields", resolved, f.Len())
	return resolved, f, nil
}

// writeForm saves f to output, or next to the configured output directory
// under the input name with a suffix when output is empty
func (s *Service) writeForm(f *form.Form, input, output string) (*PDFFormWriteResult, error) {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output = base + filledSuffix + ".pdf"
	}

	resolved, err := s.outValidator.Resolve(output)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if !isPDFFile(resolved) {
		return nil, fmt.Errorf("output is not a PDF: %s", output)
	}

	if err := saveAtomic(f, resolved); err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("cannot access output file: %w", err)
	}

	s.logger.Printf("wrote %s (%d bytes)", resolved, info.Size())
	return &PDFFormWriteResult{Path: input, Output: resolved, Size: info.Size()}, nil
}

// saveAtomic writes into a temporary file next to path and renames it into place
func saveAtomic(f *form.Form, path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".formfill-*.pdf")
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := f.Save(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save form: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}
	return nil
}

func fieldInfo(f *form.Form, name string) (FieldInfo, error) {
	t, err := f.Type(name)
	if err != nil {
		return FieldInfo{}, err
	}
	state, err := f.State(name)
	if err != nil {
		return FieldInfo{}, err
	}
	return FieldInfo{Name: name, Type: t, State: state}, nil
}
