package form

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Form is a PDF document together with the index of its fillable fields.
type Form struct {
	doc      Document
	fields   map[string]types.IndirectRef
	acroForm types.Dict

	logger          *log.Logger
	needAppearances bool
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger receiving debug notes about skipped fields.
func WithLogger(logger *log.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithNeedAppearances makes SetText and SetChoice also set NeedAppearances
// on the AcroForm, asking viewers to rebuild field appearances.
func WithNeedAppearances(enabled bool) Option {
	return func(f *Form) {
		f.needAppearances = enabled
	}
}

// New indexes the fields of doc. It fails with a *LoadError when the
// AcroForm field tree cannot be located.
func New(doc Document, opts ...Option) (*Form, error) {
	f := &Form{
		doc:    doc,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}

	fields, acroForm, err := discover(doc, f.logger)
	if err != nil {
		return nil, err
	}
	f.fields = fields
	f.acroForm = acroForm
	return f, nil
}

// Load reads a PDF and indexes its fields.
func Load(rs io.ReadSeeker, opts ...Option) (*Form, error) {
	doc, err := ReadDocument(rs)
	if err != nil {
		return nil, &LoadError{Err: ErrIO, Cause: err}
	}
	return New(doc, opts...)
}

// LoadFile reads the PDF at path and indexes its fields.
func LoadFile(path string, opts ...Option) (*Form, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: ErrIO, Cause: err}
	}
	defer file.Close()

	return Load(file, opts...)
}

// Len returns the number of indexed fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// FieldNames returns the full names of all fields, sorted.
func (f *Form) FieldNames() []string {
	names := make([]string, 0, len(f.fields))
	for name := range f.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the dictionary of the named field. Changes made to it are
// written by Save.
func (f *Form) Field(name string) (types.Dict, error) {
	return f.field(name)
}

// Type classifies the named field.
func (f *Form) Type(name string) (FieldType, error) {
	dict, err := f.field(name)
	if err != nil {
		return 0, err
	}
	return classify(f.doc, dict), nil
}

// Types classifies every field.
func (f *Form) Types() (map[string]FieldType, error) {
	all := make(map[string]FieldType, len(f.fields))
	for name := range f.fields {
		t, err := f.Type(name)
		if err != nil {
			return nil, err
		}
		all[name] = t
	}
	return all, nil
}

// Save writes the document, including all mutations, to w.
func (f *Form) Save(w io.Writer) error {
	if err := f.doc.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// SaveFile writes the document to path, replacing any existing file.
func (f *Form) SaveFile(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()

	return f.Save(file)
}

func (f *Form) field(name string) (types.Dict, error) {
	ref, ok := f.fields[name]
	if !ok {
		return nil, keyNotFound(name)
	}
	obj, err := f.doc.Resolve(ref)
	if err != nil {
		return nil, noSuchReference(ref, err)
	}
	dict, ok := obj.(types.Dict)
	if !ok {
		return nil, unexpectedType(name)
	}
	return dict, nil
}
