package pdf

import (
	"fmt"
	"io"
	"log"

	"github.com/a3tai/mcp-pdf-formfill/internal/pdf/security"
)

// ServiceOptions configures a Service
type ServiceOptions struct {
	MaxFileSize     int64
	Directory       string // forms are read from this tree
	OutputDirectory string // filled forms are written to this tree; defaults to Directory
	NeedAppearances bool
	Logger          *log.Logger
}

// Service exposes form operations on files confined to the configured directories
type Service struct {
	maxFileSize     int64
	needAppearances bool
	logger          *log.Logger

	validator     *Validator
	search        *Search
	pathValidator *security.PathValidator
	outValidator  *security.PathValidator
}

// NewService creates a new PDF form service with all components
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.MaxFileSize <= 0 {
		return nil, fmt.Errorf("maxFileSize must be greater than 0")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	pathValidator, err := security.NewPathValidator(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	outDir := opts.OutputDirectory
	if outDir == "" {
		outDir = opts.Directory
	}
	outValidator, err := security.NewPathValidator(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create output path validator: %w", err)
	}

	return &Service{
		maxFileSize:     opts.MaxFileSize,
		needAppearances: opts.NeedAppearances,
		logger:          logger,
		validator:       NewValidator(opts.MaxFileSize),
		search:          NewSearch(opts.MaxFileSize, logger),
		pathValidator:   pathValidator,
		outValidator:    outValidator,
	}, nil
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// PDFSearchDirectory searches for PDF files in a directory
func (s *Service) PDFSearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	dir, err := s.pathValidator.Resolve(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.pathValidator.ValidateDirectory(dir); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Directory = dir

	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// Directory returns the directory forms are read from
func (s *Service) Directory() string {
	return s.pathValidator.GetConfiguredDirectory()
}

// OutputDirectory returns the directory filled forms are written to
func (s *Service) OutputDirectory() string {
	return s.outValidator.GetConfiguredDirectory()
}
