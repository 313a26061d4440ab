package pdf

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-pdf-formfill/internal/form"
)

// Search finds PDF files and reports which of them carry a fillable form
type Search struct {
	validator *Validator
	logger    *log.Logger
}

// NewSearch creates a new PDF search handler with the specified constraints
func NewSearch(maxFileSize int64, logger *log.Logger) *Search {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Search{
		validator: NewValidator(maxFileSize),
		logger:    logger,
	}
}

// SearchDirectory walks a directory for PDF files matching the query
func (s *Search) SearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}
	if _, err := os.Stat(absDirectory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	files := []FileInfo{}

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked entries are not followed out of the tree
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if !isPDFFile(d.Name()) || !matchesQuery(d.Name(), query) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Skip invalid files but continue processing
		}

		fileInfo := FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		}
		if f, err := form.LoadFile(path); err == nil {
			fileInfo.FieldCount = f.Len()
			fileInfo.HasForm = f.Len() > 0
		} else {
			s.logger.Printf("search: %s has no readable form: %v", path, err)
		}

		if req.FormsOnly && !fileInfo.HasForm {
			return nil
		}
		files = append(files, fileInfo)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &PDFSearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// isPDFFile checks if a file has a PDF extension
func isPDFFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// matchesQuery matches a lower-cased query against a filename, either as a
// substring or word by word
func matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	name := strings.TrimSuffix(strings.ToLower(filename), ".pdf")
	if strings.Contains(name, query) {
		return true
	}

	words := splitIntoWords(name)
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// splitIntoWords splits a string on common filename separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(" _-.()[]", r)
	})
}
