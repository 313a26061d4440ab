package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for paths escaping the configured directory.
var ErrOutsideDirectory = errors.New("path is outside configured directory")

// PathValidator confines file access to one directory tree
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a new path validator for the given directory.
// The directory does not have to exist yet.
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{configuredDirectory: abs}, nil
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

// Resolve turns path into a cleaned absolute path inside the configured
// directory. Relative paths are taken relative to that directory.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}
	path = filepath.Clean(path)

	within, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return "", fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	return path, nil
}

// ValidatePath checks if a path is within the configured directory
func (v *PathValidator) ValidatePath(path string) error {
	_, err := v.Resolve(path)
	return err
}

// ValidateDirectory checks that dirPath is inside the configured directory and,
// when it exists, is a directory.
func (v *PathValidator) ValidateDirectory(dirPath string) error {
	resolved, err := v.Resolve(dirPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return nil
}

// IsPathWithinDirectory reports whether path, after resolving symlinks on
// both sides, stays inside the configured directory.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(v.configuredDirectory)

	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}
	realPath := realPathOf(cleanPath)

	return within(cleanPath, cleanDir, realDir) && within(realPath, cleanDir, realDir), nil
}

// realPathOf resolves symlinks in the longest existing prefix of path, so
// files that are about to be created are checked through their parent.
func realPathOf(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(realPathOf(parent), filepath.Base(path))
}

func within(path string, dirs ...string) bool {
	for _, dir := range dirs {
		if path == dir {
			return true
		}
		withSep := dir
		if !strings.HasSuffix(withSep, string(filepath.Separator)) {
			withSep += string(filepath.Separator)
		}
		if strings.HasPrefix(path, withSep) {
			return true
		}
	}
	return false
}
