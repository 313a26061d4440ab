package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name      string
		dir       string
		wantError bool
	}{
		{name: "valid directory", dir: tempDir},
		{name: "empty directory", dir: "", wantError: true},
		{name: "non-existent directory", dir: "/non/existent/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, err := NewPathValidator(tt.dir)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !filepath.IsAbs(validator.GetConfiguredDirectory()) {
				t.Errorf("configured directory should be absolute, got %s", validator.GetConfiguredDirectory())
			}
		})
	}
}

func TestPathValidator_Resolve(t *testing.T) {
	tempDir := t.TempDir()
	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		outside bool
		wantErr bool
	}{
		{name: "absolute path inside", path: filepath.Join(tempDir, "a.pdf"), want: filepath.Join(tempDir, "a.pdf")},
		{name: "relative path", path: "forms/a.pdf", want: filepath.Join(tempDir, "forms", "a.pdf")},
		{name: "directory itself", path: tempDir, want: tempDir},
		{name: "null bytes removed", path: "a\x00.pdf", want: filepath.Join(tempDir, "a.pdf")},
		{name: "traversal", path: "../escape.pdf", outside: true, wantErr: true},
		{name: "absolute path outside", path: "/etc/passwd", outside: true, wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Resolve(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) expected error, got %s", tt.path, got)
				}
				if tt.outside && !errors.Is(err, ErrOutsideDirectory) {
					t.Errorf("Resolve(%q) error = %v, want ErrOutsideDirectory", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathValidator_Symlinks(t *testing.T) {
	tempDir := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	if err := validator.ValidatePath(filepath.Join(link, "new.pdf")); err == nil {
		t.Error("path through a symlink leaving the directory should be rejected")
	}
	if err := validator.ValidatePath(filepath.Join(tempDir, "new.pdf")); err != nil {
		t.Errorf("new file inside the directory should be accepted: %v", err)
	}
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "sub")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	file := filepath.Join(tempDir, "file.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	if err := validator.ValidateDirectory(subDir); err != nil {
		t.Errorf("ValidateDirectory(subdir) unexpected error: %v", err)
	}
	if err := validator.ValidateDirectory(filepath.Join(tempDir, "later")); err != nil {
		t.Errorf("ValidateDirectory(missing) unexpected error: %v", err)
	}
	if err := validator.ValidateDirectory(file); err == nil {
		t.Error("ValidateDirectory(file) expected error")
	}
	if err := validator.ValidateDirectory(filepath.Dir(tempDir)); err == nil {
		t.Error("ValidateDirectory(parent) expected error")
	}
}
