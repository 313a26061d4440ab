package security

import (
	"errors"
	"testing"
)

func TestNewPermissions(t *testing.T) {
	tests := []struct {
		name     string
		perms    int32
		want     Permissions
		canFill  bool
		describe string
	}{
		{
			name:     "all granted",
			perms:    -1,
			want:     Permissions{Print: true, Modify: true, Copy: true, Annotate: true, FillForms: true, Extract: true, Assemble: true},
			canFill:  true,
			describe: "print, modify, copy, annotate, fill-forms, extract, assemble",
		},
		{
			name:     "reserved bits only",
			perms:    -3904, // 0xFFFFF0C0
			want:     Permissions{},
			canFill:  false,
			describe: "none",
		},
		{
			name:     "print and fill forms",
			perms:    0x04 | 0x100,
			want:     Permissions{Print: true, FillForms: true},
			canFill:  true,
			describe: "print, fill-forms",
		},
		{
			name:     "annotate",
			perms:    0x20,
			want:     Permissions{Annotate: true},
			canFill:  true,
			describe: "annotate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPermissions(tt.perms)
			if got != tt.want {
				t.Errorf("NewPermissions(%d) = %+v, want %+v", tt.perms, got, tt.want)
			}
			if got.CanFillForms() != tt.canFill {
				t.Errorf("CanFillForms() = %v, want %v", got.CanFillForms(), tt.canFill)
			}
			if s := got.String(); s != tt.describe {
				t.Errorf("String() = %q, want %q", s, tt.describe)
			}
		})
	}
}

func TestCheckFill(t *testing.T) {
	if err := NewPermissions(0x100).CheckFill(); err != nil {
		t.Errorf("CheckFill() unexpected error: %v", err)
	}
	if err := NewPermissions(0x04).CheckFill(); !errors.Is(err, ErrFillNotPermitted) {
		t.Errorf("CheckFill() error = %v, want ErrFillNotPermitted", err)
	}
}
