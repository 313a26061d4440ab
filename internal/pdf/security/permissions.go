package security

import (
	"errors"
	"strings"
)

// ErrFillNotPermitted is returned when an encrypted document forbids form filling.
var ErrFillNotPermitted = errors.New("document permissions do not allow filling form fields")

// Permissions holds the user access bits of the P entry of an encryption dictionary
type Permissions struct {
	Print     bool // Bit 3
	Modify    bool // Bit 4
	Copy      bool // Bit 5
	Annotate  bool // Bit 6 - add or modify annotations, fill in form fields
	FillForms bool // Bit 9 - fill in existing form fields even when bit 6 is clear
	Extract   bool // Bit 10
	Assemble  bool // Bit 11
}

// NewPermissions decodes a P value. P is a signed 32-bit integer.
func NewPermissions(perms int32) Permissions {
	return Permissions{
		Print:     perms&0x04 != 0,
		Modify:    perms&0x08 != 0,
		Copy:      perms&0x10 != 0,
		Annotate:  perms&0x20 != 0,
		FillForms: perms&0x100 != 0,
		Extract:   perms&0x200 != 0,
		Assemble:  perms&0x400 != 0,
	}
}

// CanFillForms reports whether existing form fields may be filled
func (p Permissions) CanFillForms() bool {
	return p.Annotate || p.FillForms
}

// CheckFill returns ErrFillNotPermitted unless fields may be filled
func (p Permissions) CheckFill() error {
	if !p.CanFillForms() {
		return ErrFillNotPermitted
	}
	return nil
}

// String lists the granted operations
func (p Permissions) String() string {
	var granted []string
	for _, op := range []struct {
		name string
		ok   bool
	}{
		{"print", p.Print},
		{"modify", p.Modify},
		{"copy", p.Copy},
		{"annotate", p.Annotate},
		{"fill-forms", p.FillForms},
		{"extract", p.Extract},
		{"assemble", p.Assemble},
	} {
		if op.ok {
			granted = append(granted, op.name)
		}
	}
	if len(granted) == 0 {
		return "none"
	}
	return strings.Join(granted, ", ")
}
