// Package formtest builds small AcroForm PDFs for tests.
package formtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Field names of SampleForm.
const (
	TextField     = "Person[0].Name"
	CheckBoxField = "Agree"
	RadioField    = "Color"
	ListBoxField  = "Fruit"
	ComboBoxField = "Size"
)

// Builder assembles a PDF from numbered object bodies and writes a matching
// cross-reference table.
type Builder struct {
	objects []string
}

// Add appends an object and returns its object number.
func (b *Builder) Add(body string) int {
	b.objects = append(b.objects, body)
	return len(b.objects)
}

// Set replaces the body of object nr.
func (b *Builder) Set(nr int, body string) {
	b.objects[nr-1] = body
}

// Bytes serializes the objects with root as the catalog.
func (b *Builder) Bytes(root int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, len(b.objects))
	for i, body := range b.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objects)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(b.objects)+1, root, xref)
	return buf.Bytes()
}

// SampleForm returns a one page PDF with a nested text field, a check box,
// a two widget radio group, a multi-select list box and a combo box.
func SampleForm() []byte {
	var b Builder
	catalog := b.Add("")
	pages := b.Add("")
	page := b.Add("")
	acroForm := b.Add("")
	person := b.Add("")
	name := b.Add("")
	agree := b.Add("")
	color := b.Add("")
	red := b.Add("")
	blue := b.Add("")
	fruit := b.Add("")
	size := b.Add("")

	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R /AcroForm %d 0 R >>", pages, acroForm))
	b.Set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	b.Set(page, fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Annots [%d 0 R %d 0 R %d 0 R %d 0 R %d 0 R %d 0 R] >>",
		pages, name, agree, red, blue, fruit, size))
	b.Set(acroForm, fmt.Sprintf(
		"<< /Fields [%d 0 R %d 0 R %d 0 R %d 0 R %d 0 R] /DA (/Helv 0 Tf 0 g) >>",
		person, agree, color, fruit, size))

	b.Set(person, fmt.Sprintf("<< /T (Person[0]) /Kids [%d 0 R] >>", name))
	b.Set(name, fmt.Sprintf(
		"<< /Type /Annot /Subtype /Widget /FT /Tx /T (Name) /Parent %d 0 R /V (Jane) /Rect [50 700 250 720] >>",
		person))
	b.Set(agree, "<< /Type /Annot /Subtype /Widget /FT /Btn /T (Agree) /V /Off /AS /Off "+
		"/Rect [50 660 70 680] /AP << /N << /Yes << >> /Off << >> >> >> >>")
	b.Set(color, fmt.Sprintf("<< /FT /Btn /Ff 49152 /T (Color) /V /Off /Kids [%d 0 R %d 0 R] >>", red, blue))
	b.Set(red, fmt.Sprintf("<< /Type /Annot /Subtype /Widget /Parent %d 0 R /AS /Off "+
		"/Rect [50 620 70 640] /AP << /N << /Red << >> /Off << >> >> >> >>", color))
	b.Set(blue, fmt.Sprintf("<< /Type /Annot /Subtype /Widget /Parent %d 0 R /AS /Off "+
		"/Rect [80 620 100 640] /AP << /N << /Blue << >> /Off << >> >> >> >>", color))
	b.Set(fruit, "<< /Type /Annot /Subtype /Widget /FT /Ch /Ff 2097152 /T (Fruit) "+
		"/Opt [(Apple) (Banana) (Cherry)] /Rect [50 520 250 600] >>")
	b.Set(size, "<< /Type /Annot /Subtype /Widget /FT /Ch /Ff 131072 /T (Size) "+
		"/Opt [[(s) (Small)] [(l) (Large)]] /V (Small) /Rect [50 480 250 500] >>")

	return b.Bytes(catalog)
}

// WriteFile writes data into dir under name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
