package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-pdf-formfill/internal/form/formtest"
)

func TestSearch_SearchDirectory(t *testing.T) {
	dir := t.TempDir()
	formtest.WriteFile(t, dir, "tax-return_2024.pdf", formtest.SampleForm())
	formtest.WriteFile(t, dir, "flyer.pdf", []byte("%PDF-1.4 broken"))
	formtest.WriteFile(t, dir, "readme.txt", []byte("text"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o750))
	formtest.WriteFile(t, filepath.Join(dir, ".hidden"), "secret.pdf", formtest.SampleForm())
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))
	formtest.WriteFile(t, filepath.Join(dir, "nested"), "application.pdf", formtest.SampleForm())

	search := NewSearch(1024*1024, nil)

	tests := []struct {
		name      string
		query     string
		formsOnly bool
		want      []string
	}{
		{name: "all files", want: []string{"flyer.pdf", "application.pdf", "tax-return_2024.pdf"}},
		{name: "substring", query: "tax", want: []string{"tax-return_2024.pdf"}},
		{name: "words in any order", query: "2024 return", want: []string{"tax-return_2024.pdf"}},
		{name: "no match", query: "invoice", want: []string{}},
		{name: "forms only", formsOnly: true, want: []string{"application.pdf", "tax-return_2024.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := search.SearchDirectory(PDFSearchDirectoryRequest{
				Directory: dir,
				Query:     tt.query,
				FormsOnly: tt.formsOnly,
			})
			require.NoError(t, err)

			names := []string{}
			for _, f := range result.Files {
				names = append(names, f.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
			assert.Equal(t, len(tt.want), result.TotalCount)
		})
	}
}

func TestSearch_ReportsForms(t *testing.T) {
	dir := t.TempDir()
	formtest.WriteFile(t, dir, "form.pdf", formtest.SampleForm())

	result, err := NewSearch(1024*1024, nil).SearchDirectory(PDFSearchDirectoryRequest{Directory: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	file := result.Files[0]
	assert.True(t, file.HasForm)
	assert.Equal(t, 5, file.FieldCount)
	assert.Equal(t, filepath.Join(dir, "form.pdf"), file.Path)
}

func TestSearch_Errors(t *testing.T) {
	search := NewSearch(1024, nil)

	_, err := search.SearchDirectory(PDFSearchDirectoryRequest{})
	assert.Error(t, err)

	_, err = search.SearchDirectory(PDFSearchDirectoryRequest{Directory: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		filename string
		query    string
		want     bool
	}{
		{"W-9 Request.pdf", "", true},
		{"W-9 Request.pdf", "request", true},
		{"W-9 Request.pdf", "9 w", true},
		{"W-9 Request.pdf", "invoice", false},
		{"lease_agreement.pdf", "lease agreement", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(tt.filename, tt.query))
		})
	}
}
