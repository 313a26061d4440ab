package form

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Document is the object store a Form reads and mutates. Dictionaries
// returned by Resolve must be the stored instances so that in-place updates
// are persisted by Write.
type Document interface {
	// Trailer returns the trailer dictionary; Root refers to the catalog.
	Trailer() types.Dict
	// Resolve returns the object ref points to, or an error if there is none.
	Resolve(ref types.IndirectRef) (types.Object, error)
	// Write serializes the document.
	Write(w io.Writer) error
}

// PDFCPUDocument adapts a pdfcpu context to Document.
type PDFCPUDocument struct {
	ctx *model.Context
}

// ReadDocument parses a PDF with pdfcpu in relaxed validation mode.
func ReadDocument(rs io.ReadSeeker) (*PDFCPUDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return &PDFCPUDocument{ctx: ctx}, nil
}

// NewPDFCPUDocument wraps an already loaded pdfcpu context.
func NewPDFCPUDocument(ctx *model.Context) *PDFCPUDocument {
	return &PDFCPUDocument{ctx: ctx}
}

// Context returns the underlying pdfcpu context.
func (d *PDFCPUDocument) Context() *model.Context {
	return d.ctx
}

// Trailer rebuilds the trailer entries pdfcpu keeps on its xref table.
func (d *PDFCPUDocument) Trailer() types.Dict {
	trailer := types.Dict{}
	if d.ctx.Root != nil {
		trailer["Root"] = *d.ctx.Root
	}
	if d.ctx.Info != nil {
		trailer["Info"] = *d.ctx.Info
	}
	return trailer
}

func (d *PDFCPUDocument) Resolve(ref types.IndirectRef) (types.Object, error) {
	obj, err := d.ctx.Dereference(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference object %d: %w", ref.ObjectNumber.Value(), err)
	}
	if obj == nil {
		return nil, fmt.Errorf("object %d is missing or free", ref.ObjectNumber.Value())
	}
	return obj, nil
}

func (d *PDFCPUDocument) Write(w io.Writer) error {
	if err := api.WriteContext(d.ctx, w); err != nil {
		return fmt.Errorf("failed to write PDF context: %w", err)
	}
	return nil
}

// refOf reports whether obj is an indirect reference.
func refOf(obj types.Object) (types.IndirectRef, bool) {
	switch r := obj.(type) {
	case types.IndirectRef:
		return r, true
	case *types.IndirectRef:
		if r != nil {
			return *r, true
		}
	}
	return types.IndirectRef{}, false
}

// resolve follows obj if it is a reference and returns it unchanged otherwise.
func resolve(doc Document, obj types.Object) (types.Object, error) {
	ref, ok := refOf(obj)
	if !ok {
		return obj, nil
	}
	return doc.Resolve(ref)
}

// lookup returns the resolved value of key. A dangling reference counts as
// absent.
func lookup(doc Document, dict types.Dict, key string) (types.Object, bool) {
	obj, found := dict.Find(key)
	if !found || obj == nil {
		return nil, false
	}
	obj, err := resolve(doc, obj)
	if err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func lookupDict(doc Document, dict types.Dict, key string) (types.Dict, bool) {
	obj, found := lookup(doc, dict, key)
	if !found {
		return nil, false
	}
	d, ok := obj.(types.Dict)
	return d, ok
}

func lookupArray(doc Document, dict types.Dict, key string) (types.Array, bool) {
	obj, found := lookup(doc, dict, key)
	if !found {
		return nil, false
	}
	a, ok := obj.(types.Array)
	return a, ok
}

func lookupName(doc Document, dict types.Dict, key string) (string, bool) {
	obj, found := lookup(doc, dict, key)
	if !found {
		return "", false
	}
	n, ok := obj.(types.Name)
	return n.Value(), ok
}
