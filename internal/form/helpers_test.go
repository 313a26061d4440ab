package form

import (
	"fmt"
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/require"
)

// memDocument is an in-memory Document keyed by object number.
type memDocument struct {
	trailer types.Dict
	objects map[int]types.Object
	writes  int
}

func newMemDocument() *memDocument {
	return &memDocument{
		trailer: types.Dict{},
		objects: make(map[int]types.Object),
	}
}

func (m *memDocument) add(obj types.Object) types.IndirectRef {
	nr := len(m.objects) + 1
	m.objects[nr] = obj
	return *types.NewIndirectRef(nr, 0)
}

func (m *memDocument) dict(ref types.IndirectRef) types.Dict {
	return m.objects[ref.ObjectNumber.Value()].(types.Dict)
}

func (m *memDocument) Trailer() types.Dict {
	return m.trailer
}

func (m *memDocument) Resolve(ref types.IndirectRef) (types.Object, error) {
	obj, ok := m.objects[ref.ObjectNumber.Value()]
	if !ok {
		return nil, fmt.Errorf("object %d not found", ref.ObjectNumber.Value())
	}
	return obj, nil
}

func (m *memDocument) Write(w io.Writer) error {
	m.writes++
	_, err := fmt.Fprintf(w, "%%PDF-mem %d objects\n", len(m.objects))
	return err
}

// fixture builds a catalog and AcroForm around fields added to it.
type fixture struct {
	doc      *memDocument
	acroForm types.Dict
}

func newFixture() *fixture {
	doc := newMemDocument()
	acroForm := types.Dict{"Fields": types.Array{}}
	catalog := types.Dict{
		"Type":     types.Name("Catalog"),
		"AcroForm": doc.add(acroForm),
	}
	doc.trailer["Root"] = doc.add(catalog)
	return &fixture{doc: doc, acroForm: acroForm}
}

// top registers dict as a top level field.
func (fx *fixture) top(dict types.Dict) types.IndirectRef {
	ref := fx.doc.add(dict)
	fx.acroForm["Fields"] = append(fx.acroForm["Fields"].(types.Array), ref)
	return ref
}

// kid adds dict under parent, linking Kids and Parent.
func (fx *fixture) kid(parent types.IndirectRef, dict types.Dict) types.IndirectRef {
	dict["Parent"] = parent
	ref := fx.doc.add(dict)
	p := fx.doc.dict(parent)
	kids, _ := p["Kids"].(types.Array)
	p["Kids"] = append(kids, ref)
	return ref
}

func (fx *fixture) form(t *testing.T) *Form {
	t.Helper()
	f, err := New(fx.doc)
	require.NoError(t, err)
	return f
}

func lit(s string) types.StringLiteral {
	l, err := newStringLiteral([]byte(s))
	if err != nil {
		panic(err)
	}
	return l
}

func utf16Lit(s string) types.StringLiteral {
	l, err := newStringLiteral(EncodeUTF16(s))
	if err != nil {
		panic(err)
	}
	return l
}

func appearance(states ...string) types.Dict {
	n := types.Dict{}
	for _, s := range states {
		n[s] = types.Dict{}
	}
	return types.Dict{"N": n}
}

func textField(name, value string) types.Dict {
	d := types.Dict{
		"FT": types.Name("Tx"),
		"T":  lit(name),
		"AP": appearance(),
	}
	if value != "" {
		d["V"] = utf16Lit(value)
	}
	return d
}

func checkBox(name, value string) types.Dict {
	return types.Dict{
		"FT": types.Name("Btn"),
		"T":  lit(name),
		"V":  types.Name(value),
		"AS": types.Name(value),
		"AP": appearance("Yes", "Off"),
	}
}

func radioGroup(fx *fixture, name string, states ...string) types.IndirectRef {
	ref := fx.top(types.Dict{
		"FT": types.Name("Btn"),
		"Ff": types.Integer(int(ButtonRadio | ButtonNoToggleToOff)),
		"T":  lit(name),
	})
	for _, s := range states {
		fx.kid(ref, types.Dict{
			"AS": types.Name("Off"),
			"AP": appearance(s, "Off"),
		})
	}
	return ref
}

func choiceField(name string, flags FieldFlags, options ...string) types.Dict {
	opt := types.Array{}
	for _, o := range options {
		opt = append(opt, lit(o))
	}
	return types.Dict{
		"FT":  types.Name("Ch"),
		"Ff":  types.Integer(int(flags)),
		"T":   lit(name),
		"Opt": opt,
	}
}
