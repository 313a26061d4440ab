package form

import (
	"log"
	"slices"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// requireDict resolves dict[key] into a dictionary. When mustRef is set the
// entry has to be an indirect reference.
func requireDict(doc Document, dict types.Dict, key string, mustRef bool) (types.Dict, error) {
	obj, found := dict.Find(key)
	if !found || obj == nil {
		return nil, keyNotFound(key)
	}

	ref, isRef := refOf(obj)
	if !isRef && mustRef {
		return nil, &LoadError{Err: ErrNotAReference, Key: key}
	}
	if isRef {
		resolved, err := doc.Resolve(ref)
		if err != nil {
			return nil, noSuchReference(ref, err)
		}
		obj = resolved
	}

	d, ok := obj.(types.Dict)
	if !ok {
		return nil, unexpectedType(key)
	}
	return d, nil
}

// discover walks the AcroForm field tree breadth first and indexes every
// dictionary carrying FT under its full name. It returns the index and the
// AcroForm dictionary.
func discover(doc Document, logger *log.Logger) (map[string]types.IndirectRef, types.Dict, error) {
	catalog, err := requireDict(doc, doc.Trailer(), "Root", true)
	if err != nil {
		return nil, nil, err
	}

	acroForm, err := requireDict(doc, catalog, "AcroForm", false)
	if err != nil {
		return nil, nil, err
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found || fieldsObj == nil {
		return nil, nil, keyNotFound("Fields")
	}
	if ref, ok := refOf(fieldsObj); ok {
		if fieldsObj, err = doc.Resolve(ref); err != nil {
			return nil, nil, noSuchReference(ref, err)
		}
	}
	fields, ok := fieldsObj.(types.Array)
	if !ok {
		return nil, nil, unexpectedType("Fields")
	}

	index := make(map[string]types.IndirectRef)
	visited := make(map[int]bool)
	queue := slices.Clone(fields)

	for len(queue) > 0 {
		obj := queue[0]
		queue = queue[1:]

		ref, ok := refOf(obj)
		if !ok {
			return nil, nil, &LoadError{Err: ErrNotAReference}
		}
		if visited[ref.ObjectNumber.Value()] {
			continue
		}
		visited[ref.ObjectNumber.Value()] = true

		resolved, err := doc.Resolve(ref)
		if err != nil {
			return nil, nil, noSuchReference(ref, err)
		}
		dict, ok := resolved.(types.Dict)
		if !ok {
			continue
		}

		if _, found := dict.Find("FT"); found {
			if name, ok := fullName(doc, ref); ok {
				index[name] = ref
			} else {
				logger.Printf("form: skipping field object %d: undecodable name", ref.ObjectNumber.Value())
			}
		}

		if kids, ok := lookupArray(doc, dict, "Kids"); ok {
			queue = append(queue, kids...)
		}
	}

	return index, acroForm, nil
}

// fullName joins the partial names of the field at ref and its ancestors,
// outermost first. Ancestors without T contribute nothing. It reports false
// when the field itself has no T, a segment cannot be decoded, or the Parent
// chain loops.
func fullName(doc Document, ref types.IndirectRef) (string, bool) {
	obj, err := doc.Resolve(ref)
	if err != nil {
		return "", false
	}
	node, ok := obj.(types.Dict)
	if !ok {
		return "", false
	}
	if _, found := node.Find("T"); !found {
		return "", false
	}

	seen := map[int]bool{ref.ObjectNumber.Value(): true}
	var segments []string
	for {
		if t, found := lookup(doc, node, "T"); found {
			segment, ok := textOf(t)
			if !ok {
				return "", false
			}
			segments = append(segments, segment)
		}

		parentObj, found := node.Find("Parent")
		if !found || parentObj == nil {
			break
		}
		if parentRef, isRef := refOf(parentObj); isRef {
			if seen[parentRef.ObjectNumber.Value()] {
				return "", false
			}
			seen[parentRef.ObjectNumber.Value()] = true
		}
		parentObj, err := resolve(doc, parentObj)
		if err != nil {
			return "", false
		}
		parent, ok := parentObj.(types.Dict)
		if !ok {
			return "", false
		}
		node = parent
	}

	slices.Reverse(segments)
	return strings.Join(segments, "."), true
}
