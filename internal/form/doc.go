// Package form locates the fillable fields of a PDF AcroForm, classifies
// them, decodes their current values and mutates them in place.
//
// A Form is built once over a Document. Field names are the dot-joined
// partial names (T entries) of each field and its Parent chain, outermost
// first. Field types and states are recomputed from the live dictionaries on
// every query, so mutations are visible immediately.
//
// A Form is not safe for concurrent use.
package form
