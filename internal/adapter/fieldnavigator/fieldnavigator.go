// Package fieldnavigator contains the default [domain.FieldNavigator]
// implementation, resolving dot-notation paths through nested documents.
package fieldnavigator

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct {
	docFac domain.DocumentFactory
}

// NewFieldNavigator returns a new instance of [domain.FieldNavigator].
func NewFieldNavigator(docFac domain.DocumentFactory) domain.FieldNavigator {
	return &FieldNavigator{
		docFac: docFac,
	}
}

// GetAddress implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetAddress(field string) ([]string, error) {
	return strings.Split(field, "."), nil
}

// GetField implements [domain.FieldNavigator]. Traversal only descends
// through documents: any missing key or non-document intermediate yields an
// undefined GetSetter instead of failing.
func (fn *FieldNavigator) GetField(obj any, fieldParts ...string) (domain.GetSetter, bool) {
	doc, ok := obj.(domain.Document)
	if !ok || len(fieldParts) == 0 {
		return NewGetSetterEmpty(), false
	}

	last := len(fieldParts) - 1
	for _, part := range fieldParts[:last] {
		next, ok := doc.Get(part).(domain.Document)
		if !ok {
			return NewGetSetterEmpty(), false
		}
		doc = next
	}

	return NewGetSetterWithDoc(doc, fieldParts[last]), doc.Has(fieldParts[last])
}

// EnsureField implements [domain.FieldNavigator]. Missing intermediate
// segments are created as empty documents; an existing non-document value in
// the way is an [domain.ErrPathConflict].
func (fn *FieldNavigator) EnsureField(obj any, fieldParts ...string) (domain.GetSetter, error) {
	doc, ok := obj.(domain.Document)
	if !ok || len(fieldParts) == 0 {
		return nil, &domain.ErrPathConflict{Path: fieldParts}
	}

	last := len(fieldParts) - 1
	for _, part := range fieldParts[:last] {
		if !doc.Has(part) {
			newDoc, err := fn.docFac(nil)
			if err != nil {
				return nil, err
			}
			doc.Set(part, newDoc)
		}
		next, ok := doc.Get(part).(domain.Document)
		if !ok {
			return nil, &domain.ErrPathConflict{Path: fieldParts, Segment: part}
		}
		doc = next
	}

	return NewGetSetterWithDoc(doc, fieldParts[last]), nil
}
