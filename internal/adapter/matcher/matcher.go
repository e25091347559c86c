// Package matcher contains the default [domain.Matcher] implementation:
// structural query-by-example matching over documents.
package matcher

import (
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/fieldnavigator"
)

// Matcher implements [domain.Matcher].
//
// A non-document condition requires whole-value equality with the candidate.
// A document condition matches a document candidate when every condition key,
// resolved as a dotted path against the candidate, equals the condition's
// value; when both sides of a key are documents the match recurses. Keys
// absent from the condition are wildcards, so the empty condition matches
// every document.
type Matcher struct {
	documentFactory domain.DocumentFactory
	comparer        domain.Comparer
	fieldNavigator  domain.FieldNavigator
}

// NewMatcher returns a new implementation of domain.Matcher.
func NewMatcher(options ...domain.MatcherOption) domain.Matcher {
	docFac := data.NewDocument
	opts := domain.MatcherOptions{
		DocumentFactory: docFac,
		Comparer:        comparer.NewComparer(),
		FieldNavigator:  fieldnavigator.NewFieldNavigator(docFac),
	}
	for _, option := range options {
		option(&opts)
	}

	return &Matcher{
		documentFactory: opts.DocumentFactory,
		comparer:        opts.Comparer,
		fieldNavigator:  opts.FieldNavigator,
	}
}

// Match implements [domain.Matcher].
func (m *Matcher) Match(val any, qry any) (bool, error) {
	query, ok := qry.(domain.Document)
	if !ok {
		r, err := m.comparer.Compare(val, qry)
		if err != nil {
			return false, err
		}
		return r == 0, nil
	}

	doc, ok := val.(domain.Document)
	if !ok {
		// no non-document value can match a document condition
		return false, nil
	}

	return m.matchDocs(doc, query)
}

func (m *Matcher) matchDocs(obj, qry domain.Document) (bool, error) {
	for field, want := range qry.Iter() {
		matches, err := m.matchField(obj, field, want)
		if err != nil || !matches {
			return false, err
		}
	}
	return true, nil
}

func (m *Matcher) matchField(obj domain.Document, field string, want any) (bool, error) {
	addr, err := m.fieldNavigator.GetAddress(field)
	if err != nil {
		return false, err
	}

	gs, _ := m.fieldNavigator.GetField(obj, addr...)

	// an unresolved path folds to nil, so a null condition value matches
	// records lacking the field entirely
	got, _ := gs.Get()

	gotDoc, gotIsDoc := got.(domain.Document)
	wantDoc, wantIsDoc := want.(domain.Document)
	if gotIsDoc && wantIsDoc {
		return m.matchDocs(gotDoc, wantDoc)
	}

	r, err := m.comparer.Compare(got, want)
	if err != nil {
		return false, err
	}
	return r == 0, nil
}
