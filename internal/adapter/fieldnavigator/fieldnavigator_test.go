package fieldnavigator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
)

type M = data.M

type FieldNavigatorTestSuite struct {
	suite.Suite
	fn domain.FieldNavigator
}

// Dotted field names split into path segments.
func (s *FieldNavigatorTestSuite) TestGetAddress() {
	addr, err := s.fn.GetAddress("a.b.c")
	s.NoError(err)
	s.Equal([]string{"a", "b", "c"}, addr)

	addr, err = s.fn.GetAddress("plain")
	s.NoError(err)
	s.Equal([]string{"plain"}, addr)
}

// Can read nested fields through documents.
func (s *FieldNavigatorTestSuite) TestGetFieldNested() {
	doc := M{"a": M{"b": M{"c": 42}}}

	gs, defined := s.fn.GetField(doc, "a", "b", "c")
	s.True(defined)
	v, ok := gs.Get()
	s.True(ok)
	s.Equal(42, v)
}

// Missing keys and non-document intermediates resolve to undefined instead of
// failing.
func (s *FieldNavigatorTestSuite) TestGetFieldUndefined() {
	doc := M{"a": M{"b": 5}, "s": "text"}

	_, defined := s.fn.GetField(doc, "a", "x")
	s.False(defined)

	gs, defined := s.fn.GetField(doc, "s", "deep")
	s.False(defined)
	v, ok := gs.Get()
	s.False(ok)
	s.Nil(v)

	_, defined = s.fn.GetField("not a document", "a")
	s.False(defined)
}

// An explicitly nil value still counts as defined.
func (s *FieldNavigatorTestSuite) TestGetFieldExplicitNil() {
	gs, defined := s.fn.GetField(M{"a": nil}, "a")
	s.True(defined)
	v, ok := gs.Get()
	s.True(ok)
	s.Nil(v)
}

// The returned GetSetter writes through to the document.
func (s *FieldNavigatorTestSuite) TestGetFieldSetUnset() {
	doc := M{"a": M{"b": 1}}

	gs, _ := s.fn.GetField(doc, "a", "b")
	gs.Set(2)
	s.Equal(2, doc.D("a").Get("b"))

	gs.Unset()
	s.False(doc.D("a").Has("b"))
}

// EnsureField creates missing intermediate documents.
func (s *FieldNavigatorTestSuite) TestEnsureFieldCreatesIntermediates() {
	doc := M{}

	gs, err := s.fn.EnsureField(doc, "profile", "address", "city")
	s.NoError(err)
	gs.Set("Seoul")

	s.Equal("Seoul", doc.D("profile").D("address").Get("city"))
}

// EnsureField reuses existing intermediate documents.
func (s *FieldNavigatorTestSuite) TestEnsureFieldKeepsSiblings() {
	doc := M{"profile": M{"zipcode": "04524"}}

	gs, err := s.fn.EnsureField(doc, "profile", "city")
	s.NoError(err)
	gs.Set("Seoul")

	s.Equal("04524", doc.D("profile").Get("zipcode"))
	s.Equal("Seoul", doc.D("profile").Get("city"))
}

// A non-document value occupying an intermediate segment is a conflict.
func (s *FieldNavigatorTestSuite) TestEnsureFieldConflict() {
	doc := M{"a": 5}

	_, err := s.fn.EnsureField(doc, "a", "b")
	var pathErr *domain.ErrPathConflict
	s.ErrorAs(err, &pathErr)
	s.Equal("a", pathErr.Segment)
}

// EnsureField refuses non-document targets.
func (s *FieldNavigatorTestSuite) TestEnsureFieldNonDocument() {
	_, err := s.fn.EnsureField("nope", "a")
	var pathErr *domain.ErrPathConflict
	s.True(errors.As(err, &pathErr))
}

// The undefined GetSetter ignores writes.
func (s *FieldNavigatorTestSuite) TestEmptyGetSetter() {
	gs := NewGetSetterEmpty()
	gs.Set(1)
	gs.Unset()
	v, ok := gs.Get()
	s.Nil(v)
	s.False(ok)
}

func (s *FieldNavigatorTestSuite) SetupTest() {
	s.fn = NewFieldNavigator(data.NewDocument)
}

func TestFieldNavigatorTestSuite(t *testing.T) {
	suite.Run(t, new(FieldNavigatorTestSuite))
}
