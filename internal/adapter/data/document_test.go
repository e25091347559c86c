package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

type A = []any

type DocumentTestSuite struct {
	suite.Suite
}

// Nil parses to an empty document.
func (s *DocumentTestSuite) TestNil() {
	doc, err := NewDocument(nil)
	s.NoError(err)
	s.Equal(0, doc.Len())

	var p *struct{ Name string }
	doc, err = NewDocument(p)
	s.NoError(err)
	s.Equal(0, doc.Len())
}

// Maps parse keeping nested objects as documents.
func (s *DocumentTestSuite) TestMaps() {
	doc, err := NewDocument(map[string]any{
		"name": "Alice",
		"profile": map[string]any{
			"city": "Seoul",
		},
		"tags": A{"a", map[string]any{"k": "v"}},
	})
	s.NoError(err)

	s.Equal("Alice", doc.Get("name"))
	s.Equal("Seoul", doc.D("profile").Get("city"))

	tags, ok := doc.Get("tags").(A)
	s.Require().True(ok)
	s.Equal("a", tags[0])
	s.IsType(M{}, tags[1])
}

// Typed maps are accepted as documents.
func (s *DocumentTestSuite) TestTypedMaps() {
	doc, err := NewDocument(map[string]int{"a": 1})
	s.NoError(err)
	s.Equal(1, doc.Get("a"))

	doc, err = NewDocument(map[string]string{"b": "x"})
	s.NoError(err)
	s.Equal("x", doc.Get("b"))
}

// Structs parse honoring the json struct tags.
func (s *DocumentTestSuite) TestStructTags() {
	type User struct {
		ID      string `json:"id"`
		Name    string
		Email   string   `json:"email,omitzero"`
		Tags    []string `json:"tags,omitempty"`
		Secret  string   `json:"-"`
		private string
	}

	doc, err := NewDocument(User{
		ID:      "1",
		Name:    "Alice",
		Secret:  "hidden",
		private: "hidden",
	})
	s.NoError(err)

	s.Equal("1", doc.Get("id"))
	s.Equal("Alice", doc.Get("Name"))
	s.False(doc.Has("email"), "zero value dropped by omitzero")
	s.False(doc.Has("tags"), "nil slice dropped by omitempty")
	s.False(doc.Has("Secret"))
	s.False(doc.Has("private"))
	s.Equal(2, doc.Len())
}

// Nested structs and slices convert to documents and arrays.
func (s *DocumentTestSuite) TestNestedStructs() {
	type Address struct {
		City string `json:"city"`
	}
	type User struct {
		Name    string    `json:"name"`
		Addr    Address   `json:"address"`
		Scores  []float64 `json:"scores"`
		Created time.Time `json:"created"`
	}

	now := time.Now()
	doc, err := NewDocument(User{
		Name:    "Alice",
		Addr:    Address{City: "Seoul"},
		Scores:  []float64{1.5, 2},
		Created: now,
	})
	s.NoError(err)

	s.Equal("Seoul", doc.D("address").Get("city"))
	s.Equal(A{1.5, 2.0}, doc.Get("scores"))
	s.Equal(now, doc.Get("created"), "time values pass through unconverted")
}

// Existing documents are accepted as they are.
func (s *DocumentTestSuite) TestDocumentInput() {
	src := M{"a": 1}
	doc, err := NewDocument(src)
	s.NoError(err)
	s.Equal(src, doc)
}

// Scalars are not documents.
func (s *DocumentTestSuite) TestScalarInput() {
	_, err := NewDocument(42)
	s.Error(err)
	_, err = NewDocument("text")
	s.Error(err)
}

// The identifier lives under the "id" key.
func (s *DocumentTestSuite) TestID() {
	doc, err := NewDocument(M{"id": "1", "name": "Alice"})
	s.NoError(err)
	s.Equal("1", doc.ID())

	doc, err = NewDocument(M{"name": "Alice"})
	s.NoError(err)
	s.Nil(doc.ID())
}

// Documents support basic field manipulation.
func (s *DocumentTestSuite) TestFieldManipulation() {
	doc := M{}
	doc.Set("a", 1)
	s.True(doc.Has("a"))
	s.Equal(1, doc.Get("a"))
	s.Equal(1, doc.Len())

	doc.Unset("a")
	s.False(doc.Has("a"))
	s.Nil(doc.Get("a"))
}

// Unmarshaling keeps every nested object a document so dotted-path navigation
// works at any depth.
func (s *DocumentTestSuite) TestUnmarshalJSON() {
	var doc M
	err := doc.UnmarshalJSON([]byte(`{
		"id": "1",
		"age": 30,
		"profile": {"address": {"city": "Seoul"}},
		"tags": [{"k": "v"}, "plain"]
	}`))
	s.NoError(err)

	s.Equal("1", doc.ID())
	s.Equal(float64(30), doc.Get("age"))
	s.Equal("Seoul", doc.D("profile").D("address").Get("city"))

	tags, ok := doc.Get("tags").(A)
	s.Require().True(ok)
	_, isDoc := tags[0].(domain.Document)
	s.True(isDoc)
	s.Equal("plain", tags[1])
}

// Unmarshaling rejects values that are not JSON objects.
func (s *DocumentTestSuite) TestUnmarshalJSONNonObject() {
	var doc M
	s.Error(doc.UnmarshalJSON([]byte(`[1, 2]`)))
	s.Error(doc.UnmarshalJSON([]byte(`{broken`)))
}

func TestDocumentTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentTestSuite))
}
