package serializer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
)

type M = data.M

type SerializerTestSuite struct {
	suite.Suite
	ctx context.Context
	srl domain.Serializer
}

// Records are written as pretty-printed JSON with sorted keys.
func (s *SerializerTestSuite) TestPrettyPrint() {
	b, err := s.srl.Serialize(s.ctx, M{"name": "Alice", "id": "1"})
	s.NoError(err)
	s.Equal("{\n  \"id\": \"1\",\n  \"name\": \"Alice\"\n}", string(b))
}

// Nested values indent one level per depth.
func (s *SerializerTestSuite) TestNestedIndentation() {
	b, err := s.srl.Serialize(s.ctx, M{"profile": M{"city": "Seoul"}})
	s.NoError(err)
	s.Equal("{\n  \"profile\": {\n    \"city\": \"Seoul\"\n  }\n}", string(b))
}

// Structs serialize honoring their json tags.
func (s *SerializerTestSuite) TestStructInput() {
	type User struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	b, err := s.srl.Serialize(s.ctx, User{ID: "1", Name: "Alice"})
	s.NoError(err)
	s.JSONEq(`{"id": "1", "name": "Alice"}`, string(b))
}

// Field names cannot contain a '.', which would be unreachable through
// dotted-path resolution once written.
func (s *SerializerTestSuite) TestDottedKeyRejected() {
	_, err := s.srl.Serialize(s.ctx, M{"a.b": 1})
	s.Error(err)

	_, err = s.srl.Serialize(s.ctx, M{"a": M{"b.c": 1}})
	s.Error(err)
}

// Serialization honors context cancellation.
func (s *SerializerTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.srl.Serialize(ctx, M{"a": 1})
	s.ErrorIs(err, context.Canceled)
}

func (s *SerializerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.srl = NewSerializer()
}

func TestSerializerTestSuite(t *testing.T) {
	suite.Run(t, new(SerializerTestSuite))
}
