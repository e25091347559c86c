package idgenerator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("error") }

type IDGeneratorTestSuite struct {
	suite.Suite
}

// Generated ids are valid UUID strings and distinct.
func (s *IDGeneratorTestSuite) TestGenerateID() {
	gen := NewIDGenerator()

	a, err := gen.GenerateID()
	s.NoError(err)
	b, err := gen.GenerateID()
	s.NoError(err)

	s.NotEqual(a, b)
	_, err = uuid.Parse(a)
	s.NoError(err)
}

// The randomness source can be replaced.
func (s *IDGeneratorTestSuite) TestCustomReader() {
	gen := NewIDGenerator(domain.WithIDGeneratorReader(
		bytes.NewReader(make([]byte, 16)),
	))

	id, err := gen.GenerateID()
	s.NoError(err)
	s.Len(id, 36)
}

// A failing randomness source fails id generation.
func (s *IDGeneratorTestSuite) TestFailingReader() {
	gen := NewIDGenerator(domain.WithIDGeneratorReader(errReader{}))

	_, err := gen.GenerateID()
	s.Error(err)
}

func TestIDGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(IDGeneratorTestSuite))
}
