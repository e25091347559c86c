package cursor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
)

type M = data.M

type decoderMock struct{ mock.Mock }

// Decode implements domain.Decoder.
func (d *decoderMock) Decode(src any, tgt any) error {
	return d.Called(src, tgt).Error(0)
}

type CursorTestSuite struct {
	suite.Suite
	ctx context.Context
	cur domain.Cursor
}

var docs = []domain.Document{
	M{"id": "1", "name": "Alice"},
	M{"id": "2", "name": "Bob"},
}

// Iterates documents in order.
func (s *CursorTestSuite) TestIteration() {
	var names []string
	for s.cur.Next() {
		var m M
		s.Require().NoError(s.cur.Scan(s.ctx, &m))
		names = append(names, m.Get("name").(string))
	}
	s.Equal([]string{"Alice", "Bob"}, names)
	s.NoError(s.cur.Err())
}

// Can decode the current document into a struct.
func (s *CursorTestSuite) TestScanStruct() {
	type user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	s.Require().True(s.cur.Next())
	var u user
	s.NoError(s.cur.Scan(s.ctx, &u))
	s.Equal(user{ID: "1", Name: "Alice"}, u)
}

// Scanning into a slice drains every remaining document.
func (s *CursorTestSuite) TestScanSlice() {
	var all []M
	s.NoError(s.cur.Scan(s.ctx, &all))
	s.Len(all, 2)

	s.False(s.cur.Next())
}

// A slice scan after partial iteration only takes what is left.
func (s *CursorTestSuite) TestScanSliceRemainder() {
	s.Require().True(s.cur.Next())

	var rest []M
	s.NoError(s.cur.Scan(s.ctx, &rest))
	s.Len(rest, 2)
}

// Scan must be preceded by Next.
func (s *CursorTestSuite) TestScanBeforeNext() {
	var m M
	s.ErrorIs(s.cur.Scan(s.ctx, &m), domain.ErrScanBeforeNext)
}

// Scanning past the end finds nothing.
func (s *CursorTestSuite) TestScanPastEnd() {
	for s.cur.Next() {
	}
	var m M
	s.ErrorIs(s.cur.Scan(s.ctx, &m), domain.ErrNotFound)
}

// A nil target cannot receive data.
func (s *CursorTestSuite) TestNilTarget() {
	s.cur.Next()
	s.ErrorIs(s.cur.Scan(s.ctx, nil), domain.ErrTargetNil)
}

// A closed cursor stops iterating and refuses scans.
func (s *CursorTestSuite) TestClosed() {
	s.NoError(s.cur.Close())
	s.False(s.cur.Next())

	var m M
	s.ErrorIs(s.cur.Scan(s.ctx, &m), domain.ErrCursorClosed)
}

// Scan honors context cancellation.
func (s *CursorTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.cur.Next()
	var m M
	s.ErrorIs(s.cur.Scan(ctx, &m), context.Canceled)
}

// Decoding failures surface on Scan and stay available through Err.
func (s *CursorTestSuite) TestDecodeFailure() {
	dec := new(decoderMock)
	dec.On("Decode", mock.Anything, mock.Anything).
		Return(fmt.Errorf("error")).
		Once()

	cur, err := NewCursor(s.ctx, docs, domain.WithCursorDecoder(dec))
	s.Require().NoError(err)

	cur.Next()
	var u struct{ Name string }
	s.Error(cur.Scan(s.ctx, &u))
	s.Error(cur.Err())
	dec.AssertExpectations(s.T())
}

func (s *CursorTestSuite) SetupTest() {
	s.ctx = context.Background()
	cur, err := NewCursor(s.ctx, docs)
	s.Require().NoError(err)
	s.cur = cur
}

func TestCursorTestSuite(t *testing.T) {
	suite.Run(t, new(CursorTestSuite))
}
