package comparer

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
)

type M = data.M

type A = []any

type ComparerTestSuite struct {
	suite.Suite
	cmp domain.Comparer
}

// Nil is equal to itself and smaller than everything else.
func (s *ComparerTestSuite) TestNil() {
	s.Compares(0, res(s.cmp.Compare(nil, nil)))
	s.Compares(-1, res(s.cmp.Compare(nil, 0)))
	s.Compares(-1, res(s.cmp.Compare(nil, "")))
	s.Compares(-1, res(s.cmp.Compare(nil, false)))
	s.Compares(1, res(s.cmp.Compare("a", nil)))
}

// Numbers of different Go types compare by value.
func (s *ComparerTestSuite) TestCrossTypeNumbers() {
	s.Compares(0, res(s.cmp.Compare(1, 1.0)))
	s.Compares(0, res(s.cmp.Compare(int64(30), float64(30))))
	s.Compares(0, res(s.cmp.Compare(uint8(5), 5)))
	s.Compares(-1, res(s.cmp.Compare(2, 2.5)))
	s.Compares(1, res(s.cmp.Compare(3.14, 3)))
}

// Strings compare lexicographically.
func (s *ComparerTestSuite) TestStrings() {
	s.Compares(0, res(s.cmp.Compare("abc", "abc")))
	s.Compares(-1, res(s.cmp.Compare("abc", "abd")))
	s.Compares(1, res(s.cmp.Compare("b", "a")))
}

// False sorts before true.
func (s *ComparerTestSuite) TestBooleans() {
	s.Compares(0, res(s.cmp.Compare(true, true)))
	s.Compares(0, res(s.cmp.Compare(false, false)))
	s.Compares(-1, res(s.cmp.Compare(false, true)))
	s.Compares(1, res(s.cmp.Compare(true, false)))
}

// Arrays compare element-wise, then by length.
func (s *ComparerTestSuite) TestArrays() {
	s.Compares(0, res(s.cmp.Compare(A{1, "a"}, A{1.0, "a"})))
	s.Compares(-1, res(s.cmp.Compare(A{1, 2}, A{1, 3})))
	s.Compares(-1, res(s.cmp.Compare(A{1}, A{1, 0})))
	s.Compares(1, res(s.cmp.Compare(A{2}, A{1, 9})))
}

// Documents are equal only when they hold the same keys with equal values.
func (s *ComparerTestSuite) TestDocuments() {
	s.Compares(0, res(s.cmp.Compare(M{"a": 1, "b": "x"}, M{"b": "x", "a": 1.0})))
	s.Compares(-1, res(s.cmp.Compare(M{"a": 1}, M{"a": 2})))
	s.Compares(-1, res(s.cmp.Compare(M{"a": 1}, M{"a": 1, "b": 2})))
	s.NotCompares(0, res(s.cmp.Compare(M{"a": 1}, M{"b": 1})))
}

// Values of different classes order as
// nil < numbers < strings < booleans < arrays < documents.
func (s *ComparerTestSuite) TestTypeClassOrder() {
	s.Compares(-1, res(s.cmp.Compare(42, "42")))
	s.Compares(-1, res(s.cmp.Compare("true", true)))
	s.Compares(-1, res(s.cmp.Compare(true, A{})))
	s.Compares(-1, res(s.cmp.Compare(A{}, M{})))
	s.Compares(1, res(s.cmp.Compare(M{}, "z")))
}

// Unsupported types cannot be compared.
func (s *ComparerTestSuite) TestUnsupportedTypes() {
	_, err := s.cmp.Compare(make(chan int), 1)
	s.Error(err)
	_, err = s.cmp.Compare(A{make(chan int)}, A{1})
	s.Error(err)
}

type compareResult struct {
	got int
	err error
}

func res(got int, err error) compareResult {
	return compareResult{got: got, err: err}
}

func (s *ComparerTestSuite) Compares(want int, r compareResult) {
	s.NoError(r.err)
	s.Equal(want, r.got)
}

func (s *ComparerTestSuite) NotCompares(want int, r compareResult) {
	s.NoError(r.err)
	s.NotEqual(want, r.got)
}

func (s *ComparerTestSuite) SetupTest() {
	s.cmp = NewComparer()
}

func TestComparerTestSuite(t *testing.T) {
	suite.Run(t, new(ComparerTestSuite))
}
