// Package comparer contains the default [domain.Comparer] implementation.
package comparer

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

// Comparer implements domain.Comparer. The total order is
// nil < numbers < strings < booleans < arrays < documents. Numbers of
// different Go types are compared through big.Float so an int condition still
// equals the float64 a JSON round-trip produces.
type Comparer struct{}

// NewComparer returns a new implementation of domain.Comparer.
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Compare implements domain.Comparer.
func (c *Comparer) Compare(a any, b any) (int, error) {
	if r, ok := c.checkNil(a, b); ok {
		return r, nil
	}
	if r, ok := c.checkNumbers(a, b); ok {
		return r, nil
	}
	if r, ok := c.checkStrings(a, b); ok {
		return r, nil
	}
	if r, ok := c.checkBooleans(a, b); ok {
		return r, nil
	}
	if r, ok, err := c.checkArrays(a, b); err != nil || ok {
		return r, err
	}
	if r, ok, err := c.checkDocs(a, b); err != nil || ok {
		return r, err
	}
	return 0, fmt.Errorf("cannot compare unexpected types %T and %T", a, b)
}

func (c *Comparer) checkNil(a, b any) (int, bool) {
	if a == nil {
		if b == nil {
			return 0, true
		}
		return -1, true
	}
	if b == nil {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkNumbers(a, b any) (int, bool) {
	an, aok := c.asNumber(a)
	bn, bok := c.asNumber(b)
	if aok && bok {
		return an.Cmp(bn), true
	}
	if aok {
		return -1, true
	}
	if bok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkStrings(a, b any) (int, bool) {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return cmp.Compare(as, bs), true
	}
	if aok {
		return -1, true
	}
	if bok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkBooleans(a, b any) (int, bool) {
	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		r := 0
		if ab != bb {
			r = -1
			if ab {
				r = 1
			}
		}
		return r, true
	}
	if aok {
		return -1, true
	}
	if bok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkArrays(a, b any) (int, bool, error) {
	aa, aok := a.([]any)
	ba, bok := b.([]any)
	if aok && bok {
		r, err := c.compareArrays(aa, ba)
		return r, true, err
	}
	if aok {
		return -1, true, nil
	}
	if bok {
		return 1, true, nil
	}
	return 0, false, nil
}

func (c *Comparer) compareArrays(a, b []any) (int, error) {
	for i := range min(len(a), len(b)) {
		r, err := c.Compare(a[i], b[i])
		if err != nil || r != 0 {
			return r, err
		}
	}
	return cmp.Compare(len(a), len(b)), nil
}

func (c *Comparer) checkDocs(a, b any) (int, bool, error) {
	ad, aok := a.(domain.Document)
	bd, bok := b.(domain.Document)
	if aok && bok {
		r, err := c.compareDocs(ad, bd)
		return r, true, err
	}
	if aok {
		return 1, true, nil
	}
	if bok {
		return -1, true, nil
	}
	return 0, false, nil
}

// compareDocs walks both key sets in sorted order. Two documents are equal
// only when they hold the same keys with equal values.
func (c *Comparer) compareDocs(a, b domain.Document) (int, error) {
	aKeys := slices.Sorted(a.Keys())
	bKeys := slices.Sorted(b.Keys())

	for i := range min(len(aKeys), len(bKeys)) {
		if r := cmp.Compare(aKeys[i], bKeys[i]); r != 0 {
			return r, nil
		}
		r, err := c.Compare(a.Get(aKeys[i]), b.Get(bKeys[i]))
		if err != nil || r != 0 {
			return r, err
		}
	}
	return cmp.Compare(a.Len(), b.Len()), nil
}

func (c *Comparer) asNumber(v any) (*big.Float, bool) {
	r := big.NewFloat(0)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		r.SetFloat64(float64(n))
	case float64:
		r.SetFloat64(n)
	default:
		return nil, false
	}
	return r, true
}
