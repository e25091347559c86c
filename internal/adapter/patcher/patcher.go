// Package patcher contains the default [domain.Patcher] implementation.
package patcher

import (
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/fieldnavigator"
)

// Patcher implements [domain.Patcher]. Each top-level patch key is resolved
// independently as a dotted path and assigned into the target; there is no
// deep merge beyond what per-key assignment achieves, so arrays and object
// values set through a single key replace the destination wholesale.
type Patcher struct {
	fieldNavigator domain.FieldNavigator
}

// NewPatcher returns a new implementation of [domain.Patcher].
func NewPatcher(fn domain.FieldNavigator) domain.Patcher {
	if fn == nil {
		fn = fieldnavigator.NewFieldNavigator(data.NewDocument)
	}
	return &Patcher{fieldNavigator: fn}
}

// MergePatch implements [domain.Patcher].
func (p *Patcher) MergePatch(target domain.Document, patch domain.Document) error {
	for key, value := range patch.Iter() {
		addr, err := p.fieldNavigator.GetAddress(key)
		if err != nil {
			return err
		}
		gs, err := p.fieldNavigator.EnsureField(target, addr...)
		if err != nil {
			return err
		}
		gs.Set(value)
	}
	return nil
}
