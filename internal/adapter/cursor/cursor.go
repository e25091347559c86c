// Package cursor contains the default [domain.Cursor] implementation.
package cursor

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/decoder"
)

// Cursor implements domain.Cursor over a fixed set of documents.
type Cursor struct {
	mu        sync.Mutex
	data      []domain.Document
	dec       domain.Decoder
	pos       int
	started   bool
	closed    bool
	storedErr error
}

// NewCursor returns a new implementation of Cursor.
func NewCursor(ctx context.Context, dt []domain.Document, options ...domain.CursorOption) (domain.Cursor, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	opts := domain.CursorOptions{
		Decoder: decoder.NewDecoder(),
	}
	for _, option := range options {
		option(&opts)
	}

	return &Cursor{
		data: dt,
		dec:  opts.Decoder,
	}, nil
}

// Next implements domain.Cursor.
func (c *Cursor) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.started {
		c.pos++
	}
	c.started = true
	return c.pos < len(c.data)
}

// Scan implements domain.Cursor. When target points at a slice, every
// document from the current position on is decoded into it; otherwise the
// current document is decoded into target.
func (c *Cursor) Scan(ctx context.Context, target any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if target == nil {
		return domain.ErrTargetNil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrCursorClosed
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Slice {
		return c.scanSlice(rv.Elem())
	}

	if !c.started {
		return domain.ErrScanBeforeNext
	}
	if c.pos >= len(c.data) {
		return domain.ErrNotFound
	}
	if err := c.decode(c.data[c.pos], target); err != nil {
		c.storedErr = err
		return err
	}
	return nil
}

func (c *Cursor) scanSlice(slice reflect.Value) error {
	start := 0
	if c.started {
		start = c.pos
	}

	elemType := slice.Type().Elem()
	res := reflect.MakeSlice(slice.Type(), 0, len(c.data)-start)
	for _, doc := range c.data[start:] {
		elem := reflect.New(elemType)
		if err := c.decode(doc, elem.Interface()); err != nil {
			c.storedErr = err
			return err
		}
		res = reflect.Append(res, elem.Elem())
	}
	slice.Set(res)
	c.pos = len(c.data)
	c.started = true
	return nil
}

func (c *Cursor) decode(doc domain.Document, target any) error {
	switch p := target.(type) {
	case *domain.Document:
		*p = doc
		return nil
	case *map[string]any:
		m := make(map[string]any, doc.Len())
		for k, v := range doc.Iter() {
			m[k] = v
		}
		*p = m
		return nil
	}
	if err := c.dec.Decode(doc, target); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return nil
}

// Err implements domain.Cursor.
func (c *Cursor) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storedErr
}

// Close implements domain.Cursor.
func (c *Cursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.data = nil
	return nil
}
