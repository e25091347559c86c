// Package serializer contains the default [domain.Serializer] implementation.
package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

// Serializer implements domain.Serializer. Records are written as
// pretty-printed UTF-8 JSON, the full record every time, never a diff.
type Serializer struct{}

// NewSerializer returns a new implementation of domain.Serializer.
func NewSerializer() domain.Serializer {
	return &Serializer{}
}

// Serialize implements domain.Serializer.
func (s *Serializer) Serialize(ctx context.Context, obj any) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if doc, ok := obj.(domain.Document); ok {
		if err := s.checkDoc(doc); err != nil {
			return nil, err
		}
	}
	return json.MarshalIndent(obj, "", "  ")
}

// checkDoc rejects keys containing a '.', which would be unreachable through
// dotted-path resolution once written.
func (s *Serializer) checkDoc(doc domain.Document) error {
	for k, v := range doc.Iter() {
		if strings.ContainsRune(k, '.') {
			return errors.New("field names cannot contain a '.'")
		}
		if sub, ok := v.(domain.Document); ok {
			if err := s.checkDoc(sub); err != nil {
				return err
			}
		}
	}
	return nil
}
