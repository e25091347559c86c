// Package deserializer contains the default [domain.Deserializer]
// implementation.
package deserializer

import (
	"context"
	"encoding/json"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/decoder"
)

// Deserializer implements domain.Deserializer.
type Deserializer struct {
	decoder domain.Decoder
}

// NewDeserializer returns a new instance of domain.Deserializer.
func NewDeserializer(dec domain.Decoder) domain.Deserializer {
	if dec == nil {
		dec = decoder.NewDecoder()
	}
	return &Deserializer{
		decoder: dec,
	}
}

// Deserialize implements domain.Deserializer.
func (d *Deserializer) Deserialize(ctx context.Context, b []byte, target any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if target == nil {
		return domain.ErrTargetNil
	}

	doc := make(data.M)
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	switch p := target.(type) {
	case *map[string]any:
		*p = doc
		return nil
	case *data.M:
		*p = doc
		return nil
	case *domain.Document:
		*p = doc
		return nil
	}

	return d.decoder.Decode(map[string]any(doc), target)
}
