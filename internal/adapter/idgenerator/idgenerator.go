// Package idgenerator contains the default [domain.IDGenerator]
// implementation.
package idgenerator

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

// IDGenerator implements [domain.IDGenerator] with random UUID strings.
type IDGenerator struct {
	opts domain.IDGeneratorOptions
}

// NewIDGenerator returns a new implementation of [domain.IDGenerator].
func NewIDGenerator(options ...domain.IDGeneratorOption) domain.IDGenerator {
	opts := domain.IDGeneratorOptions{Reader: rand.Reader}
	for _, option := range options {
		option(&opts)
	}
	return &IDGenerator{opts: opts}
}

// GenerateID implements [domain.IDGenerator].
func (g *IDGenerator) GenerateID() (string, error) {
	id, err := uuid.NewRandomFromReader(g.opts.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
