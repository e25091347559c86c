package domain

import (
	"io"
	"log/slog"
	"os"
)

// StoreOptions holds every configurable property of the store. Defaults are
// filled in by the store constructor; options only override what they name.
type StoreOptions struct {
	BaseDir               string
	Model                 string
	FileMode              os.FileMode
	DirMode               os.FileMode
	CorruptAlertThreshold float64
	Logger                *slog.Logger
	Serializer            Serializer
	Deserializer          Deserializer
	Storage               Storage
	Decoder               Decoder
	DocumentFactory       DocumentFactory
	Comparer              Comparer
	FieldNavigator        FieldNavigator
	Matcher               Matcher
	Patcher               Patcher
	IDGenerator           IDGenerator
	CursorFactory         CursorFactory
}

// StoreOption configures store behavior through the functional options
// pattern.
type StoreOption func(*StoreOptions)

// WithStoreBaseDir sets the base directory holding the model directories.
func WithStoreBaseDir(d string) StoreOption {
	return func(o *StoreOptions) { o.BaseDir = d }
}

// WithStoreModel selects the initial model.
func WithStoreModel(m string) StoreOption {
	return func(o *StoreOptions) { o.Model = m }
}

// WithStoreFileMode sets the permissions for record files.
func WithStoreFileMode(f os.FileMode) StoreOption {
	return func(o *StoreOptions) { o.FileMode = f }
}

// WithStoreDirMode sets the permissions for model directories.
func WithStoreDirMode(d os.FileMode) StoreOption {
	return func(o *StoreOptions) { o.DirMode = d }
}

// WithStoreCorruptAlertThreshold sets the tolerated rate of unparseable
// record files during collection scans.
func WithStoreCorruptAlertThreshold(c float64) StoreOption {
	return func(o *StoreOptions) { o.CorruptAlertThreshold = c }
}

// WithStoreLogger sets the logger used by the store.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(o *StoreOptions) { o.Logger = l }
}

// WithStoreSerializer sets the serializer for converting records to bytes.
func WithStoreSerializer(s Serializer) StoreOption {
	return func(o *StoreOptions) { o.Serializer = s }
}

// WithStoreDeserializer sets the deserializer for converting bytes to
// records.
func WithStoreDeserializer(d Deserializer) StoreOption {
	return func(o *StoreOptions) { o.Deserializer = d }
}

// WithStoreStorage sets the storage implementation for file operations.
func WithStoreStorage(s Storage) StoreOption {
	return func(o *StoreOptions) { o.Storage = s }
}

// WithStoreDecoder sets the decoder for data format conversions.
func WithStoreDecoder(d Decoder) StoreOption {
	return func(o *StoreOptions) { o.Decoder = d }
}

// WithStoreDocumentFactory sets the function for creating [Document]
// instances.
func WithStoreDocumentFactory(d DocumentFactory) StoreOption {
	return func(o *StoreOptions) { o.DocumentFactory = d }
}

// WithStoreComparer sets the comparer for value comparison operations.
func WithStoreComparer(c Comparer) StoreOption {
	return func(o *StoreOptions) { o.Comparer = c }
}

// WithStoreFieldNavigator sets the field navigator for accessing record
// fields.
func WithStoreFieldNavigator(f FieldNavigator) StoreOption {
	return func(o *StoreOptions) { o.FieldNavigator = f }
}

// WithStoreMatcher sets the matcher implementation for query evaluation.
func WithStoreMatcher(m Matcher) StoreOption {
	return func(o *StoreOptions) { o.Matcher = m }
}

// WithStorePatcher sets the patcher implementation for record updates.
func WithStorePatcher(p Patcher) StoreOption {
	return func(o *StoreOptions) { o.Patcher = p }
}

// WithStoreIDGenerator sets the idgenerator used to create record ids.
func WithStoreIDGenerator(ig IDGenerator) StoreOption {
	return func(o *StoreOptions) { o.IDGenerator = ig }
}

// WithStoreCursorFactory sets the factory function for creating cursor
// instances.
func WithStoreCursorFactory(c CursorFactory) StoreOption {
	return func(o *StoreOptions) { o.CursorFactory = c }
}

// MatcherOptions holds the collaborators of a matcher.
type MatcherOptions struct {
	DocumentFactory DocumentFactory
	Comparer        Comparer
	FieldNavigator  FieldNavigator
}

// MatcherOption configures matcher behavior through the functional options
// pattern.
type MatcherOption func(*MatcherOptions)

// WithMatcherDocumentFactory sets the document factory used by the matcher.
func WithMatcherDocumentFactory(d DocumentFactory) MatcherOption {
	return func(o *MatcherOptions) { o.DocumentFactory = d }
}

// WithMatcherComparer sets the comparer used for equality checks.
func WithMatcherComparer(c Comparer) MatcherOption {
	return func(o *MatcherOptions) { o.Comparer = c }
}

// WithMatcherFieldNavigator sets the field navigator used for dotted-path
// resolution.
func WithMatcherFieldNavigator(f FieldNavigator) MatcherOption {
	return func(o *MatcherOptions) { o.FieldNavigator = f }
}

// CursorOptions holds the collaborators of a cursor.
type CursorOptions struct {
	Decoder Decoder
}

// CursorOption configures cursor behavior through the functional options
// pattern.
type CursorOption func(*CursorOptions)

// WithCursorDecoder sets the decoder for converting cursor results.
func WithCursorDecoder(d Decoder) CursorOption {
	return func(o *CursorOptions) { o.Decoder = d }
}

// IDGeneratorOptions holds the configurable properties of an id generator.
type IDGeneratorOptions struct {
	Reader io.Reader
}

// IDGeneratorOption configures id generation through the functional options
// pattern.
type IDGeneratorOption func(*IDGeneratorOptions)

// WithIDGeneratorReader sets the randomness source for generated ids.
func WithIDGeneratorReader(r io.Reader) IDGeneratorOption {
	return func(o *IDGeneratorOptions) { o.Reader = r }
}
