// Package jsondb provides an embedded JSON document store backed by plain
// files.
//
// Records are grouped into models. Each model is a directory under the base
// directory and each record is a single pretty-printed JSON file named after
// its identifier, so a stored database can be inspected and edited with
// nothing but a text editor.
//
// The basic usage starts with creating a new [Store] instance, which can be
// done by calling [NewStore].
package jsondb

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/store"
)

var (
	// ErrNoModel is returned when a record operation is attempted before a
	// model was selected with [Store.Model] or [WithModel].
	ErrNoModel = domain.ErrNoModel
	// ErrNotFound is returned when [Store.FindByID] or [Store.FindOne]
	// cannot find a matching record.
	ErrNotFound = domain.ErrNotFound
	// ErrMissingID is returned when a record is created without an
	// identifier.
	ErrMissingID = domain.ErrMissingID
	// ErrCannotModifyID is returned by [Store.UpdateByID] when a patch
	// would change a record id, desynchronizing it from its file name.
	ErrCannotModifyID = domain.ErrCannotModifyID
	// ErrTargetNil is returned when user provides a nil value as a target
	// to decode data, for example, calling [Store.FindOne].
	ErrTargetNil = domain.ErrTargetNil
	// ErrCursorClosed is returned when trying to perform operations on a
	// closed [Cursor].
	ErrCursorClosed = domain.ErrCursorClosed
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = domain.ErrScanBeforeNext
)

// ErrPathConflict is returned when a dotted path cannot be created because an
// intermediate segment already holds a value that is not a document.
type ErrPathConflict = domain.ErrPathConflict

// ErrCorruptRecord is returned when a record file exists but does not contain
// a valid JSON object.
type ErrCorruptRecord = domain.ErrCorruptRecord

// ErrCorruptFiles is returned by collection scans when the rate of corrupt
// record files exceeds the threshold set by the user.
type ErrCorruptFiles = domain.ErrCorruptFiles

// NewStore creates a new [Store] with the provided configuration options:
//
// - [WithBaseDir]: sets the directory holding the model directories.
//
// - [WithModel]: selects the initial model.
//
// - [WithFileMode]: sets the permissions for record files.
//
// - [WithDirMode]: sets the permissions for model directories.
//
// - [WithCorruptionThreshold]: sets the tolerated rate of corrupt files.
//
// - [WithLogger]: sets the logger used by the store.
//
// - [WithSerializer]: sets the serializer for converting records to bytes.
//
// - [WithDeserializer]: sets the deserializer for converting bytes to records.
//
// - [WithStorage]: sets the storage implementation for file operations.
//
// - [WithDecoder]: sets the decoder for data format conversions.
//
// - [WithDocumentFactory]: sets the function for creating [Document] instances.
//
// - [WithComparer]: sets the comparer for value comparison operations.
//
// - [WithFieldNavigator]: sets the field navigator for dotted-path access.
//
// - [WithMatcher]: sets the matcher implementation for query evaluation.
//
// - [WithPatcher]: sets the patcher implementation for record updates.
//
// - [WithIDGenerator]: sets the idgenerator to create new record ids.
//
// - [WithCursorFactory]: sets the factory function for creating cursor
// instances.
func NewStore(options ...Option) (Store, error) {
	return store.NewStore(options...)
}

// Store defines the main interface for interacting with the embedded document
// store. Records are stored as one JSON file each under a model directory,
// and every operation is context-aware.
//
// A model must be selected, either with [WithModel] at construction or with
// [Store.Model], before any record operation.
type Store interface {
	// Model selects the model the following operations act on, creating
	// its directory if needed.
	Model(ctx context.Context, name string) error

	// Create stores a record under the given id, overwriting any previous
	// record with the same id.
	//
	// If not reimplementing [DocumentFactory] defaults, Create should
	// accept any structs or maps[string]T. Values can be nested
	// structures and/or arrays and slices.
	//
	// For structs, unexported fields will be ignored; If a field has a
	// "json" struct tag, its value will replace the field name. If tag
	// value contains ",omitempty", [nil] values will not be set; If tag
	// value contains ",omitzero", uninitialized fields will not be set.
	Create(ctx context.Context, id string, record any) error

	// CreateRecord stores a record under the id it reports through
	// [Identifiable]. Returns [ErrMissingID] when the reported id is
	// empty.
	CreateRecord(ctx context.Context, record domain.Identifiable) error

	// Insert stores a record, generating a fresh id when the record does
	// not carry a non-empty "id" field, and returns the id the record was
	// stored under.
	Insert(ctx context.Context, record any) (string, error)

	// FindByID loads the record with the given id into target. Returns
	// [ErrNotFound] when no such record exists.
	FindByID(ctx context.Context, id string, target any) error

	// UpdateByID applies a merge patch to the record with the given id.
	// Dotted keys in the patch address nested fields. Updating a missing
	// record is a no-op; a patch that would change the record id fails
	// with [ErrCannotModifyID].
	UpdateByID(ctx context.Context, id string, patch any) error

	// DeleteByID removes the record with the given id. Deleting a missing
	// record is a no-op.
	DeleteByID(ctx context.Context, id string) error

	// FindAll returns a cursor over every record in the model.
	FindAll(ctx context.Context) (Cursor, error)

	// Find returns a cursor over the records matching the condition using
	// the current [Matcher]. Dotted keys in the condition address nested
	// fields and a null condition value also matches an absent field.
	Find(ctx context.Context, condition any) (Cursor, error)

	// FindOne loads the first record matching the condition into target.
	// Returns [ErrNotFound] when nothing matches.
	FindOne(ctx context.Context, condition any, target any) error

	// Count returns the number of records matching the condition.
	Count(ctx context.Context, condition any) (int64, error)

	// UpdateMany applies a merge patch to every record matching the
	// condition and returns the number of records patched.
	UpdateMany(ctx context.Context, condition any, patch any) (int64, error)

	// DeleteMany removes every record matching the condition and returns
	// the number of records removed.
	DeleteMany(ctx context.Context, condition any) (int64, error)

	// Push appends an element to the array at arrayPath in every record
	// matching the condition. Records where the path does not hold an
	// array are skipped. Returns the number of records changed.
	Push(ctx context.Context, condition any, arrayPath string, element any) (int64, error)

	// Pull removes the elements matching pullCondition from the array at
	// arrayPath in every record matching the condition. Returns the
	// number of records changed.
	Pull(ctx context.Context, condition any, arrayPath string, pullCondition any) (int64, error)

	// UpdateArray applies a merge patch to the elements matching
	// arrayCondition inside the array at arrayPath, in every record
	// matching the condition. Returns the number of records changed.
	UpdateArray(ctx context.Context, condition any, arrayPath string, arrayCondition any, patch any) (int64, error)
}

// Identifiable is implemented by record types that know their own id.
type Identifiable = domain.Identifiable

// Document represents a record in the persistence layer.
type Document = domain.Document

// Serializer converts records to bytes for storage.
type Serializer = domain.Serializer

// Deserializer converts bytes back to records.
type Deserializer = domain.Deserializer

// Storage provides low-level file operations with crash-safety guarantees.
type Storage = domain.Storage

// Decoder converts between different data representations.
type Decoder = domain.Decoder

// Comparer provides ordering and comparison for different data types.
type Comparer = domain.Comparer

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator = domain.FieldNavigator

// Matcher evaluates whether records match query conditions.
type Matcher = domain.Matcher

// Patcher applies merge patches to records.
type Patcher = domain.Patcher

// Cursor provides iteration over query results.
type Cursor = domain.Cursor

// IDGenerator is used to create unique ids for new records.
type IDGenerator = domain.IDGenerator

// DocumentFactory represents a [Document] constructor that can be
// reimplemented. It should accept structured data types and create an
// equivalent [Document], respecting the given structure. If nil is given as
// argument, a document of length 0 should be returned.
type DocumentFactory = domain.DocumentFactory

// CursorFactory represents a [Cursor] constructor that can be reimplemented.
// It should receive an ordered set of documents and allow user to scan them
// into a data type of their choice.
type CursorFactory = domain.CursorFactory

// Option configures store behavior through the functional options pattern.
type Option = domain.StoreOption

// WithBaseDir sets the directory holding the model directories.
func WithBaseDir(d string) Option {
	return domain.WithStoreBaseDir(d)
}

// WithModel selects the initial model.
func WithModel(m string) Option {
	return domain.WithStoreModel(m)
}

// WithFileMode sets the permissions for record files.
func WithFileMode(f fs.FileMode) Option {
	return domain.WithStoreFileMode(f)
}

// WithDirMode sets the permissions for model directories.
func WithDirMode(d fs.FileMode) Option {
	return domain.WithStoreDirMode(d)
}

// WithCorruptionThreshold sets the tolerated rate of corrupt record files
// during collection scans.
func WithCorruptionThreshold(c float64) Option {
	return domain.WithStoreCorruptAlertThreshold(c)
}

// WithLogger sets the logger used by the store.
func WithLogger(l *slog.Logger) Option {
	return domain.WithStoreLogger(l)
}

// WithSerializer sets the serializer for converting records to bytes.
func WithSerializer(s Serializer) Option {
	return domain.WithStoreSerializer(s)
}

// WithDeserializer sets the deserializer for converting bytes to records.
func WithDeserializer(d Deserializer) Option {
	return domain.WithStoreDeserializer(d)
}

// WithStorage sets the storage implementation for low-level file operations.
func WithStorage(s Storage) Option {
	return domain.WithStoreStorage(s)
}

// WithDecoder sets the decoder for data format conversions.
func WithDecoder(d Decoder) Option {
	return domain.WithStoreDecoder(d)
}

// WithDocumentFactory sets the factory function for creating [Document]
// instances.
func WithDocumentFactory(d DocumentFactory) Option {
	return domain.WithStoreDocumentFactory(d)
}

// WithComparer sets the comparer for value comparison operations.
func WithComparer(c Comparer) Option {
	return domain.WithStoreComparer(c)
}

// WithFieldNavigator sets the field navigator for accessing record fields.
func WithFieldNavigator(f FieldNavigator) Option {
	return domain.WithStoreFieldNavigator(f)
}

// WithMatcher sets the matcher implementation for condition evaluation.
func WithMatcher(m Matcher) Option {
	return domain.WithStoreMatcher(m)
}

// WithPatcher sets the patcher implementation for record updates.
func WithPatcher(p Patcher) Option {
	return domain.WithStorePatcher(p)
}

// WithIDGenerator sets the idgenerator to create new record ids.
func WithIDGenerator(ig IDGenerator) Option {
	return domain.WithStoreIDGenerator(ig)
}

// WithCursorFactory sets the factory function for creating cursor instances.
func WithCursorFactory(c CursorFactory) Option {
	return domain.WithStoreCursorFactory(c)
}

// CursorOption configures cursor behavior through the functional options
// pattern.
type CursorOption = domain.CursorOption

// WithCursorDecoder sets the decoder for converting cursor results.
func WithCursorDecoder(d Decoder) CursorOption {
	return domain.WithCursorDecoder(d)
}
