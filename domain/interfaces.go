// Package domain contains domain-specific interfaces and option types for
// jsondb.
//
// This package defines the core interfaces that must be implemented by
// adapters, as well as functional options for configuring the store and its
// collaborators.
package domain

import (
	"context"
	"iter"
	"os"
)

// Identifiable is the only contract record types must satisfy: a pure
// accessor returning the record's stable, non-empty string identifier.
type Identifiable interface {
	// GetID returns the record identifier.
	GetID() string
}

// Document represents a schema-less record: a mapping from string keys to
// heterogeneous values (strings, numbers, booleans, nil, nested documents,
// arrays). Document is read by one goroutine at a time and doesn't need to be
// concurrency safe.
type Document interface {
	// ID returns the value under the identifier key, if any.
	ID() any
	// D returns the subdocument for the given key, if any.
	D(string) Document
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Set sets the value under the given key.
	Set(string, any)
	// Unset unsets the value under the given key.
	Unset(string)
	// Iter returns an unordered sequence of key-value pairs in the
	// document.
	Iter() iter.Seq2[string, any]
	// Keys returns an unordered sequence of keys in the document.
	Keys() iter.Seq[string]
	// Values returns an unordered sequence of values in the document.
	Values() iter.Seq[any]
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Len returns the number of set fields in the document.
	Len() int
}

// DocumentFactory represents a [Document] constructor that can be
// reimplemented. It should accept structured data types (maps, structs,
// documents) and create an equivalent [Document]. If nil is given as
// argument, a document of length 0 should be returned.
type DocumentFactory func(any) (Document, error)

// Serializer converts records to bytes for storage.
type Serializer interface {
	// Serialize converts a record to bytes for persistence.
	Serialize(context.Context, any) ([]byte, error)
}

// Deserializer converts bytes back to records.
type Deserializer interface {
	// Deserialize converts bytes back to a record, decoding into target.
	Deserialize(context.Context, []byte, any) error
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts from one data format to another.
	Decode(any, any) error
}

// Comparer provides ordering and comparison operations for different data
// types. Two values are equal when Compare returns 0.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
}

// Getter represents a value that can be treated as undefined.
type Getter interface {
	// Get returns the value and a bool that indicates whether the value
	// counts as defined. An address pointing at an unset key, or at any
	// address within a primitive value, counts as undefined. A value that
	// is explicitly nil still counts as defined.
	Get() (value any, defined bool)
}

// GetSetter represents a value in a [Document], returned by [FieldNavigator]
// so reading, replacing and removing nested values stays uniform. Undefined
// values can neither be set nor unset.
type GetSetter interface {
	Getter
	// Set will set a new value for the address.
	Set(any)
	// Unset removes the value from the parent document.
	Unset()
}

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator interface {
	// GetAddress extracts the nested path from a dotted field name.
	GetAddress(field string) ([]string, error)
	// GetField resolves a path against a value without modifying it. The
	// bool reports whether the path resolved to a set value. GetField
	// never fails, regardless of path depth or document shape.
	GetField(obj any, fieldParts ...string) (GetSetter, bool)
	// EnsureField resolves a path, creating empty intermediate documents
	// as needed so the returned GetSetter can be written to. A
	// non-document value occupying an intermediate segment is an
	// [ErrPathConflict].
	EnsureField(obj any, fieldParts ...string) (GetSetter, error)
}

// Matcher evaluates whether values match query-by-example conditions.
type Matcher interface {
	// Match returns true if the value matches the condition.
	Match(any, any) (bool, error)
}

// Patcher applies partial-update documents to existing documents.
type Patcher interface {
	// MergePatch assigns every (possibly dotted) top-level key of the
	// patch into the target. Values assigned through a single key path,
	// including arrays and objects, replace the destination wholesale.
	MergePatch(target Document, patch Document) error
}

// IDGenerator creates unique identifiers for new records.
type IDGenerator interface {
	// GenerateID returns a new unique identifier.
	GenerateID() (string, error)
}

// Storage provides low-level file and directory operations with crash-safety
// guarantees on writes.
type Storage interface {
	// EnsureDirectoryExists creates the directory if needed.
	EnsureDirectoryExists(string, os.FileMode) error
	// Exists checks if a file exists.
	Exists(string) (bool, error)
	// ReadFile reads a whole file, honoring context cancellation.
	ReadFile(context.Context, string) ([]byte, error)
	// WriteFile atomically replaces a file's contents. The file mode
	// applies to the file, the dir mode to the containing directory sync.
	WriteFile(context.Context, string, []byte, os.FileMode, os.FileMode) error
	// Remove deletes a file.
	Remove(string) error
	// ListFiles returns the names of regular files with the given
	// extension directly inside a directory, in listing order.
	ListFiles(dir string, ext string) ([]string, error)
}

// Cursor provides iteration over query results.
type Cursor interface {
	// Scan decodes the current document into target, or every remaining
	// document when target points at a slice.
	Scan(ctx context.Context, target any) error
	// Next advances the cursor to the next document, returning true if
	// available.
	Next() bool
	// Err returns any error that occurred during iteration.
	Err() error
	// Close releases cursor resources and should be called when done.
	Close() error
}

// CursorFactory represents a [Cursor] constructor that can be reimplemented.
type CursorFactory func(context.Context, []Document, ...CursorOption) (Cursor, error)

// Store is a named-collection document store over a base directory. Each
// model is a directory, each record one pretty-printed JSON file named by its
// identifier. Every operation re-reads from storage; nothing is cached in
// memory, so two stores pointed at the same directory observe each other's
// writes.
//
// The store holds no lock: serializing access to a collection directory is
// the caller's responsibility.
type Store interface {
	// Model switches the active collection, ensuring its directory
	// exists. Every other operation requires a model to be selected and
	// returns [ErrNoModel] otherwise.
	Model(ctx context.Context, name string) error

	// Create writes the record under the given identifier. Writes are
	// unconditional overwrites: an existing record with the same id is
	// silently replaced.
	Create(ctx context.Context, id string, record any) error

	// CreateRecord extracts the identifier from the record itself and
	// writes it. An empty identifier is [ErrMissingID].
	CreateRecord(ctx context.Context, record Identifiable) error

	// Insert writes the record, generating an identifier when the record
	// doesn't carry a non-empty one, and returns the identifier used.
	Insert(ctx context.Context, record any) (string, error)

	// FindByID reads the record with the given identifier into target.
	// A missing record is [ErrNotFound]; a file that exists but cannot be
	// parsed is an [ErrCorruptRecord].
	FindByID(ctx context.Context, id string, target any) error

	// UpdateByID merges the patch into the stored record. A missing
	// record is a silent no-op. Fields not named in the patch are
	// preserved verbatim. A patch rewriting the identifier is
	// [ErrCannotModifyID].
	UpdateByID(ctx context.Context, id string, patch any) error

	// DeleteByID removes the record if present; an absent record is not
	// an error.
	DeleteByID(ctx context.Context, id string) error

	// FindAll returns a cursor over every record in the collection, in
	// directory listing order.
	FindAll(ctx context.Context) (Cursor, error)

	// Find returns a cursor over the records matching the condition.
	Find(ctx context.Context, condition any) (Cursor, error)

	// FindOne decodes the first record matching the condition into
	// target, or returns [ErrNotFound].
	FindOne(ctx context.Context, condition any, target any) error

	// Count returns the number of records matching the condition.
	Count(ctx context.Context, condition any) (int64, error)

	// UpdateMany applies the patch to every record matching the
	// condition, one record at a time with no rollback, and returns the
	// number of records patched.
	UpdateMany(ctx context.Context, condition any, patch any) (int64, error)

	// DeleteMany removes every record matching the condition and returns
	// the number removed.
	DeleteMany(ctx context.Context, condition any) (int64, error)

	// Push appends the element to the array at arrayPath in every record
	// matching the condition. Records where the path doesn't resolve to
	// an array are skipped. Returns the number of records written.
	Push(ctx context.Context, condition any, arrayPath string, element any) (int64, error)

	// Pull removes from the array at arrayPath every element matching
	// pullCondition, preserving the relative order of the rest.
	Pull(ctx context.Context, condition any, arrayPath string, pullCondition any) (int64, error)

	// UpdateArray merges the patch into every element of the array at
	// arrayPath that matches arrayCondition; other elements pass through
	// unchanged. Array length is never altered.
	UpdateArray(ctx context.Context, condition any, arrayPath string, arrayCondition any, patch any) (int64, error)
}
