package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNoModel is returned when an operation runs before a model has
	// been selected with [Store.Model].
	ErrNoModel = errors.New("no model selected")

	// ErrNotFound is returned when a record lookup finds nothing.
	ErrNotFound = errors.New("record not found")

	// ErrMissingID is returned by [Store.CreateRecord] when the record's
	// identifier is empty.
	ErrMissingID = errors.New("record must have a non-empty id")

	// ErrCannotModifyID is returned by [Store.UpdateByID] when a patch
	// would change the stored identifier, desynchronizing it from the
	// record's filename.
	ErrCannotModifyID = errors.New("cannot change a record's id")

	// ErrTargetNil is returned when the user provides a nil value as a
	// target to decode data into.
	ErrTargetNil = errors.New("target interface is nil")

	// ErrCursorClosed is returned when trying to perform operations on a
	// closed [Cursor].
	ErrCursorClosed = errors.New("cursor is closed")

	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = errors.New("scan called before next")
)

// ErrPathConflict is returned when a dotted path cannot be created because an
// existing non-document value occupies an intermediate segment.
type ErrPathConflict struct {
	Path    []string
	Segment string
}

func (e *ErrPathConflict) Error() string {
	return fmt.Sprintf("cannot set %q: segment %q holds a non-document value", strings.Join(e.Path, "."), e.Segment)
}

// ErrCorruptRecord is returned when a record file exists but cannot be
// parsed, keeping data corruption diagnosable and distinct from
// [ErrNotFound].
type ErrCorruptRecord struct {
	Path string
	Err  error
}

func (e *ErrCorruptRecord) Error() string {
	return fmt.Sprintf("corrupt record %s: %v", e.Path, e.Err)
}

func (e *ErrCorruptRecord) Unwrap() error { return e.Err }

// ErrCorruptFiles is returned by [Store.FindAll] and the query operations
// built on it when the rate of unparseable record files exceeds the
// configured corruption threshold.
type ErrCorruptFiles struct {
	CorruptionRate        float64
	CorruptItems          int
	DataLength            int
	CorruptAlertThreshold float64
}

func (e *ErrCorruptFiles) Error() string {
	return fmt.Sprintf("%.0f%% of the collection is corrupt (%d of %d records), more than the given threshold (%.0f%%)",
		math.Floor(100*e.CorruptionRate), e.CorruptItems, e.DataLength, math.Floor(100*e.CorruptAlertThreshold))
}
