// Package store contains the default [domain.Store] implementation: a
// collection store mapping each model to a directory and each record to one
// pretty-printed JSON file named by its identifier.
package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/vinicius-lino-figueiredo/jsondb/domain"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/cursor"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/deserializer"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/patcher"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/jsondb/internal/adapter/storage"
)

const (
	// DefaultBaseDir is the base directory used when none is configured.
	DefaultBaseDir = "json-db"

	// RecordExt is the extension of record files; files without it are
	// not collection members.
	RecordExt = ".json"

	DefaultDirMode  os.FileMode = 0o755
	DefaultFileMode os.FileMode = 0o644
)

// Store implements domain.Store.
type Store struct {
	baseDir               string
	model                 string
	fileMode              os.FileMode
	dirMode               os.FileMode
	corruptAlertThreshold float64
	logger                *slog.Logger
	serializer            domain.Serializer
	deserializer          domain.Deserializer
	storage               domain.Storage
	decoder               domain.Decoder
	documentFactory       domain.DocumentFactory
	comparer              domain.Comparer
	fieldNavigator        domain.FieldNavigator
	matcher               domain.Matcher
	patcher               domain.Patcher
	idGenerator           domain.IDGenerator
	cursorFactory         domain.CursorFactory
}

// NewStore returns a new implementation of domain.Store.
func NewStore(options ...domain.StoreOption) (domain.Store, error) {
	comp := comparer.NewComparer()
	docFac := data.NewDocument
	dec := decoder.NewDecoder()
	fn := fieldnavigator.NewFieldNavigator(docFac)
	matchr := matcher.NewMatcher(
		domain.WithMatcherDocumentFactory(docFac),
		domain.WithMatcherComparer(comp),
		domain.WithMatcherFieldNavigator(fn),
	)
	opts := domain.StoreOptions{
		BaseDir:               DefaultBaseDir,
		FileMode:              DefaultFileMode,
		DirMode:               DefaultDirMode,
		CorruptAlertThreshold: 0.1,
		Logger:                slog.New(slog.DiscardHandler),
		Serializer:            serializer.NewSerializer(),
		Deserializer:          deserializer.NewDeserializer(dec),
		Storage:               storage.NewStorage(),
		Decoder:               dec,
		DocumentFactory:       docFac,
		Comparer:              comp,
		FieldNavigator:        fn,
		Matcher:               matchr,
		Patcher:               patcher.NewPatcher(fn),
		IDGenerator:           idgenerator.NewIDGenerator(),
		CursorFactory:         cursor.NewCursor,
	}
	for _, option := range options {
		option(&opts)
	}

	s := &Store{
		baseDir:               opts.BaseDir,
		model:                 opts.Model,
		fileMode:              opts.FileMode,
		dirMode:               opts.DirMode,
		corruptAlertThreshold: opts.CorruptAlertThreshold,
		logger:                opts.Logger,
		serializer:            opts.Serializer,
		deserializer:          opts.Deserializer,
		storage:               opts.Storage,
		decoder:               opts.Decoder,
		documentFactory:       opts.DocumentFactory,
		comparer:              opts.Comparer,
		fieldNavigator:        opts.FieldNavigator,
		matcher:               opts.Matcher,
		patcher:               opts.Patcher,
		idGenerator:           opts.IDGenerator,
		cursorFactory:         opts.CursorFactory,
	}

	if s.model != "" {
		dir, err := s.modelDir()
		if err != nil {
			return nil, err
		}
		if err := s.storage.EnsureDirectoryExists(dir, s.dirMode); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Model implements domain.Store.
func (s *Store) Model(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := s.storage.EnsureDirectoryExists(filepath.Join(s.baseDir, name), s.dirMode); err != nil {
		return err
	}
	s.model = name
	s.logger.Debug("selected model", "model", name)
	return nil
}

// Create implements domain.Store.
func (s *Store) Create(ctx context.Context, id string, record any) error {
	if id == "" {
		return domain.ErrMissingID
	}
	return s.writeRecord(ctx, id, record)
}

// CreateRecord implements domain.Store.
func (s *Store) CreateRecord(ctx context.Context, record domain.Identifiable) error {
	id := record.GetID()
	if id == "" {
		return domain.ErrMissingID
	}
	return s.writeRecord(ctx, id, record)
}

// Insert implements domain.Store.
func (s *Store) Insert(ctx context.Context, record any) (string, error) {
	doc, err := s.documentFactory(record)
	if err != nil {
		return "", err
	}
	id, ok := doc.ID().(string)
	if !ok || id == "" {
		if id, err = s.idGenerator.GenerateID(); err != nil {
			return "", err
		}
		doc.Set(data.IDKey, id)
	}
	return id, s.writeRecord(ctx, id, doc)
}

// FindByID implements domain.Store.
func (s *Store) FindByID(ctx context.Context, id string, target any) error {
	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	doc, err := s.readRecord(ctx, path)
	if err != nil {
		return err
	}
	return s.decodeDoc(doc, target)
}

// UpdateByID implements domain.Store.
func (s *Store) UpdateByID(ctx context.Context, id string, patch any) error {
	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	doc, err := s.readRecord(ctx, path)
	if errors.Is(err, domain.ErrNotFound) {
		// updating a missing record is a deliberate no-op
		return nil
	}
	if err != nil {
		return err
	}

	patchDoc, err := s.documentFactory(patch)
	if err != nil {
		return err
	}
	if patchDoc.Has(data.IDKey) {
		r, err := s.comparer.Compare(patchDoc.ID(), id)
		if err != nil || r != 0 {
			return errors.Join(domain.ErrCannotModifyID, err)
		}
	}

	if err := s.patcher.MergePatch(doc, patchDoc); err != nil {
		return err
	}
	return s.writeRecord(ctx, id, doc)
}

// DeleteByID implements domain.Store.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FindAll implements domain.Store.
func (s *Store) FindAll(ctx context.Context) (domain.Cursor, error) {
	docs, err := s.allDocs(ctx)
	if err != nil {
		return nil, err
	}
	return s.cursorFactory(ctx, docs, domain.WithCursorDecoder(s.decoder))
}

// Find implements domain.Store.
func (s *Store) Find(ctx context.Context, condition any) (domain.Cursor, error) {
	docs, err := s.findDocs(ctx, condition)
	if err != nil {
		return nil, err
	}
	return s.cursorFactory(ctx, docs, domain.WithCursorDecoder(s.decoder))
}

// FindOne implements domain.Store.
func (s *Store) FindOne(ctx context.Context, condition any, target any) error {
	docs, err := s.findDocs(ctx, condition)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return domain.ErrNotFound
	}
	return s.decodeDoc(docs[0], target)
}

// Count implements domain.Store.
func (s *Store) Count(ctx context.Context, condition any) (int64, error) {
	docs, err := s.findDocs(ctx, condition)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

// UpdateMany implements domain.Store.
func (s *Store) UpdateMany(ctx context.Context, condition any, patch any) (int64, error) {
	ids, err := s.matchedIDs(ctx, condition)
	if err != nil {
		return 0, err
	}
	var updated int64
	for _, id := range ids {
		if err := s.UpdateByID(ctx, id, patch); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// DeleteMany implements domain.Store.
func (s *Store) DeleteMany(ctx context.Context, condition any) (int64, error) {
	ids, err := s.matchedIDs(ctx, condition)
	if err != nil {
		return 0, err
	}
	var deleted int64
	for _, id := range ids {
		if err := s.DeleteByID(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// Push implements domain.Store.
func (s *Store) Push(ctx context.Context, condition any, arrayPath string, element any) (int64, error) {
	return s.updateArrays(ctx, condition, arrayPath, func(arr []any) ([]any, error) {
		return append(slices.Clone(arr), element), nil
	})
}

// Pull implements domain.Store.
func (s *Store) Pull(ctx context.Context, condition any, arrayPath string, pullCondition any) (int64, error) {
	pullCond, err := s.condition(pullCondition)
	if err != nil {
		return 0, err
	}
	return s.updateArrays(ctx, condition, arrayPath, func(arr []any) ([]any, error) {
		res := make([]any, 0, len(arr))
		for _, item := range arr {
			matches, err := s.matcher.Match(item, pullCond)
			if err != nil {
				return nil, err
			}
			if !matches {
				res = append(res, item)
			}
		}
		return res, nil
	})
}

// UpdateArray implements domain.Store.
func (s *Store) UpdateArray(ctx context.Context, condition any, arrayPath string, arrayCondition any, patch any) (int64, error) {
	arrCond, err := s.condition(arrayCondition)
	if err != nil {
		return 0, err
	}
	patchDoc, err := s.documentFactory(patch)
	if err != nil {
		return 0, err
	}
	return s.updateArrays(ctx, condition, arrayPath, func(arr []any) ([]any, error) {
		for _, item := range arr {
			matches, err := s.matcher.Match(item, arrCond)
			if err != nil {
				return nil, err
			}
			itemDoc, ok := item.(domain.Document)
			if !matches || !ok {
				continue
			}
			if err := s.patcher.MergePatch(itemDoc, patchDoc); err != nil {
				return nil, err
			}
		}
		return arr, nil
	})
}

// updateArrays runs the shared loop of the array operations: for every record
// matching the condition, re-read it, resolve the array path, transform the
// array and write the record back. Records where the path doesn't resolve to
// an array are skipped.
func (s *Store) updateArrays(ctx context.Context, condition any, arrayPath string, apply func([]any) ([]any, error)) (int64, error) {
	addr, err := s.fieldNavigator.GetAddress(arrayPath)
	if err != nil {
		return 0, err
	}
	ids, err := s.matchedIDs(ctx, condition)
	if err != nil {
		return 0, err
	}

	var affected int64
	for _, id := range ids {
		path, err := s.recordPath(id)
		if err != nil {
			return affected, err
		}
		doc, err := s.readRecord(ctx, path)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return affected, err
		}

		gs, _ := s.fieldNavigator.GetField(doc, addr...)
		value, _ := gs.Get()
		arr, ok := value.([]any)
		if !ok {
			continue
		}

		newArr, err := apply(arr)
		if err != nil {
			return affected, err
		}
		gs.Set(newArr)

		if err := s.writeRecord(ctx, id, doc); err != nil {
			return affected, err
		}
		affected++
	}
	return affected, nil
}

func (s *Store) modelDir() (string, error) {
	if s.model == "" {
		return "", domain.ErrNoModel
	}
	return filepath.Join(s.baseDir, s.model), nil
}

func (s *Store) recordPath(id string) (string, error) {
	dir, err := s.modelDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, id+RecordExt), nil
}

func (s *Store) writeRecord(ctx context.Context, id string, record any) error {
	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	b, err := s.serializer.Serialize(ctx, record)
	if err != nil {
		return err
	}
	return s.storage.WriteFile(ctx, path, b, s.fileMode, s.dirMode)
}

func (s *Store) readRecord(ctx context.Context, path string) (domain.Document, error) {
	b, err := s.storage.ReadFile(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := s.deserializer.Deserialize(ctx, b, &doc); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.ErrCorruptRecord{Path: path, Err: err}
	}
	return doc, nil
}

func (s *Store) decodeDoc(doc domain.Document, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}
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
	return s.decoder.Decode(doc, target)
}

// allDocs lists and parses every record in the collection. Corrupt files are
// skipped with a warning while they stay within the corruption threshold;
// past it the whole scan fails.
func (s *Store) allDocs(ctx context.Context) ([]domain.Document, error) {
	dir, err := s.modelDir()
	if err != nil {
		return nil, err
	}
	names, err := s.storage.ListFiles(dir, RecordExt)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(names))
	corrupt := 0
	for _, name := range names {
		doc, err := s.readRecord(ctx, filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// removed between listing and reading
				continue
			}
			var corruptErr *domain.ErrCorruptRecord
			if errors.As(err, &corruptErr) {
				corrupt++
				s.logger.Warn("skipping corrupt record", "path", corruptErr.Path, "err", corruptErr.Err)
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
	}

	if corrupt > 0 {
		rate := float64(corrupt) / float64(len(names))
		if rate > s.corruptAlertThreshold {
			return nil, &domain.ErrCorruptFiles{
				CorruptionRate:        rate,
				CorruptItems:          corrupt,
				DataLength:            len(names),
				CorruptAlertThreshold: s.corruptAlertThreshold,
			}
		}
	}
	return docs, nil
}

func (s *Store) findDocs(ctx context.Context, condition any) ([]domain.Document, error) {
	cond, err := s.condition(condition)
	if err != nil {
		return nil, err
	}
	docs, err := s.allDocs(ctx)
	if err != nil {
		return nil, err
	}

	res := docs[:0]
	for _, doc := range docs {
		matches, err := s.matcher.Match(doc, cond)
		if err != nil {
			return nil, err
		}
		if matches {
			res = append(res, doc)
		}
	}
	return res, nil
}

func (s *Store) matchedIDs(ctx context.Context, condition any) ([]string, error) {
	docs, err := s.findDocs(ctx, condition)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id, ok := doc.ID().(string)
		if !ok || id == "" {
			s.logger.Warn("skipping record without a usable id", "model", s.model)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// condition normalizes a caller-supplied condition: nil matches everything,
// maps and structs become documents, scalars stay as they are for whole-value
// equality.
func (s *Store) condition(v any) (any, error) {
	if v == nil {
		return s.documentFactory(nil)
	}
	if _, ok := v.(domain.Document); ok {
		return v, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return s.documentFactory(nil)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return s.documentFactory(v)
	default:
		return v, nil
	}
}
