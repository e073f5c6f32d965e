package badger

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/index"
	"github.com/simon200418/songindex/schema"
	"github.com/simon200418/songindex/storage"
)

// Store persists index generations under a root directory. Each commit
// writes a fresh gen-<nanos> directory holding one BadgerDB, then swaps
// the CURRENT pointer file to it. Generations load fully into memory on
// open, so deleting a superseded directory never invalidates a
// generation already handed out.
type Store struct {
	rootDir string
	logger  *slog.Logger
	mu      sync.Mutex
	closed  bool
}

var _ storage.GenerationStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a generation store rooted at dir, creating it if
// needed.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		rootDir: dir,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Commit writes the generation to a fresh directory, repoints CURRENT,
// and removes the superseded directory. Removal is best-effort: a
// failure logs a warning and leaves the orphan behind.
func (s *Store) Commit(gen *index.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStoreClosed
	}
	if gen == nil {
		return storage.ErrGenerationRequired
	}

	prevName, _ := s.readCurrent()

	dirName := fmt.Sprintf("gen-%d", time.Now().UnixNano())
	dir := filepath.Join(s.rootDir, dirName)
	if err := s.writeGeneration(dir, gen); err != nil {
		// Partially written directory is garbage; try to reclaim it.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("could not remove failed generation dir", "dir", dir, "error", rmErr)
		}
		return err
	}

	if err := s.swapCurrent(dirName); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("could not remove failed generation dir", "dir", dir, "error", rmErr)
		}
		return err
	}

	if prevName != "" && prevName != dirName {
		prevDir := filepath.Join(s.rootDir, prevName)
		if err := os.RemoveAll(prevDir); err != nil {
			s.logger.Warn("could not remove superseded generation dir", "dir", prevDir, "error", err)
		}
	}

	s.logger.Info("generation committed",
		"dir", dirName, "docs", gen.DocCount(), "fingerprint", gen.Fingerprint())
	return nil
}

// writeGeneration bulk-loads one generation into a new BadgerDB at dir.
func (s *Store) writeGeneration(dir string, gen *index.Generation) error {
	backend, err := OpenBackend(dir, s.logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	wb := backend.WriteBatch()
	defer wb.Cancel()

	if err := wb.Set([]byte(schemaKey), storage.MarshalSchemaFields(gen.Schema().Fields())); err != nil {
		return err
	}
	if err := wb.Set([]byte(statsKey), storage.MarshalIndexStats(gen.Stats())); err != nil {
		return err
	}
	if err := wb.Set([]byte(fingerprintKey), encodeUint64(gen.Fingerprint())); err != nil {
		return err
	}
	if err := wb.Set([]byte(createdKey), encodeUint64(uint64(gen.CreatedAt().UnixNano()))); err != nil {
		return err
	}

	err = gen.EachPostingList(func(field, term string, postings core.PostingList) error {
		return wb.Set(makePostingKey(field, term), storage.MarshalPostingList(postings))
	})
	if err != nil {
		return err
	}
	err = gen.EachDocument(func(docID string, stored map[string]string, lens map[string]uint32) error {
		if err := wb.Set(makeDocKey(docID), storage.MarshalStoredFields(stored)); err != nil {
			return err
		}
		return wb.Set(makeLenKey(docID), storage.MarshalFieldLens(lens))
	})
	if err != nil {
		return err
	}

	if err := wb.Flush(); err != nil {
		return err
	}
	return backend.Sync()
}

// swapCurrent atomically repoints the CURRENT file at dirName.
func (s *Store) swapCurrent(dirName string) error {
	tmp := filepath.Join(s.rootDir, currentFile+".tmp")
	if err := os.WriteFile(tmp, []byte(dirName+"\n"), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(s.rootDir, currentFile))
}

// readCurrent returns the active generation directory name, or "" when no
// generation has been committed.
func (s *Store) readCurrent() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.rootDir, currentFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", storage.ErrNoActiveGeneration
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ActivePath reports the directory of the active generation, if any.
func (s *Store) ActivePath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.readCurrent()
	if err != nil || name == "" {
		return "", false
	}
	return filepath.Join(s.rootDir, name), true
}

// OpenActive loads the active generation into memory and verifies its
// fingerprint.
func (s *Store) OpenActive() (*index.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, storage.ErrStoreClosed
	}

	name, err := s.readCurrent()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, storage.ErrNoActiveGeneration
	}
	dir := filepath.Join(s.rootDir, name)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: active dir %s: %v", storage.ErrCorruptGeneration, name, err)
	}

	backend, err := OpenBackend(dir, s.logger)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	return loadGeneration(backend)
}

// Close marks the store closed. Generation databases are only held open
// for the duration of a Commit or OpenActive, so there is nothing else to
// release.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// loadGeneration reads every key of one generation database and rebuilds
// the in-memory Generation, failing with ErrCorruptGeneration when the
// contents do not add up.
func loadGeneration(backend *Backend) (*index.Generation, error) {
	var (
		fields      []schema.Field
		stats       core.IndexStats
		fingerprint uint64
		createdAt   time.Time

		sawSchema, sawStats, sawFingerprint bool

		postings = make(map[string]map[string]core.PostingList)
		stored   = make(map[string]map[string]string)
		docLens  = make(map[string]map[string]uint32)
	)

	err := backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(val []byte) error {
				return loadKey(key, val, &fields, &stats, &fingerprint, &createdAt,
					&sawSchema, &sawStats, &sawFingerprint,
					postings, stored, docLens)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !sawSchema || !sawStats || !sawFingerprint {
		return nil, fmt.Errorf("%w: missing metadata", storage.ErrCorruptGeneration)
	}
	sch, err := schema.Define(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorruptGeneration, err)
	}

	gen := index.NewGeneration(sch, postings, stored, docLens, createdAt)
	if gen.Fingerprint() != fingerprint {
		return nil, fmt.Errorf("%w: fingerprint mismatch", storage.ErrCorruptGeneration)
	}
	if uint32(gen.DocCount()) != stats.DocCount {
		return nil, fmt.Errorf("%w: document count mismatch", storage.ErrCorruptGeneration)
	}
	return gen, nil
}

// loadKey dispatches one key/value pair into the generation under
// reconstruction.
func loadKey(
	key, val []byte,
	fields *[]schema.Field,
	stats *core.IndexStats,
	fingerprint *uint64,
	createdAt *time.Time,
	sawSchema, sawStats, sawFingerprint *bool,
	postings map[string]map[string]core.PostingList,
	stored map[string]map[string]string,
	docLens map[string]map[string]uint32,
) error {
	switch {
	case string(key) == schemaKey:
		decoded, err := storage.UnmarshalSchemaFields(val)
		if err != nil {
			return err
		}
		*fields = decoded
		*sawSchema = true

	case string(key) == statsKey:
		decoded, err := storage.UnmarshalIndexStats(val)
		if err != nil {
			return err
		}
		*stats = decoded
		*sawStats = true

	case string(key) == fingerprintKey:
		v, err := decodeUint64(val)
		if err != nil {
			return err
		}
		*fingerprint = v
		*sawFingerprint = true

	case string(key) == createdKey:
		v, err := decodeUint64(val)
		if err != nil {
			return err
		}
		*createdAt = time.Unix(0, int64(v)).UTC()

	case strings.HasPrefix(string(key), postingPrefix):
		field, term, ok := splitPostingKey(key)
		if !ok {
			return fmt.Errorf("%w: malformed posting key %q", storage.ErrCorruptGeneration, key)
		}
		list, err := storage.UnmarshalPostingList(val)
		if err != nil {
			return err
		}
		byTerm := postings[field]
		if byTerm == nil {
			byTerm = make(map[string]core.PostingList)
			postings[field] = byTerm
		}
		byTerm[term] = list

	case strings.HasPrefix(string(key), docPrefix):
		docID, _ := trimPrefix(key, docPrefix)
		decoded, err := storage.UnmarshalStoredFields(val)
		if err != nil {
			return err
		}
		stored[docID] = decoded

	case strings.HasPrefix(string(key), lenPrefix):
		docID, _ := trimPrefix(key, lenPrefix)
		decoded, err := storage.UnmarshalFieldLens(val)
		if err != nil {
			return err
		}
		docLens[docID] = decoded

	default:
		return fmt.Errorf("%w: unexpected key %q", storage.ErrCorruptGeneration, key)
	}
	return nil
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: want 8 bytes, got %d", storage.ErrTruncatedData, len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
