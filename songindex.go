// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package songindex is an embedded full-text search engine for song
// catalogs. It indexes records into persisted, atomically swapped index
// generations and answers ranked keyword, phrase, and suggestion queries
// over them.
package songindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/index"
	"github.com/simon200418/songindex/query"
	"github.com/simon200418/songindex/schema"
	"github.com/simon200418/songindex/search"
	"github.com/simon200418/songindex/storage"
	"github.com/simon200418/songindex/storage/badger"
)

// commitAttempts bounds retries of a failed generation commit.
const (
	commitAttempts  = 2
	commitBaseDelay = 250 * time.Millisecond
)

// DefaultSearchFields are the fields SearchSongs targets when the caller
// passes none.
var DefaultSearchFields = []string{core.FieldTitle, core.FieldArtist, core.FieldLyrics}

// SongResult is one ranked search hit at the engine surface.
type SongResult struct {
	SongID string
	Title  string
	Artist string
	Score  float64
}

// Engine ties the index writer, the generation store, and the searcher
// together behind one handle. Searches read an atomically swapped
// generation snapshot, so they never block behind a rebuild and a rebuild
// never disturbs a search already underway.
type Engine struct {
	store  storage.GenerationStore
	schema *schema.Schema
	writer *index.Writer
	parser *query.Parser
	logger *slog.Logger

	active    atomic.Pointer[index.Generation]
	rebuildMu sync.Mutex
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	schema      *schema.Schema
	logger      *slog.Logger
	poolSize    int
	conjunction query.Conjunction
}

// WithSchema overrides the default song schema.
func WithSchema(s *schema.Schema) EngineOption {
	return func(o *engineOptions) {
		if s != nil {
			o.schema = s
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPoolSize sets the indexing worker pool size.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithConjunction sets how query terms combine; query.Any by default.
func WithConjunction(c query.Conjunction) EngineOption {
	return func(o *engineOptions) {
		o.conjunction = c
	}
}

// Open creates an engine persisting its index under dir and loads the
// active generation if one exists. A missing or unreadable index is not
// an error: the engine starts unindexed and serves empty results until
// the first Rebuild.
func Open(dir string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		schema: schema.SongSchema(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.NewStore(dir, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	writerOpts := []index.Option{index.WithLogger(options.logger)}
	if options.poolSize > 0 {
		writerOpts = append(writerOpts, index.WithPoolSize(options.poolSize))
	}
	writer, err := index.NewWriter(options.schema, writerOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	parser, err := query.NewParser(options.schema, query.WithConjunction(options.conjunction))
	if err != nil {
		writer.Release()
		store.Close()
		return nil, err
	}

	e := &Engine{
		store:  store,
		schema: options.schema,
		writer: writer,
		parser: parser,
		logger: options.logger,
	}

	gen, err := store.OpenActive()
	switch {
	case err == nil:
		e.active.Store(gen)
		e.logger.Info("loaded active generation",
			"docs", gen.DocCount(), "created", gen.CreatedAt())
	case errors.Is(err, storage.ErrNoActiveGeneration):
		e.logger.Info("no index found, starting unindexed", "dir", dir)
	case errors.Is(err, storage.ErrCorruptGeneration):
		e.logger.Warn("active generation is corrupt, starting unindexed", "error", err)
	default:
		writer.Release()
		store.Close()
		return nil, err
	}

	return e, nil
}

// Rebuild indexes the records into a new generation, commits it, and
// swaps it in. Rebuilds are exclusive among themselves; searches keep
// reading the previous generation until the swap. On any failure the
// previous generation stays active.
func (e *Engine) Rebuild(ctx context.Context, records []core.Record) error {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	gen, err := e.writer.Build(ctx, records)
	if err != nil {
		return err
	}

	err = index.RetryWithBackoff(ctx, e.logger, func() error {
		return e.store.Commit(gen)
	}, commitAttempts, commitBaseDelay)
	if err != nil {
		return fmt.Errorf("committing generation: %w", err)
	}

	e.active.Store(gen)
	return nil
}

// SearchSongs runs a ranked search over the given fields, or
// DefaultSearchFields when fields is empty. A blank query, a query of
// nothing but stopwords, or an unindexed engine yields empty results
// rather than an error. Invalid target fields are a core.ErrConfig
// regardless of whether an index is loaded.
func (e *Engine) SearchSongs(rawQuery string, fields []string, topN int) ([]SongResult, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}

	node, err := e.parser.Parse(rawQuery, fields)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			return nil, nil
		}
		return nil, err
	}

	gen := e.active.Load()
	if gen == nil {
		return nil, nil
	}

	hits, err := search.Search(gen, node, topN)
	if err != nil {
		return nil, err
	}

	results := make([]SongResult, len(hits))
	for i, hit := range hits {
		results[i] = SongResult{
			SongID: hit.DocID,
			Title:  displayValue(hit.Fields, core.FieldTitleExact, core.FieldTitle),
			Artist: displayValue(hit.Fields, core.FieldArtistExact, core.FieldArtist),
			Score:  hit.Score,
		}
	}
	return results, nil
}

// GetSongDetails returns the full stored record of one song.
func (e *Engine) GetSongDetails(songID string) (core.Record, error) {
	gen := e.active.Load()
	if gen == nil {
		return core.Record{}, fmt.Errorf("%w: song %q", core.ErrNotFound, songID)
	}
	fields, ok := gen.StoredFields(songID)
	if !ok {
		return core.Record{}, fmt.Errorf("%w: song %q", core.ErrNotFound, songID)
	}
	return core.Record{
		SongID: songID,
		Title:  displayValue(fields, core.FieldTitleExact, core.FieldTitle),
		Artist: displayValue(fields, core.FieldArtistExact, core.FieldArtist),
		Lyrics: fields[core.FieldLyrics],
	}, nil
}

// Suggestions returns up to maxN title and artist values containing the
// input as a case-insensitive substring.
func (e *Engine) Suggestions(input string, maxN int) []string {
	return search.Suggest(e.active.Load(), input, maxN)
}

// DocCount returns the number of indexed songs, zero when unindexed.
func (e *Engine) DocCount() int {
	gen := e.active.Load()
	if gen == nil {
		return 0
	}
	return gen.DocCount()
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	e.writer.Release()
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing generation store", "err", err)
		return err
	}
	return nil
}

// displayValue prefers the exact shadow field and falls back to the
// analyzed field's stored value.
func displayValue(fields map[string]string, exact, fallback string) string {
	if v := fields[exact]; v != "" {
		return v
	}
	return fields[fallback]
}
