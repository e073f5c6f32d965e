package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/simon200418/songindex/analysis"
	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

const defaultReportInterval = 1000

// Writer ingests record batches and builds index generations.
// A Writer runs one build at a time; concurrent Build calls serialize.
type Writer struct {
	schema         *schema.Schema
	pool           *ants.Pool
	logger         *slog.Logger
	reportInterval int
	mu             sync.Mutex
}

// Option configures a Writer.
type Option func(*Writer) error

// WithPoolSize sets the worker pool size for concurrent record analysis.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(w *Writer) error {
		if size < 1 {
			size = 1
		}
		if w.pool != nil {
			w.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		w.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// WithReportInterval sets how many records are merged between progress
// log lines. Default is 1000.
func WithReportInterval(n int) Option {
	return func(w *Writer) error {
		if n < 1 {
			n = 1
		}
		w.reportInterval = n
		return nil
	}
}

// NewWriter creates a writer for the given schema.
func NewWriter(s *schema.Schema, opts ...Option) (*Writer, error) {
	if s == nil {
		return nil, ErrSchemaRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		schema:         s,
		pool:           pool,
		logger:         slog.Default(),
		reportInterval: defaultReportInterval,
	}

	for _, opt := range opts {
		if optErr := opt(w); optErr != nil {
			w.Release()
			return nil, optErr
		}
	}

	return w, nil
}

// Release releases the worker pool.
// The writer must not be used after calling Release.
func (w *Writer) Release() {
	if w.pool != nil {
		w.pool.Release()
	}
}

// analyzedRecord holds the analysis output for one record.
type analyzedRecord struct {
	values map[string]string
	tokens map[string][]analysis.Token
}

// Build analyzes records per the schema and assembles a new Generation.
//
// The build is all-or-nothing: on any failure no generation is returned
// and the caller's active generation stays untouched. Records sharing a
// unique-field value fail the build with core.ErrDuplicateKey wrapped
// with the offending id. An empty batch fails with core.ErrEmptyInput.
func (w *Writer) Build(ctx context.Context, records []core.Record) (*Generation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(records) == 0 {
		return nil, core.ErrEmptyInput
	}
	for _, record := range records {
		if err := core.ValidateRecord(record); err != nil {
			return nil, err
		}
	}

	analyzed := w.analyzeRecords(records)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracker := NewProgressTracker(w.logger, len(records), w.reportInterval)
	tracker.Start()

	uniqueName := w.schema.UniqueField().Name
	storedNames := w.schema.StoredFields()
	postings := make(map[string]map[string]core.PostingList, len(w.schema.AnalyzedFields()))
	stored := make(map[string]map[string]string, len(records))
	docLens := make(map[string]map[string]uint32, len(records))

	for _, rec := range analyzed {
		docID := rec.values[uniqueName]
		if docID == "" {
			return nil, fmt.Errorf("%w: empty %s", core.ErrInvalidRecord, uniqueName)
		}
		if _, dup := stored[docID]; dup {
			return nil, fmt.Errorf("%w: %s %q", core.ErrDuplicateKey, uniqueName, docID)
		}

		fields := make(map[string]string, len(storedNames))
		for _, name := range storedNames {
			fields[name] = rec.values[name]
		}
		stored[docID] = fields

		lens := make(map[string]uint32, len(rec.tokens))
		for field, tokens := range rec.tokens {
			lens[field] = uint32(len(tokens))
			mergePostings(postings, field, docID, tokens)
		}
		docLens[docID] = lens
		tracker.Increment(1)
	}

	sortPostings(postings)
	tracker.Finish()

	gen := NewGeneration(w.schema, postings, stored, docLens, time.Now().UTC())
	w.logger.Info("index generation built",
		"docs", gen.DocCount(), "fingerprint", gen.Fingerprint(), "elapsed", tracker.Elapsed())
	return gen, nil
}

// analyzeRecords fans record analysis out on the worker pool. Each task
// writes only its own slot, so no synchronization beyond the WaitGroup is
// needed.
func (w *Writer) analyzeRecords(records []core.Record) []analyzedRecord {
	analyzedFields := w.schema.AnalyzedFields()
	analyzed := make([]analyzedRecord, len(records))

	var wg sync.WaitGroup
	for i := range records {
		values := records[i].Values()
		slot := &analyzed[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			tokens := make(map[string][]analysis.Token, len(analyzedFields))
			for _, field := range analyzedFields {
				tokens[field] = analysis.Analyze(values[field])
			}
			*slot = analyzedRecord{values: values, tokens: tokens}
		}
		if err := w.pool.Submit(task); err != nil {
			// Pool unavailable; analyze on the calling goroutine.
			task()
		}
	}
	wg.Wait()

	return analyzed
}

// mergePostings folds one document's tokens for one field into the
// postings map.
func mergePostings(postings map[string]map[string]core.PostingList, field, docID string, tokens []analysis.Token) {
	byTerm := postings[field]
	if byTerm == nil {
		byTerm = make(map[string]core.PostingList)
		postings[field] = byTerm
	}

	perTerm := make(map[string]*core.Posting, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		p := perTerm[token.Term]
		if p == nil {
			p = &core.Posting{DocID: docID}
			perTerm[token.Term] = p
			order = append(order, token.Term)
		}
		p.Frequency++
		p.Positions = append(p.Positions, token.Position)
	}
	for _, term := range order {
		byTerm[term] = append(byTerm[term], *perTerm[term])
	}
}

// sortPostings orders every posting list by document id so evaluation and
// persistence are deterministic.
func sortPostings(postings map[string]map[string]core.PostingList) {
	for _, byTerm := range postings {
		for term, list := range byTerm {
			sort.Slice(list, func(i, j int) bool {
				return list[i].DocID < list[j].DocID
			})
			byTerm[term] = list
		}
	}
}
