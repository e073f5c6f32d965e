package index

import (
	"sort"
	"time"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

// Generation is one immutable, fully-built snapshot of the index.
// It is safe for concurrent readers without locking.
type Generation struct {
	schema      *schema.Schema
	postings    map[string]map[string]core.PostingList // field -> term -> postings
	stored      map[string]map[string]string           // doc id -> field -> raw value
	docLens     map[string]map[string]uint32           // doc id -> field -> token count
	termTotals  map[string]uint64                      // field -> total indexed tokens
	docIDs      []string                               // ascending
	fingerprint uint64
	createdAt   time.Time
}

// NewGeneration assembles a Generation from its parts and derives the
// document order, length totals, and fingerprint. The maps are owned by
// the Generation after the call.
func NewGeneration(
	s *schema.Schema,
	postings map[string]map[string]core.PostingList,
	stored map[string]map[string]string,
	docLens map[string]map[string]uint32,
	createdAt time.Time,
) *Generation {
	docIDs := make([]string, 0, len(stored))
	for docID := range stored {
		docIDs = append(docIDs, docID)
	}
	sort.Strings(docIDs)

	termTotals := make(map[string]uint64, len(postings))
	for _, lens := range docLens {
		for field, n := range lens {
			termTotals[field] += uint64(n)
		}
	}

	return &Generation{
		schema:      s,
		postings:    postings,
		stored:      stored,
		docLens:     docLens,
		termTotals:  termTotals,
		docIDs:      docIDs,
		fingerprint: fingerprint(s, docIDs),
		createdAt:   createdAt,
	}
}

// fingerprint digests the schema shape and document set. It is persisted
// with the generation and recomputed on open to catch torn or tampered
// index directories.
func fingerprint(s *schema.Schema, docIDs []string) uint64 {
	fields := s.Fields()
	parts := make([]string, 0, len(fields)+len(docIDs))
	for _, f := range fields {
		parts = append(parts, f.Name)
	}
	parts = append(parts, docIDs...)
	return core.Fingerprint(parts...)
}

// Schema returns the schema this generation was built with.
func (g *Generation) Schema() *schema.Schema {
	return g.schema
}

// Postings returns the posting list for a term in a field, ordered by
// document id. Returns nil when the term does not occur. The returned
// slice is shared and must not be modified.
func (g *Generation) Postings(field, term string) core.PostingList {
	byTerm, ok := g.postings[field]
	if !ok {
		return nil
	}
	return byTerm[term]
}

// StoredFields returns a copy of the stored field values for a document.
func (g *Generation) StoredFields(docID string) (map[string]string, bool) {
	fields, ok := g.stored[docID]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		out[name] = value
	}
	return out, true
}

// StoredValue returns the stored value of one field for a document, or ""
// when either is absent.
func (g *Generation) StoredValue(docID, field string) string {
	return g.stored[docID][field]
}

// DocIDs returns all document ids in ascending order. The returned slice
// is shared and must not be modified.
func (g *Generation) DocIDs() []string {
	return g.docIDs
}

// DocCount returns the number of documents in the generation.
func (g *Generation) DocCount() int {
	return len(g.docIDs)
}

// FieldLen returns the indexed token count of one field of a document.
func (g *Generation) FieldLen(docID, field string) uint32 {
	return g.docLens[docID][field]
}

// AvgFieldLen returns the mean indexed token count of a field across all
// documents.
func (g *Generation) AvgFieldLen(field string) float64 {
	if len(g.docIDs) == 0 {
		return 0
	}
	return float64(g.termTotals[field]) / float64(len(g.docIDs))
}

// Stats summarises the generation for persistence.
func (g *Generation) Stats() core.IndexStats {
	totals := make(map[string]uint64, len(g.termTotals))
	for field, n := range g.termTotals {
		totals[field] = n
	}
	return core.IndexStats{
		DocCount:   uint32(len(g.docIDs)),
		TermTotals: totals,
	}
}

// Fingerprint returns the integrity digest of the generation.
func (g *Generation) Fingerprint() uint64 {
	return g.fingerprint
}

// CreatedAt returns the build timestamp of the generation.
func (g *Generation) CreatedAt() time.Time {
	return g.createdAt
}

// EachPostingList calls fn for every posting list, fields and terms in
// ascending order. Iteration stops at the first error.
func (g *Generation) EachPostingList(fn func(field, term string, postings core.PostingList) error) error {
	fields := make([]string, 0, len(g.postings))
	for field := range g.postings {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		byTerm := g.postings[field]
		terms := make([]string, 0, len(byTerm))
		for term := range byTerm {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			if err := fn(field, term, byTerm[term]); err != nil {
				return err
			}
		}
	}
	return nil
}

// EachDocument calls fn for every document in ascending id order with its
// stored fields and per-field token counts. Iteration stops at the first
// error. The maps passed to fn are shared and must not be modified.
func (g *Generation) EachDocument(fn func(docID string, stored map[string]string, lens map[string]uint32) error) error {
	for _, docID := range g.docIDs {
		if err := fn(docID, g.stored[docID], g.docLens[docID]); err != nil {
			return err
		}
	}
	return nil
}
