package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/index"
	"github.com/simon200418/songindex/query"
	"github.com/simon200418/songindex/schema"
)

func buildGeneration(t *testing.T, records []core.Record) *index.Generation {
	t.Helper()
	w, err := index.NewWriter(schema.SongSchema())
	require.NoError(t, err)
	t.Cleanup(w.Release)

	gen, err := w.Build(context.Background(), records)
	require.NoError(t, err)
	return gen
}

func songCorpus() []core.Record {
	return []core.Record{
		{SongID: "s1", Title: "Let It Be", Artist: "The Beatles", Lyrics: "when I find myself in times of trouble mother mary comes to me"},
		{SongID: "s2", Title: "Yesterday", Artist: "The Beatles", Lyrics: "yesterday all my troubles seemed so far away"},
		{SongID: "s3", Title: "Bridge Over Troubled Water", Artist: "Simon and Garfunkel", Lyrics: "like a bridge over troubled water I will lay me down"},
		{SongID: "s4", Title: "Running Up That Hill", Artist: "Kate Bush", Lyrics: "if I only could make a deal with god"},
	}
}

func TestSearchValidation(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	_, err := Search(nil, query.Term{Field: core.FieldLyrics, Term: "troubl"}, 10)
	assert.ErrorIs(t, err, ErrGenerationRequired)

	_, err = Search(gen, nil, 10)
	assert.ErrorIs(t, err, ErrQueryRequired)
}

func TestSearchTerm(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	results, err := Search(gen, query.Term{Field: core.FieldLyrics, Term: "troubl"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.DocID
		assert.Positive(t, r.Score)
		assert.NotEmpty(t, r.Fields[core.FieldTitleExact])
	}
	assert.ElementsMatch(t, []string{"s1", "s2", "s3"}, ids)

	// Scores are descending.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchTermNoMatch(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	results, err := Search(gen, query.Term{Field: core.FieldLyrics, Term: "zebra"}, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchOrUnion(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	node := query.Or{Children: []query.Node{
		query.Term{Field: core.FieldLyrics, Term: "troubl"},
		query.Term{Field: core.FieldLyrics, Term: "god"},
	}}
	results, err := Search(gen, node, 10)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSearchAndIntersection(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	node := query.And{Children: []query.Node{
		query.Term{Field: core.FieldLyrics, Term: "troubl"},
		query.Term{Field: core.FieldLyrics, Term: "water"},
	}}
	results, err := Search(gen, node, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s3", results[0].DocID)
}

func TestSearchPhrase(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	t.Run("adjacent positions match", func(t *testing.T) {
		node := query.Phrase{Field: core.FieldLyrics, Terms: []string{"time", "of", "troubl"}}
		results, err := Search(gen, node, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "s1", results[0].DocID)
	})

	t.Run("terms present but not adjacent", func(t *testing.T) {
		// s3 has both words, in the other order and apart.
		node := query.Phrase{Field: core.FieldLyrics, Terms: []string{"water", "troubl"}}
		results, err := Search(gen, node, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchTieBreakByDocID(t *testing.T) {
	// Identical docs except for id produce identical scores.
	gen := buildGeneration(t, []core.Record{
		{SongID: "b", Title: "Echo", Artist: "X", Lyrics: "silver morning"},
		{SongID: "a", Title: "Echo", Artist: "Y", Lyrics: "silver morning"},
	})

	results, err := Search(gen, query.Term{Field: core.FieldLyrics, Term: "silver"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "a", results[0].DocID)
	assert.Equal(t, "b", results[1].DocID)
}

func TestSearchLimit(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	results, err := Search(gen, query.Term{Field: core.FieldLyrics, Term: "troubl"}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	all, err := Search(gen, query.Term{Field: core.FieldLyrics, Term: "troubl"}, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// recordingMonitor captures hook invocations.
type recordingMonitor struct {
	started  bool
	lookups  int
	finished int
}

func (m *recordingMonitor) Start(_ query.Node)              { m.started = true }
func (m *recordingMonitor) TermPostings(_, _ string, _ int) { m.lookups++ }
func (m *recordingMonitor) Finish(r []core.SearchResult)    { m.finished = len(r) }

func TestSearchWithMonitor(t *testing.T) {
	gen := buildGeneration(t, songCorpus())

	monitor := &recordingMonitor{}
	node := query.Or{Children: []query.Node{
		query.Term{Field: core.FieldLyrics, Term: "troubl"},
		query.Term{Field: core.FieldTitle, Term: "yesterday"},
	}}
	results, err := SearchWithMonitor(gen, node, 10, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, 2, monitor.lookups)
	assert.Equal(t, len(results), monitor.finished)
}
