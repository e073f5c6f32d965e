package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

func testRecords() []core.Record {
	return []core.Record{
		{SongID: "s1", Title: "Let It Be", Artist: "The Beatles", Lyrics: "when I find myself in times of trouble"},
		{SongID: "s2", Title: "Yesterday", Artist: "The Beatles", Lyrics: "yesterday all my troubles seemed so far away"},
		{SongID: "s3", Title: "Running Up That Hill", Artist: "Kate Bush", Lyrics: "and if I only could make a deal"},
	}
}

func newTestWriter(t *testing.T, opts ...Option) *Writer {
	t.Helper()
	w, err := NewWriter(schema.SongSchema(), opts...)
	require.NoError(t, err)
	t.Cleanup(w.Release)
	return w
}

func TestNewWriterRequiresSchema(t *testing.T) {
	_, err := NewWriter(nil)
	assert.ErrorIs(t, err, ErrSchemaRequired)
}

func TestBuildEmptyBatch(t *testing.T) {
	w := newTestWriter(t)

	_, err := w.Build(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestBuildRejectsInvalidRecord(t *testing.T) {
	w := newTestWriter(t)

	records := testRecords()
	records[1].SongID = ""
	_, err := w.Build(context.Background(), records)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
}

func TestBuildRejectsDuplicateSongID(t *testing.T) {
	w := newTestWriter(t)

	records := testRecords()
	records[2].SongID = records[0].SongID
	_, err := w.Build(context.Background(), records)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Contains(t, err.Error(), `"s1"`)
}

func TestBuildRespectsCancellation(t *testing.T) {
	w := newTestWriter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Build(ctx, testRecords())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildGeneration(t *testing.T) {
	w := newTestWriter(t, WithPoolSize(2))

	gen, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)

	assert.Equal(t, 3, gen.DocCount())
	assert.Equal(t, []string{"s1", "s2", "s3"}, gen.DocIDs())

	t.Run("stemmed terms share postings", func(t *testing.T) {
		// "trouble" and "troubles" stem to the same term.
		postings := gen.Postings(core.FieldLyrics, "troubl")
		require.Len(t, postings, 2)
		assert.Equal(t, "s1", postings[0].DocID)
		assert.Equal(t, "s2", postings[1].DocID)
	})

	t.Run("stopwords are not indexed", func(t *testing.T) {
		assert.Nil(t, gen.Postings(core.FieldLyrics, "and"))
	})

	t.Run("positions and frequency", func(t *testing.T) {
		postings := gen.Postings(core.FieldTitle, "yesterday")
		require.Len(t, postings, 1)
		assert.Equal(t, uint32(1), postings[0].Frequency)
		assert.Equal(t, []uint32{0}, postings[0].Positions)
	})

	t.Run("stored fields keep raw values", func(t *testing.T) {
		fields, ok := gen.StoredFields("s3")
		require.True(t, ok)
		assert.Equal(t, "Running Up That Hill", fields[core.FieldTitleExact])
		assert.Equal(t, "Kate Bush", fields[core.FieldArtistExact])
	})

	t.Run("field lengths", func(t *testing.T) {
		// "Let It Be" has no stopwords, three tokens.
		assert.Equal(t, uint32(3), gen.FieldLen("s1", core.FieldTitle))
		// "and" and "if" in s3 lyrics: "and" is dropped.
		assert.Equal(t, uint32(7), gen.FieldLen("s3", core.FieldLyrics))
	})

	t.Run("unknown term", func(t *testing.T) {
		assert.Nil(t, gen.Postings(core.FieldLyrics, "zebra"))
	})
}

func TestBuildDeterministic(t *testing.T) {
	w := newTestWriter(t)

	first, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)
	second, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, first.Stats(), second.Stats())
	assert.Equal(t,
		first.Postings(core.FieldLyrics, "troubl"),
		second.Postings(core.FieldLyrics, "troubl"))
}

func TestGenerationStatsAndAverages(t *testing.T) {
	w := newTestWriter(t)

	gen, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)

	stats := gen.Stats()
	assert.Equal(t, uint32(3), stats.DocCount)
	assert.Positive(t, stats.TermTotals[core.FieldLyrics])

	avg := gen.AvgFieldLen(core.FieldLyrics)
	assert.InDelta(t, float64(stats.TermTotals[core.FieldLyrics])/3, avg, 1e-9)
}

func TestEachPostingListOrdered(t *testing.T) {
	w := newTestWriter(t)

	gen, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)

	var prevField, prevTerm string
	err = gen.EachPostingList(func(field, term string, postings core.PostingList) error {
		if field == prevField {
			assert.Greater(t, term, prevTerm)
		} else {
			assert.GreaterOrEqual(t, field, prevField)
		}
		prevField, prevTerm = field, term
		require.NotEmpty(t, postings)
		return nil
	})
	require.NoError(t, err)
}

func TestEachDocumentAscending(t *testing.T) {
	w := newTestWriter(t)

	gen, err := w.Build(context.Background(), testRecords())
	require.NoError(t, err)

	var seen []string
	err = gen.EachDocument(func(docID string, stored map[string]string, lens map[string]uint32) error {
		seen = append(seen, docID)
		assert.NotEmpty(t, stored)
		assert.NotEmpty(t, lens)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, seen)
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, nil, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, nil, func() error {
			calls++
			if calls < 3 {
				return assert.AnError
			}
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, nil, func() error {
			calls++
			return assert.AnError
		}, 2, time.Millisecond)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cancelled, nil, func() error { return assert.AnError }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
