package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/schema"
)

func newSongParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	p, err := NewParser(schema.SongSchema(), opts...)
	require.NoError(t, err)
	return p
}

func TestNewParserRequiresSchema(t *testing.T) {
	_, err := NewParser(nil)
	assert.ErrorIs(t, err, ErrSchemaRequired)
}

func TestParseValidation(t *testing.T) {
	p := newSongParser(t)

	t.Run("blank query", func(t *testing.T) {
		_, err := p.Parse("   ", []string{core.FieldLyrics})
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	})

	t.Run("only stopwords", func(t *testing.T) {
		_, err := p.Parse("and or but", []string{core.FieldLyrics})
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	})

	t.Run("no target fields", func(t *testing.T) {
		_, err := p.Parse("hello", nil)
		assert.ErrorIs(t, err, core.ErrConfig)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := p.Parse("hello", []string{"composer"})
		assert.ErrorIs(t, err, core.ErrConfig)
		assert.Contains(t, err.Error(), "composer")
	})

	t.Run("unanalyzed field", func(t *testing.T) {
		_, err := p.Parse("hello", []string{core.FieldSongID})
		assert.ErrorIs(t, err, core.ErrConfig)
	})
}

func TestParseSingleTerm(t *testing.T) {
	p := newSongParser(t)

	node, err := p.Parse("Running", []string{core.FieldLyrics})
	require.NoError(t, err)
	assert.Equal(t, Term{Field: core.FieldLyrics, Term: "run"}, node)
}

func TestParseMultipleTermsDefaultOr(t *testing.T) {
	p := newSongParser(t)

	node, err := p.Parse("trouble water", []string{core.FieldLyrics})
	require.NoError(t, err)
	assert.Equal(t, Or{Children: []Node{
		Term{Field: core.FieldLyrics, Term: "troubl"},
		Term{Field: core.FieldLyrics, Term: "water"},
	}}, node)
}

func TestParseAllConjunction(t *testing.T) {
	p := newSongParser(t, WithConjunction(All))

	node, err := p.Parse("trouble water", []string{core.FieldLyrics})
	require.NoError(t, err)
	assert.Equal(t, And{Children: []Node{
		Term{Field: core.FieldLyrics, Term: "troubl"},
		Term{Field: core.FieldLyrics, Term: "water"},
	}}, node)
}

func TestParseMultiField(t *testing.T) {
	p := newSongParser(t)
	fields := []string{core.FieldTitle, core.FieldArtist}

	node, err := p.Parse("beatles", fields)
	require.NoError(t, err)
	assert.Equal(t, Or{Children: []Node{
		Term{Field: core.FieldTitle, Term: "beatl"},
		Term{Field: core.FieldArtist, Term: "beatl"},
	}}, node)
}

func TestParsePhrase(t *testing.T) {
	p := newSongParser(t)

	t.Run("quoted run becomes phrase", func(t *testing.T) {
		node, err := p.Parse(`"times of trouble"`, []string{core.FieldLyrics})
		require.NoError(t, err)
		assert.Equal(t,
			Phrase{Field: core.FieldLyrics, Terms: []string{"time", "of", "troubl"}},
			node)
	})

	t.Run("single-word quote is a term", func(t *testing.T) {
		node, err := p.Parse(`"trouble"`, []string{core.FieldLyrics})
		require.NoError(t, err)
		assert.Equal(t, Term{Field: core.FieldLyrics, Term: "troubl"}, node)
	})

	t.Run("phrase mixed with terms", func(t *testing.T) {
		node, err := p.Parse(`water "let it be"`, []string{core.FieldLyrics})
		require.NoError(t, err)
		assert.Equal(t, Or{Children: []Node{
			Term{Field: core.FieldLyrics, Term: "water"},
			Phrase{Field: core.FieldLyrics, Terms: []string{"let", "it", "be"}},
		}}, node)
	})

	t.Run("unbalanced quote falls back to terms", func(t *testing.T) {
		node, err := p.Parse(`"let it`, []string{core.FieldLyrics})
		require.NoError(t, err)
		assert.Equal(t, Or{Children: []Node{
			Term{Field: core.FieldLyrics, Term: "let"},
			Term{Field: core.FieldLyrics, Term: "it"},
		}}, node)
	})
}
