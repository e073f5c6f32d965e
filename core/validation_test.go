package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{
			name:   "valid record",
			record: Record{SongID: "1", Title: "Hey Jude", Artist: "The Beatles"},
		},
		{
			name:   "empty optional fields",
			record: Record{SongID: "2"},
		},
		{
			name:    "missing song id",
			record:  Record{Title: "Hey Jude"},
			wantErr: ErrEmptySongID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestRecordValues(t *testing.T) {
	r := Record{SongID: "42", Title: "Let It Be", Artist: "The Beatles", Lyrics: "when I find myself"}
	values := r.Values()

	assert.Equal(t, "42", values[FieldSongID])
	assert.Equal(t, "Let It Be", values[FieldTitle])
	assert.Equal(t, "The Beatles", values[FieldArtist])
	assert.Equal(t, "when I find myself", values[FieldLyrics])

	// Shadow fields carry the raw display values.
	assert.Equal(t, "Let It Be", values[FieldTitleExact])
	assert.Equal(t, "The Beatles", values[FieldArtistExact])
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint("a", "b"), Fingerprint("a", "b"))
	})

	t.Run("part boundaries matter", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
	})

	t.Run("order matters", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint("a", "b"), Fingerprint("b", "a"))
	})
}
