package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon200418/songindex/core"
)

func TestReadRecords(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		data := "song_id,title,artist,lyrics\n" +
			"s1,Let It Be,The Beatles,times of trouble\n" +
			"s2,Yesterday,The Beatles,all my troubles\n"

		records, err := ReadRecords(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, core.Record{
			SongID: "s1",
			Title:  "Let It Be",
			Artist: "The Beatles",
			Lyrics: "times of trouble",
		}, records[0])
	})

	t.Run("column order is free and extras are ignored", func(t *testing.T) {
		data := "artist,genre,lyrics,song_id,title\n" +
			"The Beatles,rock,times of trouble,s1,Let It Be\n"

		records, err := ReadRecords(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "s1", records[0].SongID)
		assert.Equal(t, "The Beatles", records[0].Artist)
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		data := "Song_ID,Title,Artist,Lyrics\ns1,A,B,C\n"

		records, err := ReadRecords(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("missing columns are named", func(t *testing.T) {
		data := "song_id,title\ns1,A\n"

		_, err := ReadRecords(strings.NewReader(data))
		assert.ErrorIs(t, err, core.ErrConfig)
		assert.Contains(t, err.Error(), "artist")
		assert.Contains(t, err.Error(), "lyrics")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader(""))
		assert.ErrorIs(t, err, core.ErrConfig)
	})

	t.Run("header only yields no records", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader("song_id,title,artist,lyrics\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("quoted lyrics with commas", func(t *testing.T) {
		data := "song_id,title,artist,lyrics\n" +
			`s1,A,B,"hello, goodbye"` + "\n"

		records, err := ReadRecords(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "hello, goodbye", records[0].Lyrics)
	})
}

func TestLoadCSV(t *testing.T) {
	t.Run("reads file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")
		data := "song_id,title,artist,lyrics\ns1,A,B,C\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		records, err := LoadCSV(path)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}
